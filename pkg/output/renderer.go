package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/dtovl/pkg/config"
	"github.com/arthur-debert/dtovl/pkg/errors"
	"github.com/arthur-debert/dtovl/pkg/logging"
	"github.com/arthur-debert/dtovl/pkg/style"
	"github.com/arthur-debert/dtovl/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// Renderer writes results to a stream in one of the supported formats.
type Renderer struct {
	writer  io.Writer
	format  string
	noColor bool
	styles  *style.Styles
	markup  *style.MarkupParser
}

// NewRenderer creates a Renderer for w.
//
// Colors are used only when noColor is false, NO_COLOR is unset and w is a
// terminal.
func NewRenderer(w io.Writer, format string, noColor bool) (*Renderer, error) {
	log := logging.GetLogger("output")

	switch format {
	case config.FormatText, config.FormatJSON, config.FormatYAML:
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown output format %q", format).
			WithDetail("format", format)
	}

	noColor = noColor || !ColorEnabled(w)

	lr := lipgloss.NewRenderer(w)
	if noColor {
		lr.SetColorProfile(termenv.Ascii)
		pterm.DisableStyling()
	} else {
		pterm.EnableStyling()
	}

	log.Debug().
		Str("format", format).
		Bool("noColor", noColor).
		Str("colorProfile", fmt.Sprintf("%v", lr.ColorProfile())).
		Msg("Renderer created")

	styles := style.New(lr)
	return &Renderer{
		writer:  w,
		format:  format,
		noColor: noColor,
		styles:  styles,
		markup:  style.NewMarkupParser(styles, noColor),
	}, nil
}

// ColorEnabled reports whether w should get ANSI styling.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// RenderList writes the ledger listing.
func (r *Renderer) RenderList(result *types.ListResult) error {
	if r.format != config.FormatText {
		return r.encode(result)
	}

	if len(result.Overlays) == 0 {
		return r.line("[muted]No overlays applied.[/muted]")
	}

	data := pterm.TableData{{"SEQ", "OVERLAY", "STATUS", "PATH"}}
	for _, o := range result.Overlays {
		data = append(data, []string{
			fmt.Sprintf("%d", o.Seq),
			o.Overlay,
			style.StatusStyle(style.ForOverlay(o.Status)).Sprint(o.Status),
			o.Path,
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to render table")
	}
	_, err = fmt.Fprintln(r.writer, table)
	return err
}

// RenderApply writes the outcome of a batch apply, including a partial
// batch that halted on a rejection.
func (r *Renderer) RenderApply(result *types.ApplyResult) error {
	if r.format != config.FormatText {
		return r.encode(result)
	}

	for _, o := range result.Applied {
		var msg string
		if result.DryRun {
			msg = fmt.Sprintf("%s would apply [bold]%s[/bold] as [code]%d-%s[/code]",
				r.styles.PendingIndicator(), o.Overlay, o.Seq, o.Overlay)
			if o.Blob != "" {
				msg += fmt.Sprintf(" from [path]%s[/path]", o.Blob)
			}
		} else {
			msg = fmt.Sprintf("%s applied [bold]%s[/bold] [muted](seq %d, %s)[/muted]",
				r.styles.SuccessIndicator(), o.Overlay, o.Seq, o.Method)
		}
		if err := r.line(msg); err != nil {
			return err
		}
	}

	if o := result.Rejected; o != nil {
		msg := fmt.Sprintf("%s [bold]%s[/bold] rejected by the kernel: status %s, entry left at [path]%s[/path]",
			r.styles.ErrorIndicator(), o.Overlay, r.styles.Status(o.Status), o.Path)
		return r.line(msg)
	}
	return nil
}

// RenderRemove writes the outcome of a removal batch.
func (r *Renderer) RenderRemove(result *types.RemoveResult) error {
	if r.format != config.FormatText {
		return r.encode(result)
	}

	if len(result.Removed) == 0 {
		return r.line("[muted]Nothing to remove.[/muted]")
	}

	for _, o := range result.Removed {
		indicator, verb := r.styles.SuccessIndicator(), "removed"
		if result.DryRun {
			indicator, verb = r.styles.PendingIndicator(), "would remove"
		}
		msg := fmt.Sprintf("%s %s [bold]%s[/bold] [muted](seq %d)[/muted]", indicator, verb, o.Overlay, o.Seq)
		if err := r.line(msg); err != nil {
			return err
		}
	}
	return nil
}

// errorReport is the machine-readable shape of an error.
type errorReport struct {
	Error errorBody `json:"error" yaml:"error"`
}

type errorBody struct {
	Code    string                 `json:"code" yaml:"code"`
	Message string                 `json:"message" yaml:"message"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// RenderError writes err as a single line, or as an error document in the
// machine-readable formats.
func (r *Renderer) RenderError(err error) error {
	if r.format != config.FormatText {
		report := errorReport{Error: errorBody{
			Code:    string(errors.GetErrorCode(err)),
			Message: err.Error(),
			Details: errors.GetErrorDetails(err),
		}}
		if len(report.Error.Details) == 0 {
			report.Error.Details = nil
		}
		return r.encode(report)
	}

	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	_, writeErr := fmt.Fprintf(r.writer, "%s %s\n", r.styles.Error.Render("Error:"), msg)
	return writeErr
}

func (r *Renderer) line(markup string) error {
	_, err := fmt.Fprintln(r.writer, r.markup.Render(markup))
	return err
}

func (r *Renderer) encode(v interface{}) error {
	switch r.format {
	case config.FormatJSON:
		enc := json.NewEncoder(r.writer)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.FormatYAML:
		enc := yaml.NewEncoder(r.writer)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return errors.Newf(errors.ErrInternal, "format %q has no encoder", r.format)
}
