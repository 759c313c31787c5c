package apply

import (
	"github.com/arthur-debert/dtovl/pkg/commands/internal"
	"github.com/arthur-debert/dtovl/pkg/config"
	"github.com/arthur-debert/dtovl/pkg/errors"
	"github.com/arthur-debert/dtovl/pkg/logging"
	"github.com/arthur-debert/dtovl/pkg/types"
)

// ApplyOverlaysOptions defines the options for the ApplyOverlays command.
type ApplyOverlaysOptions struct {
	Config *config.Config
	FS     types.FS
	// Overlays are applied strictly in this order.
	Overlays []string
	// Method overrides Config.Method when set.
	Method types.ApplyMethod
	DryRun bool
}

// ApplyOverlays applies a batch of overlays. When the kernel rejects one,
// the batch stops there and a REJECTED error is returned together with the
// result, which lists what was applied before and the rejected entry.
func ApplyOverlays(opts ApplyOverlaysOptions) (*types.ApplyResult, error) {
	log := logging.GetLogger("commands")
	log.Debug().
		Str("command", "ApplyOverlays").
		Strs("overlays", opts.Overlays).
		Bool("dryRun", opts.DryRun).
		Msg("Executing command")

	if len(opts.Overlays) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no overlays to apply")
	}

	l, err := internal.OpenLedger(opts.Config, opts.FS)
	if err != nil {
		return nil, err
	}

	method := opts.Method
	if method == "" {
		method = opts.Config.Method
	}

	result, err := l.ApplyBatch(opts.Overlays, method, opts.DryRun)
	if err != nil {
		return result, err
	}

	if r := result.Rejected; r != nil {
		log.Warn().
			Str("overlay", r.Overlay).
			Str("status", r.Status).
			Int("applied", len(result.Applied)).
			Msg("Batch halted on rejected overlay")
		return result, errors.Newf(errors.ErrRejected, "overlay %s was not applied (status %q)", r.Overlay, r.Status).
			WithDetail("overlay", r.Overlay).
			WithDetail("status", r.Status).
			WithDetail("path", r.Path)
	}

	log.Info().
		Str("command", "ApplyOverlays").
		Int("applied", len(result.Applied)).
		Bool("dryRun", result.DryRun).
		Msg("Command finished")
	return result, nil
}
