package list

import (
	"github.com/arthur-debert/dtovl/pkg/commands/internal"
	"github.com/arthur-debert/dtovl/pkg/config"
	"github.com/arthur-debert/dtovl/pkg/errors"
	"github.com/arthur-debert/dtovl/pkg/ledger"
	"github.com/arthur-debert/dtovl/pkg/logging"
	"github.com/arthur-debert/dtovl/pkg/types"
)

// ListOverlaysOptions defines the options for the ListOverlays command.
type ListOverlaysOptions struct {
	Config *config.Config
	FS     types.FS
}

// ListOverlays returns every ledger entry in application order.
func ListOverlays(opts ListOverlaysOptions) (*types.ListResult, error) {
	log := logging.GetLogger("commands")
	log.Debug().Str("command", "ListOverlays").Msg("Executing command")

	l, err := internal.OpenLedger(opts.Config, opts.FS)
	if err != nil {
		return nil, err
	}

	result, err := l.List()
	if err != nil {
		return nil, err
	}

	log.Info().Str("command", "ListOverlays").Int("overlayCount", len(result.Overlays)).Msg("Command finished")
	return result, nil
}

// OverlayNames returns the distinct overlay identifiers in the ledger,
// latest first. Used for shell completion.
func OverlayNames(opts ListOverlaysOptions) ([]string, error) {
	result, err := ListOverlays(opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	names := make([]string, 0, len(result.Overlays))
	for i := len(result.Overlays) - 1; i >= 0; i-- {
		id := result.Overlays[i].Overlay
		if !seen[id] {
			seen[id] = true
			names = append(names, id)
		}
	}
	return names, nil
}

// BlobNames returns the overlay blobs found on the configured search path.
// The mount point is not consulted.
func BlobNames(opts ListOverlaysOptions) ([]string, error) {
	if opts.Config == nil {
		return nil, errors.New(errors.ErrInternal, "no configuration")
	}
	l := ledger.New(opts.FS, ledger.Options{SearchPath: opts.Config.SearchPath})
	return l.Blobs(), nil
}
