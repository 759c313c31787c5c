package remove

import (
	"github.com/arthur-debert/dtovl/pkg/commands/internal"
	"github.com/arthur-debert/dtovl/pkg/config"
	"github.com/arthur-debert/dtovl/pkg/errors"
	"github.com/arthur-debert/dtovl/pkg/logging"
	"github.com/arthur-debert/dtovl/pkg/types"
)

// AllToken selects every ledger entry for removal.
const AllToken = "all"

// RemoveOverlaysOptions defines the options for the RemoveOverlays command.
type RemoveOverlaysOptions struct {
	Config *config.Config
	FS     types.FS
	// Overlays names the identifiers to remove, or is exactly [AllToken].
	Overlays []string
	DryRun   bool
}

// RemoveOverlays removes the named overlays, or all of them, highest
// sequence number first.
func RemoveOverlays(opts RemoveOverlaysOptions) (*types.RemoveResult, error) {
	log := logging.GetLogger("commands")
	log.Debug().
		Str("command", "RemoveOverlays").
		Strs("overlays", opts.Overlays).
		Bool("dryRun", opts.DryRun).
		Msg("Executing command")

	all, err := wantsAll(opts.Overlays)
	if err != nil {
		return nil, err
	}

	l, err := internal.OpenLedger(opts.Config, opts.FS)
	if err != nil {
		return nil, err
	}

	var result *types.RemoveResult
	if all {
		result, err = l.RemoveAll(opts.DryRun)
	} else {
		result, err = l.Remove(opts.Overlays, opts.DryRun)
	}
	if err != nil {
		return result, err
	}

	log.Info().
		Str("command", "RemoveOverlays").
		Int("removed", len(result.Removed)).
		Bool("dryRun", result.DryRun).
		Msg("Command finished")
	return result, nil
}

func wantsAll(overlays []string) (bool, error) {
	if len(overlays) == 0 {
		return false, errors.New(errors.ErrInvalidInput, "no overlays to remove")
	}

	for _, id := range overlays {
		if id == AllToken && len(overlays) > 1 {
			return false, errors.Newf(errors.ErrInvalidInput, "%q cannot be combined with overlay names", AllToken)
		}
	}
	return overlays[0] == AllToken, nil
}
