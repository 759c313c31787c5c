package internal

import (
	"github.com/arthur-debert/dtovl/pkg/config"
	"github.com/arthur-debert/dtovl/pkg/configfs"
	"github.com/arthur-debert/dtovl/pkg/errors"
	"github.com/arthur-debert/dtovl/pkg/ledger"
	"github.com/arthur-debert/dtovl/pkg/logging"
	"github.com/arthur-debert/dtovl/pkg/types"
)

// OpenLedger validates cfg against fs and returns a ledger over its mount.
// A mount that is not on configfs only draws a warning: the directory may
// be a bind mount or a test fixture.
func OpenLedger(cfg *config.Config, fs types.FS) (*ledger.Ledger, error) {
	logger := logging.GetLogger("commands")

	if cfg == nil {
		return nil, errors.New(errors.ErrInternal, "no configuration")
	}
	if err := config.Validate(cfg, fs); err != nil {
		return nil, err
	}

	isConfigFS, err := configfs.IsConfigFS(cfg.Mount)
	switch {
	case err != nil:
		logger.Debug().Err(err).Str("mount", cfg.Mount).Msg("Could not check mount filesystem type")
	case !isConfigFS:
		logger.Warn().Str("mount", cfg.Mount).Msg("Mount point is not on configfs; overlays will not reach the kernel")
	}

	return ledger.New(fs, ledger.Options{
		Root:       cfg.Mount,
		SearchPath: cfg.SearchPath,
	}), nil
}
