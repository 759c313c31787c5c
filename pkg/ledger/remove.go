package ledger

import (
	"strings"

	"github.com/arthur-debert/dtovl/pkg/errors"
	"github.com/arthur-debert/dtovl/pkg/logging"
	"github.com/arthur-debert/dtovl/pkg/types"
)

// Remove removes the latest entry of every identifier in ids. All
// identifiers are resolved before anything is removed; then the entries come
// off from the highest sequence number down, whatever the order of ids.
func (l *Ledger) Remove(ids []string, dryRun bool) (*types.RemoveResult, error) {
	names, err := l.Names()
	if err != nil {
		return nil, err
	}

	var (
		resolved []string
		missing  []string
		seen     = make(map[string]bool)
	)
	for _, id := range ids {
		name, ok, err := FindLatest(id, names)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, id)
			continue
		}
		if !seen[name] {
			seen[name] = true
			resolved = append(resolved, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.Newf(errors.ErrOverlayNotFound, "no ledger entry for overlay %s", strings.Join(missing, ",")).
			WithDetail("overlays", missing)
	}

	return l.removeEntries(resolved, dryRun)
}

// RemoveAll removes every entry, from the highest sequence number down.
func (l *Ledger) RemoveAll(dryRun bool) (*types.RemoveResult, error) {
	names, err := l.Names()
	if err != nil {
		return nil, err
	}
	return l.removeEntries(names, dryRun)
}

// removeEntries removes names in descending sequence order and stops at the
// first failure, leaving the lower entries in place. The result lists what
// was removed before the failure.
func (l *Ledger) removeEntries(names []string, dryRun bool) (*types.RemoveResult, error) {
	defer logging.LogOperationStart(l.log, "remove")()

	entries, err := sortedEntries(names)
	if err != nil {
		return nil, err
	}

	result := &types.RemoveResult{DryRun: dryRun, Removed: []types.OverlayInfo{}}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		info := types.OverlayInfo{Seq: e.Seq, Overlay: e.ID, Path: l.entryPath(e.dir)}

		if !dryRun {
			if err := l.removeEntry(e.dir); err != nil {
				return result, err
			}
			l.log.Info().Str("entry", e.dir).Msg("Overlay removed")
		}
		result.Removed = append(result.Removed, info)
	}
	return result, nil
}

func (l *Ledger) removeEntry(name string) error {
	path := l.entryPath(name)

	info, err := l.fs.Lstat(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrNotADirectory, "ledger entry %s is gone", name).WithDetail("entry", name)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrNotADirectory, "ledger entry %s is not a directory", name).WithDetail("entry", name)
	}

	// configfs refuses the rmdir when the overlay cannot be removed, for
	// instance while a later overlay still depends on it.
	if err := l.fs.Remove(path); err != nil {
		return errors.Wrapf(err, errors.ErrRemovalFailed, "cannot remove overlay entry %s", name).WithDetail("entry", name)
	}
	return nil
}
