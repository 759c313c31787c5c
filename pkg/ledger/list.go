package ledger

import (
	"github.com/arthur-debert/dtovl/pkg/types"
)

// List returns every entry in application order with its current status.
func (l *Ledger) List() (*types.ListResult, error) {
	names, err := l.Names()
	if err != nil {
		return nil, err
	}
	entries, err := sortedEntries(names)
	if err != nil {
		return nil, err
	}

	result := &types.ListResult{Overlays: make([]types.OverlayInfo, 0, len(entries))}
	for _, e := range entries {
		path := l.entryPath(e.dir)
		status, err := l.readStatus(path)
		if err != nil {
			return nil, err
		}
		result.Overlays = append(result.Overlays, types.OverlayInfo{
			Seq:     e.Seq,
			Overlay: e.ID,
			Status:  status,
			Path:    path,
		})
	}
	return result, nil
}
