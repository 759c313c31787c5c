// Package commands provides high-level command implementations for dtovl.
//
// This package contains the command orchestration layer that sits between
// the CLI and the overlay ledger: it validates configuration, opens the
// ledger on the configured mount and runs one operation.
//
// Each command is implemented in its own subdirectory:
//   - list/     - ListOverlays command
//   - apply/    - ApplyOverlays command
//   - remove/   - RemoveOverlays command
//   - internal/ - Shared ledger setup
//
// This file re-exports the command functions.
package commands

import (
	"strings"

	"github.com/arthur-debert/dtovl/pkg/commands/apply"
	"github.com/arthur-debert/dtovl/pkg/commands/list"
	"github.com/arthur-debert/dtovl/pkg/commands/remove"
	"github.com/arthur-debert/dtovl/pkg/types"
)

// ListOverlays returns every ledger entry in application order.
type ListOverlaysOptions = list.ListOverlaysOptions

func ListOverlays(opts ListOverlaysOptions) (*types.ListResult, error) {
	return list.ListOverlays(opts)
}

// OverlayNames returns the distinct identifiers in the ledger, latest first.
func OverlayNames(opts ListOverlaysOptions) ([]string, error) {
	return list.OverlayNames(opts)
}

// BlobNames returns the overlay blobs available on the search path.
func BlobNames(opts ListOverlaysOptions) ([]string, error) {
	return list.BlobNames(opts)
}

// ApplyOverlays applies a batch of overlays in order.
type ApplyOverlaysOptions = apply.ApplyOverlaysOptions

func ApplyOverlays(opts ApplyOverlaysOptions) (*types.ApplyResult, error) {
	return apply.ApplyOverlays(opts)
}

// RemoveOverlays removes overlays in reverse application order.
type RemoveOverlaysOptions = remove.RemoveOverlaysOptions

// RemoveAllToken selects every entry for removal.
const RemoveAllToken = remove.AllToken

func RemoveOverlays(opts RemoveOverlaysOptions) (*types.RemoveResult, error) {
	return remove.RemoveOverlays(opts)
}

// ParseOverlayList splits a comma-separated overlay list, trimming blanks
// and dropping empty elements.
func ParseOverlayList(s string) []string {
	var overlays []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			overlays = append(overlays, part)
		}
	}
	return overlays
}
