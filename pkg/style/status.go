package style

import (
	"github.com/arthur-debert/dtovl/pkg/configfs"
	"github.com/pterm/pterm"
)

// Status types for ledger entries
type Status string

const (
	StatusSuccess Status = "success" // Entry applied
	StatusError   Status = "error"   // Kernel reported anything but applied
	StatusQueue   Status = "queue"   // Planned, not created yet
)

// ForOverlay maps a configfs entry status to a display status. An empty
// status means the entry has not been created (dry run).
func ForOverlay(status string) Status {
	switch status {
	case configfs.StatusApplied:
		return StatusSuccess
	case "":
		return StatusQueue
	default:
		return StatusError
	}
}

// StatusStyle returns the appropriate pterm style for a status
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusSuccess:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case StatusError:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case StatusQueue:
		return pterm.NewStyle(pterm.FgYellow)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Status renders a configfs status word in its display color.
func (s *Styles) Status(status string) string {
	switch ForOverlay(status) {
	case StatusSuccess:
		return s.Success.Render(status)
	case StatusQueue:
		return s.Muted.Render("planned")
	default:
		return s.Error.Render(status)
	}
}
