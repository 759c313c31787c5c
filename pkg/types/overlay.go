package types

// ApplyMethod selects how an overlay is handed to the kernel.
type ApplyMethod string

const (
	// MethodBlob streams the overlay file's bytes into the entry's dtbo channel.
	MethodBlob ApplyMethod = "blob"
	// MethodPath writes the overlay name into the entry's path channel and
	// leaves the lookup to the kernel firmware loader.
	MethodPath ApplyMethod = "path"
)

// OverlayInfo describes one ledger entry as currently present in configfs.
type OverlayInfo struct {
	Seq     uint64 `json:"seq" yaml:"seq"`
	Overlay string `json:"overlay" yaml:"overlay"`
	Status  string `json:"status,omitempty" yaml:"status,omitempty"`
	Path    string `json:"path" yaml:"path"`
}

// ListResult holds the result of listing the ledger.
type ListResult struct {
	Overlays []OverlayInfo `json:"overlays" yaml:"overlays"`
}

// ApplyOutcome is the outcome of applying a single overlay.
type ApplyOutcome struct {
	Seq     uint64      `json:"seq" yaml:"seq"`
	Overlay string      `json:"overlay" yaml:"overlay"`
	Method  ApplyMethod `json:"method" yaml:"method"`
	// Blob is the resolved blob file. Empty for the path method.
	Blob    string `json:"blob,omitempty" yaml:"blob,omitempty"`
	Path    string `json:"path" yaml:"path"`
	Status  string `json:"status,omitempty" yaml:"status,omitempty"`
	Applied bool   `json:"applied" yaml:"applied"`
}

// ApplyResult holds the result of a batch apply.
type ApplyResult struct {
	DryRun bool `json:"dry_run" yaml:"dry_run"`
	// Applied lists the overlays that reached the applied state, in order.
	// In dry-run mode it lists the planned entries instead.
	Applied []ApplyOutcome `json:"applied" yaml:"applied"`
	// Rejected is set when the batch halted on a non-applied status.
	Rejected *ApplyOutcome `json:"rejected,omitempty" yaml:"rejected,omitempty"`
}

// RemoveResult holds the result of a removal batch.
type RemoveResult struct {
	DryRun bool `json:"dry_run" yaml:"dry_run"`
	// Removed lists entries in the order they were removed (or would be,
	// in dry-run mode).
	Removed []OverlayInfo `json:"removed" yaml:"removed"`
}
