package ledger

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dtovl/pkg/errors"
	"github.com/arthur-debert/dtovl/pkg/logging"
	"github.com/arthur-debert/dtovl/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures a Ledger. Every field is read-only once the ledger is
// built.
type Options struct {
	// Root is the overlay group directory in configfs.
	Root string
	// SearchPath lists directories searched, in order, for overlay blobs.
	SearchPath []string
}

// Ledger drives overlay entries under a configfs overlay group.
type Ledger struct {
	fs         types.FS
	root       string
	searchPath []string
	log        zerolog.Logger
}

// New creates a Ledger operating on fs.
func New(fs types.FS, opts Options) *Ledger {
	return &Ledger{
		fs:         fs,
		root:       filepath.Clean(opts.Root),
		searchPath: opts.SearchPath,
		log:        logging.GetLogger("ledger").With().Str("root", opts.Root).Logger(),
	}
}

// Root returns the overlay group directory.
func (l *Ledger) Root() string {
	return l.root
}

func (l *Ledger) entryPath(name string) string {
	return filepath.Join(l.root, name)
}

// Names returns the entry directory names in configfs order (unsorted).
// Anything under the root that is not a directory is ignored.
func (l *Ledger) Names() ([]string, error) {
	dirEntries, err := l.fs.ReadDir(l.root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read overlay directory %s", l.root).
			WithDetail("path", l.root)
	}

	names := make([]string, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !de.IsDir() {
			continue
		}
		names = append(names, de.Name())
	}
	return names, nil
}

// ValidateIdentifier checks that id can name an overlay: a plain, non-empty
// file name.
func ValidateIdentifier(id string) error {
	switch {
	case id == "":
		return errors.New(errors.ErrInvalidInput, "empty overlay identifier")
	case id == "." || id == "..":
		return errors.Newf(errors.ErrInvalidInput, "invalid overlay identifier %q", id).WithDetail("overlay", id)
	case strings.ContainsRune(id, filepath.Separator):
		return errors.Newf(errors.ErrInvalidInput, "overlay identifier %q must be a file name, not a path", id).
			WithDetail("overlay", id)
	}
	return nil
}

// Locate finds the blob for id on the search path. The first directory
// holding a regular file named id wins.
func (l *Ledger) Locate(id string) (string, error) {
	for _, dir := range l.searchPath {
		candidate := filepath.Join(dir, id)
		info, err := l.fs.Stat(candidate)
		if err != nil {
			l.log.Trace().Str("candidate", candidate).Err(err).Msg("Blob candidate not usable")
			continue
		}
		if !info.Mode().IsRegular() {
			l.log.Trace().Str("candidate", candidate).Msg("Blob candidate is not a regular file")
			continue
		}
		l.log.Debug().Str("overlay", id).Str("blob", candidate).Msg("Located overlay blob")
		return candidate, nil
	}

	return "", errors.Newf(errors.ErrBlobNotFound, "overlay %q not found in %s", id, strings.Join(l.searchPath, ",")).
		WithDetail("overlay", id).
		WithDetail("search_path", l.searchPath)
}

// BlobSuffix is the conventional extension of compiled overlays.
const BlobSuffix = ".dtbo"

// Blobs lists the overlay files available on the search path, in search
// order, each name once. Unreadable directories are skipped.
func (l *Ledger) Blobs() []string {
	var blobs []string
	seen := make(map[string]bool)
	for _, dir := range l.searchPath {
		dirEntries, err := l.fs.ReadDir(dir)
		if err != nil {
			l.log.Trace().Str("dir", dir).Err(err).Msg("Skipping unreadable search path directory")
			continue
		}
		for _, de := range dirEntries {
			name := de.Name()
			if de.IsDir() || !strings.HasSuffix(name, BlobSuffix) || seen[name] {
				continue
			}
			seen[name] = true
			blobs = append(blobs, name)
		}
	}
	return blobs
}
