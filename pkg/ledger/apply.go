package ledger

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dtovl/pkg/configfs"
	"github.com/arthur-debert/dtovl/pkg/errors"
	"github.com/arthur-debert/dtovl/pkg/logging"
	"github.com/arthur-debert/dtovl/pkg/types"
)

// Apply runs the apply protocol for one overlay: allocate the next entry,
// check the kernel populated it, hand over the overlay and read back the
// status.
//
// A rejection is not an error. The outcome then has Applied false and the
// kernel's status, and the entry stays in the ledger.
func (l *Ledger) Apply(id string, method types.ApplyMethod) (*types.ApplyOutcome, error) {
	if err := ValidateIdentifier(id); err != nil {
		return nil, err
	}
	if err := validateMethod(method); err != nil {
		return nil, err
	}
	log := l.log.With().Str("overlay", id).Str("method", string(method)).Logger()

	// The path method leaves the lookup to the kernel firmware loader.
	var blob string
	if method == types.MethodBlob {
		found, err := l.Locate(id)
		if err != nil {
			return nil, err
		}
		blob = found
	}

	entry, err := l.allocate(id)
	if err != nil {
		return nil, err
	}
	dir := l.entryPath(entry.Name())
	log.Debug().Str("entry", entry.Name()).Msg("Entry created")

	if err := l.checkControlFiles(dir); err != nil {
		return nil, err
	}

	switch method {
	case types.MethodBlob:
		err = l.writeBlob(dir, blob)
	case types.MethodPath:
		err = l.writePath(dir, id)
	}
	if err != nil {
		return nil, err
	}

	status, err := l.readStatus(dir)
	if err != nil {
		return nil, err
	}

	outcome := &types.ApplyOutcome{
		Seq:     entry.Seq,
		Overlay: id,
		Method:  method,
		Blob:    blob,
		Path:    dir,
		Status:  status,
		Applied: status == configfs.StatusApplied,
	}
	if outcome.Applied {
		log.Info().Uint64("seq", entry.Seq).Msg("Overlay applied")
	} else {
		log.Warn().Uint64("seq", entry.Seq).Str("status", status).Msg("Overlay rejected")
	}
	return outcome, nil
}

// ApplyBatch applies ids in order and stops at the first overlay the kernel
// does not report as applied. Nothing already applied is undone. On error
// the returned result still lists the overlays applied before the failure.
func (l *Ledger) ApplyBatch(ids []string, method types.ApplyMethod, dryRun bool) (*types.ApplyResult, error) {
	defer logging.LogOperationStart(l.log, "apply")()

	if dryRun {
		return l.plan(ids, method)
	}

	result := &types.ApplyResult{Applied: []types.ApplyOutcome{}}
	for _, id := range ids {
		outcome, err := l.Apply(id, method)
		if err != nil {
			return result, err
		}
		if !outcome.Applied {
			result.Rejected = outcome
			return result, nil
		}
		result.Applied = append(result.Applied, *outcome)
	}
	return result, nil
}

// plan reports the entries ApplyBatch would create, without touching configfs.
func (l *Ledger) plan(ids []string, method types.ApplyMethod) (*types.ApplyResult, error) {
	if err := validateMethod(method); err != nil {
		return nil, err
	}

	names, err := l.Names()
	if err != nil {
		return nil, err
	}
	next, err := NextSequence(names)
	if err != nil {
		return nil, err
	}

	result := &types.ApplyResult{DryRun: true, Applied: []types.ApplyOutcome{}}
	for _, id := range ids {
		if err := ValidateIdentifier(id); err != nil {
			return result, err
		}
		var blob string
		if method == types.MethodBlob {
			if blob, err = l.Locate(id); err != nil {
				return result, err
			}
		}
		result.Applied = append(result.Applied, types.ApplyOutcome{
			Seq:     next,
			Overlay: id,
			Method:  method,
			Blob:    blob,
			Path:    l.entryPath(Encode(next, id)),
		})
		next++
	}
	return result, nil
}

func validateMethod(method types.ApplyMethod) error {
	switch method {
	case types.MethodBlob, types.MethodPath:
		return nil
	}
	return errors.Newf(errors.ErrInvalidInput, "unknown apply method %q", method).WithDetail("method", string(method))
}

// allocate creates the directory for the next entry of id.
func (l *Ledger) allocate(id string) (Entry, error) {
	names, err := l.Names()
	if err != nil {
		return Entry{}, err
	}
	seq, err := NextSequence(names)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{Seq: seq, ID: id}
	dir := l.entryPath(entry.Name())
	if err := l.fs.Mkdir(dir, 0755); err != nil {
		if stderrors.Is(err, fs.ErrExist) {
			return Entry{}, errors.Wrapf(err, errors.ErrEntryExists, "ledger entry %s already exists", entry.Name()).
				WithDetail("entry", entry.Name())
		}
		return Entry{}, errors.Wrapf(err, errors.ErrDirCreate, "cannot create ledger entry %s", entry.Name()).
			WithDetail("entry", entry.Name())
	}
	return entry, nil
}

func (l *Ledger) checkControlFiles(dir string) error {
	var missing []string
	for _, name := range configfs.ControlFiles {
		if _, err := l.fs.Stat(filepath.Join(dir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return errors.Newf(errors.ErrControlFilesMissing, "%s lacks control files %s; is %s an overlay configfs group?",
			filepath.Base(dir), strings.Join(missing, ","), l.root).
			WithDetail("entry", filepath.Base(dir)).
			WithDetail("missing", missing)
	}
	return nil
}

func (l *Ledger) writeBlob(dir, blob string) error {
	src, err := l.fs.Open(blob)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot open overlay blob %s", blob).WithDetail("path", blob)
	}
	defer src.Close()

	target := filepath.Join(dir, configfs.BlobFile)
	dst, err := l.fs.OpenFile(target, os.O_WRONLY, 0)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", target).WithDetail("path", target)
	}

	// configfs binary attributes want plain write(2); hiding ReadFrom keeps
	// io.Copy off copy_file_range.
	n, err := io.Copy(struct{ io.Writer }{dst}, src)
	if err != nil {
		_ = dst.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write overlay blob to %s", target).WithDetail("path", target)
	}
	// The kernel applies the overlay when the channel is released.
	if err := dst.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "kernel refused overlay blob in %s", target).WithDetail("path", target)
	}

	l.log.Debug().Str("blob", blob).Int64("bytes", n).Str("target", target).Msg("Overlay blob written")
	return nil
}

func (l *Ledger) writePath(dir, id string) error {
	target := filepath.Join(dir, configfs.PathFile)
	dst, err := l.fs.OpenFile(target, os.O_WRONLY, 0)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", target).WithDetail("path", target)
	}

	if _, err := io.WriteString(dst, id); err != nil {
		_ = dst.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write overlay name to %s", target).WithDetail("path", target)
	}
	if err := dst.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "kernel refused overlay name in %s", target).WithDetail("path", target)
	}

	l.log.Debug().Str("target", target).Msg("Overlay name written")
	return nil
}

func (l *Ledger) readStatus(dir string) (string, error) {
	path := filepath.Join(dir, configfs.StatusFile)
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path).WithDetail("path", path)
	}
	return strings.TrimSpace(string(data)), nil
}
