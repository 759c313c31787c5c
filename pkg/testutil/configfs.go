// pkg/testutil/configfs.go
// DEPENDENCIES: afero MemMapFs
// PURPOSE: Simulate the kernel's device-tree overlay configfs group in memory

package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/dtovl/pkg/configfs"
	"github.com/arthur-debert/dtovl/pkg/filesystem"
	"github.com/arthur-debert/dtovl/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// FakeConfigFS is a types.FS that behaves like the overlay configfs group
// mounted at Root: creating a directory under Root makes the kernel-owned
// control files appear, closing a written dtbo or path channel settles the
// status, and removing an entry directory drops its control files with it.
//
// Everything outside Root (blob directories for instance) behaves like a
// plain in-memory filesystem.
type FakeConfigFS struct {
	types.FS

	// Afero is the backing store, exposed for test setup and inspection.
	Afero afero.Fs
	Root  string

	// Reject maps an overlay identifier to the status the "kernel" reports
	// for it. Identifiers not listed end up "applied".
	Reject map[string]string
	// OmitControlFiles names control files the "kernel" fails to create.
	OmitControlFiles []string
	// CloseErrors makes closing a control channel of the named entry fail.
	CloseErrors map[string]error
	// RemoveErrors makes removal of the named entry fail, like rmdir on an
	// overlay that others depend on.
	RemoveErrors map[string]error
	// OpenErrors makes opening a control channel of the named entry fail.
	OpenErrors map[string]error
	// WriteErrors makes writes to a control channel of the named entry fail.
	WriteErrors map[string]error

	// OpenHandles counts handles returned by Open and OpenFile that have
	// not been closed yet.
	OpenHandles int

	// Created records entry names in creation order.
	Created []string
	// RemoveAttempts records every entry removal attempt, in order.
	RemoveAttempts []string
	// Removed records entries that were actually removed, in order.
	Removed []string
	// Written maps "entry/channel" to what was written into it.
	Written map[string]string
}

// NewFakeConfigFS creates a fake overlay group rooted at root.
func NewFakeConfigFS(t *testing.T, root string) *FakeConfigFS {
	t.Helper()

	backing := afero.NewMemMapFs()
	require.NoError(t, backing.MkdirAll(root, 0755))

	return &FakeConfigFS{
		FS:           filesystem.NewAferoFS(backing),
		Afero:        backing,
		Root:         filepath.Clean(root),
		Reject:       make(map[string]string),
		CloseErrors:  make(map[string]error),
		RemoveErrors: make(map[string]error),
		OpenErrors:   make(map[string]error),
		WriteErrors:  make(map[string]error),
		Written:      make(map[string]string),
	}
}

// AddBlob writes an overlay blob into dir and returns its path.
func (f *FakeConfigFS) AddBlob(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	require.NoError(t, f.Afero.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, afero.WriteFile(f.Afero, path, data, 0644))
	return path
}

// AddEntry creates a ledger entry directly, as if applied by an earlier run.
func (f *FakeConfigFS) AddEntry(t *testing.T, name, status string) string {
	t.Helper()

	dir := filepath.Join(f.Root, name)
	require.NoError(t, f.Afero.Mkdir(dir, 0755))
	f.populate(dir)
	require.NoError(t, afero.WriteFile(f.Afero, filepath.Join(dir, configfs.StatusFile), []byte(status+"\n"), 0644))
	return dir
}

// Entries returns the names of the directories currently under Root.
func (f *FakeConfigFS) Entries(t *testing.T) []string {
	t.Helper()

	infos, err := afero.ReadDir(f.Afero, f.Root)
	require.NoError(t, err)

	var names []string
	for _, info := range infos {
		if info.IsDir() {
			names = append(names, info.Name())
		}
	}
	return names
}

// Status returns the trimmed status of an entry.
func (f *FakeConfigFS) Status(t *testing.T, name string) string {
	t.Helper()

	data, err := afero.ReadFile(f.Afero, filepath.Join(f.Root, name, configfs.StatusFile))
	require.NoError(t, err)
	return strings.TrimSpace(string(data))
}

func (f *FakeConfigFS) isEntry(path string) bool {
	return filepath.Dir(filepath.Clean(path)) == f.Root
}

func (f *FakeConfigFS) populate(dir string) {
	for _, name := range configfs.ControlFiles {
		if contains(f.OmitControlFiles, name) {
			continue
		}
		content := ""
		if name == configfs.StatusFile {
			content = configfs.StatusUnapplied + "\n"
		}
		_ = afero.WriteFile(f.Afero, filepath.Join(dir, name), []byte(content), 0644)
	}
}

// Mkdir creates the directory and, under Root, the control files.
func (f *FakeConfigFS) Mkdir(name string, perm fs.FileMode) error {
	if err := f.FS.Mkdir(name, perm); err != nil {
		return err
	}
	if f.isEntry(name) {
		f.Created = append(f.Created, filepath.Base(name))
		f.populate(name)
	}
	return nil
}

// Open opens name for reading.
func (f *FakeConfigFS) Open(name string) (types.File, error) {
	file, err := f.FS.Open(name)
	if err != nil {
		return nil, err
	}
	return f.track(file), nil
}

// OpenFile opens the file; writable control channels settle the entry's
// status when closed.
func (f *FakeConfigFS) OpenFile(name string, flag int, perm fs.FileMode) (types.File, error) {
	channel := filepath.Base(name)
	dir := filepath.Dir(filepath.Clean(name))
	writable := flag&(os.O_WRONLY|os.O_RDWR) != 0
	control := f.isEntry(dir) && writable && (channel == configfs.BlobFile || channel == configfs.PathFile)

	entry := filepath.Base(dir)
	if control {
		if err := f.OpenErrors[entry]; err != nil {
			return nil, &fs.PathError{Op: "open", Path: name, Err: err}
		}
	}

	file, err := f.FS.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	if !control {
		return f.track(file), nil
	}

	return &controlFile{
		File:     f.track(file),
		writeErr: f.WriteErrors[entry],
		settle:   func() error { return f.settle(dir, channel) },
	}, nil
}

func (f *FakeConfigFS) track(file types.File) types.File {
	f.OpenHandles++
	return &trackedFile{File: file, fake: f}
}

func (f *FakeConfigFS) settle(dir, channel string) error {
	entry := filepath.Base(dir)

	data, err := afero.ReadFile(f.Afero, filepath.Join(dir, channel))
	if err != nil {
		return err
	}
	f.Written[entry+"/"+channel] = string(data)

	if err := f.CloseErrors[entry]; err != nil {
		return &fs.PathError{Op: "close", Path: filepath.Join(dir, channel), Err: err}
	}

	status := configfs.StatusApplied
	if _, id, ok := strings.Cut(entry, "-"); ok {
		if s, rejected := f.Reject[id]; rejected {
			status = s
		}
	}
	return afero.WriteFile(f.Afero, filepath.Join(dir, configfs.StatusFile), []byte(status+"\n"), 0644)
}

// Remove deletes name. Entry directories go away together with their
// control files, as rmdir does on configfs.
func (f *FakeConfigFS) Remove(name string) error {
	if !f.isEntry(name) {
		return f.FS.Remove(name)
	}

	entry := filepath.Base(name)
	f.RemoveAttempts = append(f.RemoveAttempts, entry)
	if err := f.RemoveErrors[entry]; err != nil {
		return &fs.PathError{Op: "remove", Path: name, Err: err}
	}
	if _, err := f.Afero.Stat(name); err != nil {
		return err
	}
	if err := f.Afero.RemoveAll(name); err != nil {
		return err
	}
	f.Removed = append(f.Removed, entry)
	return nil
}

type trackedFile struct {
	types.File
	fake   *FakeConfigFS
	closed bool
}

func (t *trackedFile) Close() error {
	if !t.closed {
		t.closed = true
		t.fake.OpenHandles--
	}
	return t.File.Close()
}

type controlFile struct {
	types.File
	writeErr error
	settle   func() error
}

func (c *controlFile) Write(p []byte) (int, error) {
	if c.writeErr != nil {
		return 0, &fs.PathError{Op: "write", Path: c.Name(), Err: c.writeErr}
	}
	return c.File.Write(p)
}

func (c *controlFile) Close() error {
	if err := c.File.Close(); err != nil {
		return err
	}
	return c.settle()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
