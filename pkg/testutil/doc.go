// Package testutil provides test infrastructure for dtovl.
//
// The main piece is FakeConfigFS, an in-memory stand-in for the kernel's
// device-tree overlay group in configfs. Tests drive the real ledger code
// against it and inject kernel behaviour: rejected overlays, missing
// control files, failing close or rmdir.
package testutil
