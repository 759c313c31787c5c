// Package types defines the core types and interfaces shared across dtovl:
// the FS abstraction over the blob search path and the configfs tree, and the
// result structures returned by list, apply and remove.
package types
