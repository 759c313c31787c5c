// Package output renders ledger results for the command line.
//
// Three formats are supported. "text" is meant for people: a pterm table for
// listings and one styled line per entry for apply and remove, with colors
// only when the destination is a terminal and NO_COLOR is unset. "json" and
// "yaml" encode the result types from pkg/types as-is so that scripts can
// consume them.
package output
