// Package ledger keeps the ordered record of applied device-tree overlays.
//
// configfs gives no ordering over the directories in the overlay group, but
// overlays have to come off in the reverse of the order they went on. The
// ledger encodes that order into the directory names themselves: every
// overlay is applied through a fresh directory called "{seq}-{overlay}",
// where seq is one more than the highest sequence number present. Entries
// are never reused; applying the same overlay again creates a new, higher
// entry. Removal always proceeds from the highest sequence number down.
//
// Nothing is rolled back automatically. A rejected overlay keeps its entry,
// and a batch that stops halfway leaves the earlier entries in place.
//
// The ledger assumes a single writer: allocating a sequence number and
// creating its directory is not atomic across processes.
package ledger
