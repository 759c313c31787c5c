package ledger

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/arthur-debert/dtovl/pkg/errors"
)

// Separator joins the sequence number and the overlay identifier.
const Separator = "-"

// Entry is one ledger record, decoded from its directory name.
type Entry struct {
	Seq uint64
	ID  string
}

// Name returns the directory name of the entry.
func (e Entry) Name() string {
	return Encode(e.Seq, e.ID)
}

// Encode forms the directory name for seq and id.
func Encode(seq uint64, id string) string {
	return strconv.FormatUint(seq, 10) + Separator + id
}

// Decode splits a directory name at the first separator. The identifier is
// everything after it and may itself contain separators.
func Decode(name string) (Entry, error) {
	prefix, id, found := strings.Cut(name, Separator)
	if !found {
		return Entry{}, malformed(name, "missing separator")
	}

	seq, err := strconv.ParseUint(prefix, 10, 64)
	if err != nil {
		return Entry{}, malformed(name, "prefix is not a sequence number")
	}
	if id == "" {
		return Entry{}, malformed(name, "empty overlay identifier")
	}

	return Entry{Seq: seq, ID: id}, nil
}

func malformed(name, reason string) error {
	return errors.Newf(errors.ErrMalformedEntry, "malformed ledger entry %q: %s", name, reason).
		WithDetail("entry", name)
}

// named pairs a decoded entry with the directory name it came from, which
// may differ from Entry.Name() (leading zeros for instance).
type named struct {
	Entry
	dir string
}

// decodeAll decodes names, failing on the first malformed one.
func decodeAll(names []string) ([]named, error) {
	entries := make([]named, 0, len(names))
	for _, name := range names {
		e, err := Decode(name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, named{Entry: e, dir: name})
	}
	return entries, nil
}

// NextSequence returns one more than the highest sequence number in names,
// which is 1 for an empty ledger.
func NextSequence(names []string) (uint64, error) {
	entries, err := decodeAll(names)
	if err != nil {
		return 0, err
	}

	var (
		highest uint64
		top     string
	)
	for _, e := range entries {
		if e.Seq >= highest {
			highest, top = e.Seq, e.dir
		}
	}
	if highest == math.MaxUint64 {
		return 0, errors.Newf(errors.ErrMalformedEntry, "ledger entry %q leaves no higher sequence number", top).
			WithDetail("entry", top)
	}
	return highest + 1, nil
}

// SortAscending orders names by sequence number, which is application order.
func SortAscending(names []string) ([]string, error) {
	entries, err := sortedEntries(names)
	if err != nil {
		return nil, err
	}

	sorted := make([]string, len(entries))
	for i, e := range entries {
		sorted[i] = e.dir
	}
	return sorted, nil
}

// SortDescending orders names from the highest sequence number down, which
// is removal order.
func SortDescending(names []string) ([]string, error) {
	sorted, err := SortAscending(names)
	if err != nil {
		return nil, err
	}
	slices.Reverse(sorted)
	return sorted, nil
}

func sortedEntries(names []string) ([]named, error) {
	entries, err := decodeAll(names)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(entries, func(a, b named) int {
		return cmp.Compare(a.Seq, b.Seq)
	})
	return entries, nil
}

// FindLatest returns the name of the entry with the highest sequence number
// whose identifier equals id. Matching is exact, so identifiers are never
// interpreted as patterns.
func FindLatest(id string, names []string) (string, bool, error) {
	entries, err := decodeAll(names)
	if err != nil {
		return "", false, err
	}

	var (
		latest named
		found  bool
	)
	for _, e := range entries {
		if e.ID != id {
			continue
		}
		if !found || e.Seq > latest.Seq {
			latest, found = e, true
		}
	}
	if !found {
		return "", false, nil
	}
	return latest.dir, true, nil
}
