package relation

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/relormdb/relorm/ormerr"
)

// hashSeed is the golden-ratio constant the fold step mixes in, per
// §4.1's contract: fold(h, x) = h XOR (hash64(x) + 0x9e3779b9 + (h<<6) + (h>>2)).
const hashSeed uint64 = 0x9e3779b9

// elementHash is hash64(x) for one path element. The fold formula in
// §4.1 treats hash64 as an opaque black box; xxhash.Sum64 (the hashing
// primitive surfaced by dolthub-go-mysql-server's dependency graph) is
// used here so the same byte image always hashes the same way across
// processes, which incremental-hash callers rely on.
func elementHash(n uint32) uint64 {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], n)
	return xxhash.Sum64(buf[:])
}

// FoldHash performs one step of the incremental hash described in
// §4.1, so callers who build a Path element-by-element can compute the
// same hash a whole-path Hash() call would produce.
func FoldHash(h uint64, element uint32) uint64 {
	return h ^ (elementHash(element) + hashSeed + (h << 6) + (h >> 2))
}

// Path is an ordered, immutable sequence of non-negative integer node
// identifiers, each corresponding to one IDL field/message number, with
// a parallel sequence of symbolic names resolved through a Registry.
//
// Two paths compare equal iff their numeric sequences are equal; the
// symbolic names are a derived, registry-dependent view and play no
// part in equality, ordering, or hashing.
type Path struct {
	numbers []uint32
	names   []string
}

// NewPath returns the empty path.
func NewPath() Path { return Path{} }

// NewPathNumber returns the single-element path [n]. The symbolic name
// is left empty; callers resolve it via a Registry when needed.
func NewPathNumber(n uint32) Path { return Path{numbers: []uint32{n}} }

// newPathWith is the internal constructor used by the registry, which
// always knows both the number and the resolved name for every segment
// it creates.
func newPathWith(numbers []uint32, names []string) Path {
	return Path{numbers: append([]uint32(nil), numbers...), names: append([]string(nil), names...)}
}

// PathFromNumbers builds a Path from a raw numeric sequence, with no
// resolved names. Used by callers (the organizer, the wire codec) that
// only have numeric path fragments on hand.
func PathFromNumbers(numbers []uint32) Path {
	return Path{numbers: append([]uint32(nil), numbers...)}
}

// Size returns the number of elements in the path.
func (p Path) Size() int { return len(p.numbers) }

// Empty reports whether the path has zero elements.
func (p Path) Empty() bool { return len(p.numbers) == 0 }

// Numbers returns a copy of the numeric sequence.
func (p Path) Numbers() []uint32 { return append([]uint32(nil), p.numbers...) }

// Front returns the first numeric element. Fails with UnknownIndex on
// an empty path.
func (p Path) Front() (uint32, error) {
	if p.Empty() {
		return 0, ormerr.New(ormerr.UnknownIndex, p.String(), "path is empty")
	}
	return p.numbers[0], nil
}

// Back returns the last numeric element. Fails with UnknownIndex on an
// empty path.
func (p Path) Back() (uint32, error) {
	if p.Empty() {
		return 0, ormerr.New(ormerr.UnknownIndex, p.String(), "path is empty")
	}
	return p.numbers[len(p.numbers)-1], nil
}

// At returns the numeric element at index i.
func (p Path) At(i int) (uint32, error) {
	if i < 0 || i >= len(p.numbers) {
		return 0, ormerr.New(ormerr.UnknownIndex, p.String(), "index %d out of range [0,%d)", i, len(p.numbers))
	}
	return p.numbers[i], nil
}

// Number returns the last numeric element, i.e. Back(). Named to match
// §4.1's `number()` accessor.
func (p Path) Number() (uint32, error) { return p.Back() }

// Name returns the last symbolic element. Fails with UnknownPath if the
// last segment was never resolved to a name (e.g. it was built with
// NewPathNumber rather than through a Registry).
func (p Path) Name() (string, error) {
	if len(p.names) != len(p.numbers) || len(p.names) == 0 {
		return "", ormerr.New(ormerr.UnknownPath, p.String(), "path segment has no registered name")
	}
	return p.names[len(p.names)-1], nil
}

// Join appends other's elements and returns the result. The receiver is
// left untouched.
func (p Path) Join(other Path) Path {
	numbers := append(append([]uint32(nil), p.numbers...), other.numbers...)
	var names []string
	if len(p.names) == len(p.numbers) && len(other.names) == len(other.numbers) {
		names = append(append([]string(nil), p.names...), other.names...)
	}
	return Path{numbers: numbers, names: names}
}

// JoinNumber appends a single numeric element.
func (p Path) JoinNumber(n uint32) Path {
	numbers := append(append([]uint32(nil), p.numbers...), n)
	return Path{numbers: numbers}
}

// Parent returns the path with its last element removed. The parent of
// the empty path is the empty path.
func (p Path) Parent() Path {
	if p.Empty() {
		return p
	}
	numbers := append([]uint32(nil), p.numbers[:len(p.numbers)-1]...)
	var names []string
	if len(p.names) == len(p.numbers) {
		names = append([]string(nil), p.names[:len(p.names)-1]...)
	}
	return Path{numbers: numbers, names: names}
}

// Equal reports whether p and q denote the same numeric sequence.
func (p Path) Equal(q Path) bool {
	if len(p.numbers) != len(q.numbers) {
		return false
	}
	for i := range p.numbers {
		if p.numbers[i] != q.numbers[i] {
			return false
		}
	}
	return true
}

// Compare returns -1, 0, or 1, ordering paths lexicographically on the
// numeric sequence, with shorter paths sorting before longer paths that
// share the shorter one as a prefix.
func (p Path) Compare(q Path) int {
	n := len(p.numbers)
	if len(q.numbers) < n {
		n = len(q.numbers)
	}
	for i := 0; i < n; i++ {
		if p.numbers[i] != q.numbers[i] {
			if p.numbers[i] < q.numbers[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(p.numbers) < len(q.numbers):
		return -1
	case len(p.numbers) > len(q.numbers):
		return 1
	default:
		return 0
	}
}

// Less reports whether p sorts strictly before q.
func (p Path) Less(q Path) bool { return p.Compare(q) < 0 }

// IsAncestorOf reports whether p is a strict prefix of q.
func (p Path) IsAncestorOf(q Path) bool {
	if len(p.numbers) >= len(q.numbers) {
		return false
	}
	for i := range p.numbers {
		if p.numbers[i] != q.numbers[i] {
			return false
		}
	}
	return true
}

// IsDescendantOf reports whether q is a strict prefix of p.
func (p Path) IsDescendantOf(q Path) bool { return q.IsAncestorOf(p) }

// IsParentOf reports whether p is exactly one element shorter than q
// and a prefix of it.
func (p Path) IsParentOf(q Path) bool {
	return len(p.numbers)+1 == len(q.numbers) && p.Equal(q.Parent())
}

// IsChildOf reports whether q is the parent of p.
func (p Path) IsChildOf(q Path) bool { return q.IsParentOf(p) }

// Hash folds the numeric sequence with FoldHash, seeded at 0, matching
// §4.1's contract exactly: element-by-element incremental hashing with
// FoldHash must agree with Hash() on the whole path.
func (p Path) Hash() uint64 {
	var h uint64
	for _, n := range p.numbers {
		h = FoldHash(h, n)
	}
	return h
}

// String renders the path slash-delimited, using each element's resolved
// name and falling back to its number when no name is resolved. This mirrors the
// original TMessagePath FormatHandler's default ("name"=true) rendering,
// generalized to also show numbers when no name is available.
func (p Path) String() string {
	if len(p.numbers) == 0 {
		return ""
	}
	parts := make([]string, len(p.numbers))
	for i, n := range p.numbers {
		if len(p.names) == len(p.numbers) && p.names[i] != "" {
			parts[i] = p.names[i]
		} else {
			parts[i] = strconv.FormatUint(uint64(n), 10)
		}
	}
	return strings.Join(parts, "/")
}

// FormatOptions controls Path.Format, mirroring the original
// TMessagePathEntry FormatHandler's num/name/delimiter options.
type FormatOptions struct {
	Number    bool
	Name      bool
	Delimiter string
}

// Format renders the path per opts, e.g. Format(FormatOptions{Number:
// true, Name: true, Delimiter: ";"}) renders each element as "<num>;<name>".
func (p Path) Format(opts FormatOptions) string {
	if opts.Delimiter == "" {
		opts.Delimiter = "/"
	}
	entries := make([]string, len(p.numbers))
	for i, n := range p.numbers {
		var b strings.Builder
		if opts.Number {
			fmt.Fprintf(&b, "%d", n)
		}
		if opts.Number && opts.Name {
			b.WriteString(";")
		}
		if opts.Name && len(p.names) == len(p.numbers) {
			b.WriteString(p.names[i])
		}
		entries[i] = b.String()
	}
	return strings.Join(entries, opts.Delimiter)
}
