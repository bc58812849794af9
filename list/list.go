// Package list implements a mutable, list-like view over a contiguous byte
// region. A List is either constructed fresh and lives entirely in memory, or
// is bound to a region discovered while decoding an enclosing structure, in
// which case reads pull elements out of the original bytes on demand.
//
// The first structural mutation materializes every element into an in-memory
// cache; from then on the region is never consulted. Serialization copies the
// region verbatim when the list's tracker proves it was never mutated,
// otherwise it re-encodes the cache.
//
// A List and its tracker subtree must be confined to a single goroutine.
package list

import (
	"fmt"
	"iter"

	"github.com/bearlytools/lazylist/codec"
	"github.com/bearlytools/lazylist/internal/binary"
	"github.com/bearlytools/lazylist/tracker"
)

// absent is the sentinel stored in the first header field of a list that is
// not present, as opposed to one that is empty. It occupies exactly 4 bytes.
const absent = int32(-1)

// region is a borrowed view into a byte buffer owned by whoever decoded the
// enclosing structure. It is never copied eagerly and must stay valid for the
// lifetime of the List that borrows it.
type region struct {
	buf   []byte
	start int
	size  int
}

// layout is the closed set of binary layouts a List can have. It is selected
// at construction from the codec's width capability and never changes.
type layout[E comparable] interface {
	// offsetOf returns the absolute position in the region's buffer where
	// element i's payload begins.
	offsetOf(l *List[E], i int) int
	get(l *List[E], i int) E
	set(l *List[E], i int, v E)
	encode(l *List[E], buf []byte) []byte
}

// List is a lazily decoded, mutable list of E. Use NewFixed/NewVariable/New
// to create a fresh one and DecodeFixed/DecodeVariable/Decode to bind one to
// encoded bytes.
type List[E comparable] struct {
	codec codec.Codec[E]
	lay   layout[E]
	tk    tracker.Node

	reg       region
	hasRegion bool

	// cache holds materialized elements. Its length is storage capacity; only
	// the first count slots are live. cached is the per-slot materialized
	// flag and exists only for variable-width lists bound to a region.
	cache     []E
	cached    []bool
	allCached bool
	count     int
}

func newList[E comparable](c codec.Codec[E], lay layout[E], parent tracker.Node) *List[E] {
	// A fresh list has no region to read from, so it is born fully
	// materialized and empty.
	return &List[E]{
		codec:     c,
		lay:       lay,
		tk:        parent.NewChild(),
		allCached: true,
	}
}

// New returns an empty List whose layout is chosen from the codec's width
// capability: fixed-width for codecs that report one, variable-width
// otherwise.
func New[E comparable](c codec.Codec[E], parent tracker.Node) *List[E] {
	if w, ok := c.FixedWidth(); ok {
		return newList[E](c, fixedLayout[E]{width: w}, parent)
	}
	return newList[E](c, varLayout[E]{}, parent)
}

// Decode binds a List to the encoded region starting at buf[off], choosing
// the layout from the codec's width capability. It returns the list and the
// number of bytes the region occupies. An absent list decodes as (nil, 4, nil).
func Decode[E comparable](buf []byte, off int, c codec.Codec[E], parent tracker.Node) (*List[E], int, error) {
	if _, ok := c.FixedWidth(); ok {
		return DecodeFixed(buf, off, c, parent)
	}
	return DecodeVariable(buf, off, c, parent)
}

// Tracker returns the tracker Node owned by this list.
func (l *List[E]) Tracker() tracker.Node {
	return l.tk
}

// Len returns the number of elements in the list.
func (l *List[E]) Len() int {
	return l.count
}

// Get returns the element at index i. It panics if i is out of range.
// A lazy list decodes the element from the backing region as needed.
func (l *List[E]) Get(i int) E {
	if i < 0 || i >= l.count {
		panic(fmt.Sprintf("lazylist: index %d out of range in list of len %d", i, l.count))
	}
	return l.lay.get(l, i)
}

// Set stores v at index i. It panics if i is out of range. Write semantics
// depend on the layout: see the package doc for when the backing region is
// written in place versus the cache.
func (l *List[E]) Set(i int, v E) {
	if i < 0 || i >= l.count {
		panic(fmt.Sprintf("lazylist: index %d out of range in list of len %d", i, l.count))
	}
	l.lay.set(l, i, v)
}

// IndexOf returns the index of the first element equal to v, or -1 if the
// list does not contain it.
func (l *List[E]) IndexOf(v E) int {
	for i := 0; i < l.count; i++ {
		if l.lay.get(l, i) == v {
			return i
		}
	}
	return -1
}

// Contains reports whether the list contains an element equal to v.
func (l *List[E]) Contains(v E) bool {
	return l.IndexOf(v) >= 0
}

// All returns an iterator over the elements. Each step reads the list's
// current length and the current element value, not a snapshot. Mutating the
// list during an active traversal is unsupported.
func (l *List[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		for i := 0; i < l.Len(); i++ {
			if !yield(l.Get(i)) {
				return
			}
		}
	}
}

// Range ranges from "from" (inclusive) to "to" (exclusive).
func (l *List[E]) Range(from, to int) iter.Seq[E] {
	return func(yield func(E) bool) {
		if l.count == 0 {
			return
		}
		if from > l.count-1 {
			panic("Range 'from' argument is out of bounds")
		}
		if to > l.count {
			panic("Range 'to' is out of bounds")
		}
		if from >= to {
			panic("Range 'to' cannot be >= to 'from'")
		}

		for i := from; i < to; i++ {
			if !yield(l.Get(i)) {
				return
			}
		}
	}
}

// materializeAll decodes every not-yet-cached element out of the backing
// region, in increasing index order, and marks the cache fully materialized.
// Idempotent. Every structural mutation calls this first; none operate on a
// partially cached list.
func (l *List[E]) materializeAll() {
	if l.allCached {
		return
	}
	if l.cache == nil {
		l.cache = make([]E, l.count)
	}
	for i := 0; i < l.count; i++ {
		if l.cached != nil && l.cached[i] {
			continue
		}
		v, _ := l.codec.Decode(l.reg.buf, l.lay.offsetOf(l, i), l.tk)
		l.cache[i] = v
		if l.cached != nil {
			l.cached[i] = true
		}
	}
	l.allCached = true
}

// grow makes room in the cache for one more element: double the capacity, or
// 4 slots when growing from empty.
func (l *List[E]) grow() {
	if l.count < len(l.cache) {
		return
	}
	c := 2 * len(l.cache)
	if c == 0 {
		c = 4
	}
	n := make([]E, c)
	copy(n, l.cache[:l.count])
	l.cache = n
}

// Append adds v to the end of the list.
func (l *List[E]) Append(v E) {
	l.materializeAll()
	l.grow()
	l.cache[l.count] = v
	l.count++
	l.tk.MarkDirty()
}

// Insert places v at index i, shifting the elements at [i, Len()) one slot
// right. i == Len() appends.
func (l *List[E]) Insert(i int, v E) error {
	if i < 0 || i > l.count {
		return fmt.Errorf("lazylist: insert index %d out of range [0, %d]", i, l.count)
	}
	l.materializeAll()
	l.grow()
	copy(l.cache[i+1:l.count+1], l.cache[i:l.count])
	l.cache[i] = v
	l.count++
	l.tk.MarkDirty()
	return nil
}

// RemoveAt deletes the element at index i, shifting the elements at
// [i+1, Len()) one slot left. The tracker is marked dirty even when the
// bounds check fails: calling RemoveAt declares intent to mutate.
func (l *List[E]) RemoveAt(i int) error {
	l.tk.MarkDirty()
	if i < 0 || i >= l.count {
		return fmt.Errorf("lazylist: remove index %d out of range [0, %d)", i, l.count)
	}
	l.materializeAll()
	copy(l.cache[i:l.count-1], l.cache[i+1:l.count])
	l.count--
	var zero E
	l.cache[l.count] = zero
	l.tk.MarkDirty()
	return nil
}

// Remove deletes the first element equal to v and reports whether one was
// found. A not-found call materializes the list but does not mark it dirty.
func (l *List[E]) Remove(v E) bool {
	l.materializeAll()
	i := l.IndexOf(v)
	if i < 0 {
		return false
	}
	_ = l.RemoveAt(i) // i came from IndexOf, it cannot be out of range
	return true
}

// Clear empties the list. Afterward the cache is fully materialized and the
// backing region is never consulted again.
func (l *List[E]) Clear() {
	l.cache = nil
	l.cached = nil
	l.allCached = true
	l.count = 0
	l.tk.MarkDirty()
}

// CopyTo copies the elements into dst starting at dst[start] and returns how
// many were copied. Copying stops when dst runs out of room.
func (l *List[E]) CopyTo(dst []E, start int) int {
	if l.allCached {
		return copy(dst[start:], l.cache[:l.count])
	}
	n := 0
	for i := 0; i < l.count && start+i < len(dst); i++ {
		dst[start+i] = l.lay.get(l, i)
		n++
	}
	return n
}

// Slice copies the list out into a standard []E. The values aren't linked, so
// changing []E or calling l.Set(...) will have no affect on the other. If
// there are no entries, this returns a nil slice.
func (l *List[E]) Slice() []E {
	if l.count == 0 {
		return nil
	}
	s := make([]E, l.count)
	l.CopyTo(s, 0)
	return s
}

// Encode appends the wire form of the list to buf and returns the extended
// buffer. When the backing region is still live and the tracker proves the
// list was never mutated, the region is copied verbatim; otherwise the
// current logical content is re-encoded.
func (l *List[E]) Encode(buf []byte) []byte {
	if l.directCopyOK() {
		return append(buf, l.reg.buf[l.reg.start:l.reg.start+l.reg.size]...)
	}
	return l.lay.encode(l, buf)
}

// directCopyOK reports whether the backing region is provably byte-identical
// to the list's logical content. A list without a tracker never qualifies.
func (l *List[E]) directCopyOK() bool {
	return l.hasRegion && l.tk.Valid() && !l.tk.IsDirty()
}

// AppendAbsent appends the 4-byte sentinel for an absent list to buf. Both
// layouts share it: fixed-width lists store it in the count field,
// variable-width lists in the total-size field.
func AppendAbsent(buf []byte) []byte {
	start := len(buf)
	buf = binary.Grow(buf, 4)
	binary.Put(buf[start:start+4], absent)
	return buf
}
