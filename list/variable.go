package list

import (
	"github.com/bearlytools/lazylist/codec"
	"github.com/bearlytools/lazylist/internal/binary"
	"github.com/bearlytools/lazylist/tracker"
	"github.com/pkg/errors"
)

// Variable-width layout:
//
//	[int32 totalRegionSize][int32 count][count × int32 offsets][payloads]
//
// Offsets are absolute positions in the enclosing buffer, not relative to the
// region. A stored total size of -1 marks an absent list and occupies exactly
// 4 bytes. Unlike the fixed layout, reads cache per slot: once a payload has
// been located through the offset table and decoded, later reads of that slot
// come from the cache.

// NewVariable returns an empty variable-width List. It fails if the codec
// reports a fixed width; that is a schema mismatch, not a data problem.
func NewVariable[E comparable](c codec.Codec[E], parent tracker.Node) (*List[E], error) {
	if _, ok := c.FixedWidth(); ok {
		return nil, errors.Errorf("lazylist: variable-width list over fixed-width codec %T", c)
	}
	return newList[E](c, varLayout[E]{}, parent), nil
}

// DecodeVariable binds a variable-width List to the encoded region starting
// at buf[off]. It returns the list and the number of bytes the region
// occupies. A stored total size of -1 means no list is present: the return is
// (nil, 4, nil).
//
// The region stays borrowed: it must remain valid, and unmodified by other
// owners, for the lifetime of the returned list.
func DecodeVariable[E comparable](buf []byte, off int, c codec.Codec[E], parent tracker.Node) (*List[E], int, error) {
	if _, ok := c.FixedWidth(); ok {
		return nil, 0, errors.Errorf("lazylist: variable-width list over fixed-width codec %T", c)
	}
	total := binary.Get[int32](buf[off : off+4])
	if total == absent {
		return nil, 4, nil
	}
	count := int(binary.Get[int32](buf[off+4 : off+8]))
	l := &List[E]{
		codec:     c,
		lay:       varLayout[E]{},
		tk:        parent.NewChild(),
		reg:       region{buf: buf, start: off, size: int(total)},
		hasRegion: true,
		count:     count,
		cache:     make([]E, count),
		cached:    make([]bool, count),
	}
	return l, int(total), nil
}

type varLayout[E comparable] struct{}

func (varLayout[E]) offsetOf(l *List[E], i int) int {
	entry := l.reg.start + 8 + 4*i
	return int(binary.Get[int32](l.reg.buf[entry : entry+4]))
}

func (y varLayout[E]) get(l *List[E], i int) E {
	if l.allCached || l.cached[i] {
		return l.cache[i]
	}
	v, _ := l.codec.Decode(l.reg.buf, y.offsetOf(l, i), l.tk)
	l.cache[i] = v
	l.cached[i] = true
	return v
}

func (varLayout[E]) set(l *List[E], i int, v E) {
	// Never write the region in place: a variable-width overwrite could
	// change the element's encoded size and invalidate every later offset.
	l.cache[i] = v
	if !l.allCached {
		l.cached[i] = true
	}
	l.tk.MarkDirty()
}

func (y varLayout[E]) encode(l *List[E], buf []byte) []byte {
	start := len(buf)
	// Reserve the header and offset table, then stream the payloads right
	// behind them, recording each element's actual start as it is written.
	// Offsets are discovered incrementally, so no sizing pass over the
	// payloads is needed.
	buf = binary.Grow(buf, 8+4*l.count)
	binary.Put(buf[start+4:start+8], int32(l.count))
	for i := 0; i < l.count; i++ {
		entry := start + 8 + 4*i
		binary.Put(buf[entry:entry+4], int32(len(buf)))
		buf, _ = l.codec.Encode(buf, len(buf), y.get(l, i))
	}
	binary.Put(buf[start:start+4], int32(len(buf)-start))
	return buf
}
