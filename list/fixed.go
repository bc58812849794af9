package list

import (
	"github.com/bearlytools/lazylist/codec"
	"github.com/bearlytools/lazylist/internal/binary"
	"github.com/bearlytools/lazylist/tracker"
	"github.com/pkg/errors"
)

// Fixed-width layout:
//
//	[int32 count][count × fixed-size element payloads]
//
// A stored count of -1 marks an absent list and occupies exactly 4 bytes.
// Fixed-width lists never build a partial cache: they are either fully
// materialized or read straight from the region on every access.

// NewFixed returns an empty fixed-width List. It fails if the codec reports a
// variable width; that is a schema mismatch, not a data problem.
func NewFixed[E comparable](c codec.Codec[E], parent tracker.Node) (*List[E], error) {
	w, ok := c.FixedWidth()
	if !ok {
		return nil, errors.Errorf("lazylist: fixed-width list over variable-width codec %T", c)
	}
	return newList[E](c, fixedLayout[E]{width: w}, parent), nil
}

// DecodeFixed binds a fixed-width List to the encoded region starting at
// buf[off]. It returns the list and the number of bytes the region occupies.
// A stored count of -1 means no list is present: the return is (nil, 4, nil).
//
// The region stays borrowed: it must remain valid, and unmodified by other
// owners, for the lifetime of the returned list.
func DecodeFixed[E comparable](buf []byte, off int, c codec.Codec[E], parent tracker.Node) (*List[E], int, error) {
	w, ok := c.FixedWidth()
	if !ok {
		return nil, 0, errors.Errorf("lazylist: fixed-width list over variable-width codec %T", c)
	}
	count := binary.Get[int32](buf[off : off+4])
	if count == absent {
		return nil, 4, nil
	}
	size := 4 + int(count)*w
	l := &List[E]{
		codec:     c,
		lay:       fixedLayout[E]{width: w},
		tk:        parent.NewChild(),
		reg:       region{buf: buf, start: off, size: size},
		hasRegion: true,
		count:     int(count),
	}
	return l, size, nil
}

type fixedLayout[E comparable] struct {
	width int
}

func (f fixedLayout[E]) offsetOf(l *List[E], i int) int {
	return l.reg.start + 4 + f.width*i
}

func (f fixedLayout[E]) get(l *List[E], i int) E {
	if l.allCached {
		return l.cache[i]
	}
	// A lazy fixed-width list decodes straight from the region on every
	// access; reads never build a partial cache.
	v, _ := l.codec.Decode(l.reg.buf, f.offsetOf(l, i), l.tk)
	return v
}

func (f fixedLayout[E]) set(l *List[E], i int, v E) {
	if l.allCached {
		l.cache[i] = v
		l.tk.MarkDirty()
		return
	}
	// Overwriting a fixed-size slot in place leaves the region's size and
	// layout untouched, so the region still mirrors logical content and the
	// tracker stays clean: direct copy remains valid and already carries the
	// new value.
	_, _ = l.codec.Encode(l.reg.buf, f.offsetOf(l, i), v)
}

func (f fixedLayout[E]) encode(l *List[E], buf []byte) []byte {
	start := len(buf)
	buf = binary.Grow(buf, 4)
	binary.Put(buf[start:start+4], int32(l.count))
	for i := 0; i < l.count; i++ {
		buf, _ = l.codec.Encode(buf, len(buf), f.get(l, i))
	}
	return buf
}
