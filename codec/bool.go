package codec

import (
	"github.com/bearlytools/lazylist/internal/binary"
	"github.com/bearlytools/lazylist/tracker"
)

// Bool returns a fixed-width Codec storing each bool in one byte, 0 or 1.
func Bool() Codec[bool] {
	return boolCodec{}
}

type boolCodec struct{}

func (boolCodec) FixedWidth() (int, bool) {
	return 1, true
}

func (boolCodec) Decode(buf []byte, off int, _ tracker.Node) (bool, int) {
	return buf[off] != 0, 1
}

func (boolCodec) Encode(buf []byte, off int, v bool) ([]byte, int) {
	if off+1 > len(buf) {
		buf = binary.Grow(buf, off+1-len(buf))
	}
	if v {
		buf[off] = 1
	} else {
		buf[off] = 0
	}
	return buf, 1
}
