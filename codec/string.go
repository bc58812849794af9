package codec

import (
	"github.com/bearlytools/lazylist/internal/binary"
	"github.com/bearlytools/lazylist/internal/conversions"
	"github.com/bearlytools/lazylist/tracker"
)

// String returns a variable-width Codec encoding each string as a 4-byte
// little endian size followed by the raw bytes.
//
// Decode does not copy: the returned string aliases the buffer it was decoded
// from, so the buffer must stay live and unmodified while the string is in use.
func String() Codec[string] {
	return stringCodec{}
}

type stringCodec struct{}

func (stringCodec) FixedWidth() (int, bool) {
	return 0, false
}

func (stringCodec) Decode(buf []byte, off int, _ tracker.Node) (string, int) {
	size := int(binary.Get[int32](buf[off : off+4]))
	return conversions.ByteSlice2String(buf[off+4 : off+4+size]), 4 + size
}

func (stringCodec) Encode(buf []byte, off int, v string) ([]byte, int) {
	n := 4 + len(v)
	if off+n > len(buf) {
		buf = binary.Grow(buf, off+n-len(buf))
	}
	binary.Put(buf[off:off+4], int32(len(v)))
	copy(buf[off+4:off+n], conversions.UnsafeGetBytes(v))
	return buf, n
}
