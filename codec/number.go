package codec

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/bearlytools/lazylist/internal/binary"
	"github.com/bearlytools/lazylist/tracker"
)

// ForNumber returns a fixed-width Codec for any int, uint or float type.
// Integers are stored little endian, floats as their IEEE 754 bit patterns.
func ForNumber[N Number]() Codec[N] {
	var t N
	return numberCodec[N]{width: int(unsafe.Sizeof(t)), isFloat: isFloat[N]()}
}

// isFloat returns true if N is a floating point type.
func isFloat[N Number]() bool {
	// Use the NaN property: NaN != NaN only holds for floats.
	switch unsafe.Sizeof(N(0)) {
	case 4:
		nanBits := uint32(0x7FC00000)
		nan := *(*N)(unsafe.Pointer(&nanBits))
		return nan != nan
	case 8:
		nanBits := uint64(0x7FF8000000000000)
		nan := *(*N)(unsafe.Pointer(&nanBits))
		return nan != nan
	default:
		return false
	}
}

type numberCodec[N Number] struct {
	width   int // 1, 2, 4 or 8
	isFloat bool
}

func (c numberCodec[N]) FixedWidth() (int, bool) {
	return c.width, true
}

func (c numberCodec[N]) Decode(buf []byte, off int, _ tracker.Node) (N, int) {
	holder := buf[off : off+c.width]
	switch c.width {
	case 1:
		return N(binary.Get[uint8](holder)), 1
	case 2:
		return N(binary.Get[uint16](holder)), 2
	case 4:
		if c.isFloat {
			return N(math.Float32frombits(binary.Get[uint32](holder))), 4
		}
		return N(binary.Get[uint32](holder)), 4
	case 8:
		if c.isFloat {
			return N(math.Float64frombits(binary.Get[uint64](holder))), 8
		}
		return N(binary.Get[uint64](holder)), 8
	}
	panic(fmt.Sprintf("unsupported number width %d", c.width))
}

func (c numberCodec[N]) Encode(buf []byte, off int, v N) ([]byte, int) {
	if off+c.width > len(buf) {
		buf = binary.Grow(buf, off+c.width-len(buf))
	}
	holder := buf[off : off+c.width]
	switch c.width {
	case 1:
		binary.Put(holder, uint8(v))
	case 2:
		binary.Put(holder, uint16(v))
	case 4:
		if c.isFloat {
			binary.Put(holder, math.Float32bits(float32(v)))
		} else {
			binary.Put(holder, uint32(v))
		}
	case 8:
		if c.isFloat {
			binary.Put(holder, math.Float64bits(float64(v)))
		} else {
			binary.Put(holder, uint64(v))
		}
	default:
		panic(fmt.Sprintf("unsupported number width %d", c.width))
	}
	return buf, c.width
}
