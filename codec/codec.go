// Package codec defines how a single list element is read from and written to
// the wire, plus the codecs for the scalar types lazylist ships with.
package codec

import (
	"golang.org/x/exp/constraints"

	"github.com/bearlytools/lazylist/tracker"
)

// Number represents all int, uint and float types.
type Number interface {
	constraints.Integer | constraints.Float
}

// Codec encodes and decodes a single element of type E.
//
// FixedWidth returns (w, true) when every encoded element occupies exactly w
// bytes and (0, false) when the encoded size varies per element. The list
// layer selects its binary layout from this answer.
//
// Decode reads the element starting at buf[off] and returns it along with the
// number of bytes consumed. tk is the tracker Node of the enclosing container,
// for element types that themselves hold lazy state; scalar codecs ignore it.
// Malformed input surfaces as whatever the read raises (typically a slice
// bounds panic); nothing is validated on top.
//
// Encode writes the element starting at buf[off], growing buf when the
// encoding extends past len(buf), and returns the (possibly reallocated)
// buffer along with the number of bytes written. Writing inside len(buf)
// overwrites in place.
type Codec[E any] interface {
	FixedWidth() (int, bool)
	Decode(buf []byte, off int, tk tracker.Node) (E, int)
	Encode(buf []byte, off int, v E) ([]byte, int)
}
