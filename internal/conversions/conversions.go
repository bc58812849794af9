// Package conversions is a set of unsafe conversions from one type to another. Such as converting
// a string to its underlying bytes without a copy.
package conversions

import "unsafe"

// ByteSlice2String coverts bs to a string. It is no longer safe to modify bs after this.
func ByteSlice2String(bs []byte) string {
	if len(bs) == 0 {
		return ""
	}
	return unsafe.String(&bs[0], len(bs))
}

// UnsafeGetBytes retrieves the underlying []byte held in string "s" without doing
// a copy. Do not modify the []byte or suffer the consequences.
func UnsafeGetBytes(s string) []byte {
	if s == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
