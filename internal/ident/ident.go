// Package ident derives stable identifiers from display names.
package ident

import (
	"crypto/md5" // #nosec G501 -- ids only need to be stable, not collision resistant
	"encoding/binary"
	"strconv"
)

const (
	idSpan   = 900000000
	idOffset = 100000000
)

// NineDigit returns a nine-digit decimal id for name. The first four bytes of
// the MD5 digest are read as a big-endian integer, reduced modulo 900000000
// and offset by 100000000, so the result never starts with zero.
//
// The same name always yields the same id; distinct names may collide.
func NineDigit(name string) string {
	sum := md5.Sum([]byte(name)) // #nosec G401
	n := binary.BigEndian.Uint32(sum[:4])
	return strconv.FormatUint(uint64(n%idSpan+idOffset), 10)
}
