// Released under an MIT license. See LICENSE.

// Package crc32c computes the checksum internal/buildcache keys build
// artifacts by: the Castagnoli CRC-32 of a build command line plus its
// declared inputs. hash/crc32 already ships a correct, maintained
// implementation of this exact polynomial, so wrapping the standard one
// is the deliberate choice here, not a fallback.
package crc32c

import "hash/crc32"

var table = crc32.MakeTable(crc32.Castagnoli)

// Sum returns the Castagnoli CRC-32 of parts, concatenated with a NUL
// separator so that {"ab", "c"} and {"a", "bc"} never collide.
func Sum(parts ...string) uint32 {
	h := crc32.New(table)

	for i, p := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}

		h.Write([]byte(p))
	}

	return h.Sum32()
}
