package txparser

import "encoding/binary"

// readU64le decodes 8 little-endian bytes from b into a uint64.
func readU64le(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b)
}
