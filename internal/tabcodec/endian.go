package tabcodec

import (
	"encoding/binary"
	"math"
)

// decode* read one element's big-endian bytes into a Go value. The
// source wire format is always big-endian, so encoding/binary.BigEndian
// alone is enough on any host — there is no host-byte-order branch
// anywhere in this package.
// decodeBool implements spec.md §4.6's LOGICAL rule: the source byte is
// compared case-insensitively to 'T', not merely tested for non-zero —
// FITS LOGICAL bytes are ASCII 'T'/'F'/' ', all of which are non-zero.
func decodeBool(b []byte) bool { return b[0] == 'T' || b[0] == 't' }

func decodeUint8(b []byte) uint8 { return b[0] }
func decodeInt8(b []byte) int8   { return int8(b[0]) }

func decodeInt16(b []byte) int16   { return int16(binary.BigEndian.Uint16(b)) }
func decodeUint16(b []byte) uint16 { return binary.BigEndian.Uint16(b) }

func decodeInt32(b []byte) int32   { return int32(binary.BigEndian.Uint32(b)) }
func decodeUint32(b []byte) uint32 { return binary.BigEndian.Uint32(b) }

func decodeInt64(b []byte) int64 { return int64(binary.BigEndian.Uint64(b)) }

func decodeFloat32(b []byte) float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(b))
}

func decodeFloat64(b []byte) float64 {
	return math.Float64frombits(binary.BigEndian.Uint64(b))
}

// putUint32BE/putUint64BE/putUint16BE write the big-endian length
// prefixes and payloads spec.md §4.7's binary COPY framing wants, used
// by encode_numeric.go's and binarycopy.go's binary encoders.
func putUint32BE(dst []byte, v uint32) { binary.BigEndian.PutUint32(dst, v) }
func putUint64BE(dst []byte, v uint64) { binary.BigEndian.PutUint64(dst, v) }
func putUint16BE(dst []byte, v uint16) { binary.BigEndian.PutUint16(dst, v) }
