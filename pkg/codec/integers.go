// Package codec implements the primitive wire types shared by every
// tachograph record layout: big-endian integers, packed BCD, code-page
// aware strings, and the two date encodings (TimeReal, Datef).
package codec

import (
	"encoding/binary"
	"fmt"
)

// UInt8 reads a single byte.
func UInt8(data []byte) (byte, error) {
	if len(data) < 1 {
		return 0, fmt.Errorf("codec: need 1 byte, have %d", len(data))
	}
	return data[0], nil
}

// UInt16 reads a big-endian 16-bit unsigned integer.
func UInt16(data []byte) (uint16, error) {
	if len(data) < 2 {
		return 0, fmt.Errorf("codec: need 2 bytes, have %d", len(data))
	}
	return binary.BigEndian.Uint16(data[:2]), nil
}

// UInt24 reads a big-endian 24-bit unsigned integer (odometer fields).
func UInt24(data []byte) (uint32, error) {
	if len(data) < 3 {
		return 0, fmt.Errorf("codec: need 3 bytes, have %d", len(data))
	}
	return uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2]), nil
}

// UInt32 reads a big-endian 32-bit unsigned integer.
func UInt32(data []byte) (uint32, error) {
	if len(data) < 4 {
		return 0, fmt.Errorf("codec: need 4 bytes, have %d", len(data))
	}
	return binary.BigEndian.Uint32(data[:4]), nil
}

// Int32 reads a big-endian signed 32-bit integer, used for GNSS coordinates.
func Int32(data []byte) (int32, error) {
	v, err := UInt32(data)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}
