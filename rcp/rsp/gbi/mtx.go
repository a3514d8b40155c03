package gbi

import (
	"encoding/binary"
	"math"

	"github.com/clktmr/n64rom/rcp/fixed"
)

// Mtx is a 4x4 transformation matrix of 16.16 fixed-point elements, stored
// in row-major linearization with the diagonal at indices 0, 5, 10, 15.
type Mtx [16]fixed.Int16_16

// MtxSize is the matrix's wire size.
const MtxSize = 64

// Bytes encodes the matrix as 16 big-endian words.
func (m Mtx) Bytes() [MtxSize]byte {
	var buf [MtxSize]byte
	for i, x := range m {
		binary.BigEndian.PutUint32(buf[i*4:], uint32(x))
	}
	return buf
}

// Identity returns the identity transform.
func Identity() Mtx {
	var m Mtx
	for i := 0; i < 16; i += 5 {
		m[i] = fixed.Int16_16U(1)
	}
	return m
}

// Translate returns a transform moving by (x, y, z).
func Translate(x, y, z float64) (Mtx, error) {
	m := Identity()
	var err error
	for i, v := range map[int]float64{12: x, 13: y, 14: z} {
		if m[i], err = fixed.Int16_16FromFloat(v); err != nil {
			return Mtx{}, err
		}
	}
	return m, nil
}

// Perspective returns a perspective projection with the given vertical field
// of view in radians.
func Perspective(fov, aspect, near, far float64) (Mtx, error) {
	f := 1.0 / math.Tan(fov/2.0)
	var m Mtx
	var err error
	for i, v := range map[int]float64{
		0:  f / aspect,
		5:  f,
		10: (far + near) / (near - far),
		11: -1.0,
		14: 2.0 * far * near / (near - far),
	} {
		if m[i], err = fixed.Int16_16FromFloat(v); err != nil {
			return Mtx{}, err
		}
	}
	return m, nil
}
