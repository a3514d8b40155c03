package gbi

import "encoding/binary"

// Vtx is one vertex record as loaded into the RSP's vertex buffer.  Field
// order and widths are part of the wire contract: position, flag, texture
// coordinates, color, all big-endian.
type Vtx struct {
	X, Y, Z    int16
	Flag       uint16
	S, T       int16 // texture coordinates, 10.5 fixed point
	R, G, B, A uint8
}

// VtxSize is the record's wire size.
const VtxSize = 16

// Encode packs the vertex into its fixed 16 byte record.
func (v Vtx) Encode() [VtxSize]byte {
	var buf [VtxSize]byte
	binary.BigEndian.PutUint16(buf[0:], uint16(v.X))
	binary.BigEndian.PutUint16(buf[2:], uint16(v.Y))
	binary.BigEndian.PutUint16(buf[4:], uint16(v.Z))
	binary.BigEndian.PutUint16(buf[6:], v.Flag)
	binary.BigEndian.PutUint16(buf[8:], uint16(v.S))
	binary.BigEndian.PutUint16(buf[10:], uint16(v.T))
	buf[12], buf[13], buf[14], buf[15] = v.R, v.G, v.B, v.A
	return buf
}

// EncodeVtxs encodes a vertex array in memory order.
func EncodeVtxs(vs []Vtx) []byte {
	buf := make([]byte, 0, len(vs)*VtxSize)
	for _, v := range vs {
		rec := v.Encode()
		buf = append(buf, rec[:]...)
	}
	return buf
}
