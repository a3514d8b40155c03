package rom

import (
	"encoding/binary"
	"fmt"

	"github.com/clktmr/n64rom/rcp/cpu"
)

// HeaderSize is the fixed size of the cartridge header.
const HeaderSize = 0x40

// Magic is the first header word of a big-endian (z64) image, read by the PI
// as its DOM1 configuration flags.
const Magic = 0x8037_1240

// Header describes the 64 byte cartridge header.
// https://n64brew.dev/wiki/ROM_Header
type Header struct {
	Magic     uint32
	ClockRate uint32
	BootAddr  uint32 // virtual entry point, must lie in KSEG0/KSEG1
	Release   uint32
	CRC       [2]uint32 // check code, not computed here, may be zero

	Title        string // padded/truncated to 20 bytes
	Manufacturer byte
	CartridgeID  [2]byte
	Country      byte
	Version      byte
}

// NewHeader returns a header with the conventional magic, clock rate and
// release words.
func NewHeader(title string, bootAddr uint32) Header {
	return Header{
		Magic:     Magic,
		ClockRate: 0x0000_000f,
		BootAddr:  bootAddr,
		Release:   0x0000_1444,
		Title:     title,
	}
}

// Encode packs the header into its fixed byte layout.
func (h Header) Encode() ([HeaderSize]byte, error) {
	var buf [HeaderSize]byte
	if _, err := cpu.Physical(h.BootAddr); err != nil {
		return buf, fmt.Errorf("boot address: %w", err)
	}

	binary.BigEndian.PutUint32(buf[0x00:], h.Magic)
	binary.BigEndian.PutUint32(buf[0x04:], h.ClockRate)
	binary.BigEndian.PutUint32(buf[0x08:], h.BootAddr)
	binary.BigEndian.PutUint32(buf[0x0c:], h.Release)
	binary.BigEndian.PutUint32(buf[0x10:], h.CRC[0])
	binary.BigEndian.PutUint32(buf[0x14:], h.CRC[1])
	// 0x18: reserved (8 bytes)

	title, err := TitleCode.NewEncoder().Bytes([]byte(fmt.Sprintf("%-20.20s", h.Title)))
	if err != nil {
		return buf, fmt.Errorf("encode title: %w", err)
	}
	copy(buf[0x20:0x34], title)

	// 0x34: reserved (7 bytes)
	buf[0x3b] = h.Manufacturer
	buf[0x3c], buf[0x3d] = h.CartridgeID[0], h.CartridgeID[1]
	buf[0x3e] = h.Country
	buf[0x3f] = h.Version
	return buf, nil
}
