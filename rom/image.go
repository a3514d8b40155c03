// Package rom assembles cartridge images in z64 byte order.
//
// A Builder owns a growable buffer with a monotonically advancing write
// cursor.  Segments are laid out strictly in increasing offset order and are
// never revisited: all addresses referenced by earlier segments must be known
// constants at encode time.
package rom

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Cartridge sizes come in whole megabytes.
const MinSize = 1 << 20

var (
	ErrOrdering   = errors.New("rom: write cursor would move backward")
	ErrIncomplete = errors.New("rom: image has not reached its declared size")
	ErrImageSize  = errors.New("rom: invalid image size")
)

type Builder struct {
	buf  []byte
	size int
}

// NewBuilder returns a builder for an image of the declared total size,
// which must be a positive multiple of MinSize.
func NewBuilder(size int) (*Builder, error) {
	if size < MinSize || size%MinSize != 0 {
		return nil, fmt.Errorf("%w: %#x not a multiple of %#x", ErrImageSize, size, MinSize)
	}
	return &Builder{buf: make([]byte, 0, size), size: size}, nil
}

// Size returns the declared total image size.
func (b *Builder) Size() int { return b.size }

// Offset returns the current write cursor.
func (b *Builder) Offset() int { return len(b.buf) }

// Append writes p at the current cursor.
func (b *Builder) Append(p []byte) {
	b.buf = append(b.buf, p...)
}

// AppendWord writes a single big-endian word at the current cursor.
func (b *Builder) AppendWord(w uint32) {
	b.buf = binary.BigEndian.AppendUint32(b.buf, w)
}

// PadTo zero-fills up to the absolute offset.  Padding backward is not
// possible.
func (b *Builder) PadTo(offset int) error {
	if offset < len(b.buf) {
		return fmt.Errorf("%w: cursor %#x, target %#x", ErrOrdering, len(b.buf), offset)
	}
	b.buf = append(b.buf, make([]byte, offset-len(b.buf))...)
	return nil
}

// PadToMultipleOf zero-fills up to the next multiple of n.
func (b *Builder) PadToMultipleOf(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: padding granularity %d", ErrImageSize, n)
	}
	return b.PadTo((len(b.buf) + n - 1) / n * n)
}

// WriteHeader encodes h at the start of the image.  It must be the first
// write.
func (b *Builder) WriteHeader(h Header) error {
	if len(b.buf) != 0 {
		return fmt.Errorf("%w: header at offset %#x", ErrOrdering, len(b.buf))
	}
	hdr, err := h.Encode()
	if err != nil {
		return err
	}
	b.buf = append(b.buf, hdr[:]...)
	return nil
}

// Finish returns the image once it has been padded to the declared total
// size.
func (b *Builder) Finish() ([]byte, error) {
	if len(b.buf) != b.size {
		return nil, fmt.Errorf("%w: %#x of %#x bytes", ErrIncomplete, len(b.buf), b.size)
	}
	return b.buf, nil
}
