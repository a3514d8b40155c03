package rom

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// The header title charset covers the uppercase half of ASCII.  Lowercase
// letters are folded, anything else becomes the replacement character, so
// encoding never fails.
const titleRC = ' '

type titlemap struct{}

// TitleCode encodes game titles as stored in the cartridge header.
var TitleCode encoding.Encoding = &titlemap{}

func (m *titlemap) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: &titleDecoder{}}
}

func (m *titlemap) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: &titleEncoder{}}
}

type titleDecoder struct{}

func (d *titleDecoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for _, c := range src {
		r := rune(c)
		if r < ' ' || r > 'Z' {
			r = '�'
		}
		rlen := utf8.RuneLen(r)
		if rlen > len(dst)-nDst {
			err = transform.ErrShortDst
			break
		}
		nSrc += 1
		nDst += utf8.EncodeRune(dst[nDst:], r)
	}
	return
}

func (d *titleDecoder) Reset() {}

type titleEncoder struct{}

func (d *titleEncoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size == 1 && !atEOF {
			err = transform.ErrShortSrc
			break
		}
		if nDst >= len(dst) {
			err = transform.ErrShortDst
			break
		}
		switch {
		case r >= 'a' && r <= 'z':
			dst[nDst] = byte(r - 'a' + 'A')
		case r >= ' ' && r <= 'Z':
			dst[nDst] = byte(r)
		default:
			dst[nDst] = titleRC
		}
		nSrc += size
		nDst += 1
	}
	return
}

func (d *titleEncoder) Reset() {}
