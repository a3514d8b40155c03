package fixture_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/clktmr/n64rom/fixture"
)

func words(p []byte, offset, n int) []uint32 {
	ws := make([]uint32, n)
	for i := range ws {
		ws[i] = binary.BigEndian.Uint32(p[offset+i*4:])
	}
	return ws
}

func TestEnhanced(t *testing.T) {
	img, err := fixture.Enhanced()
	if err != nil {
		t.Fatal(err)
	}
	if len(img) != 1<<20 {
		t.Fatalf("image size %#x", len(img))
	}

	header := words(img, 0, 4)
	expected := []uint32{0x80371240, 0x0000000f, 0x80000400, 0x00001444}
	for i, w := range header {
		if w != expected[i] {
			t.Errorf("header word %d: got %#08x, expected %#08x", i, w, expected[i])
		}
	}
	if got := string(img[0x20:0x34]); got != "ENHANCED TEST ROM   " {
		t.Errorf("title %q", got)
	}
	if img[0x3b] != 'N' || img[0x3c] != 'E' || img[0x3d] != 'T' {
		t.Errorf("cartridge id % x", img[0x3b:0x3e])
	}

	// boot prologue: stack, counter init, VI interrupt unmask
	boot := words(img, 0x1000, 8)
	prologue := []uint32{
		0x3c1d801f, 0x37bdfff0, // li $sp, 0x801ffff0
		0x3c088020, 0xad000000, // sw $zero, (0x80200000)
		0x3c08a430, 0x3508000c, // li $t0, MI_INTR_MASK
		0x34090800, 0xad090000, // sw 0x0800, ($t0)
	}
	for i, w := range boot {
		if w != prologue[i] {
			t.Errorf("boot word %d: got %#08x, expected %#08x", i, w, prologue[i])
		}
	}

	// the polling loop branches back to its own load
	if i := bytes.Index(img, []byte{0x11, 0x20, 0xff, 0xfb}); i < 0 {
		t.Error("poll loop branch not found")
	}
}

func TestPong3D(t *testing.T) {
	img, err := fixture.Pong3D()
	if err != nil {
		t.Fatal(err)
	}
	if len(img) != 8<<20 {
		t.Fatalf("image size %#x", len(img))
	}

	if got := string(img[0x20:0x34]); got != "3D PONG TEST ROM    " {
		t.Errorf("title %q", got)
	}
	if img[0x3c] != '3' || img[0x3d] != 'P' {
		t.Errorf("cartridge id % x", img[0x3c:0x3e])
	}

	// projection matrix at 0x100000: [2][3] is -1.0 in 16.16
	if w := words(img, 0x100000+11*4, 1)[0]; w != 0xffff0000 {
		t.Errorf("projection [2][3]: got %#08x", w)
	}
	// identity modelview at 0x100040
	for i, w := range words(img, 0x100040, 16) {
		expected := uint32(0)
		if i%5 == 0 {
			expected = 0x00010000
		}
		if w != expected {
			t.Errorf("identity word %d: got %#08x", i, w)
		}
	}
	// camera translation at 0x100080: z is -300.0
	if w := words(img, 0x100080+14*4, 1)[0]; w != 0xfed40000 {
		t.Errorf("camera z: got %#08x", w)
	}

	// first vertex at 0x101000: left paddle corner, full red
	vtx := []byte{
		0xff, 0x92, 0xff, 0xe2, 0x00, 0x05, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0xff, 0x00, 0x00, 0xff,
	}
	if got := img[0x101000 : 0x101000+16]; !bytes.Equal(got, vtx) {
		t.Errorf("vertex 0: got % x", got)
	}

	// display list at 0x110000
	dl := words(img, 0x110000, 18)
	expected := []uint32{
		0xda000004, 0x80100000, // projection matrix
		0xda000000, 0x80100080, // camera matrix
		0x01004000, 0x80101000, // left paddle
		0x06000204, 0x00000406,
		0x01004008, 0x80101040, // right paddle
		0x06080a0c, 0x00080a0e,
		0x01004010, 0x80101080, // ball
		0x06101214, 0x00101216,
		0xdf000000, 0x00000000, // end
	}
	for i, w := range dl {
		if w != expected[i] {
			t.Errorf("display list word %d: got %#08x, expected %#08x", i, w, expected[i])
		}
	}

	// task descriptor type and stack words appear in the boot code
	if i := bytes.Index(img[0x1000:0x2000], []byte{0x34, 0x09, 0x00, 0x01}); i < 0 {
		t.Error("task type store not found")
	}
}

func TestDeterminism(t *testing.T) {
	for name, build := range map[string]func() ([]byte, error){
		"enhanced": fixture.Enhanced,
		"pong3d":   fixture.Pong3D,
	} {
		t.Run(name, func(t *testing.T) {
			a, err := build()
			if err != nil {
				t.Fatal(err)
			}
			b, err := build()
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(a, b) {
				t.Error("images differ between builds")
			}
		})
	}
}
