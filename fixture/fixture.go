// Package fixture synthesizes complete cartridge images with known
// contents.  They exercise the whole encoding stack end to end and serve
// as deterministic inputs for emulator tests: every byte of a fixture
// follows from constants in this package.
package fixture

import (
	"encoding/binary"
	"image"
	"math"

	"github.com/clktmr/n64rom/debug"
	"github.com/clktmr/n64rom/mips"
	"github.com/clktmr/n64rom/rcp/cpu"
	"github.com/clktmr/n64rom/rcp/rdp"
	"github.com/clktmr/n64rom/rcp/rsp"
	"github.com/clktmr/n64rom/rcp/rsp/gbi"
	"github.com/clktmr/n64rom/rom"
	"golang.org/x/image/colornames"
)

// All fixtures boot at the conventional IPL3 load address.
const bootAddr = 0x8000_0400

// Memory map shared by the fixtures.  Data segments are placed at the
// same offset in the cartridge as in RDRAM, so an emulator that maps the
// cartridge linearly finds them where the boot code points.
const (
	stackTop    = 0x801f_fff0
	counterAddr = 0x8020_0000 // interrupt counter (enhanced)
	rdpListAddr = 0x8010_0000 // RDP command stream (enhanced)

	mtxAddr  = 0x8010_0000 // matrices (pong3d)
	vtxAddr  = 0x8010_1000 // vertex records (pong3d)
	taskAddr = 0x8020_0000 // RSP task descriptor (pong3d)
	gbiAddr  = 0x8011_0000 // F3DEX display list (pong3d)

	ucodeText  = 0x8040_0000 // F3DEX microcode, loaded by the emulator
	ucodeSize  = 0x1000
	dramStack  = 0x8030_0000
	stackWords = 0x1800
)

// Register conventions of the generated boot code.
const (
	rBase = mips.T0
	rTmp  = mips.T1
)

// storeWords emits code storing data word by word at the address in
// base.  Zero words are stored from the zero register.
func storeWords(a *mips.Assembler, base mips.Reg, data []byte) {
	debug.Assert(len(data)%4 == 0, "store data has word granularity")
	for off := 0; off < len(data); off += 4 {
		w := binary.BigEndian.Uint32(data[off:])
		if w == 0 {
			a.Sw(mips.Zero, off, base)
			continue
		}
		a.Li(rTmp, w)
		a.Sw(rTmp, off, base)
	}
}

// Enhanced returns a 1 MiB image that sets up VI interrupts, stores a
// small RDP command stream to RDRAM, kicks the RDP and then counts
// interrupts in a polling loop.  It renders a red and a green rectangle.
func Enhanced() ([]byte, error) {
	dl := &rdp.DisplayList{}
	dl.SetFillColor(colornames.Red)
	dl.FillRectangle(image.Rect(50, 50, 150, 150))
	dl.SetFillColor(colornames.Lime)
	dl.FillRectangle(image.Rect(160, 90, 210, 140))
	dl.Sync(rdp.SyncFull)
	stream, err := dl.Bytes()
	if err != nil {
		return nil, err
	}

	a := mips.NewAssembler(bootAddr)
	a.Li(mips.SP, stackTop)

	// interrupt counter starts at zero
	a.Li(rBase, counterAddr)
	a.Sw(mips.Zero, 0, rBase)

	// unmask the VI interrupt in the MI
	a.Li(rBase, miIntrMask)
	a.Li(rTmp, miMaskSetVI)
	a.Sw(rTmp, 0, rBase)

	// raise the VI interrupt at scanline 100
	a.Li(rBase, viIntr)
	a.Li(rTmp, 100<<1)
	a.Sw(rTmp, 0, rBase)

	// store the command stream and hand it to the RDP
	listPhys, err := cpu.Physical(rdpListAddr)
	if err != nil {
		return nil, err
	}
	a.Li(rBase, rdpListAddr)
	storeWords(a, rBase, stream)
	a.Li(rBase, dpcBase)
	a.Li(rTmp, uint32(listPhys))
	a.Sw(rTmp, 0, rBase) // DPC_START
	a.Li(rTmp, uint32(listPhys)+uint32(len(stream)))
	a.Sw(rTmp, 4, rBase) // DPC_END, triggers processing

	// poll MI_INTR until the VI bit is set
	a.Label("poll")
	a.Li(rBase, miIntr)
	a.Lw(rTmp, 0, rBase)
	a.Andi(rTmp, rTmp, miIntrVI)
	a.Beq(rTmp, mips.Zero, "poll")
	a.Nop()

	// count the interrupt, then acknowledge it
	a.Li(rBase, counterAddr)
	a.Lw(rTmp, 0, rBase)
	a.Addiu(rTmp, rTmp, 1)
	a.Sw(rTmp, 0, rBase)
	a.Li(rBase, miIntr)
	a.Li(rTmp, miIntrVI)
	a.Sw(rTmp, 0, rBase)
	a.J("poll")
	a.Nop()

	text, err := a.Assemble()
	if err != nil {
		return nil, err
	}

	b, err := rom.NewBuilder(rom.MinSize)
	if err != nil {
		return nil, err
	}
	h := rom.NewHeader("ENHANCED TEST ROM", bootAddr)
	h.Manufacturer = 'N'
	h.CartridgeID = [2]byte{'E', 'T'}
	if err := b.WriteHeader(h); err != nil {
		return nil, err
	}
	if err := b.PadTo(0x1000); err != nil {
		return nil, err
	}
	b.Append(text)
	if err := b.PadTo(b.Size()); err != nil {
		return nil, err
	}
	return b.Finish()
}

// Pong3D returns an 8 MiB image that stores an RSP graphics task
// descriptor, starts the RSP and loops.  The cartridge carries the
// task's inputs at their RDRAM offsets: projection, identity and camera
// matrices, three colored quads worth of vertices and the F3DEX display
// list drawing them.
func Pong3D() ([]byte, error) {
	task := rsp.Task{
		Type:          rsp.TaskGfx,
		UCode:         ucodeText,
		UCodeSize:     ucodeSize,
		DRAMStack:     dramStack,
		DRAMStackSize: stackWords,
		Data:          gbiAddr,
		DataSize:      0x2000,
	}
	desc, err := task.Encode()
	if err != nil {
		return nil, err
	}

	a := mips.NewAssembler(bootAddr)
	a.Li(mips.SP, stackTop)

	// store the task descriptor where the RSP bootstrap expects it
	a.Li(rBase, taskAddr)
	storeWords(a, rBase, desc[:])

	// clear the halt bit to start the RSP
	a.Li(rBase, spStatus)
	a.Li(rTmp, spClearHalt)
	a.Sw(rTmp, 0, rBase)

	a.Label("idle")
	a.J("idle")
	a.Nop()

	text, err := a.Assemble()
	if err != nil {
		return nil, err
	}

	mtxs, err := matrices()
	if err != nil {
		return nil, err
	}
	dl, err := displayList()
	if err != nil {
		return nil, err
	}

	b, err := rom.NewBuilder(8 * rom.MinSize)
	if err != nil {
		return nil, err
	}
	h := rom.NewHeader("3D PONG TEST ROM", bootAddr)
	h.Manufacturer = 'N'
	h.CartridgeID = [2]byte{'3', 'P'}
	if err := b.WriteHeader(h); err != nil {
		return nil, err
	}
	if err := b.PadTo(0x1000); err != nil {
		return nil, err
	}
	b.Append(text)
	for _, seg := range []struct {
		virt uint32
		data []byte
	}{
		{mtxAddr, mtxs},
		{vtxAddr, gbi.EncodeVtxs(vertices())},
		{gbiAddr, dl},
	} {
		phys, err := cpu.Physical(seg.virt)
		if err != nil {
			return nil, err
		}
		if err := b.PadTo(int(phys)); err != nil {
			return nil, err
		}
		b.Append(seg.data)
	}
	if err := b.PadTo(b.Size()); err != nil {
		return nil, err
	}
	return b.Finish()
}

// matrices returns the pong scene's matrix segment: perspective
// projection, identity modelview and the camera translation, 64 bytes
// each.
func matrices() ([]byte, error) {
	proj, err := gbi.Perspective(math.Pi/3, 4.0/3.0, 10, 1000)
	if err != nil {
		return nil, err
	}
	camera, err := gbi.Translate(0, 0, -300)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, 3*gbi.MtxSize)
	for _, m := range []gbi.Mtx{proj, gbi.Identity(), camera} {
		enc := m.Bytes()
		buf = append(buf, enc[:]...)
	}
	return buf, nil
}

// vertices returns the scene's twelve vertices: a red left paddle, a
// blue right paddle and a green ball, each a quad with per-vertex
// shading.
func vertices() []gbi.Vtx {
	quad := func(x0, x1, y, z int16, r, g, b [4]uint8) []gbi.Vtx {
		return []gbi.Vtx{
			{X: x0, Y: -y, Z: z, R: r[0], G: g[0], B: b[0], A: 0xff},
			{X: x0, Y: y, Z: z, R: r[1], G: g[1], B: b[1], A: 0xff},
			{X: x1, Y: y, Z: z, R: r[2], G: g[2], B: b[2], A: 0xff},
			{X: x1, Y: -y, Z: z, R: r[3], G: g[3], B: b[3], A: 0xff},
		}
	}
	shades := [4]uint8{255, 200, 150, 100}
	flat := [4]uint8{255, 255, 255, 255}
	zero := [4]uint8{}

	vs := quad(-110, -90, 30, 5, shades, zero, zero)             // left paddle
	vs = append(vs, quad(90, 110, 30, 5, zero, zero, shades)...) // right paddle
	vs = append(vs, quad(-8, 8, 8, 0, zero, flat, zero)...)      // ball
	return vs
}

// displayList returns the F3DEX stream drawing the scene: load the
// projection and camera matrices, then one vertex load and one triangle
// pair per quad.
func displayList() ([]byte, error) {
	dl := &gbi.DisplayList{}
	dl.Matrix(mtxAddr, gbi.MtxProjection)
	dl.Matrix(mtxAddr+2*gbi.MtxSize, gbi.MtxNoPush)
	for i := 0; i < 3; i++ {
		base := i * 4
		dl.Vertex(uint32(vtxAddr+base*gbi.VtxSize), 4, base)
		dl.Tri2(base, base+1, base+2, base, base+2, base+3)
	}
	dl.End()
	return dl.Bytes()
}
