package rsp

// UCode describes a microcode blob referenced by a task descriptor.  The
// code and data images live at fixed virtual addresses chosen by the image
// layout; the RSP (or its HLE reimplementation) loads them into IMEM/DMEM.
type UCode struct {
	Name string

	Entry uint32 // initial value of RSP PC register
	Code  uint32 // virtual address of the IMEM image
	Size  uint32
	Data  uint32 // virtual address of the DMEM image
}

// Apply fills the microcode fields of a task descriptor.
func (u *UCode) Apply(t *Task) {
	t.UCode = u.Code
	t.UCodeSize = u.Size
	t.UCodeData = u.Data
}
