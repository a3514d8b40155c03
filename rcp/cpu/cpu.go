// Package cpu models the VR4300's view of memory as needed to bake addresses
// into a cartridge image.  In 32bit kernel mode RDRAM is visible through two
// fixed aliases of the same physical range, one going through the data cache
// and one bypassing it.  All mapping is pure bit arithmetic, there are no
// lookups.
package cpu

import (
	"errors"
	"fmt"
)

// The CPU's clock speed
const ClockSpeed = 93.75e6

// Memory regions in 32bit Kernel mode
const (
	KSEG0 uint32 = 0x8000_0000 // unmapped, cached
	KSEG1 uint32 = 0xa000_0000 // unmapped, uncached
)

var (
	ErrOutOfWindow = errors.New("cpu: address outside KSEG0/KSEG1")
	ErrUnaligned   = errors.New("cpu: unaligned address")
)

// Addr represents a physical memory address
type Addr uint32

// Physical returns the physical address of a virtual address, which must lie
// in KSEG0 or KSEG1.
func Physical(virt uint32) (Addr, error) {
	if virt < KSEG0 || virt >= KSEG1+0x2000_0000 {
		return 0, fmt.Errorf("%w: %#08x", ErrOutOfWindow, virt)
	}
	return Addr(virt &^ 0xe000_0000), nil
}

// Cached returns the address as seen through the cached access window.
func (a Addr) Cached() uint32 { return uint32(a) | KSEG0 }

// Uncached returns the address as seen through the uncached access window.
func (a Addr) Uncached() uint32 { return uint32(a) | KSEG1 }

// CheckAlign fails if virt isn't aligned to the power-of-two granularity
// align.
func CheckAlign(virt uint32, align uint32) error {
	if virt&(align-1) != 0 {
		return fmt.Errorf("%w: %#08x not %d byte aligned", ErrUnaligned, virt, align)
	}
	return nil
}
