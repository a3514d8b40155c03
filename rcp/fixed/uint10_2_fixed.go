package fixed

import "fmt"

func UInt10_2U(i int) UInt10_2     { return UInt10_2(i << 2) }
func UInt10_2F(f float32) UInt10_2 { return UInt10_2(f * (1 << 2)) }

func UInt10_2FromFloat(f float64) (UInt10_2, error) { return FromFloat[UInt10_2](f, 2, 12) }

func (x UInt10_2) Float() float64          { return Float(x, 2) }
func (x UInt10_2) Floor() int              { return int(x >> 2) }
func (x UInt10_2) Ceil() int               { return int((uint32(x) + (1 << 2) - 1) >> 2) }
func (x UInt10_2) Mul(y UInt10_2) UInt10_2 { return UInt10_2((uint32(x) * uint32(y)) >> 2) }
func (x UInt10_2) Div(y UInt10_2) UInt10_2 { return UInt10_2(uint32(x) << 2 / uint32(y)) }

func (x UInt10_2) String() string {
	const shift, mask = 2, 1<<2 - 1
	return fmt.Sprintf("%d:%01d", uint32(x>>shift), uint32(x&mask))
}
