package fixed

import "fmt"

func Int16_16U(i int) Int16_16     { return Int16_16(i << 16) }
func Int16_16F(f float32) Int16_16 { return Int16_16(f * (1 << 16)) }

func Int16_16FromFloat(f float64) (Int16_16, error) { return FromFloat[Int16_16](f, 16, 32) }

func (x Int16_16) Float() float64          { return Float(x, 16) }
func (x Int16_16) Floor() int              { return int(x >> 16) }
func (x Int16_16) Ceil() int               { return int((int64(x) + (1 << 16) - 1) >> 16) }
func (x Int16_16) Mul(y Int16_16) Int16_16 { return Int16_16((int64(x) * int64(y)) >> 16) }
func (x Int16_16) Div(y Int16_16) Int16_16 { return Int16_16(int64(x) << 16 / int64(y)) }

func (x Int16_16) String() string {
	const shift, mask = 16, 1<<16 - 1
	return fmt.Sprintf("%d:%05d", int64(x>>shift), int64(x&mask))
}
