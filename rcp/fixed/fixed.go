// Package fixed provides fixed-point arithmetic types used by the RCP.
package fixed

// Rasterizer screen coordinates.  Stored in uint16, but only the low 12 bits
// are representable in command words.
//
//go:generate go run mkfixed.go UInt10_2 uint16 12
type UInt10_2 uint16

// Matrix elements as consumed by the geometry microcode.
//
//go:generate go run mkfixed.go Int16_16 int32 32
type Int16_16 int32
