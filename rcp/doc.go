// The rcp package tree covers the Reality Coprocessor of the Nintendo 64.
//
// Unlike a hardware abstraction layer, the subpackages don't access any
// hardware. They encode the binary formats the chip's units consume, i.e.
// RDP command streams, RSP task descriptors and microcode display lists,
// so that images containing them can be assembled on a host machine.
package rcp

// Reality Coprocessor
// https://ultra64.ca/files/documentation/online-manuals/man/pro-man/pro08/index8.1.html
