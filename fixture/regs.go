package fixture

// MMIO registers poked by the generated boot code, as uncached KSEG1
// addresses.  Only the handful of registers the fixtures touch are
// listed.
const (
	miIntr     = 0xa430_0008 // pending interrupts
	miIntrMask = 0xa430_000c

	viIntr = 0xa440_000c // halfline to raise the VI interrupt at

	dpcBase = 0xa410_0000 // DPC_START, DPC_END at +4

	spStatus = 0xa404_0010
)

// Register bits.
const (
	miIntrVI    = 0x08   // VI bit in miIntr
	miMaskSetVI = 0x0800 // set VI mask bit in miIntrMask

	spClearHalt = 0x01 // releases the RSP from halt
)
