package z80

import (
	"encoding/binary"
)

// snapshotHeaderSize is the fixed-layout register/control block that
// precedes the 64 KiB memory image in Snapshot's output: 16 single-byte
// registers (A,F,B,C,D,E,H,L and their shadows), four 16-bit registers
// (SP,PC,IX,IY), I, R, and three single-byte control fields (interrupt
// status, interrupt mode, halt), all little-endian — grounded on the
// binary.Write layout pkg/gpu/cuda.go used for its device-state blobs.
const snapshotHeaderSize = 16 + 4*2 + 2 + 3

// Snapshot serializes the complete architectural state — registers, flags,
// interrupt bookkeeping, and the full 64 KiB address space — into a single
// byte slice suitable for persistence or transport.
func (c *CPU) Snapshot() []byte {
	out := make([]byte, 0, snapshotHeaderSize+65536)

	out = append(out,
		c.main.A, c.main.F, c.main.B, c.main.C, c.main.D, c.main.E, c.main.H, c.main.L,
		c.shadow.A, c.shadow.F, c.shadow.B, c.shadow.C, c.shadow.D, c.shadow.E, c.shadow.H, c.shadow.L,
	)
	out = appendUint16(out, c.SP)
	out = appendUint16(out, c.PC)
	out = appendUint16(out, c.IX)
	out = appendUint16(out, c.IY)
	out = append(out, c.I, c.R)

	var status uint8
	if c.iff1 {
		status |= 0x01
	}
	if c.iff2 {
		status |= 0x02
	}
	out = append(out, status, uint8(c.im), boolByte(c.halted))

	if snap, ok := c.mem.(interface{ Snapshot() []byte }); ok {
		out = append(out, snap.Snapshot()...)
	} else {
		out = append(out, make([]byte, 65536)...)
	}
	return out
}

// Restore replaces every architectural field (registers, flags, interrupt
// state, and memory) from a byte slice produced by Snapshot. It reports
// ErrInvalidStateRestore — without mutating any CPU state — if the input
// is the wrong length.
func (c *CPU) Restore(data []byte) error {
	want := snapshotHeaderSize + 65536
	if len(data) != want {
		return &CoreError{
			Kind:    ErrInvalidStateRestore,
			Message: "snapshot must be exactly header+65536 bytes",
		}
	}

	restorer, ok := c.mem.(interface{ Restore([]byte) error })
	if ok {
		if err := restorer.Restore(data[snapshotHeaderSize:]); err != nil {
			return err
		}
	}

	c.main.A, c.main.F, c.main.B, c.main.C = data[0], data[1], data[2], data[3]
	c.main.D, c.main.E, c.main.H, c.main.L = data[4], data[5], data[6], data[7]
	c.shadow.A, c.shadow.F, c.shadow.B, c.shadow.C = data[8], data[9], data[10], data[11]
	c.shadow.D, c.shadow.E, c.shadow.H, c.shadow.L = data[12], data[13], data[14], data[15]

	c.SP = binary.LittleEndian.Uint16(data[16:18])
	c.PC = binary.LittleEndian.Uint16(data[18:20])
	c.IX = binary.LittleEndian.Uint16(data[20:22])
	c.IY = binary.LittleEndian.Uint16(data[22:24])
	c.I, c.R = data[24], data[25]

	status := data[26]
	c.iff1 = status&0x01 != 0
	c.iff2 = status&0x02 != 0
	c.im = InterruptMode(data[27])
	c.halted = data[28] != 0

	return nil
}

func appendUint16(out []byte, v uint16) []byte {
	return append(out, uint8(v), uint8(v>>8))
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
