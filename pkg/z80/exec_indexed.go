package z80

// execIndexedEntry is reached immediately after a DD or FD prefix byte,
// with c.idx already set to idxIX/idxIY. It either falls through to the
// ordinary main table (reused so every HL-addressing handler transparently
// becomes IX/IY-addressing, per decode.go's regH/regL/hl/hlAddr), adding
// the prefix's own +4 T-states, or, for the DDCB/FDCB double-prefix form,
// reads the displacement and final opcode itself since that encoding's
// byte order (prefix, CB, displacement, opcode) doesn't match any
// main-table shape — execIndexedCB already returns the full architectural
// cycle count (20/23) for that form, with no further overhead to add.
func (c *CPU) execIndexedEntry() int {
	op := c.fetchImm8()
	if op == 0xCB {
		d := int8(c.fetchImm8())
		sub := c.fetchImm8()
		return c.execIndexedCB(d, sub)
	}
	return c.execMain(op) + 4
}

// execIndexedCB implements the DDCB/FDCB encoding: rotate/shift, BIT, RES,
// or SET against the displaced (IX+d)/(IY+d) byte. The undocumented
// register copy-back applies to every form except BIT: the z field, which
// for a bare CB opcode selects the operand register, here instead names an
// extra register that silently receives a copy of the result (z==6 means
// "no copy-back", since that slot already names the displaced byte itself).
func (c *CPU) execIndexedCB(d int8, op uint8) int {
	base := c.IX
	if c.idx == idxIY {
		base = c.IY
	}
	addr := uint16(int32(base) + int32(d))
	v := c.mem.FetchByte(addr)

	x, y, z, _, _ := decompose(op)

	switch x {
	case 1:
		c.main.F = bitTest(v, c.main.F, y)
		return 20
	case 0, 2, 3:
		var r uint8
		switch x {
		case 0:
			var f uint8
			r, f = rotateOrShift(y, v, c.main.F)
			c.main.F = f
		case 2:
			r = v &^ (1 << y)
		default:
			r = v | (1 << y)
		}
		c.mem.StoreByte(addr, r)
		if z != 6 {
			c.setReg8Plain(z, r)
		}
		return 23
	default:
		c.reportAnomaly("unreachable DDCB/FDCB x value")
		return 23
	}
}
