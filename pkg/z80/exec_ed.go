package z80

// execED dispatches a bare ED-prefixed opcode: 16-bit arithmetic, block
// transfer/search/I/O instructions, the interrupt-mode and refresh-register
// instructions, and RRD/RLD. Most of the x==0/x==3 space and the non-block
// corners of x==2 are undefined on real silicon and behave as an 8-cycle
// no-op; this core does not reproduce the handful of documented
// illegal-opcode quirks (R-increment doubling, etc.)
// spec.md's Non-goals exclude.
func (c *CPU) execED(op uint8) int {
	x, y, z, p, q := decompose(op)

	switch x {
	case 1:
		return c.execEDX1(y, z, p, q)
	case 2:
		if y >= 4 && z <= 3 {
			return c.execBlock(y, z)
		}
		return 8
	default:
		return 8
	}
}

func (c *CPU) execEDX1(y, z, p, q uint8) int {
	switch z {
	case 0:
		if y == 6 {
			v := c.readPort(c.main.C)
			c.main.F = (c.main.F & FlagC) | sz53pTable[v]
			return 12
		}
		v := c.readPort(c.main.C)
		c.setReg8Plain(y, v)
		c.main.F = (c.main.F & FlagC) | sz53pTable[v]
		return 12
	case 1:
		if y == 6 {
			c.writePort(c.main.C, 0)
			return 12
		}
		c.writePort(c.main.C, c.reg8Plain(y))
		return 12
	case 2:
		hl := c.main.hl()
		value := c.regPair(p)
		var r uint16
		var f uint8
		if q == 0 {
			r, f = sbcWord(hl, value, c.main.F&FlagC)
		} else {
			r, f = adcWord(hl, value, c.main.F&FlagC)
		}
		c.main.setHL(r)
		c.main.F = f
		return 15
	case 3:
		if q == 0 {
			c.mem.StoreWord(c.fetchImm16(), c.regPair(p))
		} else {
			c.setRegPair(p, c.mem.FetchWord(c.fetchImm16()))
		}
		return 20
	case 4:
		a, f := neg(c.main.A, c.main.F)
		c.main.A, c.main.F = a, f
		return 8
	case 5:
		c.PC = c.popWord()
		c.iff1 = c.iff2
		return 14
	case 6:
		tbl := [8]InterruptMode{IM0, IM0, IM1, IM2, IM0, IM0, IM1, IM2}
		c.im = tbl[y]
		return 8
	default:
		return c.execEDMisc(y)
	}
}

func (c *CPU) execEDMisc(y uint8) int {
	switch y {
	case 0:
		c.I = c.main.A
		return 9
	case 1:
		c.R = c.main.A
		return 9
	case 2:
		c.main.A = c.I
		c.main.F = (c.main.F & FlagC) | sz53Table[c.I] | bsel(c.iff2, FlagP, 0)
		return 9
	case 3:
		c.main.A = c.R
		c.main.F = (c.main.F & FlagC) | sz53Table[c.R] | bsel(c.iff2, FlagP, 0)
		return 9
	case 4:
		return c.execRRD()
	case 5:
		return c.execRLD()
	default:
		return 8
	}
}

func (c *CPU) execRLD() int {
	addr := c.main.hl()
	m := c.mem.FetchByte(addr)
	a := c.main.A
	newM := (m<<4)&0xF0 | (a & 0x0F)
	newA := (a & 0xF0) | ((m >> 4) & 0x0F)
	c.mem.StoreByte(addr, newM)
	c.main.A = newA
	c.main.F = (c.main.F & FlagC) | sz53pTable[newA]
	return 18
}

func (c *CPU) execRRD() int {
	addr := c.main.hl()
	m := c.mem.FetchByte(addr)
	a := c.main.A
	newM := ((a & 0x0F) << 4) | ((m >> 4) & 0x0F)
	newA := (a & 0xF0) | (m & 0x0F)
	c.mem.StoreByte(addr, newM)
	c.main.A = newA
	c.main.F = (c.main.F & FlagC) | sz53pTable[newA]
	return 18
}

// execBlock implements the sixteen LDI/LDD/CPI/CPD/INI/IND/OUTI/OUTD
// instructions and their repeating -IR/-DR forms, selected by y (direction
// and repeat) and z (transfer/compare/in/out).
func (c *CPU) execBlock(y, z uint8) int {
	repeat := y >= 6
	step := int32(1)
	if y == 5 || y == 7 {
		step = -1
	}

	var cont bool
	switch z {
	case 0:
		cont = c.blockLD(step)
	case 1:
		cont = c.blockCP(step)
	case 2:
		cont = c.blockIN(step)
	default:
		cont = c.blockOUT(step)
	}

	if repeat && cont {
		c.PC -= 2
		return 21
	}
	return 16
}

func (c *CPU) blockLD(step int32) bool {
	hl, de, bc := c.main.hl(), c.main.de(), c.main.bc()
	v := c.mem.FetchByte(hl)
	c.mem.StoreByte(de, v)
	c.main.setHL(uint16(int32(hl) + step))
	c.main.setDE(uint16(int32(de) + step))
	bc--
	c.main.setBC(bc)

	n := v + c.main.A
	f := c.main.F & (FlagC | FlagZ | FlagS)
	f |= bsel(bc != 0, FlagP, 0)
	f |= n & Flag3
	f |= bsel(n&0x02 != 0, Flag5, 0)
	c.main.F = f
	return bc != 0
}

func (c *CPU) blockCP(step int32) bool {
	hl, bc := c.main.hl(), c.main.bc()
	v := c.mem.FetchByte(hl)
	result, f := subByte(c.main.A, v)
	c.main.setHL(uint16(int32(hl) + step))
	bc--
	c.main.setBC(bc)

	n := result
	if f&FlagH != 0 {
		n--
	}
	f = (f & (FlagC | FlagN | FlagZ | FlagS)) | bsel(bc != 0, FlagP, 0)
	f |= n & Flag3
	f |= bsel(n&0x02 != 0, Flag5, 0)
	c.main.F = f
	return bc != 0 && f&FlagZ == 0
}

func (c *CPU) blockIN(step int32) bool {
	hl := c.main.hl()
	v := c.readPort(c.main.C)
	c.mem.StoreByte(hl, v)
	c.main.setHL(uint16(int32(hl) + step))
	c.main.B--
	c.main.F = (c.main.F & FlagC) | FlagN | sz53Table[c.main.B] | bsel(c.main.B == 0, FlagZ, 0)
	return c.main.B != 0
}

func (c *CPU) blockOUT(step int32) bool {
	hl := c.main.hl()
	v := c.mem.FetchByte(hl)
	c.writePort(c.main.C, v)
	c.main.setHL(uint16(int32(hl) + step))
	c.main.B--
	c.main.F = (c.main.F & FlagC) | FlagN | sz53Table[c.main.B] | bsel(c.main.B == 0, FlagZ, 0)
	return c.main.B != 0
}
