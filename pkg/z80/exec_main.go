package z80

// execMain dispatches one unprefixed (or DD/FD-prefixed, via idx) main-table
// opcode and returns the T-states it consumes, not counting the DD/FD
// prefix's own +4 overhead (exec_indexed.go's wrapper adds that once, so
// reg8/setReg8's displaced-operand bookkeeping in decode.go isn't charged
// twice).
func (c *CPU) execMain(op uint8) int {
	x, y, z, p, q := decompose(op)

	switch x {
	case 0:
		return c.execMainX0(op, y, z, p, q)
	case 1:
		if z == 6 && y == 6 {
			c.halted = true
			return 4
		}
		// A memory operand ((HL)/(IX+d)/(IY+d)) always pairs with the real
		// H/L register, never IXH/IXL/IYH/IYL — LD H,(IX+d) and
		// LD (IX+d),H are documented instructions that load/store true H,
		// even though the other half of the pair is a displaced index
		// access. reg8/setReg8 substitute IXH/IXL/IYH/IYL for codes 4/5
		// unconditionally under a prefix, so the register-table operand
		// (never the memory one, which still needs hlAddr's idx-aware
		// displacement handling) must go through the plain accessor
		// whenever its partner is the memory operand.
		var v uint8
		if y == 6 {
			v = c.reg8Plain(z)
		} else {
			v = c.reg8(z)
		}
		if z == 6 {
			c.setReg8Plain(y, v)
		} else {
			c.setReg8(y, v)
		}
		base := 4
		if z == 6 || y == 6 {
			base = 7
		}
		return base + c.extraCycles
	case 2:
		v := c.reg8(z)
		c.aluApply(y, v)
		base := 4
		if z == 6 {
			base = 7
		}
		return base + c.extraCycles
	default:
		return c.execMainX3(y, z, p, q)
	}
}

func (c *CPU) execMainX0(op uint8, y, z, p, q uint8) int {
	switch z {
	case 0:
		switch {
		case y == 0:
			return 4 // NOP
		case y == 1:
			c.exAFAF()
			return 4
		case y == 2:
			d := int8(c.fetchImm8())
			c.main.B--
			if c.main.B != 0 {
				c.PC = uint16(int32(c.PC) + int32(d))
				return 13
			}
			return 8
		case y == 3:
			d := int8(c.fetchImm8())
			c.PC = uint16(int32(c.PC) + int32(d))
			return 12
		default:
			d := int8(c.fetchImm8())
			if c.condition(y - 4) {
				c.PC = uint16(int32(c.PC) + int32(d))
				return 12
			}
			return 7
		}
	case 1:
		if q == 0 {
			c.setRegPair(p, c.fetchImm16())
			return 10
		}
		value := c.regPair(p)
		r, f := addWord(c.hl(), value, c.main.F)
		c.setHL(r)
		c.main.F = f
		return 11
	case 2:
		if q == 0 {
			switch p {
			case 0:
				c.mem.StoreByte(c.main.bc(), c.main.A)
			case 1:
				c.mem.StoreByte(c.main.de(), c.main.A)
			case 2:
				c.mem.StoreWord(c.fetchImm16(), c.hl())
				return 16
			default:
				c.mem.StoreByte(c.fetchImm16(), c.main.A)
				return 13
			}
			return 7
		}
		switch p {
		case 0:
			c.main.A = c.mem.FetchByte(c.main.bc())
		case 1:
			c.main.A = c.mem.FetchByte(c.main.de())
		case 2:
			c.setHL(c.mem.FetchWord(c.fetchImm16()))
			return 16
		default:
			c.main.A = c.mem.FetchByte(c.fetchImm16())
			return 13
		}
		return 7
	case 3:
		if q == 0 {
			c.setRegPair(p, c.regPair(p)+1)
		} else {
			c.setRegPair(p, c.regPair(p)-1)
		}
		return 6
	case 4:
		v := c.reg8(y)
		r, f := incByte(v, c.main.F)
		c.setReg8(y, r)
		c.main.F = f
		base := 4
		if y == 6 {
			base = 11
		}
		return base + c.extraCycles
	case 5:
		v := c.reg8(y)
		r, f := decByte(v, c.main.F)
		c.setReg8(y, r)
		c.main.F = f
		base := 4
		if y == 6 {
			base = 11
		}
		return base + c.extraCycles
	case 6:
		return c.execLoadImm(y)
	default: // z == 7
		return c.execAccumOp(y)
	}
}

// execLoadImm implements LD r[y],n, special-cased because the (HL)/(IX+d)
// form must fetch its displacement byte before its immediate operand —
// reg8/setReg8's lazy hlAddr would fetch them in the wrong order here.
func (c *CPU) execLoadImm(y uint8) int {
	if y != 6 {
		n := c.fetchImm8()
		c.setReg8(y, n)
		return 7
	}
	if c.idx == idxNone {
		addr := c.main.hl()
		n := c.fetchImm8()
		c.mem.StoreByte(addr, n)
		return 10
	}
	d := int8(c.fetchImm8())
	n := c.fetchImm8()
	base := c.IX
	if c.idx == idxIY {
		base = c.IY
	}
	c.mem.StoreByte(uint16(int32(base)+int32(d)), n)
	return 15
}

func (c *CPU) execAccumOp(y uint8) int {
	a, f := c.main.A, c.main.F
	switch y {
	case 0:
		a, f = rlca(a, f)
	case 1:
		a, f = rrca(a, f)
	case 2:
		a, f = rla(a, f)
	case 3:
		a, f = rra(a, f)
	case 4:
		a, f = daa(a, f)
	case 5:
		a, f = cpl(a, f)
	case 6:
		f = scf(a, f)
	default:
		f = ccf(a, f)
	}
	c.main.A, c.main.F = a, f
	return 4
}

func (c *CPU) execMainX3(y, z, p, q uint8) int {
	switch z {
	case 0:
		if c.condition(y) {
			c.PC = c.popWord()
			return 11
		}
		return 5
	case 1:
		if q == 0 {
			c.setRegPair2(p, c.popWord())
			return 10
		}
		switch p {
		case 0:
			c.PC = c.popWord()
			return 10
		case 1:
			c.exx()
			return 4
		case 2:
			c.PC = c.hl()
			return 4
		default:
			c.SP = c.hl()
			return 6
		}
	case 2:
		nn := c.fetchImm16()
		if c.condition(y) {
			c.PC = nn
		}
		return 10
	case 3:
		return c.execMisc(y)
	case 4:
		nn := c.fetchImm16()
		if c.condition(y) {
			c.pushWord(c.PC)
			c.PC = nn
			return 17
		}
		return 10
	case 5:
		if q == 0 {
			c.pushWord(c.regPair2(p))
			return 11
		}
		if p == 0 {
			nn := c.fetchImm16()
			c.pushWord(c.PC)
			c.PC = nn
			return 17
		}
		c.reportAnomaly("prefix byte reached execMainX3 z5")
		return 4
	case 6:
		c.aluApply(y, c.fetchImm8())
		return 7
	default:
		c.pushWord(c.PC)
		c.PC = uint16(y) * 8
		return 11
	}
}

func (c *CPU) execMisc(y uint8) int {
	switch y {
	case 0:
		c.PC = c.fetchImm16()
		return 10
	case 1:
		c.reportAnomaly("CB prefix reached execMisc")
		return 4
	case 2:
		c.writePort(c.fetchImm8(), c.main.A)
		return 11
	case 3:
		c.main.A = c.readPort(c.fetchImm8())
		return 11
	case 4:
		addr := c.SP
		lo := c.mem.FetchByte(addr)
		hi := c.mem.FetchByte(addr + 1)
		v := c.hl()
		c.mem.StoreByte(addr, uint8(v))
		c.mem.StoreByte(addr+1, uint8(v>>8))
		c.setHL(uint16(hi)<<8 | uint16(lo))
		return 19
	case 5:
		d, h := c.main.de(), c.main.hl()
		c.main.setDE(h)
		c.main.setHL(d)
		return 4
	case 6:
		c.iff1, c.iff2 = false, false
		return 4
	default:
		c.iff1, c.iff2 = true, true
		c.suppressInterrupt = true
		return 4
	}
}

// aluApply implements the "alu[y] A,value" table shared by x==2 (register
// operand) and x==3,z==6 (immediate operand).
func (c *CPU) aluApply(y uint8, value uint8) {
	a, f := c.main.A, c.main.F
	switch y {
	case 0:
		c.main.A, c.main.F = addByte(a, value, f)
	case 1:
		c.main.A, c.main.F = adcByte(a, value, f&FlagC)
	case 2:
		c.main.A, c.main.F = subByte(a, value)
	case 3:
		c.main.A, c.main.F = sbcByte(a, value, f&FlagC)
	case 4:
		c.main.A, c.main.F = andByte(a, value)
	case 5:
		c.main.A, c.main.F = xorByte(a, value)
	case 6:
		c.main.A, c.main.F = orByte(a, value)
	default:
		c.main.F = cpByte(a, value)
	}
}
