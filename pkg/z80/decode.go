package z80

// This file holds the shared decomposition helpers the three dispatch
// tables (exec_main.go, exec_cb.go, exec_ed.go) and the DD/FD wrapper
// (exec_indexed.go) all build on: the standard x/y/z/p/q opcode
// decomposition (http://z80.info/decoding.htm's scheme, the same shape the
// teacher's pkg/cpu/exec.go decoded flag/carry lookups from, generalized
// here from a flat opcode enum to the full prefixed instruction space) and
// the register/condition tables it indexes into.

func decompose(op uint8) (x, y, z, p, q uint8) {
	x = (op >> 6) & 3
	y = (op >> 3) & 7
	z = op & 7
	p = y >> 1
	q = y & 1
	return
}

// regH/regL/hl/setHL read and write the "H"/"L"/"HL" slot of whichever
// register the current prefix selects: the main HL pair with no prefix, or
// IX/IY's high/low byte under DD/FD (the undocumented IXH/IXL/IYH/IYL
// forms). (HL)-as-memory is handled separately by hlAddr, never here.
func (c *CPU) regH() uint8 {
	switch c.idx {
	case idxIX:
		return uint8(c.IX >> 8)
	case idxIY:
		return uint8(c.IY >> 8)
	default:
		return c.main.H
	}
}

func (c *CPU) setRegH(v uint8) {
	switch c.idx {
	case idxIX:
		c.IX = uint16(v)<<8 | (c.IX & 0x00FF)
	case idxIY:
		c.IY = uint16(v)<<8 | (c.IY & 0x00FF)
	default:
		c.main.H = v
	}
}

func (c *CPU) regL() uint8 {
	switch c.idx {
	case idxIX:
		return uint8(c.IX)
	case idxIY:
		return uint8(c.IY)
	default:
		return c.main.L
	}
}

func (c *CPU) setRegL(v uint8) {
	switch c.idx {
	case idxIX:
		c.IX = (c.IX & 0xFF00) | uint16(v)
	case idxIY:
		c.IY = (c.IY & 0xFF00) | uint16(v)
	default:
		c.main.L = v
	}
}

func (c *CPU) hl() uint16 {
	switch c.idx {
	case idxIX:
		return c.IX
	case idxIY:
		return c.IY
	default:
		return c.main.hl()
	}
}

func (c *CPU) setHL(v uint16) {
	switch c.idx {
	case idxIX:
		c.IX = v
	case idxIY:
		c.IY = v
	default:
		c.main.setHL(v)
	}
}

// hlAddr resolves the effective address (HL), or (IX+d)/(IY+d) under a
// DD/FD prefix, fetching and caching the displacement byte the first time
// it is needed for the current instruction and charging the extra 8
// T-states a displaced access costs (spec.md §4.E: "base + 4 for the
// prefix, + 8 more for any (IX+d)/(IY+d) operand").
func (c *CPU) hlAddr() uint16 {
	if c.idx == idxNone {
		return c.main.hl()
	}
	if !c.dispFetched {
		c.dispValue = int8(c.fetchImm8())
		c.dispFetched = true
		c.extraCycles += 8
	}
	base := c.IX
	if c.idx == idxIY {
		base = c.IY
	}
	return uint16(int32(base) + int32(c.dispValue))
}

// reg8 reads the 8-bit operand named by a 3-bit register-table code
// (0..7 = B,C,D,E,H,L,(HL),A). Under a DD/FD prefix, codes 4/5 read
// IXH/IXL or IYH/IYL and code 6 reads the displaced memory operand. This
// unconditional substitution is only correct when the instruction's other
// operand is not itself code 6 — exec_main.go's LD r,r' handler falls back
// to reg8Plain/setReg8Plain for the register side of any LD that pairs a
// register with (HL)/(IX+d)/(IY+d), since those documented forms always
// name true H/L.
func (c *CPU) reg8(code uint8) uint8 {
	switch code {
	case 0:
		return c.main.B
	case 1:
		return c.main.C
	case 2:
		return c.main.D
	case 3:
		return c.main.E
	case 4:
		return c.regH()
	case 5:
		return c.regL()
	case 6:
		return c.mem.FetchByte(c.hlAddr())
	default:
		return c.main.A
	}
}

func (c *CPU) setReg8(code uint8, v uint8) {
	switch code {
	case 0:
		c.main.B = v
	case 1:
		c.main.C = v
	case 2:
		c.main.D = v
	case 3:
		c.main.E = v
	case 4:
		c.setRegH(v)
	case 5:
		c.setRegL(v)
	case 6:
		c.mem.StoreByte(c.hlAddr(), v)
	default:
		c.main.A = v
	}
}

// reg8Plain is reg8/setReg8's (HL)-only variant used by the CB table: CB
// opcodes never read IXH/IXL — under DD/FD the only reachable CB form is
// DDCB/FDCB, which always targets the displaced memory operand regardless
// of its embedded register code (aside from the undocumented copy-back).
func (c *CPU) reg8Plain(code uint8) uint8 {
	switch code {
	case 0:
		return c.main.B
	case 1:
		return c.main.C
	case 2:
		return c.main.D
	case 3:
		return c.main.E
	case 4:
		return c.main.H
	case 5:
		return c.main.L
	case 6:
		return c.mem.FetchByte(c.main.hl())
	default:
		return c.main.A
	}
}

func (c *CPU) setReg8Plain(code uint8, v uint8) {
	switch code {
	case 0:
		c.main.B = v
	case 1:
		c.main.C = v
	case 2:
		c.main.D = v
	case 3:
		c.main.E = v
	case 4:
		c.main.H = v
	case 5:
		c.main.L = v
	case 6:
		c.mem.StoreByte(c.main.hl(), v)
	default:
		c.main.A = v
	}
}

// regPair reads/writes the "rp" table (BC, DE, HL, SP), substituting IX/IY
// for HL under a DD/FD prefix.
func (c *CPU) regPair(p uint8) uint16 {
	switch p {
	case 0:
		return c.main.bc()
	case 1:
		return c.main.de()
	case 2:
		return c.hl()
	default:
		return c.SP
	}
}

func (c *CPU) setRegPair(p uint8, v uint16) {
	switch p {
	case 0:
		c.main.setBC(v)
	case 1:
		c.main.setDE(v)
	case 2:
		c.setHL(v)
	default:
		c.SP = v
	}
}

// regPair2 reads/writes the "rp2" table (BC, DE, HL, AF) used by PUSH/POP.
func (c *CPU) regPair2(p uint8) uint16 {
	switch p {
	case 0:
		return c.main.bc()
	case 1:
		return c.main.de()
	case 2:
		return c.hl()
	default:
		return c.main.af()
	}
}

func (c *CPU) setRegPair2(p uint8, v uint16) {
	switch p {
	case 0:
		c.main.setBC(v)
	case 1:
		c.main.setDE(v)
	case 2:
		c.setHL(v)
	default:
		c.main.setAF(v)
	}
}

// condition evaluates the "cc" table (NZ,Z,NC,C,PO,PE,P,M) against the
// current flags.
func (c *CPU) condition(y uint8) bool {
	f := c.main.F
	switch y {
	case 0:
		return f&FlagZ == 0
	case 1:
		return f&FlagZ != 0
	case 2:
		return f&FlagC == 0
	case 3:
		return f&FlagC != 0
	case 4:
		return f&FlagP == 0
	case 5:
		return f&FlagP != 0
	case 6:
		return f&FlagS == 0
	default:
		return f&FlagS != 0
	}
}

// reportAnomaly records an ErrArchitecturalAnomaly: the decoder reached a
// table slot a conformant Z80 program never should.
func (c *CPU) reportAnomaly(detail string) {
	c.errs.push(CoreError{
		Kind:    ErrArchitecturalAnomaly,
		Message: detail,
		PC:      c.PC,
		Cycle:   c.TotalCycles,
	})
}
