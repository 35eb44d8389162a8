package z80

// bank holds one set of the eight 8-bit general-purpose registers. The CPU
// keeps two of these (main and shadow) and swaps them by value on EXX/
// EX AF,AF' rather than indirecting through a pointer, which keeps register
// introspection (ReadReg/WriteReg) simple for a debugger. Word-pair views
// (AF, BC, DE, HL) are always computed on demand from these bytes, never
// stored as a packed struct, so they stay exact across endianness and
// preserve the undocumented F bits on an AF round-trip.
type bank struct {
	A, F, B, C, D, E, H, L uint8
}

func pairHL(hi, lo uint8) uint16 { return uint16(hi)<<8 | uint16(lo) }

func splitPair(v uint16) (hi, lo uint8) { return uint8(v >> 8), uint8(v) }

func (b *bank) af() uint16        { return pairHL(b.A, b.F) }
func (b *bank) setAF(v uint16)     { b.A, b.F = splitPair(v) }
func (b *bank) bc() uint16        { return pairHL(b.B, b.C) }
func (b *bank) setBC(v uint16)     { b.B, b.C = splitPair(v) }
func (b *bank) de() uint16        { return pairHL(b.D, b.E) }
func (b *bank) setDE(v uint16)     { b.D, b.E = splitPair(v) }
func (b *bank) hl() uint16        { return pairHL(b.H, b.L) }
func (b *bank) setHL(v uint16)     { b.H, b.L = splitPair(v) }

// idxMode selects which 16-bit index register (if any) stands in for HL
// during the current instruction, implementing the DD/FD prefix.
type idxMode uint8

const (
	idxNone idxMode = iota
	idxIX
	idxIY
)

// InterruptMode is one of the three Z80 maskable-interrupt acknowledge
// strategies.
type InterruptMode uint8

const (
	IM0 InterruptMode = iota
	IM1
	IM2
)

// registers is the full Z80 register file: main + shadow banks, the two
// 16-bit index registers, stack pointer, program counter, and the
// memory-refresh/interrupt-vector bytes I and R.
type registers struct {
	main, shadow bank

	SP, PC, IX, IY uint16
	I, R           uint8

	iff1, iff2 bool
	im         InterruptMode
	halted     bool
}

func (r *registers) reset() {
	r.main = bank{}
	r.shadow = bank{}
	r.SP, r.PC, r.IX, r.IY = 0, 0, 0, 0
	r.I, r.R = 0, 0
	r.iff1, r.iff2 = false, false
	r.im = IM0
	r.halted = false
}

// bumpR advances the 7-bit rolling R counter, preserving bit 7, by the given
// M1 count (1 for unprefixed fetches, 2 for CB/ED/DD/FD-prefixed fetches).
func (r *registers) bumpR(m1Count uint8) {
	low := (r.R + m1Count) & 0x7F
	r.R = (r.R & 0x80) | low
}

// exx swaps BC, DE, HL with their shadow counterparts. A and F are untouched.
func (r *registers) exx() {
	r.main.B, r.shadow.B = r.shadow.B, r.main.B
	r.main.C, r.shadow.C = r.shadow.C, r.main.C
	r.main.D, r.shadow.D = r.shadow.D, r.main.D
	r.main.E, r.shadow.E = r.shadow.E, r.main.E
	r.main.H, r.shadow.H = r.shadow.H, r.main.H
	r.main.L, r.shadow.L = r.shadow.L, r.main.L
}

// exAFAF swaps AF with its shadow.
func (r *registers) exAFAF() {
	r.main.A, r.shadow.A = r.shadow.A, r.main.A
	r.main.F, r.shadow.F = r.shadow.F, r.main.F
}

// RegKind enumerates the registers exposed to debugger introspection via
// CPU.ReadReg/WriteReg.
type RegKind int

const (
	RegA RegKind = iota
	RegF
	RegB
	RegC
	RegD
	RegE
	RegH
	RegL
	RegA2
	RegF2
	RegB2
	RegC2
	RegD2
	RegE2
	RegH2
	RegL2
	RegAF
	RegBC
	RegDE
	RegHL
	RegAF2
	RegBC2
	RegDE2
	RegHL2
	RegSP
	RegPC
	RegIX
	RegIY
	RegI
	RegR
)

// ReadReg returns the current value of the named register. 8-bit registers
// are returned in the low byte.
func (c *CPU) ReadReg(kind RegKind) uint16 {
	switch kind {
	case RegA:
		return uint16(c.main.A)
	case RegF:
		return uint16(c.main.F)
	case RegB:
		return uint16(c.main.B)
	case RegC:
		return uint16(c.main.C)
	case RegD:
		return uint16(c.main.D)
	case RegE:
		return uint16(c.main.E)
	case RegH:
		return uint16(c.main.H)
	case RegL:
		return uint16(c.main.L)
	case RegA2:
		return uint16(c.shadow.A)
	case RegF2:
		return uint16(c.shadow.F)
	case RegB2:
		return uint16(c.shadow.B)
	case RegC2:
		return uint16(c.shadow.C)
	case RegD2:
		return uint16(c.shadow.D)
	case RegE2:
		return uint16(c.shadow.E)
	case RegH2:
		return uint16(c.shadow.H)
	case RegL2:
		return uint16(c.shadow.L)
	case RegAF:
		return c.main.af()
	case RegBC:
		return c.main.bc()
	case RegDE:
		return c.main.de()
	case RegHL:
		return c.main.hl()
	case RegAF2:
		return c.shadow.af()
	case RegBC2:
		return c.shadow.bc()
	case RegDE2:
		return c.shadow.de()
	case RegHL2:
		return c.shadow.hl()
	case RegSP:
		return c.SP
	case RegPC:
		return c.PC
	case RegIX:
		return c.IX
	case RegIY:
		return c.IY
	case RegI:
		return uint16(c.I)
	case RegR:
		return uint16(c.R)
	}
	return 0
}

// WriteReg sets the named register. 8-bit registers take their value from
// the low byte. Writing RegF (as POP AF does) populates every bit, including
// the undocumented 3/5 bits.
func (c *CPU) WriteReg(kind RegKind, value uint16) {
	b8 := uint8(value)
	switch kind {
	case RegA:
		c.main.A = b8
	case RegF:
		c.main.F = b8
	case RegB:
		c.main.B = b8
	case RegC:
		c.main.C = b8
	case RegD:
		c.main.D = b8
	case RegE:
		c.main.E = b8
	case RegH:
		c.main.H = b8
	case RegL:
		c.main.L = b8
	case RegA2:
		c.shadow.A = b8
	case RegF2:
		c.shadow.F = b8
	case RegB2:
		c.shadow.B = b8
	case RegC2:
		c.shadow.C = b8
	case RegD2:
		c.shadow.D = b8
	case RegE2:
		c.shadow.E = b8
	case RegH2:
		c.shadow.H = b8
	case RegL2:
		c.shadow.L = b8
	case RegAF:
		c.main.setAF(value)
	case RegBC:
		c.main.setBC(value)
	case RegDE:
		c.main.setDE(value)
	case RegHL:
		c.main.setHL(value)
	case RegAF2:
		c.shadow.setAF(value)
	case RegBC2:
		c.shadow.setBC(value)
	case RegDE2:
		c.shadow.setDE(value)
	case RegHL2:
		c.shadow.setHL(value)
	case RegSP:
		c.SP = value
	case RegPC:
		c.PC = value
	case RegIX:
		c.IX = value
	case RegIY:
		c.IY = value
	case RegI:
		c.I = b8
	case RegR:
		c.R = b8
	}
}
