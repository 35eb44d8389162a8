package z80

// execCB dispatches a bare CB-prefixed opcode (rotate/shift, BIT, RES, SET)
// against the main register file — CB is never combined with DD/FD at this
// entry point; the indexed DDCB/FDCB encoding is handled separately by
// exec_indexed.go's execIndexedCB, which shares the rotate/shift helpers
// below but resolves its operand through the displaced address instead of
// reg8Plain.
func (c *CPU) execCB(op uint8) int {
	x, y, z, _, _ := decompose(op)
	v := c.reg8Plain(z)

	switch x {
	case 0:
		r, f := rotateOrShift(y, v, c.main.F)
		c.setReg8Plain(z, r)
		c.main.F = f
		if z == 6 {
			return 15
		}
		return 8
	case 1:
		c.main.F = bitTest(v, c.main.F, y)
		if z == 6 {
			return 12
		}
		return 8
	case 2:
		c.setReg8Plain(z, v&^(1<<y))
		if z == 6 {
			return 15
		}
		return 8
	default:
		c.setReg8Plain(z, v|(1<<y))
		if z == 6 {
			return 15
		}
		return 8
	}
}

// rotateOrShift implements the CB "rot" table: RLC, RRC, RL, RR, SLA, SRA,
// SLL (undocumented), SRL.
func rotateOrShift(y uint8, v, f uint8) (uint8, uint8) {
	switch y {
	case 0:
		return rlc(v)
	case 1:
		return rrc(v)
	case 2:
		return rl(v, f)
	case 3:
		return rr(v, f)
	case 4:
		return sla(v)
	case 5:
		return sra(v)
	case 6:
		return sll(v)
	default:
		return srl(v)
	}
}
