package inst

import "strconv"

type cursor struct {
	r     ByteReader
	pc    uint16
	bytes []uint8
}

func (c *cursor) next() uint8 {
	v := c.r.FetchByte(c.pc)
	c.bytes = append(c.bytes, v)
	c.pc++
	return v
}

func (c *cursor) next16() uint16 {
	lo := c.next()
	hi := c.next()
	return uint16(hi)<<8 | uint16(lo)
}

// Disassemble decodes exactly one instruction starting at addr and returns
// its address, raw bytes, and assembly text.
func Disassemble(r ByteReader, addr uint16) Instruction {
	cur := &cursor{r: r, pc: addr}
	text := cur.decodeOpcode("")
	return Instruction{Addr: addr, Bytes: cur.bytes, Text: text}
}

// decodeOpcode decodes one instruction's opcode byte (and everything that
// follows it), with idx set to "IX"/"IY" while unwinding a DD/FD prefix and
// "" otherwise.
func (c *cursor) decodeOpcode(idx string) string {
	op := c.next()
	switch op {
	case 0xCB:
		if idx != "" {
			d := int8(c.next())
			sub := c.next()
			return c.decodeIndexedCB(idx, d, sub)
		}
		sub := c.next()
		return c.decodeCB(sub)
	case 0xED:
		sub := c.next()
		return c.decodeED(sub)
	case 0xDD:
		return c.decodeOpcode("IX")
	case 0xFD:
		return c.decodeOpcode("IY")
	default:
		return c.decodeMain(op, idx)
	}
}

// reg8Name names the z/y register-table slot, substituting IXH/IXL or
// IYH/IYL for H/L and "(IX+d)"/"(IY+d)" for (HL) when idx is set. For code
// 6 under a prefix it reads the displacement byte itself (via dispOperand),
// so a caller that also reads an immediate, like LD (IX+d),n, must call it
// before reading the immediate that follows the displacement.
func (c *cursor) reg8Name(code uint8, idx string) string {
	if idx != "" {
		switch code {
		case 4:
			return idx + "H"
		case 5:
			return idx + "L"
		case 6:
			return c.dispOperand(idx)
		}
	}
	return reg8Names[code]
}

func (c *cursor) dispOperand(idx string) string {
	return formatDisp(idx, int8(c.next()))
}

func rpName(p uint8, idx string) string {
	if idx != "" && p == 2 {
		return idx
	}
	return rpNames[p]
}

func rp2Name(p uint8, idx string) string {
	if idx != "" && p == 2 {
		return idx
	}
	return rp2Names[p]
}

func (c *cursor) decodeMain(op uint8, idx string) string {
	x, y, z, p, q := decompose(op)

	switch x {
	case 0:
		return c.decodeMainX0(y, z, p, q, idx)
	case 1:
		if z == 6 && y == 6 {
			return "HALT"
		}
		// LD r,(IX+d) and LD (IX+d),r name the true H/L register, never
		// IXH/IXL, matching the executor.
		yIdx, zIdx := idx, idx
		if z == 6 {
			yIdx = ""
		}
		if y == 6 {
			zIdx = ""
		}
		return "LD " + c.reg8Name(y, yIdx) + "," + c.reg8Name(z, zIdx)
	case 2:
		return aluNames[y] + c.reg8Name(z, idx)
	default:
		return c.decodeMainX3(y, z, p, q, idx)
	}
}

func (c *cursor) decodeMainX0(y, z, p, q uint8, idx string) string {
	switch z {
	case 0:
		switch {
		case y == 0:
			return "NOP"
		case y == 1:
			return "EX AF,AF'"
		case y == 2:
			d := int8(c.next())
			return "DJNZ " + relTarget(c.pc, d)
		case y == 3:
			d := int8(c.next())
			return "JR " + relTarget(c.pc, d)
		default:
			d := int8(c.next())
			return "JR " + ccNames[y-4] + "," + relTarget(c.pc, d)
		}
	case 1:
		if q == 0 {
			nn := c.next16()
			return "LD " + rpName(p, idx) + "," + hex16(nn)
		}
		return "ADD " + idxOr(idx, "HL") + "," + rpName(p, idx)
	case 2:
		switch {
		case q == 0 && p == 0:
			return "LD (BC),A"
		case q == 0 && p == 1:
			return "LD (DE),A"
		case q == 0 && p == 2:
			return "LD (" + hex16(c.next16()) + ")," + idxOr(idx, "HL")
		case q == 0:
			return "LD (" + hex16(c.next16()) + "),A"
		case p == 0:
			return "LD A,(BC)"
		case p == 1:
			return "LD A,(DE)"
		case p == 2:
			return "LD " + idxOr(idx, "HL") + ",(" + hex16(c.next16()) + ")"
		default:
			return "LD A,(" + hex16(c.next16()) + ")"
		}
	case 3:
		verb := "INC "
		if q != 0 {
			verb = "DEC "
		}
		return verb + rpName(p, idx)
	case 4:
		return "INC " + c.reg8Name(y, idx)
	case 5:
		return "DEC " + c.reg8Name(y, idx)
	case 6:
		return c.decodeLoadImm(y, idx)
	default:
		return [8]string{"RLCA", "RRCA", "RLA", "RRA", "DAA", "CPL", "SCF", "CCF"}[y]
	}
}

func (c *cursor) decodeLoadImm(y uint8, idx string) string {
	dst := c.reg8Name(y, idx)
	n := c.next()
	return "LD " + dst + "," + hex8(n)
}

func (c *cursor) decodeMainX3(y, z, p, q uint8, idx string) string {
	switch z {
	case 0:
		return "RET " + ccNames[y]
	case 1:
		if q == 0 {
			return "POP " + rp2Name(p, idx)
		}
		switch p {
		case 0:
			return "RET"
		case 1:
			return "EXX"
		case 2:
			return "JP (" + idxOr(idx, "HL") + ")"
		default:
			return "LD SP," + idxOr(idx, "HL")
		}
	case 2:
		return "JP " + ccNames[y] + "," + hex16(c.next16())
	case 3:
		switch y {
		case 0:
			return "JP " + hex16(c.next16())
		case 2:
			return "OUT (" + hex8(c.next()) + "),A"
		case 3:
			return "IN A,(" + hex8(c.next()) + ")"
		case 4:
			return "EX (SP)," + idxOr(idx, "HL")
		case 5:
			return "EX DE,HL"
		case 6:
			return "DI"
		default:
			return "EI"
		}
	case 4:
		return "CALL " + ccNames[y] + "," + hex16(c.next16())
	case 5:
		if q == 0 {
			return "PUSH " + rp2Name(p, idx)
		}
		if p == 0 {
			return "CALL " + hex16(c.next16())
		}
		return "DB " + hex8(0xDD) // unreachable: prefix bytes never land here
	case 6:
		return aluNames[y] + hex8(c.next())
	default:
		return "RST " + hex8(y*8)
	}
}

func (c *cursor) decodeCB(op uint8) string {
	x, y, z, _, _ := decompose(op)
	operand := reg8Names[z]
	switch x {
	case 0:
		return rotNames[y] + " " + operand
	case 1:
		return "BIT " + strconv.Itoa(int(y)) + "," + operand
	case 2:
		return "RES " + strconv.Itoa(int(y)) + "," + operand
	default:
		return "SET " + strconv.Itoa(int(y)) + "," + operand
	}
}

// decodeIndexedCB decodes the DDCB/FDCB encoding (prefix, CB, displacement,
// opcode — displacement comes before the final opcode byte, unlike every
// other prefixed form): rotate/shift, BIT, RES, or SET against (IX+d)/(IY+d).
func (c *cursor) decodeIndexedCB(idx string, d int8, op uint8) string {
	x, y, z, _, _ := decompose(op)
	addr := formatDisp(idx, d)
	switch x {
	case 0:
		return rotNames[y] + " " + addr + dddCopyBack(z)
	case 1:
		return "BIT " + strconv.Itoa(int(y)) + "," + addr
	case 2:
		return "RES " + strconv.Itoa(int(y)) + "," + addr + dddCopyBack(z)
	default:
		return "SET " + strconv.Itoa(int(y)) + "," + addr + dddCopyBack(z)
	}
}

// dddCopyBack annotates the undocumented register copy-back the DDCB/FDCB
// rotate/shift, RES and SET forms perform (z != 6 also stores the result
// into reg8Names[z]).
func dddCopyBack(z uint8) string {
	if z == 6 {
		return ""
	}
	return " (," + reg8Names[z] + ")"
}

func formatDisp(idx string, d int8) string {
	if d < 0 {
		return "(" + idx + "-" + strconv.Itoa(-int(d)) + ")"
	}
	return "(" + idx + "+" + strconv.Itoa(int(d)) + ")"
}

func (c *cursor) decodeED(op uint8) string {
	x, y, z, p, q := decompose(op)
	switch x {
	case 1:
		return c.decodeEDX1(y, z, p, q)
	case 2:
		if y >= 4 && z <= 3 {
			names := [4][4]string{
				{"LDI", "CPI", "INI", "OUTI"},
				{"LDD", "CPD", "IND", "OUTD"},
				{"LDIR", "CPIR", "INIR", "OTIR"},
				{"LDDR", "CPDR", "INDR", "OTDR"},
			}
			return names[y-4][z]
		}
		return "NOP*"
	default:
		return "NOP*"
	}
}

func (c *cursor) decodeEDX1(y, z, p, q uint8) string {
	switch z {
	case 0:
		if y == 6 {
			return "IN (C)"
		}
		return "IN " + reg8Names[y] + ",(C)"
	case 1:
		if y == 6 {
			return "OUT (C),0"
		}
		return "OUT (C)," + reg8Names[y]
	case 2:
		if q == 0 {
			return "SBC HL," + rpNames[p]
		}
		return "ADC HL," + rpNames[p]
	case 3:
		nn := c.next16()
		if q == 0 {
			return "LD (" + hex16(nn) + ")," + rpNames[p]
		}
		return "LD " + rpNames[p] + ",(" + hex16(nn) + ")"
	case 4:
		return "NEG"
	case 5:
		if y == 1 {
			return "RETI"
		}
		return "RETN"
	case 6:
		return "IM " + strconv.Itoa(int([8]uint8{0, 0, 1, 2, 0, 0, 1, 2}[y]))
	default:
		return [8]string{"LD I,A", "LD R,A", "LD A,I", "LD A,R", "RRD", "RLD", "NOP*", "NOP*"}[y]
	}
}

func idxOr(idx, fallback string) string {
	if idx != "" {
		return idx
	}
	return fallback
}

func relTarget(pcAfter uint16, d int8) string {
	return hex16(uint16(int32(pcAfter) + int32(d)))
}
