package z80

import "testing"

func TestEDAdcHL(t *testing.T) {
	c := New(0)
	c.LoadRAM(0, []byte{0xED, 0x4A}) // ADC HL,BC
	c.WriteReg(RegHL, 0x0001)
	c.WriteReg(RegBC, 0xFFFE)
	c.WriteReg(RegF, uint16(FlagC))
	cyc := c.Step()
	if cyc != 15 {
		t.Errorf("ADC HL,BC cycles = %d, want 15", cyc)
	}
	if c.ReadReg(RegHL) != 0x0000 {
		t.Errorf("ADC HL,BC result = %#x, want 0", c.ReadReg(RegHL))
	}
	if c.ReadReg(RegF)&uint16(FlagZ) == 0 {
		t.Error("expected Z flag set")
	}
	if c.ReadReg(RegF)&uint16(FlagC) == 0 {
		t.Error("expected carry out of bit 15")
	}
}

func TestEDSbcHL(t *testing.T) {
	c := New(0)
	c.LoadRAM(0, []byte{0xED, 0x42}) // SBC HL,BC
	c.WriteReg(RegHL, 0x0000)
	c.WriteReg(RegBC, 0x0001)
	c.WriteReg(RegF, 0)
	c.Step()
	if c.ReadReg(RegHL) != 0xFFFF {
		t.Errorf("SBC HL,BC result = %#x, want 0xFFFF", c.ReadReg(RegHL))
	}
	if c.ReadReg(RegF)&uint16(FlagC) == 0 {
		t.Error("expected borrow")
	}
}

func TestEDLoadAndStoreRegPairIndirect(t *testing.T) {
	c := New(0)
	c.LoadRAM(0, []byte{0xED, 0x43, 0x00, 0x50}) // LD (5000h),BC
	c.WriteReg(RegBC, 0xCAFE)
	cyc := c.Step()
	if cyc != 20 {
		t.Errorf("LD (nn),BC cycles = %d, want 20", cyc)
	}
	if c.PeekByte(0x5000) != 0xFE || c.PeekByte(0x5001) != 0xCA {
		t.Errorf("LD (nn),BC stored %#x %#x, want FE CA", c.PeekByte(0x5000), c.PeekByte(0x5001))
	}
}

func TestEDNeg(t *testing.T) {
	c := New(0)
	c.LoadRAM(0, []byte{0xED, 0x44}) // NEG
	c.WriteReg(RegA, 0x01)
	c.Step()
	if c.ReadReg(RegA) != 0xFF {
		t.Errorf("NEG 0x01 = %#x, want 0xFF", c.ReadReg(RegA))
	}
	if c.ReadReg(RegF)&uint16(FlagC) == 0 {
		t.Error("NEG of nonzero operand should set carry")
	}
}

func TestEDRetnCopiesIFF2ToIFF1(t *testing.T) {
	c := New(0)
	c.LoadRAM(0, []byte{0xED, 0x45}) // RETN
	c.WriteReg(RegSP, 0x4000)
	c.LoadRAM(0x4000, []byte{0x34, 0x12})
	c.iff1 = false
	c.iff2 = true
	c.Step()
	if !c.iff1 {
		t.Error("RETN must copy IFF2 into IFF1")
	}
	if c.ReadReg(RegPC) != 0x1234 {
		t.Errorf("RETN PC = %#x, want 0x1234", c.ReadReg(RegPC))
	}
}

func TestEDSetInterruptMode(t *testing.T) {
	c := New(0)
	c.LoadRAM(0, []byte{0xED, 0x56}) // IM 1
	c.Step()
	if c.im != IM1 {
		t.Errorf("IM 1 = %v, want IM1", c.im)
	}
}

func TestEDLoadIARoundTrip(t *testing.T) {
	c := New(0)
	c.LoadRAM(0, []byte{0xED, 0x47, 0xED, 0x57}) // LD I,A ; LD A,I
	c.WriteReg(RegA, 0x42)
	c.iff2 = true
	c.Step() // LD I,A
	if c.ReadReg(RegI) != 0x42 {
		t.Errorf("LD I,A = %#x, want 0x42", c.ReadReg(RegI))
	}
	c.Step() // LD A,I
	if c.ReadReg(RegA) != 0x42 {
		t.Errorf("LD A,I = %#x, want 0x42", c.ReadReg(RegA))
	}
	if c.ReadReg(RegF)&uint16(FlagP) == 0 {
		t.Error("LD A,I should copy IFF2 into P/V")
	}
}

func TestEDRld(t *testing.T) {
	c := New(0)
	c.LoadRAM(0, []byte{0xED, 0x6F}) // RLD
	c.LoadRAM(0x4000, []byte{0x34})
	c.WriteReg(RegHL, 0x4000)
	c.WriteReg(RegA, 0x12)
	cyc := c.Step()
	if cyc != 18 {
		t.Errorf("RLD cycles = %d, want 18", cyc)
	}
	if c.ReadReg(RegA) != 0x13 {
		t.Errorf("RLD A = %#x, want 0x13", c.ReadReg(RegA))
	}
	if c.PeekByte(0x4000) != 0x42 {
		t.Errorf("RLD (HL) = %#x, want 0x42", c.PeekByte(0x4000))
	}
}

func TestEDLdiTransfersAndDecrementsBC(t *testing.T) {
	c := New(0)
	c.LoadRAM(0, []byte{0xED, 0xA0}) // LDI
	c.LoadRAM(0x4000, []byte{0x99})
	c.WriteReg(RegHL, 0x4000)
	c.WriteReg(RegDE, 0x5000)
	c.WriteReg(RegBC, 2)
	cyc := c.Step()
	if cyc != 16 {
		t.Errorf("LDI (non-repeating opcode) cycles = %d, want 16", cyc)
	}
	if c.PeekByte(0x5000) != 0x99 {
		t.Errorf("LDI did not transfer byte, got %#x", c.PeekByte(0x5000))
	}
	if c.ReadReg(RegBC) != 1 {
		t.Errorf("LDI BC = %#x, want 1", c.ReadReg(RegBC))
	}
	if c.ReadReg(RegHL) != 0x4001 || c.ReadReg(RegDE) != 0x5001 {
		t.Error("LDI must increment both HL and DE")
	}
}

func TestEDLdirRepeatsUntilBCZero(t *testing.T) {
	c := New(0)
	c.LoadRAM(0, []byte{0xED, 0xB0}) // LDIR
	c.LoadRAM(0x4000, []byte{1, 2})
	c.WriteReg(RegHL, 0x4000)
	c.WriteReg(RegDE, 0x5000)
	c.WriteReg(RegBC, 2)

	cyc := c.Step()
	if cyc != 21 {
		t.Errorf("LDIR repeating step cycles = %d, want 21", cyc)
	}
	if c.ReadReg(RegPC) != 0 {
		t.Errorf("LDIR must rewind PC to repeat, got PC=%#x", c.ReadReg(RegPC))
	}

	cyc = c.Step()
	if cyc != 16 {
		t.Errorf("LDIR terminating step cycles = %d, want 16", cyc)
	}
	if c.ReadReg(RegBC) != 0 {
		t.Errorf("LDIR final BC = %#x, want 0", c.ReadReg(RegBC))
	}
	if c.ReadReg(RegPC) != 2 {
		t.Errorf("LDIR must fall through once BC reaches 0, got PC=%#x", c.ReadReg(RegPC))
	}
}

func TestEDCpirStopsOnMatch(t *testing.T) {
	c := New(0)
	c.LoadRAM(0, []byte{0xED, 0xB1}) // CPIR
	c.LoadRAM(0x4000, []byte{1, 2, 3})
	c.WriteReg(RegHL, 0x4000)
	c.WriteReg(RegBC, 3)
	c.WriteReg(RegA, 2)

	c.Step() // compares 1, no match, BC=2, repeats
	if c.ReadReg(RegPC) != 0 {
		t.Fatal("CPIR should repeat after a non-matching compare")
	}
	c.Step() // compares 2, match, BC=1, must not repeat
	if c.ReadReg(RegPC) != 2 {
		t.Errorf("CPIR must stop once a match is found, PC=%#x", c.ReadReg(RegPC))
	}
	if c.ReadReg(RegF)&uint16(FlagZ) == 0 {
		t.Error("CPIR should set Z on a match")
	}
	if c.ReadReg(RegBC) != 1 {
		t.Errorf("CPIR BC = %#x, want 1", c.ReadReg(RegBC))
	}
}

func TestEDIniAndOuti(t *testing.T) {
	c := New(0)
	c.LoadRAM(0, []byte{0xED, 0xA2, 0xED, 0xA3}) // INI ; OUTI
	c.RegisterInPort(0x10, func(port uint8) uint8 { return 0x55 })
	var outVal uint8
	c.RegisterOutPort(0x10, func(port uint8, v uint8) { outVal = v })
	c.WriteReg(RegHL, 0x4000)
	c.WriteReg(RegC, 0x10)
	c.WriteReg(RegB, 1)

	c.Step() // INI
	if c.PeekByte(0x4000) != 0x55 {
		t.Errorf("INI did not store input byte, got %#x", c.PeekByte(0x4000))
	}
	if c.ReadReg(RegB) != 0 {
		t.Errorf("INI must decrement B, got %#x", c.ReadReg(RegB))
	}
	if c.ReadReg(RegHL) != 0x4001 {
		t.Error("INI must increment HL")
	}

	c.WriteReg(RegB, 1)
	c.WriteReg(RegHL, 0x4000) // point OUTI back at the byte INI stored
	c.Step()                  // OUTI
	if outVal != 0x55 {
		t.Errorf("OUTI wrote %#x, want 0x55", outVal)
	}
}
