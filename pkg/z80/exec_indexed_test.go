package z80

import "testing"

func TestIndexedAddHLSubstitutesIX(t *testing.T) {
	c := New(0)
	c.LoadRAM(0, []byte{0xDD, 0x09}) // ADD IX,BC
	c.WriteReg(RegIX, 0x1000)
	c.WriteReg(RegBC, 0x0234)
	cyc := c.Step()
	if cyc != 15 { // 11 base + 4 prefix
		t.Errorf("ADD IX,BC cycles = %d, want 15", cyc)
	}
	if c.ReadReg(RegIX) != 0x1234 {
		t.Errorf("ADD IX,BC result = %#x, want 0x1234", c.ReadReg(RegIX))
	}
	if c.ReadReg(RegHL) != 0 {
		t.Error("ADD IX,BC must not touch the real HL pair")
	}
}

func TestIndexedIncUndocumentedIXH(t *testing.T) {
	c := New(0)
	c.LoadRAM(0, []byte{0xDD, 0x24}) // INC IXH
	c.WriteReg(RegIX, 0x00FF)
	c.Step()
	if c.ReadReg(RegIX) != 0x01FF {
		t.Errorf("INC IXH on IX=0x00FF = %#x, want 0x01FF", c.ReadReg(RegIX))
	}
}

func TestIndexedLdIYLImmediate(t *testing.T) {
	c := New(0)
	c.LoadRAM(0, []byte{0xFD, 0x2E, 0x42}) // LD IYL,42h
	cyc := c.Step()
	if cyc != 11 { // 7 base + 4 prefix
		t.Errorf("LD IYL,n cycles = %d, want 11", cyc)
	}
	if uint8(c.ReadReg(RegIY)) != 0x42 {
		t.Errorf("LD IYL,n = %#x, want 0x42", uint8(c.ReadReg(RegIY)))
	}
	if c.ReadReg(RegIY)>>8 != 0 {
		t.Error("LD IYL,n must not touch IYH")
	}
}

func TestIndexedDisplacedLoad(t *testing.T) {
	c := New(0)
	c.LoadRAM(0, []byte{0xDD, 0x7E, 0xFE}) // LD A,(IX-2)
	c.LoadRAM(0x3FFE, []byte{0x77})
	c.WriteReg(RegIX, 0x4000)
	cyc := c.Step()
	if cyc != 19 { // 7 base + 8 displacement + 4 prefix
		t.Errorf("LD A,(IX-2) cycles = %d, want 19", cyc)
	}
	if c.ReadReg(RegA) != 0x77 {
		t.Errorf("LD A,(IX-2) = %#x, want 0x77", c.ReadReg(RegA))
	}
}

func TestIndexedLoadRegisterFromDisplacedUsesTrueH(t *testing.T) {
	// LD H,(IX+2) is documented: it must load the real H, not IXH, even
	// though the source address is computed from IX.
	c := New(0)
	c.LoadRAM(0, []byte{0xDD, 0x66, 0x02}) // LD H,(IX+2)
	c.LoadRAM(0x4002, []byte{0x55})
	c.WriteReg(RegIX, 0x4000)
	cyc := c.Step()
	if cyc != 19 { // 7 base + 8 displacement + 4 prefix
		t.Errorf("LD H,(IX+2) cycles = %d, want 19", cyc)
	}
	if c.ReadReg(RegH) != 0x55 {
		t.Errorf("LD H,(IX+2) must load true H, got H=%#x", c.ReadReg(RegH))
	}
	if c.ReadReg(RegIX)>>8 != 0x40 {
		t.Errorf("LD H,(IX+2) must not touch IXH, got IX=%#x", c.ReadReg(RegIX))
	}
}

func TestIndexedStoreDisplacedFromTrueH(t *testing.T) {
	// LD (IX+2),H is documented: it must store the real H, not IXH.
	c := New(0)
	c.LoadRAM(0, []byte{0xDD, 0x74, 0x02}) // LD (IX+2),H
	c.WriteReg(RegIX, 0x4000)
	c.WriteReg(RegH, 0x99)
	cyc := c.Step()
	if cyc != 19 {
		t.Errorf("LD (IX+2),H cycles = %d, want 19", cyc)
	}
	if c.PeekByte(0x4002) != 0x99 {
		t.Errorf("LD (IX+2),H stored %#x, want true H (0x99)", c.PeekByte(0x4002))
	}
}

func TestDDCBBitDoesNotCopyBack(t *testing.T) {
	c := New(0)
	c.LoadRAM(0, []byte{0xDD, 0xCB, 0x02, 0x46}) // BIT 0,(IX+2)
	c.LoadRAM(0x4002, []byte{0x01})
	c.WriteReg(RegIX, 0x4000)
	cyc := c.Step()
	if cyc != 20 {
		t.Errorf("DDCB BIT cycles = %d, want 20", cyc)
	}
	if c.ReadReg(RegF)&uint16(FlagZ) != 0 {
		t.Error("BIT 0 of 0x01 should clear Z")
	}
	if c.ReadReg(RegB) != 0 {
		t.Error("BIT must never copy back into a plain register")
	}
}

func TestDDCBResCopiesBackToNamedRegister(t *testing.T) {
	// RES 0,(IX+2)  with an embedded z==0 (B) copy-back target.
	c := New(0)
	c.LoadRAM(0, []byte{0xDD, 0xCB, 0x02, 0x80}) // RES 0,(IX+2) with copy-back to B
	c.LoadRAM(0x4002, []byte{0xFF})
	c.WriteReg(RegIX, 0x4000)
	cyc := c.Step()
	if cyc != 23 {
		t.Errorf("DDCB RES cycles = %d, want 23", cyc)
	}
	if c.PeekByte(0x4002) != 0xFE {
		t.Errorf("RES 0,(IX+2) stored %#x, want 0xFE", c.PeekByte(0x4002))
	}
	if c.ReadReg(RegB) != 0xFE {
		t.Errorf("undocumented copy-back: B = %#x, want 0xFE", c.ReadReg(RegB))
	}
}
