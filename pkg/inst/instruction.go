// Package inst disassembles Z80 machine code into assembly text. Unlike the
// superoptimizer's flat per-variant OpCode enum this package replaced, the
// full prefixed instruction space (main/CB/ED/DD/FD/DDCB/FDCB, several
// thousand encodings once every register and displacement combination is
// counted) is decoded directly from its bytes with the same x/y/z/p/q
// scheme pkg/z80/decode.go dispatches with, rather than enumerated ahead of
// time — the two stay in lockstep by construction instead of by upkeep.
package inst

// ByteReader is the minimal read-only memory contract Disassemble needs.
// *z80.FlatMemory (and any z80.Memory implementation) satisfies it.
type ByteReader interface {
	FetchByte(addr uint16) uint8
}

// Instruction is one decoded instruction: its address, raw encoding, and
// assembly text.
type Instruction struct {
	Addr  uint16
	Bytes []uint8
	Text  string
}
