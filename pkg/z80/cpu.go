// Package z80 implements the execution core of a Zilog Z80 emulator: the
// register file, flag algebra, 64 KiB address space, multi-table opcode
// decoder/executor, and 256-port I/O gateway. The core is an owned value
// (*CPU) passed explicitly to every operation — there is no package-level
// mutable state, so a host can run any number of independent CPU instances.
package z80

import "sync/atomic"

// CPU is a complete, independently-ownable Z80 processor instance: register
// file, attached address space, port gateway, and interrupt bookkeeping.
// The zero value is not usable; construct with New.
type CPU struct {
	registers
	ports

	mem  Memory
	errs errorChan

	idx idxMode

	// extraCycles accumulates the additional T-states a displaced (HL)
	// style memory access under a DD/FD prefix costs, and the cached
	// displacement byte for the current instruction (fetched at most
	// once per opcode).
	extraCycles int
	dispFetched bool
	dispValue   int8

	// suppressInterrupt implements the EI instruction's one-instruction
	// acceptance delay (spec.md §4.E's interrupt state machine).
	suppressInterrupt bool

	interruptPending atomic.Bool

	// TotalCycles is the running T-state count across every Step call
	// since the last Reset; hosts may use it for throttling or tracing.
	TotalCycles uint64

	romSize int
}

// New creates a CPU with a flat 64 KiB address space, romSize bytes of
// which are read-only starting at address 0.
func New(romSize int) *CPU {
	c := &CPU{
		mem:     NewFlatMemory(romSize),
		romSize: romSize,
	}
	if fm, ok := c.mem.(*FlatMemory); ok {
		fm.onROMWrite = func(addr uint16) {
			c.errs.push(CoreError{
				Kind:    ErrROMWrite,
				Message: "store dropped",
				PC:      c.PC,
				Cycle:   c.TotalCycles,
			})
		}
	}
	c.Reset()
	return c
}

// NewWithMemory creates a CPU backed by a caller-supplied Memory
// implementation, for hosts that need memory-mapped peripherals or a
// non-default ROM layout. LoadROM/LoadRAM are no-ops unless mem also
// implements the corresponding loader methods (FlatMemory does).
func NewWithMemory(mem Memory) *CPU {
	c := &CPU{mem: mem}
	c.Reset()
	return c
}

// Reset clears every register, flag, and interrupt-state field to its
// power-on value. Memory contents are untouched.
func (c *CPU) Reset() {
	c.registers.reset()
	c.idx = idxNone
	c.suppressInterrupt = false
	c.interruptPending.Store(false)
	c.TotalCycles = 0
	c.errs = errorChan{}
}

type romLoader interface{ LoadROM([]byte) }
type ramLoader interface{ LoadRAM(addr uint16, data []byte) }

// LoadROM copies data into [0, min(len(data), romSize)) of the attached
// address space.
func (c *CPU) LoadROM(data []byte) {
	if l, ok := c.mem.(romLoader); ok {
		l.LoadROM(data)
	}
}

// LoadRAM copies data starting at addr (wrapping modulo 64 KiB).
func (c *CPU) LoadRAM(addr uint16, data []byte) {
	if l, ok := c.mem.(ramLoader); ok {
		l.LoadRAM(addr, data)
	}
}

// RaiseInterrupt signals a pending maskable interrupt. It is
// edge-triggered and safe to call from a goroutine other than the one
// driving Step (a host multiplexing the CPU with peripherals). The pending
// flag is cleared the moment the interrupt is accepted.
func (c *CPU) RaiseInterrupt() {
	c.interruptPending.Store(true)
}

// Errors drains and returns every CoreError reported since the last call
// (or since Reset), in the order they occurred.
func (c *CPU) Errors() []CoreError {
	return c.errs.drain()
}

// Halted reports whether the CPU executed a HALT and has not yet accepted
// an interrupt or been reset.
func (c *CPU) Halted() bool { return c.halted }

// PeekByte reads a byte from the attached address space without charging
// any T-states — for debuggers and disassemblers, never for instruction
// execution.
func (c *CPU) PeekByte(addr uint16) uint8 { return c.mem.FetchByte(addr) }

// Step executes exactly one instruction (or, while halted, one
// cycle-charged no-op) and returns the T-states consumed.
func (c *CPU) Step() int {
	suppress := c.suppressInterrupt
	c.suppressInterrupt = false

	if !suppress && c.interruptPending.Load() && c.iff1 {
		c.interruptPending.Store(false)
		cycles := c.acceptInterrupt()
		c.TotalCycles += uint64(cycles)
		return cycles
	}

	if c.halted {
		c.bumpR(1)
		c.TotalCycles += 4
		return 4
	}

	cycles := c.fetchAndExecute()
	c.TotalCycles += uint64(cycles)
	return cycles
}

// acceptInterrupt pushes PC and vectors execution per the current
// interrupt mode, clearing halt and both flip-flops (DI semantics apply
// once an interrupt is accepted, matching real hardware: IFF1/IFF2 are
// cleared on entry so a handler must EI to re-arm nesting).
func (c *CPU) acceptInterrupt() int {
	c.halted = false
	c.iff1 = false
	c.iff2 = false
	c.bumpR(1)
	c.pushWord(c.PC)

	switch c.im {
	case IM1:
		c.PC = 0x0038
		return 13
	case IM2:
		vector := uint16(c.I)<<8 | 0x00FF
		c.PC = c.mem.FetchWord(vector)
		return 19
	default: // IM0: no host instruction-bus contract is specified; a bare
		// RST 38h is the conventional fallback most IM0-unaware hosts
		// rely on (equivalent to the common "interrupting device places
		// 0xFF/RST38 on the bus" configuration).
		c.PC = 0x0038
		return 13
	}
}

func (c *CPU) pushWord(v uint16) {
	c.SP--
	c.mem.StoreByte(c.SP, uint8(v>>8))
	c.SP--
	c.mem.StoreByte(c.SP, uint8(v))
}

func (c *CPU) popWord() uint16 {
	lo := c.mem.FetchByte(c.SP)
	c.SP++
	hi := c.mem.FetchByte(c.SP)
	c.SP++
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) fetchImm8() uint8 {
	v := c.mem.FetchByte(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetchImm16() uint16 {
	v := c.mem.FetchWord(c.PC)
	c.PC += 2
	return v
}

// fetchAndExecute reads and dispatches the prefix chain for one
// instruction, starting fresh (no index override, no cached displacement).
func (c *CPU) fetchAndExecute() int {
	c.idx = idxNone
	c.extraCycles = 0
	c.dispFetched = false

	op := c.fetchImm8()
	switch op {
	case 0xCB:
		c.bumpR(2)
		sub := c.fetchImm8()
		return c.execCB(sub)
	case 0xED:
		c.bumpR(2)
		sub := c.fetchImm8()
		return c.execED(sub)
	case 0xDD:
		c.bumpR(2)
		c.idx = idxIX
		return c.execIndexedEntry()
	case 0xFD:
		c.bumpR(2)
		c.idx = idxIY
		return c.execIndexedEntry()
	default:
		c.bumpR(1)
		return c.execMain(op)
	}
}
