package z80

// Memory is the address-space contract the executor reads and writes
// through. A host embedding the core may substitute its own implementation
// (e.g. to add memory-mapped peripherals); FlatMemory is the default dense
// 64 KiB implementation.
type Memory interface {
	FetchByte(addr uint16) uint8
	FetchWord(addr uint16) uint16
	StoreByte(addr uint16, value uint8)
	StoreWord(addr uint16, value uint16)
}

// defaultROMSize matches original_source/src/memory/mem.h's ROM_SIZE: 8 KiB.
const defaultROMSize = 0x2000

// FlatMemory is a single dense 64 KiB byte array with a ROM/RAM partition.
// Reads succeed anywhere; stores below romEnd are silently dropped (and
// reported through the owning CPU's error channel) rather than aborting the
// instruction that issued them.
type FlatMemory struct {
	data   [65536]byte
	romEnd int

	// onROMWrite, if set, is invoked with the target address whenever a
	// store targets the ROM partition. The CPU wires this to its error
	// channel; tests may leave it nil.
	onROMWrite func(addr uint16)
}

// NewFlatMemory creates a 64 KiB address space with the given ROM size in
// bytes. romSize is clamped to [0, 65536].
func NewFlatMemory(romSize int) *FlatMemory {
	if romSize < 0 {
		romSize = 0
	}
	if romSize > 65536 {
		romSize = 65536
	}
	return &FlatMemory{romEnd: romSize}
}

func (m *FlatMemory) FetchByte(addr uint16) uint8 {
	return m.data[addr]
}

func (m *FlatMemory) FetchWord(addr uint16) uint16 {
	lo := m.data[addr]
	hi := m.data[addr+1]
	return uint16(hi)<<8 | uint16(lo)
}

func (m *FlatMemory) StoreByte(addr uint16, value uint8) {
	if int(addr) < m.romEnd {
		if m.onROMWrite != nil {
			m.onROMWrite(addr)
		}
		return
	}
	m.data[addr] = value
}

func (m *FlatMemory) StoreWord(addr uint16, value uint16) {
	m.StoreByte(addr, uint8(value))
	m.StoreByte(addr+1, uint8(value>>8))
}

// LoadROM copies bytes into [0, min(len(data), romEnd)); it never writes
// past the ROM boundary, matching spec.md §6's load_rom contract.
func (m *FlatMemory) LoadROM(data []byte) {
	n := len(data)
	if n > m.romEnd {
		n = m.romEnd
	}
	copy(m.data[:n], data[:n])
}

// LoadRAM copies bytes starting at addr, wrapping modulo 64 KiB.
func (m *FlatMemory) LoadRAM(addr uint16, data []byte) {
	for i, b := range data {
		m.data[uint16(int(addr)+i)] = b
	}
}

// Snapshot returns a copy of the full 64 KiB backing array.
func (m *FlatMemory) Snapshot() []byte {
	out := make([]byte, len(m.data))
	copy(out, m.data[:])
	return out
}

// Restore replaces the full 64 KiB backing array.
func (m *FlatMemory) Restore(data []byte) error {
	if len(data) != len(m.data) {
		return &CoreError{Kind: ErrInvalidStateRestore, Message: "memory snapshot must be exactly 65536 bytes"}
	}
	copy(m.data[:], data)
	return nil
}
