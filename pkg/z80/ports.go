package z80

// InPortFunc reads a byte from a host-defined input port.
type InPortFunc func(port uint8) uint8

// OutPortFunc writes a byte to a host-defined output port.
type OutPortFunc func(port uint8, value uint8)

// ports is the 256-entry input/output callback gateway IN/OUT dispatch
// through. Grounded on the callback-array pattern used for device dispatch
// in KTStephano-GVM/vm/devices.go, cut down to the Z80's flat 256-slot port
// space (no device-ID routing is needed — a port IS the address).
type ports struct {
	in  [256]InPortFunc
	out [256]OutPortFunc
}

// readPort returns 0xFF when no handler is registered, per spec.md §4.F.
func (c *CPU) readPort(port uint8) uint8 {
	if fn := c.in[port]; fn != nil {
		return fn(port)
	}
	c.reportUnhandledPort(port)
	return 0xFF
}

// writePort drops the write, reporting ErrUnhandledPort, when no handler is
// registered.
func (c *CPU) writePort(port uint8, value uint8) {
	if fn := c.out[port]; fn != nil {
		fn(port, value)
		return
	}
	c.reportUnhandledPort(port)
}

func (c *CPU) reportUnhandledPort(port uint8) {
	c.errs.push(CoreError{
		Kind:    ErrUnhandledPort,
		Message: "no handler registered",
		PC:      c.PC,
		Cycle:   c.TotalCycles,
	})
}

// RegisterInPort installs the handler invoked when IN reads from port.
func (c *CPU) RegisterInPort(port uint8, fn InPortFunc) {
	c.in[port] = fn
}

// RegisterOutPort installs the handler invoked when OUT writes to port.
func (c *CPU) RegisterOutPort(port uint8, fn OutPortFunc) {
	c.out[port] = fn
}
