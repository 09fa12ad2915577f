package cpu

// Step fetches the 4-byte instruction at PC, advances PC past it, and
// executes it. PC is advanced before Execute runs so that jump and call
// opcodes which assign to PC are not immediately undone, matching
// spec.md §4.5.4's fetch/advance/execute ordering.
//
// On error, PC has already advanced. An opcode rejected for its reserved
// bits or as unknown changes nothing else, but one that fails on a memory
// access partway through (CALL, RET, POP, PUSHALL, ...) may already have
// moved SP or written memory. Step returns the error unchanged so a
// caller can decide whether to halt or continue.
func (c *CPU) Step() error {
	b0 := c.Mem.ReadByte(c.PC)
	b1 := c.Mem.ReadByte(c.PC + 1)
	b2 := c.Mem.ReadByte(c.PC + 2)
	b3 := c.Mem.ReadByte(c.PC + 3)
	c.PC += 4

	op32 := uint32(b0)<<24 | uint32(b1)<<16 | uint32(b2)<<8 | uint32(b3)
	return c.Execute(op32)
}

// Run steps the CPU until Step returns an error, or limit steps have
// executed (a limit of 0 means unbounded). It returns the number of steps
// taken and the error, if any, that stopped it.
func (c *CPU) Run(limit int) (int, error) {
	steps := 0
	for limit == 0 || steps < limit {
		if err := c.Step(); err != nil {
			return steps, err
		}
		steps++
	}
	return steps, nil
}
