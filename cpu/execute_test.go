package cpu_test

import (
	"errors"
	"testing"

	"github.com/lookbusy1344/chip16/cpu"
	"github.com/lookbusy1344/chip16/memory"
)

// TestCallRetRoundTrip pins spec.md §8 scenario 5: CALL reads its target
// through memory rather than jumping to the immediate directly, and RET
// undoes exactly what CALL did to PC and SP.
func TestCallRetRoundTrip(t *testing.T) {
	mem := memory.New()
	if err := mem.Write16(0x1234, 0x5678); err != nil {
		t.Fatalf("seed mem[0x1234]: %v", err)
	}
	c := cpu.NewCPU(mem)
	c.PC = 0xBEEF

	// CALL 0x1234 -> 14 00 34 12
	if err := c.Execute(0x14003412); err != nil {
		t.Fatalf("CALL: %v", err)
	}
	saved, err := mem.Read16(0xFDF0)
	if err != nil {
		t.Fatalf("read saved PC: %v", err)
	}
	if saved != 0xBEEF {
		t.Errorf("mem[0xFDF0] = 0x%04X, want 0xBEEF", saved)
	}
	if c.SP != 0xFDF2 {
		t.Errorf("SP = 0x%04X, want 0xFDF2", c.SP)
	}
	if c.PC != 0x5678 {
		t.Errorf("PC = 0x%04X, want 0x5678", c.PC)
	}

	// RET -> 15 00 00 00
	if err := c.Execute(0x15000000); err != nil {
		t.Fatalf("RET: %v", err)
	}
	if c.PC != 0xBEEF {
		t.Errorf("PC after RET = 0x%04X, want 0xBEEF", c.PC)
	}
	if c.SP != 0xFDF0 {
		t.Errorf("SP after RET = 0x%04X, want 0xFDF0", c.SP)
	}
}

// TestLdiReadsThroughMemory pins spec.md §8 scenario 2: LDI Rx,HHLL loads
// mem[HHLL], not the immediate itself.
func TestLdiReadsThroughMemory(t *testing.T) {
	mem := memory.New()
	if err := mem.Write16(0x2345, 0x0001); err != nil {
		t.Fatalf("seed mem: %v", err)
	}
	c := cpu.NewCPU(mem)

	// LDI R1,0x2345 -> 20 01 45 23
	if err := c.Execute(0x20014523); err != nil {
		t.Fatalf("LDI: %v", err)
	}
	if c.Reg[1] != 0x0001 {
		t.Errorf("Reg[1] = 0x%04X, want 0x0001", c.Reg[1])
	}
}

func TestStepAdvancesPCAndExecutes(t *testing.T) {
	mem := memory.New()
	// ADD R1,R2,R3 at address 0: 42 21 03 00
	if err := mem.LoadBytes(0, []byte{0x42, 0x21, 0x03, 0x00}); err != nil {
		t.Fatalf("load program: %v", err)
	}
	c := cpu.NewCPU(mem)
	c.Reg[1], c.Reg[2] = 2, 3

	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 4 {
		t.Errorf("PC = 0x%04X, want 0x0004", c.PC)
	}
	if c.Reg[3] != 5 {
		t.Errorf("Reg[3] = %d, want 5", c.Reg[3])
	}
}

func TestInvalidOpcodeReturnsTypedError(t *testing.T) {
	c := cpu.NewCPU(memory.New())
	err := c.Execute(0xFF000000)
	var target *cpu.InvalidOpcodeError
	if !errors.As(err, &target) {
		t.Fatalf("Execute(0xFF..) error = %v (%T), want *InvalidOpcodeError", err, err)
	}
}

// TestReservedBitsRejected pins spec.md §4.5.1: a MOV whose reserved field
// bits are nonzero is an invalid opcode, not a silently-ignored operand.
func TestReservedBitsRejected(t *testing.T) {
	c := cpu.NewCPU(memory.New())
	// MOV Rx,Ry is 0x24; its low word must be zero. Set a stray bit in the
	// low byte to violate maskRegReg.
	err := c.Execute(0x24120001)
	var target *cpu.InvalidOpcodeError
	if !errors.As(err, &target) {
		t.Fatalf("Execute with reserved bits set error = %v, want *InvalidOpcodeError", err)
	}
}

func TestVBlankSignalsAttachedEvent(t *testing.T) {
	c := cpu.NewCPU(memory.New())
	ev := cpu.NewVBlankEvent()
	c.SetVBlank(ev)

	if err := c.Execute(0x02000000); err != nil {
		t.Fatalf("VBLNK: %v", err)
	}
	if !ev.Poll() {
		t.Error("expected a pending vblank signal")
	}
}

func TestEncodeExecuteRoundTrip(t *testing.T) {
	// ADD R1,R2,R3 assembled bytes from spec.md §8 scenario 1: 42 21 03 00.
	mem := memory.New()
	if err := mem.LoadBytes(0, []byte{0x42, 0x21, 0x03, 0x00}); err != nil {
		t.Fatalf("load: %v", err)
	}
	c := cpu.NewCPU(mem)
	c.Reg[1], c.Reg[2] = 10, 20
	if _, err := c.Run(1); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if c.Reg[3] != 30 {
		t.Errorf("Reg[3] = %d, want 30", c.Reg[3])
	}
}
