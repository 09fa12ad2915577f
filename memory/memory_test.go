package memory_test

import (
	"errors"
	"testing"

	"github.com/lookbusy1344/chip16/memory"
)

func TestNewIsZeroed(t *testing.T) {
	m := memory.New()
	for addr := 0; addr < memory.Size; addr += 4096 {
		if got := m.ReadByte(uint16(addr)); got != 0 {
			t.Fatalf("ReadByte(0x%04X) = %d, want 0", addr, got)
		}
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		addr uint16
		val  uint16
	}{
		{"low address", 0x0000, 0x1234},
		{"mid address", 0x4000, 0xBEEF},
		{"top valid address", memory.MaxWordAddress, 0xFFFF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := memory.New()
			if err := m.Write16(tt.addr, tt.val); err != nil {
				t.Fatalf("Write16: %v", err)
			}
			got, err := m.Read16(tt.addr)
			if err != nil {
				t.Fatalf("Read16: %v", err)
			}
			if got != tt.val&0xFFFF {
				t.Errorf("Read16(0x%04X) = 0x%04X, want 0x%04X", tt.addr, got, tt.val)
			}
		})
	}
}

func TestLittleEndianByteOrder(t *testing.T) {
	m := memory.New()
	if err := m.Write16(0x10, 0x1234); err != nil {
		t.Fatalf("Write16: %v", err)
	}
	if got := m.ReadByte(0x10); got != 0x34 {
		t.Errorf("low byte = 0x%02X, want 0x34", got)
	}
	if got := m.ReadByte(0x11); got != 0x12 {
		t.Errorf("high byte = 0x%02X, want 0x12", got)
	}
}

func TestWriteOutOfRange(t *testing.T) {
	m := memory.New()
	err := m.Write16(0xFFFF, 0x0001)
	if err == nil {
		t.Fatal("expected AddressOutOfRangeError, got nil")
	}
	var oor *memory.AddressOutOfRangeError
	if !errors.As(err, &oor) {
		t.Fatalf("expected *AddressOutOfRangeError, got %T", err)
	}
}

func TestReadOutOfRange(t *testing.T) {
	m := memory.New()
	if _, err := m.Read16(0xFFFF); err == nil {
		t.Fatal("expected AddressOutOfRangeError, got nil")
	}
}

func TestClear16(t *testing.T) {
	m := memory.New()
	if err := m.Write16(0x20, 0xABCD); err != nil {
		t.Fatalf("Write16: %v", err)
	}
	if err := m.Clear16(0x20); err != nil {
		t.Fatalf("Clear16: %v", err)
	}
	got, err := m.Read16(0x20)
	if err != nil {
		t.Fatalf("Read16: %v", err)
	}
	if got != 0 {
		t.Errorf("after Clear16, Read16 = 0x%04X, want 0", got)
	}
}

func TestLoadBytes(t *testing.T) {
	m := memory.New()
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	if err := m.LoadBytes(0x100, payload); err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	for i, want := range payload {
		if got := m.ReadByte(uint16(0x100 + i)); got != want {
			t.Errorf("byte %d = 0x%02X, want 0x%02X", i, got, want)
		}
	}
}
