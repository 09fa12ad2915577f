package utils_test

import (
	"testing"

	"github.com/lookbusy1344/chip16/utils"
)

func TestToHex(t *testing.T) {
	tests := []struct {
		name string
		in   int32
		want uint16
	}{
		{"zero", 0, 0x0000},
		{"positive", 42, 0x002A},
		{"negative one", -1, 0xFFFF},
		{"negative wrap", -32768, 0x8000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.ToHex(tt.in); got != tt.want {
				t.Errorf("ToHex(%d) = 0x%04X, want 0x%04X", tt.in, got, tt.want)
			}
		})
	}
}

func TestToDec(t *testing.T) {
	tests := []struct {
		name string
		in   uint16
		want int32
	}{
		{"zero", 0x0000, 0},
		{"max positive", 0x7FFF, 32767},
		{"min negative", 0x8000, -32768},
		{"all ones", 0xFFFF, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.ToDec(tt.in); got != tt.want {
				t.Errorf("ToDec(0x%04X) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsNeg(t *testing.T) {
	if utils.IsNeg(0x7FFF) {
		t.Error("IsNeg(0x7FFF) = true, want false")
	}
	if !utils.IsNeg(0x8000) {
		t.Error("IsNeg(0x8000) = false, want true")
	}
	if !utils.IsNeg(0xFFFF) {
		t.Error("IsNeg(0xFFFF) = false, want true")
	}
}

func TestComplement(t *testing.T) {
	tests := []struct {
		in, want uint16
	}{
		{0x0000, 0x0000},
		{0x0001, 0xFFFF},
		{0xFFFF, 0x0001},
		{0x8000, 0x8000},
	}
	for _, tt := range tests {
		if got := utils.Complement(tt.in); got != tt.want {
			t.Errorf("Complement(0x%04X) = 0x%04X, want 0x%04X", tt.in, got, tt.want)
		}
	}
}

func TestComplementRoundTrip(t *testing.T) {
	for _, v := range []uint16{0, 1, 0x1234, 0x8000, 0xFFFF} {
		if got := utils.Complement(utils.Complement(v)); got != v {
			t.Errorf("Complement(Complement(0x%04X)) = 0x%04X, want 0x%04X", v, got, v)
		}
	}
}
