package assembler_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/lookbusy1344/chip16/assembler"
)

func TestAssembleEndToEnd(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []byte
	}{
		{"add trinary", "ADD R1, R2, R3", []byte{0x42, 0x21, 0x03, 0x00}},
		{"ldi reg word", "LDI R1, 0x2345", []byte{0x20, 0x01, 0x45, 0x23}},
		{"drw reg reg word", "DRW r1 r2 0x3456", []byte{0x05, 0x21, 0x56, 0x34}},
		{"flip", "FLIP 1, 1", []byte{0x08, 0x00, 0x00, 0x03}},
		{"nop nullary", "NOP", []byte{0x00, 0x00, 0x00, 0x00}},
		{"comment only", "; just a comment", nil},
		{"blank line", "", nil},
		{"comment after instruction", "RET ; return", []byte{0x15, 0x00, 0x00, 0x00}},
		{"sal aliases shl nibble", "SAL R1, 0x2", []byte{0xB0, 0x01, 0x02, 0x00}},
		{"shl nibble", "SHL R1, 0x2", []byte{0xB0, 0x01, 0x02, 0x00}},
		{"sar register", "SAR R1, R2", []byte{0xB5, 0x21, 0x00, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := assembler.Assemble(tt.source)
			if err != nil {
				t.Fatalf("Assemble(%q): %v", tt.source, err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Assemble(%q) = % X, want % X", tt.source, got, tt.want)
			}
		})
	}
}

func TestAssembleMultiLine(t *testing.T) {
	src := "NOP\nRET\n"
	got, err := assembler.Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	want := []byte{0x00, 0x00, 0x00, 0x00, 0x15, 0x00, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("Assemble(%q) = % X, want % X", src, got, want)
	}
}

func TestAssembleSignatureMismatch(t *testing.T) {
	_, err := assembler.Assemble("ADD R1")
	if err == nil {
		t.Fatal("expected SignatureMismatchError, got nil")
	}
	var mismatch *assembler.SignatureMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *SignatureMismatchError, got %T", err)
	}
}

func TestAssembleUnknownMnemonic(t *testing.T) {
	_, err := assembler.Assemble("FROB R1, R2")
	if err == nil {
		t.Fatal("expected UnknownMnemonicError, got nil")
	}
	var unknown *assembler.UnknownMnemonicError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownMnemonicError, got %T", err)
	}
}

func TestAssembleOverlappingArity(t *testing.T) {
	two, err := assembler.Assemble("ADD R1, R2")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !bytes.Equal(two, []byte{0x41, 0x21, 0x00, 0x00}) {
		t.Errorf("ADD R1,R2 = % X", two)
	}

	three, err := assembler.Assemble("ADD R1, R2, R3")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !bytes.Equal(three, []byte{0x42, 0x21, 0x03, 0x00}) {
		t.Errorf("ADD R1,R2,R3 = % X", three)
	}
}
