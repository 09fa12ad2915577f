package rom_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/lookbusy1344/chip16/memory"
	"github.com/lookbusy1344/chip16/rom"
)

func buildCH16(version byte, size uint32, start uint16, checksum uint32, payload []byte) []byte {
	buf := make([]byte, rom.HeaderSize+len(payload))
	copy(buf[0:4], "CH16")
	buf[4] = 0 // reserved
	buf[5] = version
	binary.LittleEndian.PutUint32(buf[6:10], size)
	binary.LittleEndian.PutUint16(buf[10:12], start)
	binary.LittleEndian.PutUint32(buf[12:16], checksum)
	copy(buf[rom.HeaderSize:], payload)
	return buf
}

func TestLoadHeaderedROM(t *testing.T) {
	payload := []byte{0x00, 0x01, 0x02, 0x03}
	data := buildCH16(0x11, uint32(len(payload)), 0x1234, 0xDEADBEEF, payload)

	r, err := rom.Load(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !r.HasHeader {
		t.Fatal("expected HasHeader = true")
	}
	if r.Header.Version() != "1.1" {
		t.Errorf("Version() = %q, want \"1.1\"", r.Header.Version())
	}
	if r.Header.StartAddress != 0x1234 {
		t.Errorf("StartAddress = 0x%04X, want 0x1234", r.Header.StartAddress)
	}
	if r.Header.Checksum != 0xDEADBEEF {
		t.Errorf("Checksum = 0x%08X, want 0xDEADBEEF", r.Header.Checksum)
	}
	if !bytes.Equal(r.Payload, payload) {
		t.Errorf("Payload = %v, want %v", r.Payload, payload)
	}
}

func TestLoadHeaderlessROM(t *testing.T) {
	data := []byte{0x20, 0x01, 0x45, 0x23}

	r, err := rom.Load(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.HasHeader {
		t.Fatal("expected HasHeader = false")
	}
	if r.Header.Version() != "1.0" {
		t.Errorf("Version() = %q, want \"1.0\"", r.Header.Version())
	}
	if r.Header.StartAddress != 0 {
		t.Errorf("StartAddress = 0x%04X, want 0", r.Header.StartAddress)
	}
	if !bytes.Equal(r.Payload, data) {
		t.Errorf("Payload = %v, want %v", r.Payload, data)
	}
}

func TestChecksumRoundTrip(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog")

	// Build once to compute the real checksum, then rebuild with it declared.
	partial := buildCH16(0x10, uint32(len(payload)), 0, 0, payload)
	r0, err := rom.Load(bytes.NewReader(partial))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	checksum := r0.CalcChecksum()

	full := buildCH16(0x10, uint32(len(payload)), 0, checksum, payload)
	r1, err := rom.Load(bytes.NewReader(full))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := r1.VerifyChecksum(); err != nil {
		t.Errorf("VerifyChecksum: %v", err)
	}
}

func TestChecksumMismatch(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03}
	data := buildCH16(0x10, uint32(len(payload)), 0, 0x00000000, payload)

	r, err := rom.Load(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	err = r.VerifyChecksum()
	if err == nil {
		t.Fatal("expected ChecksumMismatchError, got nil")
	}
	var mismatch *rom.ChecksumMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *ChecksumMismatchError, got %T", err)
	}
}

func TestSizeMismatchIsMalformed(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03}
	data := buildCH16(0x10, 999, 0, 0, payload)

	_, err := rom.Load(bytes.NewReader(data))
	if err == nil {
		t.Fatal("expected MalformedROMError, got nil")
	}
	var malformed *rom.MalformedROMError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *MalformedROMError, got %T", err)
	}
}

func TestCopyIntoMemory(t *testing.T) {
	payload := []byte{0xAA, 0xBB, 0xCC}
	data := buildCH16(0x10, uint32(len(payload)), 0, 0, payload)

	r, err := rom.Load(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	m := memory.New()
	if err := r.CopyInto(m); err != nil {
		t.Fatalf("CopyInto: %v", err)
	}
	for i, want := range payload {
		if got := m.ReadByte(uint16(i)); got != want {
			t.Errorf("memory[%d] = 0x%02X, want 0x%02X", i, got, want)
		}
	}
}
