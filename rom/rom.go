// Package rom parses the CH16 ROM container: a 16-byte header (magic,
// version, size, entry point, checksum) followed by a payload of machine
// code and data.
package rom

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/lookbusy1344/chip16/memory"
)

// HeaderSize is the fixed size of the CH16 header in bytes.
const HeaderSize = 16

// magic is the ASCII signature identifying a CH16 container.
var magic = [4]byte{'C', 'H', '1', '6'}

// crc32Poly is the polynomial the spec requires, in MSB-first (non-reflected)
// form. hash/crc32's table builder only produces tables for the reflected
// (LSB-first) algorithm used by IEEE/Castagnoli, which computes a different
// result for the same nominal polynomial; the spec calls for no reflection,
// so crc32Table below is built and walked MSB-first instead of reusing
// hash/crc32.
const crc32Poly = 0x04C11DB7

var crc32Table = buildCRC32Table(crc32Poly)

func buildCRC32Table(poly uint32) [256]uint32 {
	var table [256]uint32
	for i := 0; i < 256; i++ {
		crc := uint32(i) << 24
		for bit := 0; bit < 8; bit++ {
			if crc&0x80000000 != 0 {
				crc = (crc << 1) ^ poly
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}
	return table
}

// Header holds the decoded fields of a CH16 container header.
type Header struct {
	VersionMajor int
	VersionMinor int
	Size         uint32 // declared ROM size in bytes, from the header
	StartAddress uint16 // entry point
	Checksum     uint32 // declared CRC-32 of the payload
}

// Version returns the header's version as "major.minor".
func (h Header) Version() string {
	return fmt.Sprintf("%d.%d", h.VersionMajor, h.VersionMinor)
}

// ROM is a loaded chip16 cartridge: its header (synthesized with defaults
// for headerless files) and its payload bytes.
type ROM struct {
	Header    Header
	HasHeader bool // false if the input had no CH16 magic
	Payload   []byte
}

// MalformedROMError reports a header or length that could not be parsed.
type MalformedROMError struct {
	Reason string
}

func (e *MalformedROMError) Error() string {
	return fmt.Sprintf("malformed ROM: %s", e.Reason)
}

// ChecksumMismatchError reports that the header's declared checksum does
// not match the payload's computed CRC-32. Per the spec this is not fatal
// to loading; callers decide whether to enforce it.
type ChecksumMismatchError struct {
	Declared uint32
	Computed uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("rom: checksum mismatch: header declares 0x%08X, computed 0x%08X", e.Declared, e.Computed)
}

// Load reads an entire CH16 (or headerless) ROM from r.
//
// If the first four bytes equal the CH16 magic, the next twelve bytes are
// decoded as the header described in the spec and the remainder of the
// stream is the payload. Otherwise the whole stream is treated as a
// headerless payload at offset 0, with default version "1.0" and
// start address 0.
func Load(r io.Reader) (*ROM, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("rom: read: %w", err)
	}

	if len(data) >= 4 && [4]byte{data[0], data[1], data[2], data[3]} == magic {
		if len(data) < HeaderSize {
			return nil, &MalformedROMError{Reason: fmt.Sprintf("header truncated: got %d bytes, want at least %d", len(data), HeaderSize)}
		}

		versionByte := data[5]
		header := Header{
			VersionMajor: int(versionByte >> 4),
			VersionMinor: int(versionByte & 0x0F),
			Size:         binary.LittleEndian.Uint32(data[6:10]),
			StartAddress: binary.LittleEndian.Uint16(data[10:12]),
			Checksum:     binary.LittleEndian.Uint32(data[12:16]),
		}

		payload := data[HeaderSize:]
		if header.Size != 0 && uint32(len(payload)) != header.Size {
			return nil, &MalformedROMError{
				Reason: fmt.Sprintf("declared size 0x%X does not match payload length 0x%X", header.Size, len(payload)),
			}
		}

		return &ROM{Header: header, HasHeader: true, Payload: payload}, nil
	}

	return &ROM{
		Header: Header{
			VersionMajor: 1,
			VersionMinor: 0,
			Size:         uint32(len(data)),
			StartAddress: 0,
		},
		HasHeader: false,
		Payload:   data,
	}, nil
}

// CalcChecksum computes the CRC-32 of the payload: polynomial 0x04C11DB7,
// init 0, xor-out 0xFFFFFFFF, no input/output reflection.
func (r *ROM) CalcChecksum() uint32 {
	crc := uint32(0)
	for _, b := range r.Payload {
		idx := byte(crc>>24) ^ b
		crc = (crc << 8) ^ crc32Table[idx]
	}
	return crc ^ 0xFFFFFFFF
}

// VerifyChecksum reports whether the header's declared checksum matches
// CalcChecksum. Headerless ROMs have no declared checksum to verify and
// always succeed.
func (r *ROM) VerifyChecksum() error {
	if !r.HasHeader {
		return nil
	}
	computed := r.CalcChecksum()
	if computed != r.Header.Checksum {
		return &ChecksumMismatchError{Declared: r.Header.Checksum, Computed: computed}
	}
	return nil
}

// CopyInto writes the ROM's payload into memory starting at address 0, the
// hand-off point between the loader and the CPU's address space.
func (r *ROM) CopyInto(m *memory.Memory) error {
	return m.LoadBytes(0, r.Payload)
}
