// Package testutil builds synthetic UI save containers for tests.
package testutil

import "encoding/binary"

// Layout constants, kept independent of the uisave package on purpose so
// tests cross-check the reader against a second encoding.
const (
	xorKey           = 0x31
	containerHeader  = 32
	sectionHeader    = 16
	sectionTrailer   = 4
	tablePrefix      = 16
	tableSuffix      = 4
	presetCount      = 30
	waymarksPerBlock = 8
	presetBlockSize  = waymarksPerBlock*12 + 8

	// WaymarkTableSize is the size of a complete waymark table payload.
	WaymarkTableSize = tablePrefix + presetCount*presetBlockSize + tableSuffix
)

// Section is a plain (not yet obfuscated) section.
type Section struct {
	Tag     uint16
	Payload []byte
	// Length overrides the declared payload length when non-zero.
	Length uint32
}

// PresetBlock is one raw preset record of the waymark table.
type PresetBlock struct {
	Waymarks  [waymarksPerBlock][3]int32
	Enabled   uint8
	Reserved  uint8
	Zone      uint16
	CreatedAt uint32
}

// Obfuscate XORs data with the container key.
func Obfuscate(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ xorKey
	}
	return out
}

// SectionBytes encodes a single obfuscated section including its trailer.
func SectionBytes(s Section) []byte {
	length := s.Length
	if length == 0 {
		length = uint32(len(s.Payload))
	}

	header := make([]byte, sectionHeader)
	binary.LittleEndian.PutUint16(header[0:2], s.Tag)
	binary.LittleEndian.PutUint16(header[2:4], 0xAAAA)
	binary.LittleEndian.PutUint16(header[4:6], 0xBBBB)
	binary.LittleEndian.PutUint16(header[6:8], 0xCCCC)
	binary.LittleEndian.PutUint32(header[8:12], length)
	binary.LittleEndian.PutUint16(header[12:14], 0xDDDD)
	binary.LittleEndian.PutUint16(header[14:16], 0xEEEE)

	out := make([]byte, 0, sectionHeader+len(s.Payload)+sectionTrailer)
	out = append(out, Obfuscate(header)...)
	out = append(out, Obfuscate(s.Payload)...)
	out = append(out, 0x01, 0x02, 0x03, 0x04)
	return out
}

// Container builds a full save file: file header, character ID, then sections.
func Container(sections ...Section) []byte {
	out := make([]byte, containerHeader)
	for i := range out {
		out[i] = byte(i)
	}
	for _, s := range sections {
		out = append(out, SectionBytes(s)...)
	}
	return out
}

// WaymarkTable builds a plain waymark table payload. Keys of blocks are
// 0-based preset indexes; missing presets are left zeroed.
func WaymarkTable(blocks map[int]PresetBlock) []byte {
	out := make([]byte, WaymarkTableSize)
	for i := 0; i < tablePrefix; i++ {
		out[i] = 0x5A
	}
	for idx, block := range blocks {
		off := tablePrefix + idx*presetBlockSize
		for _, w := range block.Waymarks {
			binary.LittleEndian.PutUint32(out[off:], uint32(w[0]))
			binary.LittleEndian.PutUint32(out[off+4:], uint32(w[1]))
			binary.LittleEndian.PutUint32(out[off+8:], uint32(w[2]))
			off += 12
		}
		out[off] = block.Enabled
		out[off+1] = block.Reserved
		binary.LittleEndian.PutUint16(out[off+2:], block.Zone)
		binary.LittleEndian.PutUint32(out[off+4:], block.CreatedAt)
	}
	return out
}
