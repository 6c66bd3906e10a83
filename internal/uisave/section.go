package uisave

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Container layout
const (
	FileHeaderSize     = 16
	CharacterIDSize    = 16
	SectionsOffset     = FileHeaderSize + CharacterIDSize
	SectionHeaderSize  = 16
	SectionTrailerSize = 4
)

// SectionTag identifies the feature a section belongs to.
type SectionTag uint16

// TagWaymarks is the tag of the FMARKER section holding waymark presets.
const TagWaymarks SectionTag = 0x11

var (
	// ErrTruncatedHeader is returned when fewer than SectionHeaderSize bytes remain for a section header.
	ErrTruncatedHeader = errors.New("truncated section header")
	// ErrTruncatedPayload is returned when a section declares more payload than the file holds.
	ErrTruncatedPayload = errors.New("truncated section payload")
)

// SectionHeader is the deobfuscated 16-byte section header.
// Only Tag and Length are understood; the rest must be skipped.
type SectionHeader struct {
	Tag       SectionTag
	Reserved0 uint16
	Reserved1 uint16
	Reserved2 uint16
	Length    uint32
	Reserved3 uint16
	Reserved4 uint16
}

// Section is one top-level chunk of the container.
// Payload is still obfuscated; call Deobfuscated for the plain bytes.
type Section struct {
	Header  SectionHeader
	Offset  int // offset of the header in the file
	Payload []byte
}

// Tag returns the section tag.
func (s *Section) Tag() SectionTag {
	return s.Header.Tag
}

// Deobfuscated returns the plain payload bytes.
func (s *Section) Deobfuscated() []byte {
	return Deobfuscate(s.Payload)
}

// SectionReader walks the section list of a container left to right.
type SectionReader struct {
	data []byte
	off  int
}

// NewSectionReader returns a reader positioned at the first section of data,
// past the file header and character ID.
func NewSectionReader(data []byte) *SectionReader {
	return &SectionReader{data: data, off: SectionsOffset}
}

// Offset returns the offset of the next section header.
func (r *SectionReader) Offset() int {
	return r.off
}

// Next returns the next section, or io.EOF once the end of the data is reached.
func (r *SectionReader) Next() (*Section, error) {
	if r.off >= len(r.data) {
		return nil, io.EOF
	}

	start := r.off
	remaining := len(r.data) - start
	if remaining < SectionHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes left at offset %d", ErrTruncatedHeader, remaining, start)
	}

	var header SectionHeader
	raw := Deobfuscate(r.data[start : start+SectionHeaderSize])
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("reading section header at offset %d: %w", start, err)
	}

	payloadStart := start + SectionHeaderSize
	if uint64(header.Length) > uint64(len(r.data)-payloadStart) {
		return nil, fmt.Errorf("%w: tag 0x%02x at offset %d declares %d bytes, %d left",
			ErrTruncatedPayload, uint16(header.Tag), start, header.Length, len(r.data)-payloadStart)
	}
	payloadEnd := payloadStart + int(header.Length)

	r.off = payloadEnd + SectionTrailerSize

	return &Section{
		Header:  header,
		Offset:  start,
		Payload: r.data[payloadStart:payloadEnd],
	}, nil
}
