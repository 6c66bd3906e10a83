package uisave_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fmarker/extractor/internal/testutil"
	"github.com/fmarker/extractor/internal/uisave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, r *uisave.SectionReader) ([]*uisave.Section, error) {
	t.Helper()
	var sections []*uisave.Section
	for {
		s, err := r.Next()
		if err == io.EOF {
			return sections, nil
		}
		if err != nil {
			return sections, err
		}
		sections = append(sections, s)
	}
}

func TestSectionReader_Sections(t *testing.T) {
	data := testutil.Container(
		testutil.Section{Tag: 0x01, Payload: []byte("hello")},
		testutil.Section{Tag: 0x11, Payload: []byte{0x00, 0x01, 0x02}},
		testutil.Section{Tag: 0x2A, Payload: nil},
	)

	sections, err := readAll(t, uisave.NewSectionReader(data))
	require.NoError(t, err)
	require.Len(t, sections, 3)

	assert.Equal(t, uisave.SectionTag(0x01), sections[0].Tag())
	assert.Equal(t, uint32(5), sections[0].Header.Length)
	assert.Equal(t, uisave.SectionsOffset, sections[0].Offset)
	assert.Equal(t, []byte("hello"), sections[0].Deobfuscated())
	assert.Equal(t, testutil.Obfuscate([]byte("hello")), sections[0].Payload, "payload is returned obfuscated")

	assert.Equal(t, uisave.TagWaymarks, sections[1].Tag())
	assert.Equal(t, []byte{0x00, 0x01, 0x02}, sections[1].Deobfuscated())
	assert.Equal(t, uisave.SectionsOffset+uisave.SectionHeaderSize+5+uisave.SectionTrailerSize, sections[1].Offset)

	assert.Equal(t, uisave.SectionTag(0x2A), sections[2].Tag())
	assert.Empty(t, sections[2].Payload)
}

func TestSectionReader_ReservedHeaderFields(t *testing.T) {
	data := testutil.Container(testutil.Section{Tag: 0x05, Payload: []byte{1}})

	s, err := uisave.NewSectionReader(data).Next()
	require.NoError(t, err)
	assert.Equal(t, uint16(0xAAAA), s.Header.Reserved0)
	assert.Equal(t, uint16(0xBBBB), s.Header.Reserved1)
	assert.Equal(t, uint16(0xCCCC), s.Header.Reserved2)
	assert.Equal(t, uint16(0xDDDD), s.Header.Reserved3)
	assert.Equal(t, uint16(0xEEEE), s.Header.Reserved4)
}

func TestSectionReader_OffsetAdvancesPastTrailer(t *testing.T) {
	data := testutil.Container(testutil.Section{Tag: 0x01, Payload: make([]byte, 10)})

	r := uisave.NewSectionReader(data)
	assert.Equal(t, 32, r.Offset())
	_, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, 32+16+10+4, r.Offset())
	assert.Equal(t, len(data), r.Offset())
}

func TestSectionReader_EmptyContainer(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"nil", nil},
		{"header only", make([]byte, uisave.SectionsOffset)},
		{"short header", make([]byte, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uisave.NewSectionReader(tt.data).Next()
			assert.Equal(t, io.EOF, err)
		})
	}
}

func TestSectionReader_TruncatedHeader(t *testing.T) {
	data := testutil.Container(testutil.Section{Tag: 0x01, Payload: []byte{1, 2}})
	data = append(data, make([]byte, 7)...)

	r := uisave.NewSectionReader(data)
	_, err := r.Next()
	require.NoError(t, err)

	_, err = r.Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, uisave.ErrTruncatedHeader)
}

func TestSectionReader_TruncatedPayload(t *testing.T) {
	data := testutil.Container(testutil.Section{Tag: 0x11, Payload: []byte{1, 2, 3}, Length: 500})

	_, err := uisave.NewSectionReader(data).Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, uisave.ErrTruncatedPayload)
	assert.Contains(t, err.Error(), "0x11")
}

func TestSectionReader_MissingTrailerEndsIteration(t *testing.T) {
	data := testutil.Container(testutil.Section{Tag: 0x01, Payload: []byte{9, 9}})
	data = data[:len(data)-2]

	sections, err := readAll(t, uisave.NewSectionReader(data))
	require.NoError(t, err)
	require.Len(t, sections, 1)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "UISAVE.DAT")
	want := testutil.Container(testutil.Section{Tag: 0x01, Payload: []byte("x")})
	require.NoError(t, os.WriteFile(path, want, 0644))

	got, err := uisave.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := uisave.ReadFile(filepath.Join(t.TempDir(), "missing.dat"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "failed to open save file")
}
