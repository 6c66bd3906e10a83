package util

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "UISAVE", "UISAVE"},
		{"spaces", "my save file", "my_save_file"},
		{"colon", "C:save", "C_save"},
		{"reserved chars", `a*b?c"d<e>f|g`, "a_b_c_d_e_f_g"},
		{"slashes", `a/b\c`, "a_b_c"},
		{"trimmed", "  name  ", "name"},
		{"empty", "", "unnamed"},
		{"blank", "   ", "unnamed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFileName(tt.input))
		})
	}
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "UISAVE", BaseName(filepath.Join("ffxiv", "FFXIV_CHR0040", "UISAVE.DAT")))
	assert.Equal(t, "UISAVE", BaseName("UISAVE"))
	assert.Equal(t, "archive.tar", BaseName("archive.tar.gz"))
	assert.Equal(t, "", BaseName(""))
}
