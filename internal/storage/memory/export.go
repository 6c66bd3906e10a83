// internal/storage/memory/export.go
package memory

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	v1 "github.com/fmarker/extractor/internal/storage/memory/export/v1"
	"github.com/fmarker/extractor/internal/util"
	"github.com/vmihailenco/msgpack/v5"
)

// exportFileName builds <source>_<start>.<ext>[.gz]
func (b *Backend) exportFileName() string {
	name := util.SanitizeFileName(util.BaseName(b.run.SourcePath))
	timestamp := b.run.StartTime.Format("20060102_150405")

	ext := "jsonl"
	if b.cfg.Format == FormatMsgpack {
		ext = "msgpack"
	}
	filename := fmt.Sprintf("%s_%s.%s", name, timestamp, ext)
	if b.cfg.CompressOutput {
		filename += ".gz"
	}
	return filename
}

// exportFile writes the run's presets to the output directory
func (b *Backend) exportFile() error {
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := filepath.Join(b.cfg.OutputDir, b.exportFileName())
	err := writeFileAtomic(outputPath, func(w io.Writer) error {
		if !b.cfg.CompressOutput {
			return b.writePresets(w)
		}
		gzWriter := gzip.NewWriter(w)
		if err := b.writePresets(gzWriter); err != nil {
			return err
		}
		if err := gzWriter.Close(); err != nil {
			return fmt.Errorf("failed to finish gzip stream: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	b.lastExportPath = outputPath
	return nil
}

func (b *Backend) writePresets(w io.Writer) error {
	if b.cfg.Format == FormatMsgpack {
		return b.writeMsgpack(w)
	}
	return b.writeJSONLines(w)
}

// writeFileAtomic writes to a temp file next to path and renames it into
// place once write succeeds. On failure nothing is left behind and an
// existing file at path is untouched.
func writeFileAtomic(path string, write func(io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err := write(f); err != nil {
		return err
	}
	if err := f.Chmod(0644); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("failed to move export into place: %w", err)
	}
	return nil
}

// writeJSONLines writes one compact JSON object per preset
func (b *Backend) writeJSONLines(w io.Writer) error {
	for _, p := range b.presets {
		data, err := v1.Marshal(p)
		if err != nil {
			return err
		}
		data = append(data, '\n')
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write preset: %w", err)
		}
	}
	return nil
}

// writeMsgpack writes all presets as one msgpack array
func (b *Backend) writeMsgpack(w io.Writer) error {
	docs := make([]map[string]any, 0, len(b.presets))
	for _, p := range b.presets {
		docs = append(docs, v1.BuildMap(p))
	}
	if err := msgpack.NewEncoder(w).Encode(docs); err != nil {
		return fmt.Errorf("failed to encode msgpack: %w", err)
	}
	return nil
}
