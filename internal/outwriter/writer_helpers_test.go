package outwriter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/rankcast/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		value     float64
		expected  string
	}{
		{"precision 1", 1, 3.14159, "3.1"},
		{"precision 2", 2, 3.14159, "3.14"},
		{"negative value", 2, -42.567, "-42.57"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fmtFloat, intFmt := createFormatters(tt.precision)
			assert.Equal(t, tt.expected, fmtFloat(tt.value))
			assert.Equal(t, "%d", intFmt)
		})
	}
}

func TestSigned(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	assert.Equal(t, "+1.5", signed(fmtFloat, 1.5))
	assert.Equal(t, "-0.5", signed(fmtFloat, -0.5))
	assert.Equal(t, "0.0", signed(fmtFloat, 0))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"kills": 20}))
	assert.Equal(t, "{\n  \"kills\": 20\n}\n", buf.String())

	err := writeJSON(&buf, make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode JSON")
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"agent", "kda"}, func(w *csv.Writer) error {
		return w.Write([]string{"jett", "1.5"})
	})
	require.NoError(t, err)
	assert.Equal(t, "agent,kda\njett,1.5\n", buf.String())

	boom := errors.New("boom")
	err = writeCSVWithHeader(&buf, []string{"a"}, func(*csv.Writer) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestWriteWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	err := writeWithFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	}, "Wrote text")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestWriteWithFileInvalidPath(t *testing.T) {
	err := writeWithFile("/nonexistent/dir/out.txt", func(io.Writer) error { return nil }, "Wrote text")
	require.Error(t, err)
}

func TestWriteParquetFileRequiresPath(t *testing.T) {
	err := writeParquetFile("", func(string) error { return nil })
	assert.ErrorIs(t, err, errParquetNeedsFile)
}

func TestGetMaxTableTextWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		fixed    int
		expected int
	}{
		{"narrow terminal clamps to min", 40, 60, minTextWidth},
		{"wide terminal clamps to max", 300, 20, maxTextWidth},
		{"medium terminal", 120, 60, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := contract.DefaultConfig()
			cfg.Width = tt.width
			assert.Equal(t, tt.expected, getMaxTableTextWidth(cfg, tt.fixed))
		})
	}
}
