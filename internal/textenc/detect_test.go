package textenc

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectUTF8WithBOM(t *testing.T) {
	sample := append([]byte{0xEF, 0xBB, 0xBF}, []byte("id\tCategory\tItem Path\n")...)
	assert.Equal(t, "UTF-8", Detect(sample))
}

func TestDetectUTF16LE(t *testing.T) {
	// BOM + "id" in UTF-16LE.
	sample := []byte{0xFF, 0xFE, 'i', 0x00, 'd', 0x00}
	assert.Equal(t, "UTF-16LE", Detect(sample))
}

func TestDetectDefaultsToUTF8(t *testing.T) {
	assert.Equal(t, "utf-8", Detect(nil))
}

func TestNewReaderStripsUTF8BOM(t *testing.T) {
	in := strings.NewReader("\uFEFFid\tCategory\n")
	r, name, err := NewReader(in, "utf-8")
	require.NoError(t, err)
	assert.Equal(t, "utf-8", name)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "id\tCategory\n", string(got))
}

func TestNewReaderDecodesUTF16(t *testing.T) {
	raw := []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}
	r, name, err := NewReader(strings.NewReader(string(raw)), "utf-16le")
	require.NoError(t, err)
	assert.Equal(t, "utf-16le", name)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(got))
}

func TestNewReaderAutoDetects(t *testing.T) {
	raw := []byte{0xFF, 0xFE, 'o', 0x00, 'k', 0x00}
	r, name, err := NewReader(strings.NewReader(string(raw)), "")
	require.NoError(t, err)
	assert.Equal(t, "UTF-16LE", name)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(got))
}

func TestNewReaderUnknownEncoding(t *testing.T) {
	_, _, err := NewReader(strings.NewReader("x"), "no-such-charset")
	assert.Error(t, err)
}
