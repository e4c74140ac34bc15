package common

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(2, 1, color.NRGBA{B: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecode_EmbeddedData(t *testing.T) {
	tex := &ImportedTexture{Name: "embedded", Data: encodePNG(t)}

	data, err := tex.Decode()
	require.NoError(t, err)

	assert.Equal(t, uint32(3), data.Width)
	assert.Equal(t, uint32(2), data.Height)
	require.Len(t, data.Pixels, 3*2*4)
	assert.Equal(t, []byte{255, 0, 0, 255}, data.Pixels[0:4])
	assert.Equal(t, []byte{0, 0, 255, 255}, data.Pixels[20:24])
	assert.Equal(t, 3, tex.Width)
	assert.Equal(t, 2, tex.Height)
}

func TestDecode_Path(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t), 0o644))

	data, err := (&ImportedTexture{Path: path}).Decode()
	require.NoError(t, err)
	assert.Equal(t, uint32(3), data.Width)
}

func TestDecode_Errors(t *testing.T) {
	var nilTex *ImportedTexture
	_, err := nilTex.Decode()
	assert.Error(t, err)

	_, err = (&ImportedTexture{}).Decode()
	assert.ErrorIs(t, err, ErrNoTextureSource)

	_, err = (&ImportedTexture{Path: filepath.Join(t.TempDir(), "missing.png")}).Decode()
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = (&ImportedTexture{Name: "junk", Data: []byte("not an image")}).Decode()
	assert.ErrorContains(t, err, "junk")
}

func TestKeyTables(t *testing.T) {
	assert.Equal(t, uint32('0'), DigitKeys[0])
	assert.Equal(t, uint32(KeyKP9), KeypadDigitKeys[9])
}
