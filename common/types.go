package common

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrNoTextureSource is returned when a texture has neither embedded data nor a file path.
var ErrNoTextureSource = errors.New("texture has neither data nor path")

// TextureStagingData holds decoded RGBA pixels ready for GPU upload.
type TextureStagingData struct {
	Pixels []byte
	Width  uint32
	Height uint32
}

// SamplerStagingData describes sampler state. Zero values fall back to repeat addressing
// and linear filtering when the sampler is created.
type SamplerStagingData struct {
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	MagFilter, MinFilter                     wgpu.FilterMode
	MipmapFilter                             wgpu.MipmapFilterMode
	LodMinClamp, LodMaxClamp                 float32
	Compare                                  wgpu.CompareFunction
	MaxAnisotropy                            uint16
}

// WhiteTexture is the 1x1 fallback bound for materials without a diffuse map.
var WhiteTexture = TextureStagingData{
	Pixels: []byte{255, 255, 255, 255},
	Width:  1,
	Height: 1,
}

// ImportedMaterial is a loader-agnostic material description parsed from a model file.
type ImportedMaterial struct {
	// Name is the material name as declared by the source file (newmtl).
	Name string

	// DiffuseColor is the RGBA diffuse color (Kd plus dissolve as alpha).
	DiffuseColor [4]float32

	// DiffuseTexturePath is the resolved path of the diffuse map, empty when the material has none.
	DiffuseTexturePath string

	// DiffuseTexture holds the texture once the loader has read it, nil otherwise.
	DiffuseTexture *ImportedTexture
}

// ImportedTexture is raw encoded image data or a path to it.
type ImportedTexture struct {
	Name string
	Path string
	Data []byte

	Width  int
	Height int

	SamplerData *SamplerStagingData
}

// Decode decodes the texture into tightly packed RGBA8 pixels.
// Embedded Data takes precedence over Path.
//
// Returns:
//   - TextureStagingData: decoded pixels with their dimensions
//   - error: an error if the image could not be read or decoded
func (t *ImportedTexture) Decode() (TextureStagingData, error) {
	if t == nil {
		return TextureStagingData{}, fmt.Errorf("texture is nil")
	}

	var img image.Image
	var err error

	switch {
	case len(t.Data) > 0:
		img, _, err = image.Decode(bytes.NewReader(t.Data))
		if err != nil {
			return TextureStagingData{}, fmt.Errorf("failed to decode embedded image %q: %w", t.Name, err)
		}
	case t.Path != "":
		file, fileErr := os.Open(t.Path)
		if fileErr != nil {
			return TextureStagingData{}, fmt.Errorf("failed to open texture file %s: %w", t.Path, fileErr)
		}
		defer file.Close()

		img, _, err = image.Decode(file)
		if err != nil {
			return TextureStagingData{}, fmt.Errorf("failed to decode texture file %s: %w", t.Path, err)
		}
	default:
		return TextureStagingData{}, ErrNoTextureSource
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	t.Width = bounds.Dx()
	t.Height = bounds.Dy()

	return TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(t.Width),
		Height: uint32(t.Height),
	}, nil
}
