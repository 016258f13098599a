package ebitenplatform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/pkg/errors"

	"github.com/phanxgames/kestrel"
)

// Texture wraps an ebiten image as a kestrel.Texture.
type Texture struct {
	Image *ebiten.Image
}

// NewTexture wraps img.
func NewTexture(img *ebiten.Image) *Texture {
	return &Texture{Image: img}
}

// Width returns the image width in pixels.
func (t *Texture) Width() int { return t.Image.Bounds().Dx() }

// Height returns the image height in pixels.
func (t *Texture) Height() int { return t.Image.Bounds().Dy() }

// Loader reads image files decodable by the registered image packages.
type Loader struct{}

// Load reads the image at path.
func (Loader) Load(path string) (kestrel.Texture, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load image %q", path)
	}
	return NewTexture(img), nil
}

// Unload releases the GPU memory of tex.
func (Loader) Unload(tex kestrel.Texture) {
	if t, ok := tex.(*Texture); ok && t.Image != nil {
		t.Image.Deallocate()
	}
}

// image returns the ebiten image behind tex, or nil for foreign textures.
func image(tex kestrel.Texture) *ebiten.Image {
	if t, ok := tex.(*Texture); ok {
		return t.Image
	}
	return nil
}
