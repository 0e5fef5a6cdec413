package raster

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/phanxgames/anim2d"
)

// Families lists the font families DrawText understands. Unknown families
// fall back to "regular".
var Families = []string{"regular", "bold", "italic", "mono"}

var familyTTF = map[string][]byte{
	"regular": goregular.TTF,
	"bold":    gobold.TTF,
	"italic":  goitalic.TTF,
	"mono":    gomono.TTF,
}

type faceKey struct {
	family string
	size   float64
}

// faceCache parses each family once and keeps a face per pixel size.
type faceCache struct {
	fonts map[string]*opentype.Font
	faces map[faceKey]font.Face
}

func newFaceCache() *faceCache {
	return &faceCache{
		fonts: make(map[string]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
}

func (fc *faceCache) face(family string, size float64) (font.Face, error) {
	if _, ok := familyTTF[family]; !ok {
		family = "regular"
	}
	// quarter-pixel steps keep the cache small while zooming
	size = math.Max(1, math.Round(size*4)/4)
	key := faceKey{family, size}
	if f, ok := fc.faces[key]; ok {
		return f, nil
	}
	fnt, ok := fc.fonts[family]
	if !ok {
		var err error
		fnt, err = opentype.Parse(familyTTF[family])
		if err != nil {
			return nil, fmt.Errorf("parse font %s: %w", family, err)
		}
		fc.fonts[family] = fnt
	}
	f, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font face %s %g: %w", family, size, err)
	}
	fc.faces[key] = f
	return f, nil
}

// DrawText draws s with its baseline starting at (x, y). The text is kept
// upright; its size scales with the transform.
func (c *Canvas) DrawText(s string, x, y float64) {
	if s == "" {
		return
	}
	m := c.device()
	px, py := m.Apply(x, y)
	f := c.state.Font
	face, err := c.faces.face(f.Family, f.Size*m.MeanScale())
	if err != nil {
		return
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(c.state.Paint.NRGBA()),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(math.Round(px * 64)), Y: fixed.Int26_6(math.Round(py * 64))},
	}
	d.DrawString(s)
}

// MeasureText returns the advance width of s in user units for font f
// under the canvas's current transform.
func (c *Canvas) MeasureText(s string, f anim2d.Font) float64 {
	sc := c.device().MeanScale()
	if sc == 0 {
		return 0
	}
	face, err := c.faces.face(f.Family, f.Size*sc)
	if err != nil {
		return 0
	}
	return float64(font.MeasureString(face, s)) / 64 / sc
}
