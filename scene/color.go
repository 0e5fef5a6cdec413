package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/anim2d"
)

// Color is a color written as "#rgb", "#rrggbb" or "#rrggbbaa", or as one
// of a few names.
type Color struct {
	anim2d.Color
}

var namedColors = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#ff0000",
	"green":  "#008000",
	"blue":   "#0000ff",
	"yellow": "#ffff00",
	"gray":   "#808080",
	"orange": "#ffa500",
}

// ParseColor parses a color string.
func ParseColor(s string) (anim2d.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	alpha := 1.0
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return anim2d.Color{}, fmt.Errorf("bad color %q", s)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return anim2d.Color{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	c = c.Clamped()
	return anim2d.Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

func (c *Color) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	c.Color = v
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	n := c.NRGBA()
	if n.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), nil
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}

// colorPtr converts an optional document color.
func colorPtr(c *Color) *anim2d.Color {
	if c == nil {
		return nil
	}
	v := c.Color
	return &v
}
