package scene

import (
	"math"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/anim2d"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    anim2d.Color
		wantErr bool
	}{
		{"#ffffff", anim2d.ColorWhite, false},
		{"#000", anim2d.ColorBlack, false},
		{" Black ", anim2d.ColorBlack, false},
		{"#ff000080", anim2d.Color{R: 1, A: 128.0 / 255}, false},
		{"red", anim2d.Color{R: 1, A: 1}, false},
		{"#12345", anim2d.Color{}, true},
		{"#ff0000zz", anim2d.Color{}, true},
		{"teal-ish", anim2d.Color{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestColorYAML(t *testing.T) {
	var v struct {
		C *Color `yaml:"c"`
	}
	if err := yaml.Unmarshal([]byte("c: '#336699'"), &v); err != nil {
		t.Fatal(err)
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(out)) != `c: '#336699'` {
		t.Errorf("marshal = %q", out)
	}
	if err := yaml.Unmarshal([]byte("c: nope"), &v); err == nil || !strings.Contains(err.Error(), "line 1") {
		t.Errorf("bad color error = %v", err)
	}
}

func TestFuncDoc(t *testing.T) {
	tests := []struct {
		name string
		doc  FuncDoc
		x    float64
		want float64
	}{
		{"constant", FuncDoc{Kind: "constant", Value: 7}, 3, 7},
		{"linear", FuncDoc{Kind: "linear", From: 1, Rate: 2}, 3, 7},
		{"sine", FuncDoc{Kind: "sine", Amplitude: 2, Frequency: math.Pi / 2, Offset: 1}, 1, 3},
		{"ease end", FuncDoc{Kind: "ease", From: 0, To: 10, Duration: 2, Easing: "in-out-cubic"}, 5, 10},
		{"ease linear", FuncDoc{Kind: "ease", From: 0, To: 10, Duration: 2}, 1, 5},
	}
	for _, tt := range tests {
		f, err := tt.doc.Func()
		if err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		x := math.Min(tt.x, f.DomainMax())
		if got := f.Value(x); math.Abs(got-tt.want) > 1e-5 {
			t.Errorf("%s: f(%g) = %g, want %g", tt.name, tt.x, got, tt.want)
		}
	}

	spring, err := (&FuncDoc{Kind: "spring", From: 0, To: 100, Frequency: 6, Damping: 1, Duration: 3}).Func()
	if err != nil {
		t.Fatal(err)
	}
	if v := spring.Value(3); math.Abs(v-100) > 1 {
		t.Errorf("spring settles at %g, want about 100", v)
	}

	for _, bad := range []FuncDoc{{Kind: "cubic"}, {Kind: "ease"}, {Kind: "ease", Duration: 1, Easing: "wobble"}} {
		if _, err := bad.Func(); err == nil {
			t.Errorf("%+v: expected error", bad)
		}
	}
}

func TestPointDoc(t *testing.T) {
	cp, err := PointDoc{Type: "seg-end", X: 1, Y: 2}.CPoint()
	if err != nil {
		t.Fatal(err)
	}
	if cp.Kind != anim2d.CSegEnd || cp.X != 1 || cp.Y != 2 {
		t.Errorf("CPoint = %+v", cp)
	}

	fx := &FuncDoc{Kind: "linear", Rate: 1}
	cp, err = PointDoc{Type: "SPLINE_FUNCTION", FX: fx, FY: fx, T1: 0, T2: 4, N: 8}.CPoint()
	if err != nil {
		t.Fatal(err)
	}
	if cp.FX == nil || cp.N != 8 || cp.T2 != 4 {
		t.Errorf("CPoint = %+v", cp)
	}

	if _, err := (PointDoc{Type: "SPLINE_FUNCTION", FX: fx}).CPoint(); err == nil {
		t.Error("expected error without fy")
	}
	if _, err := (PointDoc{Type: "MOVE_TO", FX: fx}).CPoint(); err == nil {
		t.Error("expected error for function on MOVE_TO")
	}
}

func TestPathDocKinds(t *testing.T) {
	tests := []struct {
		name   string
		doc    PathDoc
		length float64
		closed bool
	}{
		{"line", PathDoc{Kind: "line", X2: 3, Y2: 4}, 5, false},
		{"rect", PathDoc{Kind: "rect", Width: 10, Height: 20}, 60, true},
		{"polyline", PathDoc{Kind: "polyline", Vertices: [][2]float64{{0, 0}, {10, 0}, {10, 10}}}, 20, false},
		{"closed polyline", PathDoc{Kind: "polyline", Vertices: [][2]float64{{0, 0}, {10, 0}, {10, 10}}, Closed: true}, 20 + 10*math.Sqrt2, true},
		{"points", PathDoc{Points: []PointDoc{
			{Type: "MOVE_TO"},
			{Type: "SEG_END", X: 6},
			{Type: "SEG_END", X: 6, Y: 8},
			{Type: "CLOSE"},
		}}, 24, true},
	}
	for _, tt := range tests {
		p, err := tt.doc.Path()
		if err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		if math.Abs(p.Length()-tt.length) > 1e-6 {
			t.Errorf("%s: length = %g, want %g", tt.name, p.Length(), tt.length)
		}
		if p.Closed() != tt.closed {
			t.Errorf("%s: closed = %v, want %v", tt.name, p.Closed(), tt.closed)
		}
	}

	circle, err := PathDoc{Kind: "circle", R: 10, Intervals: 64}.Path()
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(circle.Length()-20*math.Pi) > 0.05 {
		t.Errorf("circle length = %g, want about %g", circle.Length(), 20*math.Pi)
	}

	for _, bad := range []PathDoc{{Kind: "blob"}, {Winding: "sideways"}, {Kind: "arc", RX: 1, RY: 1, Extent: 1, Arc: "fan"}} {
		if _, err := bad.Path(); err == nil {
			t.Errorf("%+v: expected error", bad)
		}
	}
}

func TestStyleDoc(t *testing.T) {
	red := &Color{anim2d.Color{R: 1, A: 1}}
	st, err := StyleDoc{Stroke: red, StrokeWidth: 2, Cap: "round", Join: "bevel", Dash: []float64{1, 2}}.Style()
	if err != nil {
		t.Fatal(err)
	}
	if st.Fill != nil || *st.Stroke != red.Color || st.Cap != anim2d.CapRound || st.Join != anim2d.JoinBevel {
		t.Errorf("Style = %+v", st)
	}
	if _, err := (StyleDoc{Join: "sharp"}).Style(); err == nil {
		t.Error("expected join error")
	}
}
