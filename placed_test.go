package anim2d

import (
	"errors"
	"math"
	"testing"
)

func newSizedFigure(t *testing.T, pl Placement) *Figure {
	t.Helper()
	f, err := NewFigure(newTestAnimation(t), "fig", FigureConfig{Placement: pl})
	if err != nil {
		t.Fatalf("NewFigure: %v", err)
	}
	return f
}

func assertRefPoint(t *testing.T, p *PlacedObject, x, y float64, name RefPointName) {
	t.Helper()
	gx, gy := p.RefPoint()
	assertNear(t, "ref x", gx, x)
	assertNear(t, "ref y", gy, y)
	if p.RefPointName() != name {
		t.Errorf("RefPointName = %v, want %v", p.RefPointName(), name)
	}
}

func TestRefPointByName(t *testing.T) {
	f := newSizedFigure(t, Placement{Width: 10, Height: 4, RefPoint: RefUpperLeft})
	assertRefPoint(t, &f.PlacedObject, -5, 2, RefUpperLeft)

	if err := f.SetRefPointBounds(20, 8); err != nil {
		t.Fatal(err)
	}
	assertRefPoint(t, &f.PlacedObject, -10, 4, RefUpperLeft)

	if err := f.SetRefPointByName(RefLowerCenter); err != nil {
		t.Fatal(err)
	}
	assertRefPoint(t, &f.PlacedObject, 0, -4, RefLowerCenter)

	if err := f.SetRefPointByName(RefNone); err != nil {
		t.Fatal(err)
	}
	assertRefPoint(t, &f.PlacedObject, 0, 0, RefNone)
}

func TestRefPointDerivesName(t *testing.T) {
	f := newSizedFigure(t, Placement{Width: 20, Height: 8})
	if err := f.SetRefPoint(10, -4); err != nil {
		t.Fatal(err)
	}
	assertRefPoint(t, &f.PlacedObject, 10, -4, RefLowerRight)
	if err := f.SetRefPoint(1, 1); err != nil {
		t.Fatal(err)
	}
	assertRefPoint(t, &f.PlacedObject, 1, 1, RefNone)
}

func TestRefPointByFraction(t *testing.T) {
	f := newSizedFigure(t, Placement{Width: 20, Height: 8})
	if err := f.SetRefPointByFraction(0.5, 0.5); err != nil {
		t.Fatal(err)
	}
	assertRefPoint(t, &f.PlacedObject, 0, 0, RefCenter)
	if err := f.SetRefPointByFraction(0.25, 0.75); err != nil {
		t.Fatal(err)
	}
	assertRefPoint(t, &f.PlacedObject, -5, 2, RefNone)
	if err := f.SetRefPointByFraction(math.NaN(), 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NaN fraction: %v", err)
	}
}

func TestRefPointWithoutBounds(t *testing.T) {
	f := newSizedFigure(t, Placement{})
	if err := f.SetRefPoint(0, 0); err != nil {
		t.Fatal(err)
	}
	assertRefPoint(t, &f.PlacedObject, 0, 0, RefNone)
}

func TestRefPointBoundsValidation(t *testing.T) {
	f := newSizedFigure(t, Placement{})
	if err := f.SetRefPointBounds(-1, 2); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative width: %v", err)
	}
	if err := f.SetRefPointBoundsRange(5, 1, 0, 1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("inverted range: %v", err)
	}
	if err := f.SetRefPointByName(RefPointName(42)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("unknown name: %v", err)
	}
}

func TestParseRefPointName(t *testing.T) {
	tests := []struct {
		in      string
		want    RefPointName
		wantErr bool
	}{
		{"", RefNone, false},
		{"UPPER_LEFT", RefUpperLeft, false},
		{"lower-left", RefLowerLeft, false},
		{"center", RefCenter, false},
		{"middle", RefNone, true},
	}
	for _, tt := range tests {
		got, err := ParseRefPointName(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRefPointName(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRefPointName(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDrawTransformMapsRefPointToPosition(t *testing.T) {
	f := newSizedFigure(t, Placement{X: 100, Y: 50, Angle: math.Pi / 2, Width: 20, Height: 8, RefPoint: RefUpperLeft})
	m := f.DrawTransform()

	x, y := m.Apply(-10, 4)
	assertNear(t, "ref x", x, 100)
	assertNear(t, "ref y", y, 50)

	// one unit right of the reference point, rotated a quarter turn
	x, y = m.Apply(-9, 4)
	assertNear(t, "x", x, 100)
	assertNear(t, "y", y, 51)
}
