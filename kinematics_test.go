package anim2d

import (
	"math"
	"math/rand"
	"testing"
)

func TestTimeGivenDVA(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name     string
		s, v0, a float64
		want     float64
	}{
		{"zero distance", 0, 5, 3, 0},
		{"no motion", 10, 0, 0, nan},
		{"constant velocity", 10, 2, 0, 5},
		{"constant velocity backwards", 10, -2, 0, nan},
		{"from rest", 8, 0, 4, 2},
		{"decelerate short of target", 100, 10, -1, nan},
		{"decelerate reaches target first", 16, 10, -2, 2},
		{"negative velocity turns around", 6, -1, 2, 3},
		{"negative distance", -9, 0, -2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimeGivenDVA(tt.s, tt.v0, tt.a)
			if math.IsNaN(tt.want) {
				if !math.IsNaN(got) {
					t.Fatalf("got %v, want NaN", got)
				}
				return
			}
			assertNear(t, "t", got, tt.want)
		})
	}
}

func TestTimeGivenDVARoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		v0 := rng.Float64()*40 - 20
		a := rng.Float64()*10 - 5
		tt := rng.Float64() * 10
		s := DistGivenTVA(tt, v0, a)
		got := TimeGivenDVA(s, v0, a)
		if math.IsNaN(got) {
			t.Fatalf("v0=%v a=%v t=%v: got NaN", v0, a, tt)
		}
		// A smaller non-negative root is allowed when the motion revisits s.
		if got > tt+1e-6 {
			t.Fatalf("v0=%v a=%v t=%v: got later root %v", v0, a, tt, got)
		}
		assertNearTol(t, "s", DistGivenTVA(got, v0, a), s, 1e-6*math.Max(1, math.Abs(s)))
		if v0 >= 0 && a >= 0 && s > 0 {
			assertNearTol(t, "t", got, tt, 1e-6*math.Max(1, tt))
		}
	}
}

func TestVelocityHelpers(t *testing.T) {
	assertNear(t, "VelocityGivenTVA", VelocityGivenTVA(3, 1, 2), 7)
	assertNear(t, "VelocityGivenDVA", VelocityGivenDVA(8, 0, 4), 8)
	if !math.IsNaN(VelocityGivenDVA(10, 0, 0)) {
		t.Error("VelocityGivenDVA should propagate NaN")
	}
}

func TestTwoVelocityForms(t *testing.T) {
	assertNear(t, "DistGivenTVV", DistGivenTVV(4, 2, 6), 16)
	assertNear(t, "AccelGivenTVV", AccelGivenTVV(4, 2, 6), 1)
	assertNear(t, "AccelGivenTVV equal", AccelGivenTVV(0, 3, 3), 0)
	if !math.IsNaN(AccelGivenTVV(0, 1, 2)) {
		t.Error("AccelGivenTVV with t=0 should be NaN")
	}

	assertNear(t, "TimeGivenDVV", TimeGivenDVV(16, 2, 6), 4)
	assertNear(t, "TimeGivenDVV zero", TimeGivenDVV(0, 0, 0), 0)
	if !math.IsNaN(TimeGivenDVV(1, 2, -2)) {
		t.Error("TimeGivenDVV with v1+v2=0 should be NaN")
	}

	assertNear(t, "AccelGivenDVV", AccelGivenDVV(16, 2, 6), 1)
	if !math.IsNaN(AccelGivenDVV(0, 1, 2)) {
		t.Error("AccelGivenDVV with s=0 should be NaN")
	}
}

func TestVelocityAccelForms(t *testing.T) {
	assertNear(t, "TimeGivenVVA", TimeGivenVVA(2, 6, 1), 4)
	assertNear(t, "TimeGivenVVA equal", TimeGivenVVA(5, 5, 0), 0)
	if !math.IsNaN(TimeGivenVVA(1, 2, 0)) {
		t.Error("TimeGivenVVA with a=0 should be NaN")
	}
	if !math.IsNaN(TimeGivenVVA(6, 2, 1)) {
		t.Error("TimeGivenVVA needing negative time should be NaN")
	}
	assertNear(t, "DistGivenVVA", DistGivenVVA(2, 6, 1), 16)
	if !math.IsNaN(DistGivenVVA(1, 2, 0)) {
		t.Error("DistGivenVVA should propagate NaN")
	}
}
