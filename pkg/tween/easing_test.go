package tween

import (
	"math"
	"testing"
)

func TestDefaultCatalogEndpoints(t *testing.T) {
	// 目录里的每条曲线都必须满足 f(0)=0, f(1)=1
	// （中间允许过冲，端点不允许偏移）
	catalog := DefaultCatalog()
	if len(catalog) == 0 {
		t.Fatalf("Expected non-empty catalog")
	}
	for name, fn := range catalog {
		if got := fn(0); math.Abs(got) > 1e-6 {
			t.Errorf("%s: Expected f(0)=0, got=%v", name, got)
		}
		if got := fn(1); math.Abs(got-1) > 1e-6 {
			t.Errorf("%s: Expected f(1)=1, got=%v", name, got)
		}
	}
}

func TestCatalogLookupFallsBackToLinear(t *testing.T) {
	catalog := DefaultCatalog()

	fn, ok := catalog.Lookup("outCubic")
	if !ok || fn == nil {
		t.Errorf("Expected known easing to resolve")
	}

	fn, ok = catalog.Lookup("noSuchEasing")
	if ok {
		t.Errorf("Expected unknown easing to report ok=false")
	}
	if got := fn(0.5); got != 0.5 {
		t.Errorf("Expected linear fallback, got f(0.5)=%v", got)
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.5, 5},
		{-4, 4, 0.75, 2},
	}
	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Lerp(%v,%v,%v): Expected %v, got=%v", tt.a, tt.b, tt.t, tt.want, got)
		}
	}
}
