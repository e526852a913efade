package math

import (
	"testing"
)

func TestVec2Add(t *testing.T) {
	got := Vec2{1, 2}.Add(Vec2{3, 4})
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	got := Vec2{3, 4}.Length()
	if got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}

func TestBounds(t *testing.T) {
	min, max, ok := Bounds([]Vec2{{3, 9}, {-1, 4}, {7, 2}})
	if !ok {
		t.Fatal("Bounds() ok = false")
	}
	if min != (Vec2{-1, 2}) || max != (Vec2{7, 9}) {
		t.Errorf("Bounds() = %v, %v, want (-1,2), (7,9)", min, max)
	}

	if _, _, ok := Bounds(nil); ok {
		t.Error("Bounds(nil) ok = true")
	}
}

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Lerp(t *testing.T) {
	got := Vec3{0, 0, 0}.Lerp(Vec3{10, 20, 30}, 0.5)
	want := Vec3{5, 10, 15}
	if got != want {
		t.Errorf("Vec3.Lerp() = %v, want %v", got, want)
	}
}
