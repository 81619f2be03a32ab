package model

import (
	"testing"

	"pgregory.net/rapid"
)

func TestRange(t *testing.T) {
	tests := []struct {
		a, b Position
		want int
	}{
		{Position{0, 0}, Position{0, 0}, 0},
		{Position{0, 0}, Position{1, 1}, 1},
		{Position{0, 0}, Position{3, 1}, 3},
		{Position{10, 10}, Position{4, 13}, 6},
		{Position{5, 5}, Position{5, 15}, 10},
	}
	for _, tc := range tests {
		if got := Range(tc.a, tc.b); got != tc.want {
			t.Errorf("Range(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestDirectionTo(t *testing.T) {
	tests := []struct {
		dx, dy int
		want   Direction
	}{
		{0, 0, DirectionNone},
		{0, -1, Top},
		{1, -1, TopRight},
		{1, 0, Right},
		{1, 1, BottomRight},
		{0, 1, Bottom},
		{-1, 1, BottomLeft},
		{-1, 0, Left},
		{-1, -1, TopLeft},
		{5, -1, Right},
		{-4, -5, TopLeft},
	}
	for _, tc := range tests {
		if got := DirectionTo(tc.dx, tc.dy); got != tc.want {
			t.Errorf("DirectionTo(%d, %d) = %s, want %s", tc.dx, tc.dy, got, tc.want)
		}
	}
}

func TestDirectionOffsetRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := Direction(rapid.IntRange(int(Top), int(TopLeft)).Draw(t, "dir"))
		dx, dy := d.Offset()
		if got := DirectionTo(dx, dy); got != d {
			t.Fatalf("DirectionTo(%s.Offset()) = %s", d, got)
		}
	})
}

func TestRangeSymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := Position{rapid.IntRange(-100, 100).Draw(t, "ax"), rapid.IntRange(-100, 100).Draw(t, "ay")}
		b := Position{rapid.IntRange(-100, 100).Draw(t, "bx"), rapid.IntRange(-100, 100).Draw(t, "by")}
		if Range(a, b) != Range(b, a) {
			t.Fatalf("Range not symmetric for %v %v", a, b)
		}
	})
}
