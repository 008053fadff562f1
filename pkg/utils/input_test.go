package utils

import (
	"image"
	"testing"
)

func TestStagePoint(t *testing.T) {
	tests := []struct {
		in, want image.Point
	}{
		{image.Pt(100, 200), image.Pt(100, 200)},
		{image.Pt(-5, 800), image.Pt(0, 720)},
		{image.Pt(1300, -1), image.Pt(1280, 0)},
	}
	for _, tt := range tests {
		if got := StagePoint(tt.in, 1280, 720); got != tt.want {
			t.Errorf("StagePoint(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
