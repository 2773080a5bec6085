package domain

import (
	"math"
	"testing"
)

func TestVecToYaw(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want float64
	}{
		{"zero", Vec3{}, 0},
		{"east", Vec3{1, 0, 0}, 0},
		{"north", Vec3{0, 1, 0}, 90},
		{"west", Vec3{-1, 0, 0}, 180},
		{"south", Vec3{0, -5, 0}, 270},
		{"south-east", Vec3{1, -1, 0}, 315},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VecToYaw(tt.v); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("VecToYaw(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestAngleMod(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{-45, 315},
		{405, 45},
		{-180, 180},
	}

	for _, tt := range tests {
		if got := AngleMod(tt.in); got != tt.want {
			t.Errorf("AngleMod(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAngleVectors_Yaw(t *testing.T) {
	fwd, right, _ := AngleVectors(Vec3{0, 90, 0})

	if math.Abs(fwd[0]) > 1e-9 || math.Abs(fwd[1]-1) > 1e-9 {
		t.Errorf("forward at yaw 90 = %v, want (0,1,0)", fwd)
	}
	if math.Abs(right[0]-1) > 1e-9 || math.Abs(right[1]) > 1e-9 {
		t.Errorf("right at yaw 90 = %v, want (1,0,0)", right)
	}
}

func TestClipVelocity(t *testing.T) {
	got := ClipVelocity(Vec3{100, 0, -50}, Vec3{0, 0, 1}, 1)
	if got != (Vec3{100, 0, 0}) {
		t.Errorf("ClipVelocity() = %v, want (100,0,0)", got)
	}
}
