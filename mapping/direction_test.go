package mapping

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestBearing(t *testing.T) {
	origin := orb.Point{0, 0}
	tests := []struct {
		name   string
		target orb.Point
		want   float64
	}{
		{"due east", orb.Point{10, 0}, 0},
		{"due north", orb.Point{0, 10}, 90},
		{"due west", orb.Point{-10, 0}, 180},
		{"due south", orb.Point{0, -10}, 270},
		{"north-east diagonal", orb.Point{10, 10}, 45},
		{"south-east diagonal", orb.Point{10, -10}, 315},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Bearing(origin, tt.target), 1e-9)
		})
	}
}

func TestClassifyBearing(t *testing.T) {
	tests := []struct {
		angle float64
		want  Direction
	}{
		{0, East},
		{90, North},
		{180, West},
		{270, South},
		// boundary angles belong to the upper bucket
		{45, North},
		{135, West},
		{225, South},
		{315, East},
		{44.999, East},
		{314.999, South},
		{359.999, East},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyBearing(tt.angle), "angle %v", tt.angle)
	}
}
