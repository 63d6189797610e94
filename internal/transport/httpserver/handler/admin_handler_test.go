package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"movie-catalog-service/internal/domain"
)

func TestSameSlots(t *testing.T) {
	seed := domain.SeedAds()
	reordered := []domain.AdConfig{seed[3], seed[1], seed[0], seed[2]}

	tests := []struct {
		name string
		next []domain.AdConfig
		want bool
	}{
		{name: "unchanged", next: seed, want: true},
		{name: "reordered", next: reordered, want: true},
		{name: "slot removed", next: seed[:3], want: false},
		{name: "slot added", next: append(append([]domain.AdConfig{}, seed...), domain.AdConfig{ID: "ad-side"}), want: false},
		{name: "duplicate replaces a slot", next: []domain.AdConfig{seed[0], seed[0], seed[1], seed[2]}, want: false},
		{name: "unknown id", next: []domain.AdConfig{seed[0], seed[1], seed[2], {ID: "ad-popunder"}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sameSlots(seed, tt.next))
		})
	}
}
