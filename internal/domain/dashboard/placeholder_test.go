package dashboard

import (
	"testing"

	"github.com/google/uuid"
)

func TestHashedPlaceholders_Deterministic(t *testing.T) {
	var p HashedPlaceholders
	id := uuid.New()
	if p.Rating(id) != p.Rating(id) {
		t.Error("Rating must be stable for the same doctor")
	}
	if p.ReviewCount(id) != p.ReviewCount(id) {
		t.Error("ReviewCount must be stable for the same doctor")
	}
}

func TestHashedPlaceholders_Ranges(t *testing.T) {
	var p HashedPlaceholders
	for i := 0; i < 100; i++ {
		id := uuid.New()
		if r := p.Rating(id); r < 3.5 || r >= 5.0 {
			t.Fatalf("Rating(%s) = %v, want [3.5, 5.0)", id, r)
		}
		if c := p.ReviewCount(id); c < 0 || c >= 200 {
			t.Fatalf("ReviewCount(%s) = %d, want [0, 200)", id, c)
		}
	}
}
