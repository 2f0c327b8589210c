package dashboard

import (
	"hash/fnv"

	"github.com/google/uuid"
)

// PlaceholderMetrics supplies ratings and review counts for doctor
// performance cards until a real review module exists. Implementations
// must be deterministic so identical snapshots compose to identical
// dashboards.
type PlaceholderMetrics interface {
	Rating(doctorID uuid.UUID) float64
	ReviewCount(doctorID uuid.UUID) int
}

// HashedPlaceholders derives stable pseudo-metrics from the doctor ID.
// Ratings land in [3.5, 5.0) in steps of 0.1, review counts in [0, 200).
type HashedPlaceholders struct{}

func (HashedPlaceholders) Rating(doctorID uuid.UUID) float64 {
	return 3.5 + float64(hashOf(doctorID)%15)/10
}

func (HashedPlaceholders) ReviewCount(doctorID uuid.UUID) int {
	return int(hashOf(doctorID) / 7 % 200)
}

func hashOf(id uuid.UUID) uint64 {
	h := fnv.New64a()
	h.Write(id[:])
	return h.Sum64()
}
