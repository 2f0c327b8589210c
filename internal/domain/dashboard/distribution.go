package dashboard

import "sort"

// Bucket is one group in a distribution: a raw count plus its share of
// the denominator, rounded to two decimal places.
type Bucket struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// GroupOption adjusts how GroupAndCount treats keys.
type GroupOption func(*groupConfig)

type groupConfig struct {
	coalesceTo string
	coalesce   bool
}

// CoalesceEmpty folds records with an empty key into the given sentinel
// group instead of dropping them. Specialization grouping coalesces
// blanks to "General"; blood-group grouping leaves this off and skips
// blanks entirely.
func CoalesceEmpty(sentinel string) GroupOption {
	return func(c *groupConfig) {
		c.coalesceTo = sentinel
		c.coalesce = true
	}
}

// GroupAndCount builds a histogram of records keyed by keyFn. The
// denominator for percentages is the full record count; groups are
// unordered, callers sort via SortedByCount.
func GroupAndCount[T any](records []T, keyFn func(T) string, opts ...GroupOption) map[string]Bucket {
	var cfg groupConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	counts := make(map[string]int)
	for _, rec := range records {
		key := keyFn(rec)
		if key == "" {
			if !cfg.coalesce {
				continue
			}
			key = cfg.coalesceTo
		}
		counts[key]++
	}

	total := len(records)
	out := make(map[string]Bucket, len(counts))
	for key, count := range counts {
		out[key] = Bucket{Count: count, Percentage: share(count, total)}
	}
	return out
}

func share(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(count) * 100 / float64(total))
}

// NamedBucket is a distribution entry with its group key, for ordered
// rendering.
type NamedBucket struct {
	Key        string  `json:"key"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// SortedByCount flattens a distribution into a slice ordered by
// descending count, breaking ties by key so output is deterministic.
func SortedByCount(dist map[string]Bucket) []NamedBucket {
	out := make([]NamedBucket, 0, len(dist))
	for key, b := range dist {
		out = append(out, NamedBucket{Key: key, Count: b.Count, Percentage: b.Percentage})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}
