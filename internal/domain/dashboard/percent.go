package dashboard

import "math"

// PercentChange computes the growth rate between two period counts,
// rounded to two decimal places. An empty previous period yields 0 when
// the current period is also empty, and a fixed 100 otherwise, so cards
// can always render a finite number.
func PercentChange(thisPeriod, lastPeriod int) float64 {
	if lastPeriod == 0 {
		if thisPeriod == 0 {
			return 0
		}
		return 100
	}
	return round2(float64(thisPeriod-lastPeriod) / float64(lastPeriod) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
