package gear

import (
	"math"
	"sort"
)

// Lewis form factors Y for 20° full-depth teeth.
var lewisTable = []struct {
	teeth int
	y     float64
}{
	{12, 0.245}, {13, 0.261}, {14, 0.277}, {15, 0.290}, {16, 0.296},
	{17, 0.303}, {18, 0.309}, {19, 0.314}, {20, 0.322}, {22, 0.331},
	{24, 0.337}, {26, 0.346}, {28, 0.353}, {30, 0.359}, {34, 0.371},
	{38, 0.384}, {43, 0.397}, {50, 0.409}, {60, 0.422}, {75, 0.435},
	{100, 0.447}, {150, 0.460}, {300, 0.472},
}

// LewisFormFactor interpolates the table linearly and clamps outside 12..300
// teeth.
func LewisFormFactor(teeth int) float64 {
	first, last := lewisTable[0], lewisTable[len(lewisTable)-1]
	if teeth <= first.teeth {
		return first.y
	}
	if teeth >= last.teeth {
		return last.y
	}
	i := sort.Search(len(lewisTable), func(i int) bool { return lewisTable[i].teeth >= teeth })
	hi := lewisTable[i]
	if hi.teeth == teeth {
		return hi.y
	}
	lo := lewisTable[i-1]
	return lo.y + (hi.y-lo.y)*float64(teeth-lo.teeth)/float64(hi.teeth-lo.teeth)
}

// DynamicFactor is the velocity factor Kv for a pitch-line velocity in m/s.
func DynamicFactor(velocityMS float64) float64 {
	if velocityMS <= 5 {
		return 1.0
	}
	return (5.56 + math.Sqrt(velocityMS)) / 5.56
}
