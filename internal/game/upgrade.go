package game

import "math"

// UpgradeCost returns the coin cost to raise a resource's production from
// level to level+1: floor(50 * 1.5^(level-1)). Level 1 costs 50, level 2
// costs 75, level 3 costs 112.
func UpgradeCost(level int) int64 {
	return int64(math.Floor(50 * math.Pow(1.5, float64(level-1))))
}
