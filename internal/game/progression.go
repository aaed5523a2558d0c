package game

// Experience awarded per action. Selling scales with the quantity sold.
const (
	CollectExp = 1
	UpgradeExp = 5
)

// SellExp returns the experience for selling qty units (half a point per unit,
// rounded down).
func SellExp(qty int64) int {
	return int(qty / 2)
}

// LevelResult describes the outcome of applying experience to a user.
type LevelResult struct {
	PreviousLevel int  `json:"previous_level"`
	Level         int  `json:"level"`
	LeveledUp     bool `json:"leveled_up"`
	Exp           int  `json:"exp"`
	ExpNextLevel  int  `json:"exp_next_level"`
}

// ApplyExperience adds gain to the current experience and resolves level-ups.
// Overflow rolls into the next level and the threshold grows by half, rounded
// down at each step. The curve is iterative on purpose: floor(floor(t*1.5)*1.5)
// is not the same as floor(t*1.5^2).
func ApplyExperience(level, exp, expNext, gain int) LevelResult {
	res := LevelResult{PreviousLevel: level, Level: level}

	exp += gain
	for exp >= expNext {
		exp -= expNext
		level++
		expNext = expNext * 3 / 2
		res.LeveledUp = true
	}

	res.Level = level
	res.Exp = exp
	res.ExpNextLevel = expNext
	return res
}
