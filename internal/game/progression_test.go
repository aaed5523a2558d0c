package game

import "testing"

func TestApplyExperience_SingleLevelUp(t *testing.T) {
	// level 1, 90/100 exp, +20 -> level 2 with 10/150
	res := ApplyExperience(1, 90, 100, 20)

	if !res.LeveledUp {
		t.Fatalf("expected level up")
	}
	if res.PreviousLevel != 1 || res.Level != 2 {
		t.Fatalf("level = %d->%d; want 1->2", res.PreviousLevel, res.Level)
	}
	if res.Exp != 10 {
		t.Fatalf("exp = %d; want 10", res.Exp)
	}
	if res.ExpNextLevel != 150 {
		t.Fatalf("exp_next_level = %d; want 150", res.ExpNextLevel)
	}
}

func TestApplyExperience_NoLevelUp(t *testing.T) {
	res := ApplyExperience(3, 10, 225, 5)

	if res.LeveledUp {
		t.Fatalf("unexpected level up")
	}
	if res.Level != 3 || res.Exp != 15 || res.ExpNextLevel != 225 {
		t.Fatalf("got level=%d exp=%d next=%d", res.Level, res.Exp, res.ExpNextLevel)
	}
}

func TestApplyExperience_MultiLevelOverflow(t *testing.T) {
	// 400 exp from scratch clears 100 and 150, lands at level 3 with 150/225
	res := ApplyExperience(1, 0, 100, 400)

	if res.Level != 3 {
		t.Fatalf("level = %d; want 3", res.Level)
	}
	if res.Exp != 150 || res.ExpNextLevel != 225 {
		t.Fatalf("exp = %d/%d; want 150/225", res.Exp, res.ExpNextLevel)
	}
}

// Applying +10 then +15 must land exactly where a single +25 does.
func TestApplyExperience_SplitEqualsWhole(t *testing.T) {
	cases := []struct {
		level, exp, next int
		a, b             int
	}{
		{1, 90, 100, 10, 15},
		{1, 0, 100, 60, 60},
		{2, 140, 150, 5, 300},
		{5, 0, 506, 250, 256},
	}

	for _, tc := range cases {
		step1 := ApplyExperience(tc.level, tc.exp, tc.next, tc.a)
		step2 := ApplyExperience(step1.Level, step1.Exp, step1.ExpNextLevel, tc.b)
		whole := ApplyExperience(tc.level, tc.exp, tc.next, tc.a+tc.b)

		if step2.Level != whole.Level || step2.Exp != whole.Exp || step2.ExpNextLevel != whole.ExpNextLevel {
			t.Fatalf("split (+%d,+%d) = %d %d/%d; whole +%d = %d %d/%d",
				tc.a, tc.b, step2.Level, step2.Exp, step2.ExpNextLevel,
				tc.a+tc.b, whole.Level, whole.Exp, whole.ExpNextLevel)
		}
	}
}

// The threshold curve rounds down at every step; make sure the iterative
// behavior is preserved (odd thresholds truncate).
func TestApplyExperience_ThresholdRounding(t *testing.T) {
	// 100 -> 150 -> 225 -> 337 -> 505 -> 757
	want := []int{150, 225, 337, 505, 757}

	level, exp, next := 1, 0, 100
	for i, w := range want {
		res := ApplyExperience(level, exp, next, next-exp)
		if res.ExpNextLevel != w {
			t.Fatalf("step %d: threshold = %d; want %d", i, res.ExpNextLevel, w)
		}
		level, exp, next = res.Level, res.Exp, res.ExpNextLevel
	}
}

func TestSellExp(t *testing.T) {
	cases := []struct {
		qty  int64
		want int
	}{
		{0, 0}, {1, 0}, {2, 1}, {5, 2}, {100, 50},
	}
	for _, tc := range cases {
		if got := SellExp(tc.qty); got != tc.want {
			t.Fatalf("SellExp(%d) = %d; want %d", tc.qty, got, tc.want)
		}
	}
}
