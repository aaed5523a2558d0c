package game

import "testing"

func TestUpgradeCost(t *testing.T) {
	cases := []struct {
		level int
		want  int64
	}{
		{1, 50},
		{2, 75},
		{3, 112},
		{4, 168},
		{5, 253},
		{6, 379},
		{10, 1922},
	}

	for _, tc := range cases {
		if got := UpgradeCost(tc.level); got != tc.want {
			t.Fatalf("UpgradeCost(%d) = %d; want %d", tc.level, got, tc.want)
		}
	}
}
