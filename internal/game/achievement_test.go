package game

import "testing"

func TestAdvanceProgress(t *testing.T) {
	cases := []struct {
		name               string
		current, observed  int64
		objective          int64
		wantProgress       int64
		wantCompleted      bool
	}{
		{"below objective", 5, 3, 20, 8, false},
		{"exactly objective", 15, 5, 20, 20, true},
		{"past objective", 18, 10, 20, 28, true},
		{"from zero", 0, 20, 20, 20, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			upd := AdvanceProgress(tc.current, tc.observed, tc.objective)
			if upd.Progress != tc.wantProgress || upd.Completed != tc.wantCompleted {
				t.Fatalf("got progress=%d completed=%v; want %d %v",
					upd.Progress, upd.Completed, tc.wantProgress, tc.wantCompleted)
			}
			if !upd.Write {
				t.Fatalf("incremental updates always write")
			}
		})
	}
}

func TestSyncProgress(t *testing.T) {
	cases := []struct {
		name          string
		current       int64
		completed     bool
		live          int64
		objective     int64
		wantProgress  int64
		wantCompleted bool
		wantWrite     bool
	}{
		{"quantity moved", 4, false, 7, 10, 7, false, true},
		{"quantity unchanged", 7, false, 7, 10, 7, false, false},
		{"reaches objective", 9, false, 10, 10, 10, true, true},
		{"unchanged but newly complete", 10, false, 10, 10, 10, true, true},
		{"already complete and unchanged", 10, true, 10, 10, 10, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			upd := SyncProgress(tc.current, tc.completed, tc.live, tc.objective)
			if upd.Progress != tc.wantProgress {
				t.Fatalf("progress = %d; want %d", upd.Progress, tc.wantProgress)
			}
			if upd.Completed != tc.wantCompleted {
				t.Fatalf("completed = %v; want %v", upd.Completed, tc.wantCompleted)
			}
			if upd.Write != tc.wantWrite {
				t.Fatalf("write = %v; want %v", upd.Write, tc.wantWrite)
			}
		})
	}
}
