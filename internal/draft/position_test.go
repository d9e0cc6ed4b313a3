package draft

import "testing"

func TestPositionCategory(t *testing.T) {
	tests := []struct {
		position string
		want     string
	}{
		{"PG", PosPG},
		{"Point Guard / PG", PosPG},
		{"sg", PosSG},
		{"SG/SF", PosSG},
		{"SF", PosSF},
		{"PF", PosPF},
		{"C", PosC},
		{"Center", PosC},
		{"center", PosC},
		{"G", PosG},
		{"Guard", PosG},
		{"F", PosF},
		{"Forward", PosF},
		{"", PosFlex},
		{"???", PosFlex},
	}

	for _, tc := range tests {
		if got := PositionCategory(tc.position); got != tc.want {
			t.Errorf("PositionCategory(%q) = %q, want %q", tc.position, got, tc.want)
		}
	}
}

func TestGuardFrontcourtPredicates(t *testing.T) {
	tests := []struct {
		position       string
		wantGuard      bool
		wantFrontcourt bool
	}{
		{"PG", true, false},
		{"SG", true, false},
		{"G", true, false},
		{"GUARD", true, false},
		{"guard", true, false},
		{"SF", false, true},
		{"PF", false, true},
		{"C", false, true},
		{"CENTER", false, true},
		{"F", false, true},
		{"FORWARD", false, true},
		{"", false, false},
	}

	for _, tc := range tests {
		if got := IsGuard(tc.position); got != tc.wantGuard {
			t.Errorf("IsGuard(%q) = %v, want %v", tc.position, got, tc.wantGuard)
		}
		if got := IsFrontcourt(tc.position); got != tc.wantFrontcourt {
			t.Errorf("IsFrontcourt(%q) = %v, want %v", tc.position, got, tc.wantFrontcourt)
		}
	}
}

// The fine classifier and the coarse predicates must stay consistent:
// PG/SG positions satisfy IsGuard, SF/PF/C positions satisfy IsFrontcourt.
func TestClassifierConsistency(t *testing.T) {
	positions := []string{
		"PG", "SG", "SF", "PF", "C", "CENTER", "G", "F",
		"Point Guard", "Shooting Guard", "Small Forward", "Power Forward",
		"PG/SG", "SG/SF", "PF/C", "Guard", "Forward",
	}

	for _, pos := range positions {
		switch PositionCategory(pos) {
		case PosPG, PosSG:
			if !IsGuard(pos) {
				t.Errorf("position %q classifies as a guard category but IsGuard is false", pos)
			}
		case PosSF, PosPF, PosC:
			if !IsFrontcourt(pos) {
				t.Errorf("position %q classifies as a frontcourt category but IsFrontcourt is false", pos)
			}
		}
	}
}
