package extract

import "testing"

func TestPlausibleBatting_AbsentAlwaysPasses(t *testing.T) {
	t.Parallel()

	if !PlausibleBatting(absent(), absent(), absent(), absent(), absent()) {
		t.Fatalf("all-absent row should pass")
	}
}

func TestPlausibleBatting_Bounds(t *testing.T) {
	t.Parallel()

	if !PlausibleBatting(present(200), present(120), present(400), present(30), present(20)) {
		t.Fatalf("upper bounds inclusive")
	}
	if PlausibleBatting(present(201), absent(), absent(), absent(), absent()) {
		t.Fatalf("runs over 200 must fail")
	}
	if PlausibleBatting(absent(), present(121), absent(), absent(), absent()) {
		t.Fatalf("balls over 120 must fail")
	}
	if PlausibleBatting(absent(), absent(), present(9.9), absent(), absent()) {
		t.Fatalf("strike rate under 10 must fail")
	}
	if PlausibleBatting(absent(), absent(), absent(), present(31), absent()) {
		t.Fatalf("fours over 30 must fail")
	}
	if PlausibleBatting(absent(), absent(), absent(), absent(), present(21)) {
		t.Fatalf("sixes over 20 must fail")
	}
}

func TestPlausibleBowling_Bounds(t *testing.T) {
	t.Parallel()

	if !PlausibleBowling(present(4), present(1), present(12), present(24), present(2), present(6)) {
		t.Fatalf("ordinary figures should pass")
	}
	if PlausibleBowling(present(11), absent(), absent(), absent(), absent(), absent()) {
		t.Fatalf("overs over 10 must fail")
	}
	if PlausibleBowling(absent(), present(6), absent(), absent(), absent(), absent()) {
		t.Fatalf("maidens over 5 must fail")
	}
	if PlausibleBowling(absent(), absent(), present(37), absent(), absent(), absent()) {
		t.Fatalf("dots over 36 must fail")
	}
	if PlausibleBowling(absent(), absent(), absent(), present(121), absent(), absent()) {
		t.Fatalf("runs over 120 must fail")
	}
	if PlausibleBowling(absent(), absent(), absent(), absent(), present(11), absent()) {
		t.Fatalf("wickets over 10 must fail")
	}
	if PlausibleBowling(absent(), absent(), absent(), absent(), absent(), present(0.4)) {
		t.Fatalf("economy under 0.5 must fail")
	}
}
