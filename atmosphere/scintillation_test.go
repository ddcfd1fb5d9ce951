package atmosphere

import "testing"

func TestScintillationIndex(t *testing.T) {
	// S4 falls steeply with frequency.
	s4VHF := ScintillationIndex(0.3, 45, 120, 14)
	s4UHF := ScintillationIndex(1.0, 45, 120, 14)
	s4L := ScintillationIndex(1.5, 45, 120, 14)
	s4X := ScintillationIndex(8.0, 45, 120, 14)
	if !(s4VHF > s4UHF && s4UHF > s4L && s4L > s4X) {
		t.Errorf("S4 not falling with frequency: %g, %g, %g, %g", s4VHF, s4UHF, s4L, s4X)
	}
	if got := ScintillationIndex(4.0, 45, 120, 14); got >= 0.1 {
		t.Errorf("S4 at 4 GHz mid-latitude = %g, want negligible", got)
	}
	if got := ScintillationIndex(0.3, 10, 120, 14); got <= 0.5 {
		t.Errorf("S4 at VHF equatorial = %g, want strong", got)
	}
	if ScintillationIndex(1, 5, 120, 14) <= ScintillationIndex(1, 45, 120, 14) {
		t.Error("equatorial scintillation should exceed mid-latitude")
	}
	if ScintillationIndex(1, 45, 200, 14) <= ScintillationIndex(1, 45, 70, 14) {
		t.Error("higher solar flux should strengthen scintillation")
	}
	if ScintillationIndex(1, 45, 120, 21) <= ScintillationIndex(1, 45, 120, 12) {
		t.Error("post-sunset scintillation should exceed daytime")
	}
	for _, f := range []float64{0.1, 0.5, 1, 5, 20} {
		if ScintillationIndex(f, 45, 120, 14) < 0 {
			t.Errorf("negative S4 at %g GHz", f)
		}
	}
}

func TestScintillationFade(t *testing.T) {
	if got := ScintillationFadeDB(0.5, 30, 45, 120, 14, 1); got <= 0 {
		t.Errorf("UHF fade = %g dB, want positive", got)
	}
	if got := ScintillationFadeDB(10, 30, 45, 120, 14, 1); got >= 0.5 {
		t.Errorf("X-band fade = %g dB, want negligible", got)
	}
	if ScintillationFadeDB(1, 10, 45, 120, 14, 1) <= ScintillationFadeDB(1, 60, 45, 120, 14, 1) {
		t.Error("more oblique path should fade deeper")
	}
	if ScintillationFadeDB(1, 1, 45, 120, 14, 1) != ScintillationFadeDB(1, 5, 45, 120, 14, 1) {
		t.Error("elevations under the floor should clamp to 5 degrees")
	}
	fVHF := ScintillationFadeDB(0.3, 30, 45, 120, 14, 1)
	fUHF := ScintillationFadeDB(1, 30, 45, 120, 14, 1)
	fS := ScintillationFadeDB(2, 30, 45, 120, 14, 1)
	if !(fVHF > fUHF && fUHF > fS) {
		t.Errorf("fade not falling with frequency: %g, %g, %g", fVHF, fUHF, fS)
	}
}
