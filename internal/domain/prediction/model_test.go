package prediction

import "testing"

func TestClampConfidence(t *testing.T) {
	t.Parallel()

	tests := map[int]int{-5: 0, 0: 0, 64: 64, 100: 100, 140: 100}
	for in, want := range tests {
		if got := ClampConfidence(in); got != want {
			t.Fatalf("ClampConfidence(%d)=%d want=%d", in, got, want)
		}
	}
}
