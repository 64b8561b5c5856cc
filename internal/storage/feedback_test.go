package storage

import "testing"

func TestPositiveRate(t *testing.T) {
	cases := []struct {
		name     string
		positive int
		total    int
		want     float64
	}{
		{"no feedback", 0, 0, 0},
		{"all positive", 4, 4, 1},
		{"mixed", 3, 4, 0.75},
		{"all negative", 0, 5, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := positiveRate(tc.positive, tc.total); got != tc.want {
				t.Errorf("positiveRate(%d, %d) = %v, want %v", tc.positive, tc.total, got, tc.want)
			}
		})
	}
}
