package domain

import "testing"

func TestVoteType_Weight(t *testing.T) {
	cases := []struct {
		vt     VoteType
		valid  bool
		weight int64
	}{
		{VoteUp, true, 1},
		{VoteDown, true, -1},
		{VoteType("sideways"), false, 0},
		{VoteType(""), false, 0},
	}
	for _, tc := range cases {
		if got := tc.vt.Valid(); got != tc.valid {
			t.Errorf("%q.Valid() = %v, want %v", tc.vt, got, tc.valid)
		}
		if got := tc.vt.Weight(); got != tc.weight {
			t.Errorf("%q.Weight() = %d, want %d", tc.vt, got, tc.weight)
		}
	}
}
