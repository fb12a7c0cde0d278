package relation

import "testing"

// Both directions of a pair must contend on the same lock key, otherwise two
// concurrent transitions could interleave and clobber each other's rows.
func TestPairKeySymmetric(t *testing.T) {
	cases := []struct {
		a, b   uint
		lo, hi int32
	}{
		{3, 7, 3, 7},
		{7, 3, 3, 7},
		{1, 1, 1, 1},
		{42, 9, 9, 42},
	}
	for i, c := range cases {
		lo, hi := pairKey(c.a, c.b)
		if lo != c.lo || hi != c.hi {
			t.Fatalf("case %d: pairKey(%d, %d) = (%d, %d), want (%d, %d)", i, c.a, c.b, lo, hi, c.lo, c.hi)
		}
		rlo, rhi := pairKey(c.b, c.a)
		if rlo != lo || rhi != hi {
			t.Fatalf("case %d: pairKey not symmetric: (%d, %d) vs (%d, %d)", i, lo, hi, rlo, rhi)
		}
	}
}
