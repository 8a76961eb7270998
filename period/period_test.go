// Copyright (C) 2024 Temporalith, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package period

import "testing"

func ts(n int64) Timestamp { return Timestamp(n) }

// TestContainsInclusiveExclusive exercises scenario 1 from spec.md §8:
// a half-open period does not contain its excluded upper bound, but a
// fully inclusive period does.
func TestContainsInclusiveExclusive(t *testing.T) {
	p := MustMake(ts(0), ts(86400000000), true, false)
	if p.ContainsTimestamp(ts(86400000000)) {
		t.Fatalf("half-open period must not contain its exclusive upper bound")
	}
	p2 := MustMake(ts(0), ts(86400000000), true, true)
	if !p2.ContainsTimestamp(ts(86400000000)) {
		t.Fatalf("fully inclusive period must contain its upper bound")
	}
}

func TestDegeneratePeriodRequiresBothInclusive(t *testing.T) {
	if _, err := Make(ts(5), ts(5), true, false); err == nil {
		t.Fatalf("expected error for degenerate period with exclusive bound")
	}
	if _, err := Make(ts(5), ts(5), true, true); err != nil {
		t.Fatalf("degenerate period with both bounds inclusive should be valid: %v", err)
	}
}

func TestLowerUpperOutOfOrder(t *testing.T) {
	if _, err := Make(ts(10), ts(5), true, false); err == nil {
		t.Fatalf("expected error when lower > upper")
	}
}

func TestAdjacent(t *testing.T) {
	a := MustMake(ts(0), ts(10), true, false)
	b := MustMake(ts(10), ts(20), true, false)
	if !a.Adjacent(b) {
		t.Fatalf("[0,10) and [10,20) should be adjacent")
	}
	c := MustMake(ts(10), ts(20), false, false)
	if a.Adjacent(c) {
		t.Fatalf("[0,10) and (10,20) should not be adjacent: both sides exclusive at the shared point")
	}
}

func TestBeforeAfter(t *testing.T) {
	a := MustMake(ts(0), ts(10), true, true)
	b := MustMake(ts(10), ts(20), true, true)
	if a.Before(b) {
		t.Fatalf("[0,10] and [10,20] share the inclusive point 10, so not strictly before")
	}
	c := MustMake(ts(10), ts(20), false, true)
	if !a.Before(c) {
		t.Fatalf("[0,10] and (10,20] should be strictly before: one side of the shared point is exclusive")
	}
}

func TestPeriodSetNormalization(t *testing.T) {
	raw := []Period{
		MustMake(ts(20), ts(30), true, false),
		MustMake(ts(0), ts(10), true, false),
		MustMake(ts(10), ts(20), true, false),
	}
	ps, err := PeriodSetMake(raw, NormalizeYes)
	if err != nil {
		t.Fatal(err)
	}
	if ps.Len() != 1 {
		t.Fatalf("expected fully coalesced single period, got %d: %v", ps.Len(), ps)
	}
	if ps.At(0).Lower != ts(0) || ps.At(0).Upper != ts(30) {
		t.Fatalf("unexpected bounds: %v", ps.At(0))
	}
}

func TestPeriodSetMakeRejectsUnnormalizedWithoutNormalize(t *testing.T) {
	raw := []Period{
		MustMake(ts(10), ts(20), true, false),
		MustMake(ts(0), ts(10), true, false),
	}
	if _, err := PeriodSetMake(raw, NormalizeNo); err == nil {
		t.Fatalf("expected InvalidArgument for out-of-order input with normalization disabled")
	}
}

func TestPeriodSetSearchAndContains(t *testing.T) {
	ps, err := PeriodSetMake([]Period{
		MustMake(ts(0), ts(10), true, false),
		MustMake(ts(20), ts(30), true, false),
	}, NormalizeYes)
	if err != nil {
		t.Fatal(err)
	}
	if !ps.Contains(ts(25)) {
		t.Fatalf("expected 25 to be contained")
	}
	if ps.Contains(ts(15)) {
		t.Fatalf("did not expect 15 (in the gap) to be contained")
	}
}

func TestPeriodSetMinus(t *testing.T) {
	ps, _ := PeriodSetMake([]Period{MustMake(ts(0), ts(100), true, false)}, NormalizeYes)
	qs, _ := PeriodSetMake([]Period{MustMake(ts(20), ts(40), true, false)}, NormalizeYes)
	diff, ok := ps.Minus(qs)
	if !ok {
		t.Fatalf("expected non-empty difference")
	}
	if diff.Len() != 2 {
		t.Fatalf("expected two remaining periods, got %d: %v", diff.Len(), diff)
	}
	if diff.At(0).Lower != ts(0) || diff.At(0).Upper != ts(20) {
		t.Fatalf("unexpected left remainder: %v", diff.At(0))
	}
	if diff.At(1).Lower != ts(40) || diff.At(1).Upper != ts(100) {
		t.Fatalf("unexpected right remainder: %v", diff.At(1))
	}
}

func TestPeriodSetRoundTrip(t *testing.T) {
	// at(X,p) U minus(X,p) = X, over a period-set restriction.
	ps, _ := PeriodSetMake([]Period{MustMake(ts(0), ts(100), true, false)}, NormalizeYes)
	qs, _ := PeriodSetMake([]Period{MustMake(ts(20), ts(40), true, false)}, NormalizeYes)
	at, atOK := ps.Intersection(qs)
	minus, minusOK := ps.Minus(qs)
	if !atOK || !minusOK {
		t.Fatalf("expected both halves non-empty")
	}
	union := at.Union(minus)
	if !union.Equal(ps) {
		t.Fatalf("round-trip failed: got %v want %v", union, ps)
	}
}

// Equal reports whether two normalized period sets contain exactly
// the same periods; used only by tests.
func (ps PeriodSet) Equal(qs PeriodSet) bool {
	if ps.Len() != qs.Len() {
		return false
	}
	for i := range ps.periods {
		if !ps.periods[i].Equal(qs.periods[i]) {
			return false
		}
	}
	return true
}
