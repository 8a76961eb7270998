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

package temporal

import "testing"

// TestEverEqualCatchesMidSegmentCrossing is the regression case for
// the bug class where EverEqual only checked instants verbatim: a
// linear ramp from 0 to 10 never holds an instant at 5, but it does
// pass through 5 strictly between its endpoints.
func TestEverEqualCatchesMidSegmentCrossing(t *testing.T) {
	s := linSeq(t, 0, 0, 10, 10)
	if !EverEqual[int64](s, 5) {
		t.Fatalf("expected EverEqual to catch the mid-segment crossing at value 5")
	}
	if EverEqual[int64](s, 11) {
		t.Fatalf("value 11 is outside the segment's range and should not match")
	}
}

func TestAlwaysEqualConstantSequence(t *testing.T) {
	s := linSeq(t, 7, 0, 7, 10)
	if !AlwaysEqual[int64](s, 7) {
		t.Fatalf("a flat sequence at 7 should always equal 7")
	}
	s2 := linSeq(t, 0, 0, 10, 10)
	if AlwaysEqual[int64](s2, 5) {
		t.Fatalf("a varying sequence should not always equal any single value")
	}
}

func TestEverLessAlwaysLessBoxShortCircuit(t *testing.T) {
	s := linSeq(t, 10, 0, 20, 10)
	if EverLess[int64](s, 5) {
		t.Fatalf("5 is below the whole box, EverLess should be false")
	}
	if !AlwaysLess[int64](s, 100) {
		t.Fatalf("100 is above the whole box, AlwaysLess should be true")
	}
	if AlwaysLess[int64](s, 15) {
		t.Fatalf("15 is inside the range, not always less")
	}
}

func TestEverLessOrEqualAlwaysLessOrEqual(t *testing.T) {
	s := linSeq(t, 0, 0, 10, 10)
	if !EverLessOrEqual[int64](s, 0) {
		t.Fatalf("expected the starting instant 0 to satisfy <= 0")
	}
	if !AlwaysLessOrEqual[int64](s, 10) {
		t.Fatalf("every instant of [0,10] should be <= 10")
	}
	if AlwaysLessOrEqual[int64](s, 5) {
		t.Fatalf("the final instant 10 should violate <= 5")
	}
}

func TestEverEqualOnSequenceSet(t *testing.T) {
	a := linSeq(t, 0, 0, 10, 10)
	b := linSeq(t, 20, 20, 30, 30)
	ss, err := SequenceSetMake([]*Sequence[int64]{a, b}, false)
	if err != nil {
		t.Fatalf("SequenceSetMake: %v", err)
	}
	if !EverEqual[int64](ss, 25) {
		t.Fatalf("expected EverEqual to find the crossing inside the second member")
	}
	if EverEqual[int64](ss, 15) {
		t.Fatalf("value 15 falls in the gap between members and should never match")
	}
}
