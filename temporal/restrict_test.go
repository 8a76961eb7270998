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

import (
	"testing"

	"github.com/temporalith/tengine/period"
)

func ts(n int64) period.Timestamp { return period.Timestamp(n) }

func linSeq(t *testing.T, pairs ...int64) *Sequence[int64] {
	t.Helper()
	instants := make([]Instant[int64], len(pairs)/2)
	for i := 0; i < len(instants); i++ {
		instants[i] = Instant[int64]{V: pairs[2*i], T: ts(pairs[2*i+1])}
	}
	s, err := SequenceMake(instants, true, true, Linear, false)
	if err != nil {
		t.Fatalf("SequenceMake: %v", err)
	}
	return s
}

func TestInstantAtMinusTimestamp(t *testing.T) {
	in := &Instant[int64]{V: 5, T: ts(10)}
	if _, ok := in.AtTimestamp(ts(10)); !ok {
		t.Fatalf("expected AtTimestamp(10) to match")
	}
	if _, ok := in.AtTimestamp(ts(11)); ok {
		t.Fatalf("expected AtTimestamp(11) to miss")
	}
	if _, ok := in.MinusTimestamp(ts(10)); ok {
		t.Fatalf("MinusTimestamp(10) should remove the instant")
	}
	if r, ok := in.MinusTimestamp(ts(11)); !ok || r != in {
		t.Fatalf("MinusTimestamp(11) should pass the instant through")
	}
}

func TestInstantSetAtTimestampSet(t *testing.T) {
	is, err := InstantSetMake([]Instant[int64]{
		{V: 1, T: ts(0)}, {V: 2, T: ts(10)}, {V: 3, T: ts(20)},
	}, false)
	if err != nil {
		t.Fatalf("InstantSetMake: %v", err)
	}
	tsSet, err := period.TimestampSetMake([]period.Timestamp{ts(0), ts(20)}, false)
	if err != nil {
		t.Fatalf("TimestampSetMake: %v", err)
	}
	got, ok := is.AtTimestampSet(tsSet)
	if !ok || got.NumInstants() != 2 {
		t.Fatalf("expected 2 instants, got %v ok=%v", got, ok)
	}
	rest, ok := is.MinusTimestampSet(tsSet)
	if !ok || rest.NumInstants() != 1 || rest.At(0).V != 2 {
		t.Fatalf("expected the single remaining instant to be 2, got %v ok=%v", rest, ok)
	}
}

// TestSequenceAtPeriodCropsAndInterpolates exercises crop's boundary
// synthesis: a period that starts strictly inside a linear segment
// gets an interpolated instant at its lower bound.
func TestSequenceAtPeriodCropsAndInterpolates(t *testing.T) {
	s := linSeq(t, 0, 0, 100, 100)
	p := period.MustMake(ts(25), ts(75), true, true)
	cropped, ok := s.AtPeriod(p)
	if !ok {
		t.Fatalf("expected AtPeriod to find an intersection")
	}
	if v, ok := cropped.ValueAtInclusive(ts(25)); !ok || v != 25 {
		t.Fatalf("expected cropped lower bound value 25, got %v ok=%v", v, ok)
	}
	if v, ok := cropped.ValueAtInclusive(ts(75)); !ok || v != 75 {
		t.Fatalf("expected cropped upper bound value 75, got %v ok=%v", v, ok)
	}
}

func TestSequenceMinusPeriodSplitsIntoTwo(t *testing.T) {
	s := linSeq(t, 0, 0, 100, 100)
	p := period.MustMake(ts(25), ts(75), true, true)
	rest, ok := s.MinusPeriod(p)
	if !ok || rest.NumSequences() != 2 {
		t.Fatalf("expected MinusPeriod to split into two pieces, got %v ok=%v", rest, ok)
	}
}

// TestSequenceAtValueLinearCrossing checks the analytic crossing solve
// spec.md §4.3 describes: a linear ramp from 0 to 100 over [0,100]
// crosses the value 40 at exactly t=40.
func TestSequenceAtValueLinearCrossing(t *testing.T) {
	s := linSeq(t, 0, 0, 100, 100)
	at, ok := s.AtValue(40)
	if !ok || at.NumSequences() != 1 {
		t.Fatalf("expected a single crossing sequence, got %v ok=%v", at, ok)
	}
	crossing := at.Sequence(0)
	if crossing.NumInstants() != 1 || crossing.At(0).T != ts(40) {
		t.Fatalf("expected a degenerate [40,40] crossing, got %v", crossing)
	}
}

func TestSequenceAtValueOutOfRange(t *testing.T) {
	s := linSeq(t, 0, 0, 100, 100)
	if _, ok := s.AtValue(200); ok {
		t.Fatalf("value 200 is out of the segment's range and should not match")
	}
}

// TestSequenceMinusValueRemovesUnionOfCrossings exercises a sequence
// that touches the same value twice; MinusValue must remove both
// crossing instants in one pass, not just the first.
func TestSequenceMinusValueRemovesUnionOfCrossings(t *testing.T) {
	s := linSeq(t, 0, 0, 10, 10, 0, 20)
	rest, ok := s.MinusValue(5)
	if !ok {
		t.Fatalf("expected a remaining sequence set")
	}
	for i := 0; i < rest.NumSequences(); i++ {
		seq := rest.Sequence(i)
		for j := 0; j < seq.NumInstants(); j++ {
			if v, ok := seq.ValueAt(seq.At(j).T); ok && v == 5 {
				t.Fatalf("value 5 should have been removed at every crossing, found one at t=%d", seq.At(j).T)
			}
		}
	}
}

func TestSequenceAtTimestampHonorsExclusiveBound(t *testing.T) {
	instants := []Instant[int64]{{V: 0, T: ts(0)}, {V: 10, T: ts(10)}}
	s, err := SequenceMake(instants, true, false, Linear, false)
	if err != nil {
		t.Fatalf("SequenceMake: %v", err)
	}
	if _, ok := s.AtTimestamp(ts(10)); ok {
		t.Fatalf("exclusive upper bound should not be reachable via AtTimestamp")
	}
	if _, ok := s.AtTimestamp(ts(5)); !ok {
		t.Fatalf("interior timestamp should be reachable")
	}
}

// TestSequenceAtRangeLinearWindow checks the analytic crossing-interval
// solve for a numeric range restriction (spec.md §4.3's "range (for
// numbers)"): a linear ramp from 0 to 100 over [0,100] restricted to
// [40,60] should isolate exactly the sub-segment where the ramp's
// value lies in that window, i.e. t in [40,60].
func TestSequenceAtRangeLinearWindow(t *testing.T) {
	s := linSeq(t, 0, 0, 100, 100)
	r, err := RangeMake[int64](40, 60, true, true)
	if err != nil {
		t.Fatalf("RangeMake: %v", err)
	}
	at, ok := s.AtRange(r)
	if !ok || at.NumSequences() != 1 {
		t.Fatalf("expected a single windowed sequence, got %v ok=%v", at, ok)
	}
	piece := at.Sequence(0)
	if v, ok := piece.ValueAtInclusive(ts(40)); !ok || v != 40 {
		t.Fatalf("expected the window to start at t=40 with value 40, got %v ok=%v", v, ok)
	}
	if v, ok := piece.ValueAtInclusive(ts(60)); !ok || v != 60 {
		t.Fatalf("expected the window to end at t=60 with value 60, got %v ok=%v", v, ok)
	}
}

// TestSequenceAtRangeExclusiveBoundTrimsEndpoint checks that a
// half-open range excludes the value exactly at its excluded bound.
func TestSequenceAtRangeExclusiveBoundTrimsEndpoint(t *testing.T) {
	s := linSeq(t, 0, 0, 100, 100)
	r, err := RangeMake[int64](40, 60, true, false)
	if err != nil {
		t.Fatalf("RangeMake: %v", err)
	}
	at, ok := s.AtRange(r)
	if !ok || at.NumSequences() != 1 {
		t.Fatalf("expected a single windowed sequence, got %v ok=%v", at, ok)
	}
	if _, ok := at.Sequence(0).ValueAt(ts(60)); ok {
		t.Fatalf("expected t=60 to be excluded by the range's exclusive upper bound")
	}
}

// TestSequenceAtMinusRangeRoundTrip checks spec.md §8's round-trip
// property at(X,p) ∪ minus(X,p) = X for p a range: every instant of
// the original domain is covered by exactly one of AtRange/MinusRange.
func TestSequenceAtMinusRangeRoundTrip(t *testing.T) {
	s := linSeq(t, 0, 0, 10, 10, 100, 20)
	r, err := RangeMake[int64](3, 7, true, true)
	if err != nil {
		t.Fatalf("RangeMake: %v", err)
	}
	at, atOK := s.AtRange(r)
	minus, minusOK := s.MinusRange(r)
	for _, probe := range []period.Timestamp{ts(0), ts(3), ts(5), ts(7), ts(10), ts(15), ts(20)} {
		v, ok := s.ValueAtInclusive(probe)
		if !ok {
			continue
		}
		inAt := atOK && valueAtSet(at, probe) != nil
		inMinus := minusOK && valueAtSet(minus, probe) != nil
		if inAt == inMinus {
			t.Fatalf("t=%d (v=%v): expected exactly one of AtRange/MinusRange to cover it, at=%v minus=%v", probe, v, inAt, inMinus)
		}
	}
}

// valueAtSet returns a pointer to the value at t within ss if any
// member sequence covers it, or nil.
func valueAtSet(ss *SequenceSet[int64], t period.Timestamp) *int64 {
	for i := 0; i < ss.NumSequences(); i++ {
		if v, ok := ss.Sequence(i).ValueAt(t); ok {
			return &v
		}
	}
	return nil
}

// TestSequenceAtRangeSetUnionOfRanges checks that restricting to a
// RangeSet of two disjoint ranges isolates both corresponding windows.
func TestSequenceAtRangeSetUnionOfRanges(t *testing.T) {
	s := linSeq(t, 0, 0, 100, 100)
	lo, err := RangeMake[int64](10, 20, true, true)
	if err != nil {
		t.Fatalf("RangeMake: %v", err)
	}
	hi, err := RangeMake[int64](80, 90, true, true)
	if err != nil {
		t.Fatalf("RangeMake: %v", err)
	}
	rs, err := RangeSetMake([]Range[int64]{lo, hi}, true)
	if err != nil {
		t.Fatalf("RangeSetMake: %v", err)
	}
	at, ok := s.AtRangeSet(rs)
	if !ok || at.NumSequences() != 2 {
		t.Fatalf("expected two windowed sequences, got %v ok=%v", at, ok)
	}
}

// TestInstantSetAtValueSet mirrors TestInstantSetAtTimestampSet for the
// value-set restriction named in spec.md §4.3/§8.
func TestInstantSetAtValueSet(t *testing.T) {
	is, err := InstantSetMake([]Instant[int64]{
		{V: 1, T: ts(0)}, {V: 2, T: ts(10)}, {V: 3, T: ts(20)},
	}, false)
	if err != nil {
		t.Fatalf("InstantSetMake: %v", err)
	}
	vs, err := ValueSetMake([]int64{1, 3})
	if err != nil {
		t.Fatalf("ValueSetMake: %v", err)
	}
	got, ok := is.AtValueSet(vs)
	if !ok || got.NumInstants() != 2 {
		t.Fatalf("expected 2 instants, got %v ok=%v", got, ok)
	}
	rest, ok := is.MinusValueSet(vs)
	if !ok || rest.NumInstants() != 1 || rest.At(0).V != 2 {
		t.Fatalf("expected the single remaining instant to be 2, got %v ok=%v", rest, ok)
	}
}

// TestSequenceAtMinusValueSetRoundTrip checks spec.md §8's round-trip
// property for a value-set restriction over a stepwise sequence.
func TestSequenceAtMinusValueSetRoundTrip(t *testing.T) {
	instants := []Instant[int64]{{V: 1, T: ts(0)}, {V: 2, T: ts(10)}, {V: 3, T: ts(20)}, {V: 1, T: ts(30)}}
	s, err := SequenceMake(instants, true, true, Stepwise, false)
	if err != nil {
		t.Fatalf("SequenceMake: %v", err)
	}
	vs, err := ValueSetMake([]int64{1, 3})
	if err != nil {
		t.Fatalf("ValueSetMake: %v", err)
	}
	at, atOK := s.AtValueSet(vs)
	minus, minusOK := s.MinusValueSet(vs)
	atCount, minusCount := 0, 0
	if atOK {
		for i := 0; i < at.NumSequences(); i++ {
			atCount += at.Sequence(i).NumInstants()
		}
	}
	if minusOK {
		for i := 0; i < minus.NumSequences(); i++ {
			minusCount += minus.Sequence(i).NumInstants()
		}
	}
	if atCount == 0 || minusCount == 0 {
		t.Fatalf("expected both AtValueSet and MinusValueSet to be non-empty for this sequence, got at=%d minus=%d", atCount, minusCount)
	}
}

func TestSequenceSetAtValueFlattensAcrossMembers(t *testing.T) {
	a := linSeq(t, 0, 0, 10, 10)
	b := linSeq(t, 0, 20, 10, 30)
	ss, err := SequenceSetMake([]*Sequence[int64]{a, b}, false)
	if err != nil {
		t.Fatalf("SequenceSetMake: %v", err)
	}
	at, ok := ss.AtValue(5)
	if !ok || at.NumSequences() != 2 {
		t.Fatalf("expected a crossing in each member sequence, got %v ok=%v", at, ok)
	}
}
