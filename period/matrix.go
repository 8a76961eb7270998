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

// Time is implemented by all four time-kinds (Timestamp, Period,
// TimestampSet, PeriodSet) and lets the predicate/operator matrix in
// this file be written once, generically, instead of as 16 separate
// pairwise implementations. AsPeriodSet treats a bare Timestamp as a
// degenerate, single-instant Period, and a Period as a one-element
// PeriodSet.
type Time interface {
	AsPeriodSet() PeriodSet
	Bbox() Period
}

// AsPeriodSet implements Time for a bare Timestamp.
func (t Timestamp) AsPeriodSet() PeriodSet {
	ps, _ := PeriodSetMake([]Period{Instant(t)}, NormalizeNo)
	return ps
}

// Bbox implements Time for a bare Timestamp.
func (t Timestamp) Bbox() Period { return Instant(t) }

// AsPeriodSet implements Time for a Period.
func (p Period) AsPeriodSet() PeriodSet {
	ps, _ := PeriodSetMake([]Period{p}, NormalizeNo)
	return ps
}

// Bbox implements Time for a Period.
func (p Period) Bbox() Period { return p }

// AsPeriodSet implements Time for a TimestampSet, widening each member
// to a degenerate Period.
func (ts TimestampSet) AsPeriodSet() PeriodSet {
	periods := make([]Period, ts.Len())
	for i, t := range ts.times {
		periods[i] = Instant(t)
	}
	ps, _ := PeriodSetMake(periods, NormalizeNo)
	return ps
}

// AsPeriodSet implements Time for a PeriodSet (identity).
func (ps PeriodSet) AsPeriodSet() PeriodSet { return ps }

// Contains reports whether every point of b is a point of a.
func Contains(a, b Time) bool {
	return a.AsPeriodSet().ContainsSet(b.AsPeriodSet())
}

// Contained reports whether every point of a is a point of b.
func Contained(a, b Time) bool { return Contains(b, a) }

// Overlaps reports whether a and b share at least one point.
func Overlaps(a, b Time) bool {
	return a.AsPeriodSet().OverlapsSet(b.AsPeriodSet())
}

// Before reports whether every point of a strictly precedes every
// point of b.
func Before(a, b Time) bool { return a.Bbox().Before(b.Bbox()) }

// After reports whether every point of a strictly follows every point
// of b.
func After(a, b Time) bool { return a.Bbox().After(b.Bbox()) }

// OverBefore reports whether a does not extend past the end of b.
func OverBefore(a, b Time) bool { return a.Bbox().OverBefore(b.Bbox()) }

// OverAfter reports whether a does not start before the start of b.
func OverAfter(a, b Time) bool { return a.Bbox().OverAfter(b.Bbox()) }

// Adjacent reports whether a and b touch at exactly one endpoint,
// inclusive on exactly one side.
func Adjacent(a, b Time) bool { return a.Bbox().Adjacent(b.Bbox()) }

// Union returns the PeriodSet union of a and b. Callers that know
// both operands are Timestamp/TimestampSet should prefer
// TimestampSet.Union for an exact TimestampSet result instead of the
// PeriodSet widening this generic entry point performs.
func Union(a, b Time) PeriodSet {
	return a.AsPeriodSet().Union(b.AsPeriodSet())
}

// Intersection returns the PeriodSet intersection of a and b, and
// whether it is non-empty.
func Intersection(a, b Time) (PeriodSet, bool) {
	return a.AsPeriodSet().Intersection(b.AsPeriodSet())
}

// Minus returns the PeriodSet difference a \ b, and whether it is
// non-empty.
func Minus(a, b Time) (PeriodSet, bool) {
	return a.AsPeriodSet().Minus(b.AsPeriodSet())
}

// ContainsSet reports whether every period of qs is fully contained
// within some single period of ps (ps and qs are both normalized, so
// a period of qs spanning a gap of ps can never be contained).
func (ps PeriodSet) ContainsSet(qs PeriodSet) bool {
	for i := range qs.periods {
		if !ps.ContainsPeriod(qs.periods[i]) {
			return false
		}
	}
	return true
}
