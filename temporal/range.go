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

// range.go adds the two restriction operands period.Period and
// period.TimestampSet have no analogue for: Range, a bounded numeric
// value interval with per-endpoint inclusivity, and RangeSet, a
// normalized set of Ranges (mirroring period.Period/period.PeriodSet
// but over the value axis instead of the time axis); plus ValueSet, a
// set of arbitrary Base values (mirroring period.TimestampSet, but
// using Equal rather than ordering, since not every Base is ordered).
package temporal

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/temporalith/tengine/tserr"
)

// Range is a bounded value interval [lower, upper] with independent
// inclusivity per endpoint, restricted to the numeric base types
// (int64, float64): spec.md §4.3's "range (for numbers)" operand. If
// lower == upper both bounds must be inclusive, mirroring
// period.Period's degenerate-interval rule.
type Range[V Base] struct {
	Lower, Upper       V
	LowerInc, UpperInc bool
}

// RangeMake constructs a Range, validating that V is numeric and the
// lower<=upper/degenerate-range invariants period.Make also enforces.
func RangeMake[V Base](lower, upper V, lowerInc, upperInc bool) (Range[V], error) {
	k := KindOf[V]()
	if k != KindInt && k != KindFloat {
		return Range[V]{}, tserr.InvalidArg("range restriction only supports numeric base types, got %s", k)
	}
	lo, hi := AsFloat64(lower), AsFloat64(upper)
	if lo > hi {
		return Range[V]{}, tserr.InvalidArg("range lower bound %v is after upper bound %v", lower, upper)
	}
	if lo == hi && !(lowerInc && upperInc) {
		return Range[V]{}, tserr.InvalidArg("degenerate range %v must have both bounds inclusive", lower)
	}
	return Range[V]{Lower: lower, Upper: upper, LowerInc: lowerInc, UpperInc: upperInc}, nil
}

func (r Range[V]) String() string {
	l, u := "[", ")"
	if !r.LowerInc {
		l = "("
	}
	if r.UpperInc {
		u = "]"
	}
	return fmt.Sprintf("%s%v, %v%s", l, r.Lower, r.Upper, u)
}

// Contains reports whether v falls within r, honoring the endpoint
// inclusivity flags.
func (r Range[V]) Contains(v V) bool {
	f, lo, hi := AsFloat64(v), AsFloat64(r.Lower), AsFloat64(r.Upper)
	if f < lo || f > hi {
		return false
	}
	if f == lo && !r.LowerInc {
		return false
	}
	if f == hi && !r.UpperInc {
		return false
	}
	return true
}

// compareRangeLowerBound mirrors period.compareLowerBound over the
// value axis: an inclusive lower bound sorts before an exclusive one
// at the same value.
func compareRangeLowerBound(va float64, ainc bool, vb float64, binc bool) int {
	switch {
	case va < vb:
		return -1
	case va > vb:
		return 1
	case ainc == binc:
		return 0
	case ainc:
		return -1
	default:
		return 1
	}
}

// compareRangeUpperBound mirrors period.compareUpperBound: an
// exclusive upper bound sorts before an inclusive one at the same
// value.
func compareRangeUpperBound(va float64, ainc bool, vb float64, binc bool) int {
	switch {
	case va < vb:
		return -1
	case va > vb:
		return 1
	case ainc == binc:
		return 0
	case ainc:
		return 1
	default:
		return -1
	}
}

// CompareRange orders two Ranges: by lower bound first, then by upper
// bound, matching period.ComparePeriod's ordering rule over the value
// axis.
func CompareRange[V Base](a, b Range[V]) int {
	al, bl := AsFloat64(a.Lower), AsFloat64(b.Lower)
	if c := compareRangeLowerBound(al, a.LowerInc, bl, b.LowerInc); c != 0 {
		return c
	}
	au, bu := AsFloat64(a.Upper), AsFloat64(b.Upper)
	return compareRangeUpperBound(au, a.UpperInc, bu, b.UpperInc)
}

// Overlaps reports whether r and q share at least one value.
func (r Range[V]) Overlaps(q Range[V]) bool {
	return !r.strictlyBelow(q) && !q.strictlyBelow(r)
}

func (r Range[V]) strictlyBelow(q Range[V]) bool {
	ru, ql := AsFloat64(r.Upper), AsFloat64(q.Lower)
	if ru < ql {
		return true
	}
	if ru > ql {
		return false
	}
	return !(r.UpperInc && q.LowerInc)
}

// Adjacent holds iff r and q share exactly one endpoint and that
// endpoint is inclusive on exactly one side, mirroring
// period.Period.Adjacent over the value axis.
func (r Range[V]) Adjacent(q Range[V]) bool {
	ru, ql := AsFloat64(r.Upper), AsFloat64(q.Lower)
	qu, rl := AsFloat64(q.Upper), AsFloat64(r.Lower)
	if ru == ql && (r.UpperInc != q.LowerInc) && (r.UpperInc || q.LowerInc) {
		return true
	}
	if qu == rl && (q.UpperInc != r.LowerInc) && (q.UpperInc || r.LowerInc) {
		return true
	}
	return false
}

// Union returns the span of r and q as a single Range. Callers that
// need to know whether the union is exact (no gap introduced) should
// check Overlaps/Adjacent themselves before calling, mirroring how
// normalizeRanges only ever unions ranges it already knows touch.
func (r Range[V]) Union(q Range[V]) Range[V] {
	lo, loInc := r.Lower, r.LowerInc
	if compareRangeLowerBound(AsFloat64(q.Lower), q.LowerInc, AsFloat64(lo), loInc) < 0 {
		lo, loInc = q.Lower, q.LowerInc
	}
	hi, hiInc := r.Upper, r.UpperInc
	if compareRangeUpperBound(AsFloat64(q.Upper), q.UpperInc, AsFloat64(hi), hiInc) > 0 {
		hi, hiInc = q.Upper, q.UpperInc
	}
	return Range[V]{Lower: lo, Upper: hi, LowerInc: loInc, UpperInc: hiInc}
}

// RangeSet is a finite ordered sequence of Ranges that is pairwise
// strictly ordered, non-overlapping, and non-adjacent, mirroring
// period.PeriodSet's normalization invariant over the value axis:
// spec.md §4.3's "range-set" operand.
type RangeSet[V Base] struct {
	ranges []Range[V]
}

// RangeSetMake builds a RangeSet from ranges. With normalize=true the
// input is sorted and adjacent/overlapping ranges are coalesced; with
// normalize=false the caller asserts ranges is already sorted,
// disjoint, and non-adjacent, and RangeSetMake fails with
// InvalidArgument if that assertion does not hold.
func RangeSetMake[V Base](ranges []Range[V], normalize bool) (RangeSet[V], error) {
	if len(ranges) == 0 {
		return RangeSet[V]{}, tserr.InvalidArg("range set must contain at least one range")
	}
	out := slices.Clone(ranges)
	if normalize {
		out = normalizeRanges(out)
	} else {
		for i := 1; i < len(out); i++ {
			if out[i-1].Overlaps(out[i]) || out[i-1].Adjacent(out[i]) || CompareRange(out[i-1], out[i]) >= 0 {
				return RangeSet[V]{}, tserr.InvalidArg("range set is not normalized at index %d", i)
			}
		}
	}
	return RangeSet[V]{ranges: out}, nil
}

func normalizeRanges[V Base](ranges []Range[V]) []Range[V] {
	slices.SortFunc(ranges, CompareRange[V])
	out := ranges[:0:0]
	cur := ranges[0]
	for i := 1; i < len(ranges); i++ {
		if cur.Overlaps(ranges[i]) || cur.Adjacent(ranges[i]) {
			cur = cur.Union(ranges[i])
			continue
		}
		out = append(out, cur)
		cur = ranges[i]
	}
	out = append(out, cur)
	return out
}

// Len returns the number of ranges in rs.
func (rs RangeSet[V]) Len() int { return len(rs.ranges) }

// At returns the i-th range.
func (rs RangeSet[V]) At(i int) Range[V] { return rs.ranges[i] }

// Ranges returns the underlying ranges; callers must not mutate the
// returned slice.
func (rs RangeSet[V]) Ranges() []Range[V] { return rs.ranges }

// Contains reports whether v lies within some range of rs.
func (rs RangeSet[V]) Contains(v V) bool {
	for _, r := range rs.ranges {
		if r.Contains(v) {
			return true
		}
	}
	return false
}

func (rs RangeSet[V]) String() string {
	return fmt.Sprintf("%v", rs.ranges)
}

// ValueSet is a finite set of distinct Base values: spec.md §4.3's
// "value-set" operand. Unlike period.TimestampSet it cannot assume an
// ordering (bool and geo.Point are not ordered bases), so membership
// is a linear Equal-based scan rather than a binary search -
// appropriate given value-sets in practice are small, hand-authored
// restriction lists rather than bulk-loaded data.
type ValueSet[V Base] struct {
	values []V
}

// ValueSetMake builds a ValueSet from values, deduplicating via
// Equal.
func ValueSetMake[V Base](values []V) (ValueSet[V], error) {
	if len(values) == 0 {
		return ValueSet[V]{}, tserr.InvalidArg("value set must contain at least one value")
	}
	var out []V
	for _, v := range values {
		dup := false
		for _, o := range out {
			if Equal(o, v) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return ValueSet[V]{values: out}, nil
}

// Len returns the number of distinct values in vs.
func (vs ValueSet[V]) Len() int { return len(vs.values) }

// At returns the i-th value.
func (vs ValueSet[V]) At(i int) V { return vs.values[i] }

// Values returns the underlying values; callers must not mutate the
// returned slice.
func (vs ValueSet[V]) Values() []V { return vs.values }

// Contains reports whether v is a member of vs.
func (vs ValueSet[V]) Contains(v V) bool {
	for _, o := range vs.values {
		if Equal(o, v) {
			return true
		}
	}
	return false
}

func (vs ValueSet[V]) String() string {
	return fmt.Sprintf("%v", vs.values)
}
