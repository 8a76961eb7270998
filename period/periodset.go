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

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/temporalith/tengine/tserr"
)

// Normalize controls whether PeriodSetMake sorts/coalesces its input
// or trusts the caller that it is already clean.
type Normalize bool

const (
	// NormalizeNo preserves ordering when the caller already knows the
	// input is sorted, disjoint, and non-adjacent.
	NormalizeNo Normalize = false
	// NormalizeYes sorts and coalesces the input.
	NormalizeYes Normalize = true
)

// PeriodSet is a finite ordered sequence of Periods that is pairwise
// strictly ordered, non-overlapping, and non-adjacent (fully
// normalized: touching periods with matching inclusivity are
// coalesced). It carries a cached bounding Period.
type PeriodSet struct {
	periods []Period
	bbox    Period
}

// PeriodSetMake builds a PeriodSet from periods. With normalize=true
// the input is sorted and adjacent/overlapping periods are coalesced.
// With normalize=false the caller asserts periods is already sorted,
// disjoint, and non-adjacent; PeriodSetMake fails with
// InvalidArgument if that assertion does not hold.
func PeriodSetMake(periods []Period, normalize Normalize) (PeriodSet, error) {
	if len(periods) == 0 {
		return PeriodSet{}, tserr.InvalidArg("period set must contain at least one period")
	}
	out := slices.Clone(periods)
	if normalize {
		out = normalizePeriods(out)
	} else {
		for i := 1; i < len(out); i++ {
			if out[i-1].Overlaps(out[i]) || out[i-1].Adjacent(out[i]) || ComparePeriod(out[i-1], out[i]) >= 0 {
				return PeriodSet{}, tserr.InvalidArg("period set is not normalized at index %d", i)
			}
		}
	}
	return PeriodSet{
		periods: out,
		bbox:    boundingPeriod(out),
	}, nil
}

func boundingPeriod(sorted []Period) Period {
	first, last := sorted[0], sorted[len(sorted)-1]
	return Period{Lower: first.Lower, Upper: last.Upper, LowerInc: first.LowerInc, UpperInc: last.UpperInc}
}

// normalizePeriods sorts periods and coalesces any that overlap or
// are adjacent, producing a fully normalized, non-empty slice.
func normalizePeriods(periods []Period) []Period {
	slices.SortFunc(periods, ComparePeriod)
	out := periods[:0:0]
	cur := periods[0]
	for i := 1; i < len(periods); i++ {
		if cur.Overlaps(periods[i]) || cur.Adjacent(periods[i]) {
			cur, _ = cur.Union(periods[i])
			continue
		}
		out = append(out, cur)
		cur = periods[i]
	}
	out = append(out, cur)
	return out
}

// Len returns the number of periods in ps.
func (ps PeriodSet) Len() int { return len(ps.periods) }

// At returns the i-th period.
func (ps PeriodSet) At(i int) Period { return ps.periods[i] }

// Periods returns the underlying periods; callers must not mutate the
// returned slice.
func (ps PeriodSet) Periods() []Period { return ps.periods }

// Bbox returns the cached bounding period.
func (ps PeriodSet) Bbox() Period { return ps.bbox }

func (ps PeriodSet) String() string {
	return fmt.Sprintf("%v", ps.periods)
}

// Search returns the index of the period containing t (found=true),
// or the index at which a new period containing only t would be
// inserted (found=false). O(log n); the entry point for all
// containment/restriction operators over PeriodSet.
func (ps PeriodSet) Search(t Timestamp) (idx int, found bool) {
	idx, found = slices.BinarySearchFunc(ps.periods, t, func(p Period, t Timestamp) int {
		if p.Upper < t || (p.Upper == t && !p.UpperInc) {
			return -1
		}
		if p.Lower > t || (p.Lower == t && !p.LowerInc) {
			return 1
		}
		return 0
	})
	return
}

// Contains reports whether t lies within some period of ps.
func (ps PeriodSet) Contains(t Timestamp) bool {
	_, found := ps.Search(t)
	return found
}

// ContainsPeriod reports whether every point of p is covered by ps.
// Since ps is normalized, p is covered iff some single period of ps
// contains it (a period spanning a gap in ps cannot be fully covered).
func (ps PeriodSet) ContainsPeriod(p Period) bool {
	idx, found := ps.Search(p.Lower)
	if !found {
		return false
	}
	return ps.periods[idx].ContainsPeriod(p)
}

// Overlaps reports whether ps and p share at least one point.
func (ps PeriodSet) Overlaps(p Period) bool {
	i, _ := ps.Search(p.Lower)
	for ; i < ps.Len() && ps.periods[i].Lower <= p.Upper; i++ {
		if ps.periods[i].Overlaps(p) {
			return true
		}
	}
	return false
}

// OverlapsSet reports whether ps and qs share at least one point.
func (ps PeriodSet) OverlapsSet(qs PeriodSet) bool {
	i, j := 0, 0
	for i < ps.Len() && j < qs.Len() {
		a, b := ps.periods[i], qs.periods[j]
		if a.Overlaps(b) {
			return true
		}
		if compareUpperBound(a.Upper, a.UpperInc, b.Upper, b.UpperInc) < 0 {
			i++
		} else {
			j++
		}
	}
	return false
}

// Before reports whether every point of ps strictly precedes every
// point of qs.
func (ps PeriodSet) Before(qs PeriodSet) bool {
	return ps.periods[ps.Len()-1].Before(qs.periods[0])
}

// After is the mirror of Before.
func (ps PeriodSet) After(qs PeriodSet) bool { return qs.Before(ps) }

// Adjacent holds iff the bounding periods of ps and qs touch at
// exactly one inclusive-on-one-side endpoint, matching the
// last/first component exactly (periodsets are normalized, so
// adjacency can only occur at the outer boundary).
func (ps PeriodSet) Adjacent(qs PeriodSet) bool {
	return ps.periods[ps.Len()-1].Adjacent(qs.periods[0]) ||
		qs.periods[qs.Len()-1].Adjacent(ps.periods[0])
}

// advanceSmallerUpper is the cursor-advance rule of Intersection's
// two-pointer walk: it reports whether the cursor on a (rather than
// b) should move on, i.e. whether a's upper bound ends first. Union
// normalizes the concatenation of both sets and Minus runs its own
// loop; neither calls this.
func advanceSmallerUpper(a, b Period) (takeA bool) {
	return compareUpperBound(a.Upper, a.UpperInc, b.Upper, b.UpperInc) <= 0
}

// Union returns the normalized union of ps and qs.
func (ps PeriodSet) Union(qs PeriodSet) PeriodSet {
	all := make([]Period, 0, ps.Len()+qs.Len())
	all = append(all, ps.periods...)
	all = append(all, qs.periods...)
	out, _ := PeriodSetMake(all, NormalizeYes)
	return out
}

// Intersection returns the normalized intersection of ps and qs, and
// whether it is non-empty.
func (ps PeriodSet) Intersection(qs PeriodSet) (PeriodSet, bool) {
	var out []Period
	i, j := 0, 0
	for i < ps.Len() && j < qs.Len() {
		a, b := ps.periods[i], qs.periods[j]
		if isect, ok := a.Intersection(b); ok {
			out = append(out, isect)
		}
		if advanceSmallerUpper(a, b) {
			i++
		} else {
			j++
		}
	}
	if len(out) == 0 {
		return PeriodSet{}, false
	}
	// Pairwise intersections against a normalized set are already
	// sorted and disjoint (no two can overlap or touch, since the
	// source sets they come from are each normalized); NormalizeNo
	// skips a redundant sort/coalesce pass.
	res, _ := PeriodSetMake(out, NormalizeNo)
	return res, true
}

// Minus returns the normalized difference ps \ qs (points in ps not
// in qs), and whether it is non-empty.
func (ps PeriodSet) Minus(qs PeriodSet) (PeriodSet, bool) {
	var out []Period
	j := 0
	for i := 0; i < ps.Len(); i++ {
		cur := ps.periods[i]
		for j < qs.Len() && compareUpperBound(qs.periods[j].Upper, qs.periods[j].UpperInc, cur.Lower, cur.LowerInc) < 0 {
			j++
		}
		k := j
		remaining := []Period{cur}
		for k < qs.Len() && compareLowerBound(qs.periods[k].Lower, qs.periods[k].LowerInc, cur.Upper, cur.UpperInc) <= 0 {
			var next []Period
			for _, r := range remaining {
				next = append(next, subtractOne(r, qs.periods[k])...)
			}
			remaining = next
			k++
		}
		out = append(out, remaining...)
	}
	if len(out) == 0 {
		return PeriodSet{}, false
	}
	res, _ := PeriodSetMake(out, NormalizeYes)
	return res, true
}

// subtractOne removes q from p, returning zero, one, or two
// remaining sub-periods of p.
func subtractOne(p, q Period) []Period {
	if !p.Overlaps(q) {
		return []Period{p}
	}
	var out []Period
	// left remainder: [p.Lower, q.Lower)
	if compareLowerBound(p.Lower, p.LowerInc, q.Lower, q.LowerInc) < 0 {
		upperInc := !q.LowerInc
		if left, err := Make(p.Lower, q.Lower, p.LowerInc, upperInc); err == nil {
			out = append(out, left)
		}
	}
	// right remainder: (q.Upper, p.Upper]
	if compareUpperBound(q.Upper, q.UpperInc, p.Upper, p.UpperInc) < 0 {
		lowerInc := !q.UpperInc
		if right, err := Make(q.Upper, p.Upper, lowerInc, p.UpperInc); err == nil {
			out = append(out, right)
		}
	}
	return out
}

// Gaps returns the normalized complement of ps within its own
// bounding period: the periods strictly between consecutive elements
// of ps. Returns ok=false if ps has no internal gaps (a single
// period).
func (ps PeriodSet) Gaps() (PeriodSet, bool) {
	var out []Period
	for i := 0; i+1 < ps.Len(); i++ {
		a, b := ps.periods[i], ps.periods[i+1]
		if gap, err := Make(a.Upper, b.Lower, !a.UpperInc, !b.LowerInc); err == nil {
			out = append(out, gap)
		}
	}
	if len(out) == 0 {
		return PeriodSet{}, false
	}
	res, _ := PeriodSetMake(out, NormalizeNo)
	return res, true
}
