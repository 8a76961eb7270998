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
	"time"

	"github.com/temporalith/tengine/tserr"
)

// Period is a bounded time interval [lower, upper] with independent
// inclusivity per endpoint. If lower == upper both bounds must be
// inclusive (a degenerate, instantaneous period).
type Period struct {
	Lower, Upper         Timestamp
	LowerInc, UpperInc bool
}

// Make constructs a Period, validating the lower<=upper invariant and
// the degenerate-period inclusivity invariant.
func Make(lower, upper Timestamp, lowerInc, upperInc bool) (Period, error) {
	if lower > upper {
		return Period{}, tserr.InvalidArg("period lower bound %s is after upper bound %s", lower, upper)
	}
	if lower == upper && !(lowerInc && upperInc) {
		return Period{}, tserr.InvalidArg("degenerate period %s must have both bounds inclusive", lower)
	}
	return Period{Lower: lower, Upper: upper, LowerInc: lowerInc, UpperInc: upperInc}, nil
}

// MustMake is Make but panics on error; intended for constant/literal
// construction in tests and internal call sites that already know the
// bounds are legal.
func MustMake(lower, upper Timestamp, lowerInc, upperInc bool) Period {
	p, err := Make(lower, upper, lowerInc, upperInc)
	if err != nil {
		panic(err)
	}
	return p
}

// Instant returns the degenerate period containing exactly t.
func Instant(t Timestamp) Period {
	return Period{Lower: t, Upper: t, LowerInc: true, UpperInc: true}
}

func (p Period) String() string {
	l, u := "[", ")"
	if !p.LowerInc {
		l = "("
	}
	if p.UpperInc {
		u = "]"
	}
	return fmt.Sprintf("%s%s, %s%s", l, p.Lower, p.Upper, u)
}

// IsInstant reports whether p is a degenerate, single-instant period.
func (p Period) IsInstant() bool { return p.Lower == p.Upper }

// Duration returns the width of the period.
func (p Period) Duration() time.Duration {
	return p.Upper.Sub(p.Lower)
}

// Shift returns p shifted by d.
func (p Period) Shift(d time.Duration) Period {
	return Period{
		Lower: p.Lower.Add(d), Upper: p.Upper.Add(d),
		LowerInc: p.LowerInc, UpperInc: p.UpperInc,
	}
}

// Tscale rescales p's width to d, keeping its lower bound and both
// inclusivity flags; a zero-width period also gets width d.
func (p Period) Tscale(d time.Duration) Period {
	return Period{
		Lower: p.Lower, Upper: p.Lower.Add(d),
		LowerInc: p.LowerInc, UpperInc: p.UpperInc,
	}
}

// ContainsTimestamp reports whether t falls within p, honoring the
// endpoint inclusivity flags.
func (p Period) ContainsTimestamp(t Timestamp) bool {
	if t < p.Lower || t > p.Upper {
		return false
	}
	if t == p.Lower && !p.LowerInc {
		return false
	}
	if t == p.Upper && !p.UpperInc {
		return false
	}
	return true
}

// compareLowerBound compares two "lower-bound points": a timestamp
// paired with whether that bound is inclusive. An inclusive lower
// bound sorts before an exclusive lower bound at the same timestamp,
// because the inclusive one admits an earlier reachable point (the
// bound itself).
func compareLowerBound(ta Timestamp, ainc bool, tb Timestamp, binc bool) int {
	if ta != tb {
		return Compare(ta, tb)
	}
	if ainc == binc {
		return 0
	}
	if ainc {
		return -1
	}
	return 1
}

// compareUpperBound compares two "upper-bound points". An exclusive
// upper bound sorts before an inclusive upper bound at the same
// timestamp, because the exclusive one stops short of the shared
// point.
func compareUpperBound(ta Timestamp, ainc bool, tb Timestamp, binc bool) int {
	if ta != tb {
		return Compare(ta, tb)
	}
	if ainc == binc {
		return 0
	}
	if ainc {
		return 1
	}
	return -1
}

// ComparePeriod orders two Periods: by lower bound first, then by upper
// bound, per spec.md §4.1.
func ComparePeriod(a, b Period) int {
	if c := compareLowerBound(a.Lower, a.LowerInc, b.Lower, b.LowerInc); c != 0 {
		return c
	}
	return compareUpperBound(a.Upper, a.UpperInc, b.Upper, b.UpperInc)
}

// Equal reports whether a and b denote the same set of timestamps.
func (p Period) Equal(q Period) bool { return ComparePeriod(p, q) == 0 }

// Overlaps reports whether p and q share at least one timestamp.
func (p Period) Overlaps(q Period) bool {
	// not-before(p,q) and not-before(q,p)
	return !p.strictlyBefore(q) && !q.strictlyBefore(p)
}

// strictlyBefore reports whether every point of p precedes every point
// of q, honoring a shared endpoint only when at least one side of it
// is exclusive.
func (p Period) strictlyBefore(q Period) bool {
	if p.Upper < q.Lower {
		return true
	}
	if p.Upper > q.Lower {
		return false
	}
	// p.Upper == q.Lower: adjacent only if not both inclusive there
	return !(p.UpperInc && q.LowerInc)
}

// Before implements spec.md's before(x,y): every point of p strictly
// precedes every point of q.
func (p Period) Before(q Period) bool { return p.strictlyBefore(q) }

// After is the mirror of Before.
func (p Period) After(q Period) bool { return q.strictlyBefore(p) }

// Adjacent holds iff p and q share exactly one endpoint and that
// endpoint is inclusive on exactly one side.
func (p Period) Adjacent(q Period) bool {
	if p.Upper == q.Lower && (p.UpperInc != q.LowerInc) && (p.UpperInc || q.LowerInc) {
		return true
	}
	if q.Upper == p.Lower && (q.UpperInc != p.LowerInc) && (q.UpperInc || p.LowerInc) {
		return true
	}
	return false
}

// OverBefore holds iff p is before-or-overlapping q: p does not
// extend past q's end, i.e. p.upper <= q.upper in bound order.
func (p Period) OverBefore(q Period) bool {
	return compareUpperBound(p.Upper, p.UpperInc, q.Upper, q.UpperInc) <= 0
}

// OverAfter is the mirror of OverBefore: p.lower >= q.lower in bound
// order.
func (p Period) OverAfter(q Period) bool {
	return compareLowerBound(p.Lower, p.LowerInc, q.Lower, q.LowerInc) >= 0
}

// ContainsPeriod reports whether every point of q is a point of p.
func (p Period) ContainsPeriod(q Period) bool {
	return compareLowerBound(p.Lower, p.LowerInc, q.Lower, q.LowerInc) <= 0 &&
		compareUpperBound(p.Upper, p.UpperInc, q.Upper, q.UpperInc) >= 0
}

// ContainedIn is the mirror of ContainsPeriod.
func (p Period) ContainedIn(q Period) bool { return q.ContainsPeriod(p) }

// Intersection returns the overlap of p and q and whether it is
// non-empty.
func (p Period) Intersection(q Period) (Period, bool) {
	if !p.Overlaps(q) {
		return Period{}, false
	}
	lo, loInc := p.Lower, p.LowerInc
	if compareLowerBound(q.Lower, q.LowerInc, lo, loInc) > 0 {
		lo, loInc = q.Lower, q.LowerInc
	}
	hi, hiInc := p.Upper, p.UpperInc
	if compareUpperBound(q.Upper, q.UpperInc, hi, hiInc) < 0 {
		hi, hiInc = q.Upper, q.UpperInc
	}
	out, err := Make(lo, hi, loInc, hiInc)
	if err != nil {
		return Period{}, false
	}
	return out, true
}

// Union returns the span of p and q as a single Period, and whether
// that span is "exact" (p and q overlap or are adjacent, so no gap is
// introduced). If they neither overlap nor touch, the returned Period
// is their convex hull and ok is false — callers needing a precise
// union of disjoint periods should use a PeriodSet instead.
func (p Period) Union(q Period) (Period, bool) {
	exact := p.Overlaps(q) || p.Adjacent(q)
	lo, loInc := p.Lower, p.LowerInc
	if compareLowerBound(q.Lower, q.LowerInc, lo, loInc) < 0 {
		lo, loInc = q.Lower, q.LowerInc
	}
	hi, hiInc := p.Upper, p.UpperInc
	if compareUpperBound(q.Upper, q.UpperInc, hi, hiInc) > 0 {
		hi, hiInc = q.Upper, q.UpperInc
	}
	out := Period{Lower: lo, Upper: hi, LowerInc: loInc, UpperInc: hiInc}
	return out, exact
}
