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
	"github.com/temporalith/tengine/period"
	"github.com/temporalith/tengine/tbox"
	"github.com/temporalith/tengine/tserr"
)

// Sequence is an ordered array of Instants covering a single Period,
// with a declared interpolation mode.
type Sequence[V Base] struct {
	instants []Instant[V]
	span     period.Period
	interp   Interp
}

// SequenceMake builds a Sequence from instants. The first/last instant
// times must equal lower/upper of the declared period exactly.
// normalize, when true and interp is Stepwise, coalesces consecutive
// instants that hold the same value (spec.md §3's Sequence
// invariant).
func SequenceMake[V Base](instants []Instant[V], lowerInc, upperInc bool, interp Interp, normalize bool) (*Sequence[V], error) {
	if len(instants) == 0 {
		return nil, tserr.InvalidArg("sequence must contain at least one instant")
	}
	if interp == Linear && !Continuous[V]() {
		return nil, tserr.InvalidArg("linear interpolation is not valid for base type %s", KindOf[V]())
	}
	out := make([]Instant[V], len(instants))
	copy(out, instants)
	sortInstants(out)
	for i := 1; i < len(out); i++ {
		if out[i-1].T >= out[i].T {
			return nil, tserr.InvalidArg("sequence instant times are not strictly increasing at index %d", i)
		}
	}
	if len(out) == 1 && !(lowerInc && upperInc) {
		return nil, tserr.InvalidArg("single-instant sequence must have both bounds inclusive")
	}
	if normalize && interp == Stepwise {
		out = coalesceStepwise(out)
	}
	span, err := period.Make(out[0].T, out[len(out)-1].T, lowerInc, upperInc)
	if err != nil {
		return nil, err
	}
	return &Sequence[V]{instants: out, span: span, interp: interp}, nil
}

// coalesceStepwise drops an interior instant whose value repeats the
// prior kept instant's value, since a stepwise sequence's value
// between them is already that same value. The final instant is
// always kept regardless of its value, since it alone marks the
// sequence's declared upper bound; dropping it would silently shrink
// the sequence's span.
func coalesceStepwise[V Base](in []Instant[V]) []Instant[V] {
	if len(in) <= 2 {
		return in
	}
	out := in[:1:1]
	for i := 1; i < len(in)-1; i++ {
		if Equal(in[i].V, out[len(out)-1].V) {
			continue
		}
		out = append(out, in[i])
	}
	out = append(out, in[len(in)-1])
	return out
}

func (s *Sequence[V]) Subtype() Subtype                { return SubtypeSequence }
func (s *Sequence[V]) BaseKind() BaseKind               { return KindOf[V]() }
func (s *Sequence[V]) StartTimestamp() period.Timestamp { return s.span.Lower }
func (s *Sequence[V]) EndTimestamp() period.Timestamp   { return s.span.Upper }
func (s *Sequence[V]) NumInstants() int                 { return len(s.instants) }
func (s *Sequence[V]) TimeSpan() period.Period          { return s.span }
func (s *Sequence[V]) Interp() Interp                    { return s.interp }
func (s *Sequence[V]) LowerInc() bool                    { return s.span.LowerInc }
func (s *Sequence[V]) UpperInc() bool                    { return s.span.UpperInc }

// At returns the i-th instant.
func (s *Sequence[V]) At(i int) Instant[V] { return s.instants[i] }

// Instants returns the underlying instants; callers must not mutate
// the returned slice.
func (s *Sequence[V]) Instants() []Instant[V] { return s.instants }

func (s *Sequence[V]) Box() tbox.Box {
	b := boxForValue(s.instants[0].V, s.instants[0].T)
	for i := 1; i < len(s.instants); i++ {
		b = expandBox(b, s.instants[i].V, s.instants[i].T)
	}
	return b
}

// segmentIndex returns the index i such that t falls within segment
// [instants[i], instants[i+1]] (or, for a single-instant sequence, the
// trivial segment 0), and whether t lies within [lower, upper] at all.
// Endpoint inclusivity is not checked here; ValueAt checks it first.
func (s *Sequence[V]) segmentIndex(t period.Timestamp) (int, bool) {
	if t < s.span.Lower || t > s.span.Upper {
		return 0, false
	}
	lo, hi := 0, len(s.instants)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if s.instants[mid].T <= t {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo, true
}

// ValueAt returns the value at timestamp t. At an exclusive period
// bound, ValueAt returns not-found (the bound's own endpoint value is
// outside the sequence's declared domain); see ValueAtInclusive for
// the variant that returns it anyway. This resolves spec.md §9's
// "value-at-timestamp vs value-at-timestamp-inclusive" open question:
// ValueAt is the strict, domain-respecting entry point.
func (s *Sequence[V]) ValueAt(t period.Timestamp) (V, bool) {
	var zero V
	if !s.span.ContainsTimestamp(t) {
		return zero, false
	}
	return s.valueAtUnchecked(t)
}

// ValueAtInclusive returns the value at t even if t is exactly an
// exclusive bound of the sequence's period, by evaluating the
// sequence's own instant array directly (which always includes the
// bound instants regardless of the period's declared inclusivity).
func (s *Sequence[V]) ValueAtInclusive(t period.Timestamp) (V, bool) {
	var zero V
	if t < s.span.Lower || t > s.span.Upper {
		return zero, false
	}
	return s.valueAtUnchecked(t)
}

func (s *Sequence[V]) valueAtUnchecked(t period.Timestamp) (V, bool) {
	var zero V
	i, ok := s.segmentIndex(t)
	if !ok {
		return zero, false
	}
	if s.instants[i].T == t {
		return s.instants[i].V, true
	}
	if i+1 >= len(s.instants) {
		return zero, false
	}
	if s.interp == Stepwise {
		return s.instants[i].V, true
	}
	a, b := s.instants[i], s.instants[i+1]
	alpha := float64(t-a.T) / float64(b.T-a.T)
	return Lerp(a.V, b.V, alpha), true
}

// NumSegments returns the number of (possibly degenerate, for a
// single-instant sequence) segments.
func (s *Sequence[V]) NumSegments() int {
	if len(s.instants) == 1 {
		return 0
	}
	return len(s.instants) - 1
}

// Segment returns the i-th pair of bracketing instants.
func (s *Sequence[V]) Segment(i int) (Instant[V], Instant[V]) {
	return s.instants[i], s.instants[i+1]
}

// ToLinear transforms a stepwise Sequence into an equivalent-reading
// linear one by synthesizing an end-of-step duplicate instant one
// microsecond before each value change, so the linear segment that
// results is flat at the held value (spec.md §4.3's stepwise->linear
// Transform). Already-linear sequences are returned unchanged.
func (s *Sequence[V]) ToLinear() (*Sequence[V], error) {
	if s.interp == Linear {
		return s, nil
	}
	if !Continuous[V]() {
		return nil, tserr.Unsupported("base type %s cannot be represented as a linear sequence", KindOf[V]())
	}
	if len(s.instants) == 1 {
		out := make([]Instant[V], 1)
		copy(out, s.instants)
		return &Sequence[V]{instants: out, span: s.span, interp: Linear}, nil
	}
	var out []Instant[V]
	for i := 0; i < len(s.instants); i++ {
		out = append(out, s.instants[i])
		if i+1 < len(s.instants) {
			holdUntil := s.instants[i+1].T - 1
			if holdUntil > s.instants[i].T {
				out = append(out, Instant[V]{V: s.instants[i].V, T: holdUntil})
			}
		}
	}
	return &Sequence[V]{instants: out, span: s.span, interp: Linear}, nil
}

// Integral returns the time integral of the sequence: for a linear
// segment it is the trapezoid area (average of endpoint values times
// duration); for a stepwise segment it is the held value times
// duration. Only defined for numeric base types.
func (s *Sequence[V]) Integral() float64 {
	var sum float64
	for i := 0; i < s.NumSegments(); i++ {
		a, b := s.Segment(i)
		dur := float64(b.T - a.T)
		if s.interp == Linear {
			sum += dur * (AsFloat64(a.V) + AsFloat64(b.V)) / 2
		} else {
			sum += dur * AsFloat64(a.V)
		}
	}
	return sum
}

// TwAvg returns the time-weighted average of the sequence: its
// Integral divided by its total duration. For a single-instant
// sequence, TwAvg is simply that instant's value.
func (s *Sequence[V]) TwAvg() float64 {
	if len(s.instants) == 1 {
		return AsFloat64(s.instants[0].V)
	}
	dur := float64(s.span.Upper - s.span.Lower)
	if dur == 0 {
		return AsFloat64(s.instants[0].V)
	}
	return s.Integral() / dur
}
