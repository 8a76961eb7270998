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

// Package lift implements the lifting engine: extending an ordinary
// scalar function to temporal operands by synchronizing them in time
// and, where the combination is non-monotone or discontinuous,
// inserting turning points or crossings (spec.md §4.4).
package lift

import (
	"context"

	"github.com/temporalith/tengine/period"
	"github.com/temporalith/tengine/temporal"
	"github.com/temporalith/tengine/tserr"
)

// Continuity classifies how a scalar function behaves as its temporal
// operands vary continuously, and so how the lifter must treat a
// segment pair once the pointwise breakpoint values are known.
type Continuity int

const (
	// Continuous functions (add, sub, distance, ...) may have an
	// interior local extremum on a pair of linear segments; the lifter
	// calls the supplied TurningPointFunc to find it.
	Continuous Continuity = iota
	// StepwiseResult functions always produce a stepwise output
	// regardless of input interpolation (e.g. a comparison used
	// without crossing detection).
	StepwiseResult
	// DiscreteCrossings functions are boolean-valued predicates whose
	// output flips discretely; the lifter calls the supplied
	// CrossingFunc to locate the flip point exactly.
	DiscreteCrossings
)

// TurningPointFunc locates the interior local extremum of f over a
// linear segment pair (a1@t1 .. a2@t2) and (b1@t1 .. b2@t2), returning
// the extremum value, its timestamp, and whether one exists strictly
// inside (t1, t2).
type TurningPointFunc[A, B, R temporal.Base] func(a1, a2 A, b1, b2 B, t1, t2 period.Timestamp) (R, period.Timestamp, bool)

// CrossingFunc locates where a predicate comparing two linear segments
// flips sign, returning the crossing timestamp and whether one exists
// strictly inside (t1, t2).
type CrossingFunc[A, B temporal.Base] func(a1, a2 A, b1, b2 B, t1, t2 period.Timestamp) (period.Timestamp, bool)

// BinarySequence lifts f over two Sequences, synchronizing them to
// their shared domain. The output's interpolation is Linear only when
// both inputs are Linear and continuity is Continuous; otherwise it is
// Stepwise, with one output instant per input breakpoint and no
// turning-point insertion (spec.md §4.4(d): "if either input is
// stepwise, the output is stepwise"). For DiscreteCrossings with two
// Linear inputs, crossing instants are additionally inserted into the
// Stepwise output.
func BinarySequence[A, B, R temporal.Base](
	ctx context.Context,
	sa *temporal.Sequence[A], sb *temporal.Sequence[B],
	f func(A, B) R,
	continuity Continuity,
	tp TurningPointFunc[A, B, R],
	cross CrossingFunc[A, B],
) (*temporal.Sequence[R], error) {
	overlap, ok := sa.TimeSpan().Intersection(sb.TimeSpan())
	if !ok {
		return nil, nil
	}
	bothLinear := sa.Interp() == temporal.Linear && sb.Interp() == temporal.Linear
	outInterp := temporal.Stepwise
	if continuity == Continuous && bothLinear && temporal.Continuous[R]() {
		outInterp = temporal.Linear
	}

	times := breakpointTimes(sa, sb, overlap)
	instants := make([]temporal.Instant[R], 0, len(times))
	for i, t := range times {
		if i%256 == 0 {
			if err := tserr.CheckContext(ctx); err != nil {
				return nil, err
			}
		}
		av, aok := sa.ValueAtInclusive(t)
		bv, bok := sb.ValueAtInclusive(t)
		if !aok || !bok {
			continue
		}
		instants = append(instants, temporal.Instant[R]{V: f(av, bv), T: t})
	}
	if len(instants) == 0 {
		return nil, nil
	}

	if outInterp == temporal.Linear && tp != nil {
		instants = insertTurningPoints(sa, sb, instants, tp)
	}
	if continuity == DiscreteCrossings && cross != nil && bothLinear {
		instants = insertCrossings(sa, sb, instants, cross)
		outInterp = temporal.Stepwise
	}

	return temporal.SequenceMake(instants, overlap.LowerInc, overlap.UpperInc, outInterp, true)
}

// breakpointTimes returns the sorted, deduplicated union of sa's and
// sb's own instant timestamps that fall within overlap, plus overlap's
// own bounds — the minimal set of times at which the pointwise value
// of either input can change slope.
func breakpointTimes[A, B temporal.Base](sa *temporal.Sequence[A], sb *temporal.Sequence[B], overlap period.Period) []period.Timestamp {
	set := map[period.Timestamp]struct{}{}
	add := func(t period.Timestamp) {
		if overlap.ContainsTimestamp(t) {
			set[t] = struct{}{}
		}
	}
	for i := 0; i < sa.NumInstants(); i++ {
		add(sa.At(i).T)
	}
	for i := 0; i < sb.NumInstants(); i++ {
		add(sb.At(i).T)
	}
	set[overlap.Lower] = struct{}{}
	set[overlap.Upper] = struct{}{}
	out := make([]period.Timestamp, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// insertTurningPoints walks the already-pointwise-evaluated breakpoint
// instants and, for every consecutive pair, asks tp whether a local
// extremum lies strictly between them, splicing it in if so.
func insertTurningPoints[A, B, R temporal.Base](sa *temporal.Sequence[A], sb *temporal.Sequence[B], instants []temporal.Instant[R], tp TurningPointFunc[A, B, R]) []temporal.Instant[R] {
	out := make([]temporal.Instant[R], 0, len(instants))
	for i := 0; i < len(instants); i++ {
		out = append(out, instants[i])
		if i+1 >= len(instants) {
			continue
		}
		t1, t2 := instants[i].T, instants[i+1].T
		a1, ok1 := sa.ValueAtInclusive(t1)
		a2, ok2 := sa.ValueAtInclusive(t2)
		b1, ok3 := sb.ValueAtInclusive(t1)
		b2, ok4 := sb.ValueAtInclusive(t2)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			continue
		}
		if v, t, ok := tp(a1, a2, b1, b2, t1, t2); ok {
			out = append(out, temporal.Instant[R]{V: v, T: t})
		}
	}
	return out
}

// insertCrossings is the predicate analogue of insertTurningPoints:
// it locates, per consecutive breakpoint pair, the interior timestamp
// where a discontinuous result flips, and splices in an instant at
// the flip timestamp holding the post-flip value, so that a Stepwise
// reading of the output changes value exactly there. Pairs whose two
// breakpoint results are equal are skipped without calling cross.
func insertCrossings[A, B, R temporal.Base](sa *temporal.Sequence[A], sb *temporal.Sequence[B], instants []temporal.Instant[R], cross CrossingFunc[A, B]) []temporal.Instant[R] {
	out := make([]temporal.Instant[R], 0, len(instants))
	for i := 0; i < len(instants); i++ {
		out = append(out, instants[i])
		if i+1 >= len(instants) {
			continue
		}
		t1, t2 := instants[i].T, instants[i+1].T
		a1, ok1 := sa.ValueAtInclusive(t1)
		a2, ok2 := sa.ValueAtInclusive(t2)
		b1, ok3 := sb.ValueAtInclusive(t1)
		b2, ok4 := sb.ValueAtInclusive(t2)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			continue
		}
		if Equal(instants[i].V, instants[i+1].V) {
			continue
		}
		if t, ok := cross(a1, a2, b1, b2, t1, t2); ok && t > t1 && t < t2 {
			out = append(out, temporal.Instant[R]{V: instants[i+1].V, T: t})
		}
	}
	return out
}

// Equal is a small local re-export of temporal.Equal to keep this file
// from importing temporal twice under two names.
func Equal[V temporal.Base](a, b V) bool { return temporal.Equal(a, b) }

// LinearCrossing is the CrossingFunc for two numeric linear segments:
// it solves a(t) = b(t) for the normalized parameter α and maps it
// back to a timestamp.
func LinearCrossing[A, B temporal.Base](a1, a2 A, b1, b2 B, t1, t2 period.Timestamp) (period.Timestamp, bool) {
	af1, af2 := temporal.AsFloat64(a1), temporal.AsFloat64(a2)
	bf1, bf2 := temporal.AsFloat64(b1), temporal.AsFloat64(b2)
	denom := (af2 - af1) - (bf2 - bf1)
	if denom == 0 {
		return 0, false
	}
	alpha := (bf1 - af1) / denom
	if alpha <= 0 || alpha >= 1 {
		return 0, false
	}
	return t1 + period.Timestamp(alpha*float64(t2-t1)), true
}

