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

// Package lift's arith.go implements the four numeric lifted
// arithmetic operators (spec.md §4.4's "arithmetic specifics").
package lift

import (
	"context"

	"github.com/temporalith/tengine/period"
	"github.com/temporalith/tengine/temporal"
	"github.com/temporalith/tengine/tserr"
)

// Add lifts addition over two numeric Sequences. Addition is linear in
// both operands, so the sum of two linear segments is itself linear;
// no turning point is ever interior (its derivative is the constant
// (a2-a1)+(b2-b1)), so tp is nil.
func Add[A, B, R temporal.Base](ctx context.Context, sa *temporal.Sequence[A], sb *temporal.Sequence[B]) (*temporal.Sequence[R], error) {
	f := func(a A, b B) R {
		return temporal.FromFloat64[R](temporal.AsFloat64(a) + temporal.AsFloat64(b))
	}
	return liftNumeric[A, B, R](ctx, sa, sb, f, nil)
}

// Sub lifts subtraction.
func Sub[A, B, R temporal.Base](ctx context.Context, sa *temporal.Sequence[A], sb *temporal.Sequence[B]) (*temporal.Sequence[R], error) {
	f := func(a A, b B) R {
		return temporal.FromFloat64[R](temporal.AsFloat64(a) - temporal.AsFloat64(b))
	}
	return liftNumeric[A, B, R](ctx, sa, sb, f, nil)
}

// Mult lifts multiplication, inserting the interior turning point of
// the product of two linear segments when one exists (spec.md §4.4's
// worked example 3: a quadratic in the normalized segment parameter α
// can have an interior extremum even though both factors are linear).
func Mult[A, B, R temporal.Base](ctx context.Context, sa *temporal.Sequence[A], sb *temporal.Sequence[B]) (*temporal.Sequence[R], error) {
	f := func(a A, b B) R {
		return temporal.FromFloat64[R](temporal.AsFloat64(a) * temporal.AsFloat64(b))
	}
	return liftNumeric[A, B, R](ctx, sa, sb, f, multTurningPoint[A, B, R])
}

// Div lifts division, failing with DivisionByZero if the denominator
// is ever exactly zero anywhere in the synchronized domain — checked
// at every breakpoint and, for two linear segments, also at the
// interior zero of the denominator's own linear interpolation.
func Div[A, B, R temporal.Base](ctx context.Context, sa *temporal.Sequence[A], sb *temporal.Sequence[B]) (*temporal.Sequence[R], error) {
	overlap, ok := sa.TimeSpan().Intersection(sb.TimeSpan())
	if !ok {
		return nil, nil
	}
	for i := 0; i < sb.NumSegments(); i++ {
		b1i, b2i := sb.Segment(i)
		seg, sok := overlap.Intersection(period.MustMake(b1i.T, b2i.T, true, true))
		if !sok {
			continue
		}
		b1, _ := sb.ValueAtInclusive(seg.Lower)
		b2, _ := sb.ValueAtInclusive(seg.Upper)
		bf1, bf2 := temporal.AsFloat64(b1), temporal.AsFloat64(b2)
		if bf1 == 0 || bf2 == 0 {
			return nil, tserr.DivByZero("division denominator is zero at t=%d", seg.Lower)
		}
		if sb.Interp() == temporal.Linear && (bf1 < 0) != (bf2 < 0) {
			return nil, tserr.DivByZero("division denominator crosses zero between t=%d and t=%d", seg.Lower, seg.Upper)
		}
	}
	f := func(a A, b B) R {
		return temporal.FromFloat64[R](temporal.AsFloat64(a) / temporal.AsFloat64(b))
	}
	return liftNumeric[A, B, R](ctx, sa, sb, f, divTurningPoint[A, B, R])
}

func liftNumeric[A, B, R temporal.Base](ctx context.Context, sa *temporal.Sequence[A], sb *temporal.Sequence[B], f func(A, B) R, tp TurningPointFunc[A, B, R]) (*temporal.Sequence[R], error) {
	return BinarySequence[A, B, R](ctx, sa, sb, f, Continuous, tp, nil)
}

// multTurningPoint finds the interior extremum of
// g(α) = (a1+α(a2-a1))·(b1+α(b2-b1)), a quadratic in α. Its derivative
// g'(α) = Δa·b1 + Δb·a1 + 2α·Δa·Δb is zero at
// α* = -(Δa·b1 + Δb·a1) / (2·Δa·Δb), defined whenever Δa·Δb != 0.
func multTurningPoint[A, B, R temporal.Base](a1, a2 A, b1, b2 B, t1, t2 period.Timestamp) (R, period.Timestamp, bool) {
	af1, af2 := temporal.AsFloat64(a1), temporal.AsFloat64(a2)
	bf1, bf2 := temporal.AsFloat64(b1), temporal.AsFloat64(b2)
	da, db := af2-af1, bf2-bf1
	denom := 2 * da * db
	var zero R
	if denom == 0 {
		return zero, 0, false
	}
	alpha := -(da*bf1 + db*af1) / denom
	if alpha <= 0 || alpha >= 1 {
		return zero, 0, false
	}
	av := af1 + alpha*da
	bv := bf1 + alpha*db
	t := t1 + period.Timestamp(alpha*float64(t2-t1))
	return temporal.FromFloat64[R](av * bv), t, true
}

// divTurningPoint finds the interior extremum of
// h(α) = (a1+α·Δa) / (b1+α·Δb). Its derivative is
// h'(α) = [Δa·(b1+α·Δb) - Δb·(a1+α·Δa)] / (b1+α·Δb)^2, whose numerator
// is linear in α, zero at α* = (Δa·b1 - Δb·a1) / (Δa·Δb - Δb·Δa) ...
// which degenerates (the numerator's α-coefficient, Δa·Δb - Δb·Δa, is
// identically zero), meaning h has no interior extremum for any
// linear/linear pair: h is monotone (or constant) in α whenever the
// denominator never changes sign, which Div's caller has already
// guaranteed. divTurningPoint therefore always reports no turning
// point; it exists as a named, documented function (rather than a bare
// nil) so the re-derivation from first principles — called for by the
// redesign note on not reusing one helper with an ignored '*'/'/'
// selector — is recorded at the point of use.
func divTurningPoint[A, B, R temporal.Base](a1, a2 A, b1, b2 B, t1, t2 period.Timestamp) (R, period.Timestamp, bool) {
	var zero R
	return zero, 0, false
}
