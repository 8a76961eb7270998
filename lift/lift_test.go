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

package lift

import (
	"context"
	"testing"

	"github.com/temporalith/tengine/period"
	"github.com/temporalith/tengine/temporal"
)

func ts(n int64) period.Timestamp { return period.Timestamp(n) }

func linearSeq(t *testing.T, pairs ...int64) *temporal.Sequence[float64] {
	t.Helper()
	instants := make([]temporal.Instant[float64], len(pairs)/2)
	for i := 0; i < len(instants); i++ {
		instants[i] = temporal.Instant[float64]{V: float64(pairs[2*i]), T: ts(pairs[2*i+1])}
	}
	s, err := temporal.SequenceMake(instants, true, true, temporal.Linear, false)
	if err != nil {
		t.Fatalf("SequenceMake: %v", err)
	}
	return s
}

func stepSeq(t *testing.T, pairs ...int64) *temporal.Sequence[float64] {
	t.Helper()
	instants := make([]temporal.Instant[float64], len(pairs)/2)
	for i := 0; i < len(instants); i++ {
		instants[i] = temporal.Instant[float64]{V: float64(pairs[2*i]), T: ts(pairs[2*i+1])}
	}
	s, err := temporal.SequenceMake(instants, true, true, temporal.Stepwise, false)
	if err != nil {
		t.Fatalf("SequenceMake: %v", err)
	}
	return s
}

// TestBinarySequenceStepwiseIfEitherInputStepwise exercises spec.md
// §4.4(d): the result is Stepwise whenever either operand is.
func TestBinarySequenceStepwiseIfEitherInputStepwise(t *testing.T) {
	a := linearSeq(t, 0, 0, 10, 10)
	b := stepSeq(t, 1, 0, 1, 10)
	out, err := BinarySequence[float64, float64, float64](context.Background(), a, b,
		func(x, y float64) float64 { return x + y }, Continuous, multTurningPointForTest, nil)
	if err != nil {
		t.Fatalf("BinarySequence: %v", err)
	}
	if out.Interp() != temporal.Stepwise {
		t.Fatalf("expected stepwise output when one input is stepwise, got %v", out.Interp())
	}
}

// multTurningPointForTest is a trivial never-fires turning point
// function, used only to confirm BinarySequence doesn't call tp when
// the output interpolation degrades to Stepwise.
func multTurningPointForTest(a1, a2, b1, b2 float64, t1, t2 period.Timestamp) (float64, period.Timestamp, bool) {
	panic("tp should not be invoked once output interpolation is stepwise")
}

func TestBinarySequenceNoOverlapReturnsNil(t *testing.T) {
	a := linearSeq(t, 0, 0, 10, 10)
	b := linearSeq(t, 0, 20, 10, 30)
	out, err := BinarySequence[float64, float64, float64](context.Background(), a, b,
		func(x, y float64) float64 { return x + y }, Continuous, nil, nil)
	if err != nil {
		t.Fatalf("BinarySequence: %v", err)
	}
	if out != nil {
		t.Fatalf("expected nil result for non-overlapping operands, got %v", out)
	}
}

func TestLinearCrossingFindsInteriorAlpha(t *testing.T) {
	// a rises 0->10 over [0,10]; b holds steady at 5.
	tc, ok := LinearCrossing[float64, float64](0, 10, 5, 5, ts(0), ts(10))
	if !ok || tc != ts(5) {
		t.Fatalf("expected a crossing at t=5, got t=%v ok=%v", tc, ok)
	}
}

func TestLinearCrossingParallelNeverCrosses(t *testing.T) {
	if _, ok := LinearCrossing[float64, float64](0, 10, 5, 15, ts(0), ts(10)); ok {
		t.Fatalf("two segments with the same slope never cross")
	}
}
