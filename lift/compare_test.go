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

	"github.com/temporalith/tengine/temporal"
)

// TestLtInsertsCrossingAndIsStepwise is spec.md §4.4(c): a < b flips
// exactly once where the two linear ramps cross, and the output is
// always Stepwise regardless of the inputs' interpolation.
func TestLtInsertsCrossingAndIsStepwise(t *testing.T) {
	a := linearSeq(t, 0, 0, 10, 10)
	b := linearSeq(t, 10, 0, 0, 10)
	out, err := Lt[float64, float64](context.Background(), a, b)
	if err != nil {
		t.Fatalf("Lt: %v", err)
	}
	if out.Interp() != temporal.Stepwise {
		t.Fatalf("expected a stepwise result, got %v", out.Interp())
	}
	before, _ := out.ValueAtInclusive(ts(0))
	after, _ := out.ValueAtInclusive(ts(10))
	if !before || after {
		t.Fatalf("expected a<b true at t=0 and false at t=10, got before=%v after=%v", before, after)
	}
}

func TestEqNeverEqualWhenParallel(t *testing.T) {
	a := linearSeq(t, 0, 0, 10, 10)
	b := linearSeq(t, 5, 0, 15, 10)
	out, err := Eq[float64, float64](context.Background(), a, b)
	if err != nil {
		t.Fatalf("Eq: %v", err)
	}
	for i := 0; i < out.NumInstants(); i++ {
		if out.At(i).V {
			t.Fatalf("parallel segments offset by a constant never become equal")
		}
	}
}
