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
	"github.com/temporalith/tengine/tserr"
)

// TestAddLinearPlusLinearIsLinear is spec.md §8's worked example 2:
// two linear sequences add to a third well-defined linear sequence,
// with no turning point ever inserted.
func TestAddLinearPlusLinearIsLinear(t *testing.T) {
	a := linearSeq(t, 0, 0, 10, 10)
	b := linearSeq(t, 10, 0, 0, 10)
	sum, err := Add[float64, float64, float64](context.Background(), a, b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if sum.Interp() != temporal.Linear {
		t.Fatalf("expected a linear result, got %v", sum.Interp())
	}
	for i := 0; i < sum.NumInstants(); i++ {
		if sum.At(i).V != 10 {
			t.Fatalf("expected a constant sum of 10 throughout, got %v at t=%d", sum.At(i).V, sum.At(i).T)
		}
	}
}

// TestMultInsertsInteriorTurningPoint is spec.md §8's worked example
// 3: a rises 0->10 while b falls 10->0 over the same interval; their
// product is a downward parabola in α with an interior maximum.
func TestMultInsertsInteriorTurningPoint(t *testing.T) {
	a := linearSeq(t, 0, 0, 10, 10)
	b := linearSeq(t, 10, 0, 0, 10)
	product, err := Mult[float64, float64, float64](context.Background(), a, b)
	if err != nil {
		t.Fatalf("Mult: %v", err)
	}
	if product.NumInstants() != 3 {
		t.Fatalf("expected endpoints plus one interior turning point, got %d instants", product.NumInstants())
	}
	mid := product.At(1)
	if mid.T != ts(5) {
		t.Fatalf("expected the turning point at t=5 by symmetry, got t=%d", mid.T)
	}
	if mid.V != 25 {
		t.Fatalf("expected the turning point value 5*5=25, got %v", mid.V)
	}
}

func TestDivByZeroDetectedAtEndpoint(t *testing.T) {
	a := linearSeq(t, 10, 0, 10, 10)
	b := linearSeq(t, 0, 0, 5, 10)
	_, err := Div[float64, float64, float64](context.Background(), a, b)
	if err == nil {
		t.Fatalf("expected a division-by-zero error")
	}
	if k, ok := tserr.KindOf(err); !ok || k != tserr.DivisionByZero {
		t.Fatalf("expected a DivisionByZero error kind, got %v ok=%v", k, ok)
	}
}

func TestDivByZeroDetectedAtSignFlip(t *testing.T) {
	a := linearSeq(t, 10, 0, 10, 10)
	b := linearSeq(t, -5, 0, 5, 10)
	_, err := Div[float64, float64, float64](context.Background(), a, b)
	if err == nil {
		t.Fatalf("expected a division-by-zero error for a sign-flipping denominator")
	}
}

func TestDivWellDefined(t *testing.T) {
	a := linearSeq(t, 10, 0, 20, 10)
	b := linearSeq(t, 2, 0, 2, 10)
	out, err := Div[float64, float64, float64](context.Background(), a, b)
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	if v, ok := out.ValueAtInclusive(ts(0)); !ok || v != 5 {
		t.Fatalf("expected 10/2=5 at t=0, got %v ok=%v", v, ok)
	}
}
