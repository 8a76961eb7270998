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

// Package lift's compare.go lifts the discontinuous boolean
// predicates (equality and ordering) over two numeric Sequences,
// inserting crossing points where the comparison flips (spec.md
// §4.4(c)).
package lift

import (
	"context"

	"github.com/temporalith/tengine/temporal"
)

// Eq lifts equality. The result is a bool-valued Stepwise Sequence
// (booleans can never be Linear); a crossing is spliced in wherever
// the equality predicate flips.
func Eq[A, B temporal.Base](ctx context.Context, sa *temporal.Sequence[A], sb *temporal.Sequence[B]) (*temporal.Sequence[bool], error) {
	f := func(a A, b B) bool { return temporal.AsFloat64(a) == temporal.AsFloat64(b) }
	return BinarySequence[A, B, bool](ctx, sa, sb, f, DiscreteCrossings, nil, LinearCrossing[A, B])
}

// Lt lifts strict ordering (a < b).
func Lt[A, B temporal.Base](ctx context.Context, sa *temporal.Sequence[A], sb *temporal.Sequence[B]) (*temporal.Sequence[bool], error) {
	f := func(a A, b B) bool { return temporal.AsFloat64(a) < temporal.AsFloat64(b) }
	return BinarySequence[A, B, bool](ctx, sa, sb, f, DiscreteCrossings, nil, LinearCrossing[A, B])
}

// Le lifts non-strict ordering (a <= b).
func Le[A, B temporal.Base](ctx context.Context, sa *temporal.Sequence[A], sb *temporal.Sequence[B]) (*temporal.Sequence[bool], error) {
	f := func(a A, b B) bool { return temporal.AsFloat64(a) <= temporal.AsFloat64(b) }
	return BinarySequence[A, B, bool](ctx, sa, sb, f, DiscreteCrossings, nil, LinearCrossing[A, B])
}
