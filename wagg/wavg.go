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

package wagg

import (
	"time"

	"github.com/temporalith/tengine/temporal"
)

// AvgParts is the pair of parallel transforms spec.md §4.6's
// transform_wavg lifts a numeric Sequence to: a running sum and a
// running count, each independently fed to a wsum-combiner skiplist
// (package tagg) and divided componentwise once both are finalized
// (FinalizeWAvg). Go's Base type set has no tuple/struct base type
// to carry (value, 1) as a single lifted pair the way the original
// double2 SQL type does, so the pair is represented as two ordinary
// float64 transforms instead (see DESIGN.md).
type AvgParts struct {
	Sum   []*temporal.Sequence[float64]
	Count []*temporal.Sequence[float64]
}

// TransformWAvg lifts s to a (sum, count) pair and extends both parts
// by delta with AggOther semantics (average has no min/max trend to
// preserve).
func TransformWAvg[V temporal.Base](s *temporal.Sequence[V], delta time.Duration) (AvgParts, error) {
	var out AvgParts
	valueSeq, err := toFloatSequence(s)
	if err != nil {
		return out, err
	}
	sumParts, err := Extend(valueSeq, delta, AggOther)
	if err != nil {
		return out, err
	}
	countParts, err := TransformWCount(s, delta)
	if err != nil {
		return out, err
	}
	out.Sum, out.Count = sumParts, countParts
	return out, nil
}

func toFloatSequence[V temporal.Base](s *temporal.Sequence[V]) (*temporal.Sequence[float64], error) {
	instants := make([]temporal.Instant[float64], s.NumInstants())
	for i := 0; i < s.NumInstants(); i++ {
		in := s.At(i)
		instants[i] = temporal.Instant[float64]{V: temporal.AsFloat64(in.V), T: in.T}
	}
	return temporal.SequenceMake(instants, s.LowerInc(), s.UpperInc(), s.Interp(), false)
}

// FinalizeWAvg divides a finalized sum Sequence by a finalized count
// Sequence componentwise, at every breakpoint shared between them.
// Both must already be the fully-aggregated skiplist output (same
// domain); a domain mismatch is reported as a zero-length result
// rather than an error, mirroring spec.md §5's "empty is not an
// error" propagation policy.
func FinalizeWAvg(sum, count *temporal.Sequence[float64]) (*temporal.Sequence[float64], error) {
	overlap, ok := sum.TimeSpan().Intersection(count.TimeSpan())
	if !ok {
		return nil, nil
	}
	var instants []temporal.Instant[float64]
	for i := 0; i < sum.NumInstants(); i++ {
		t := sum.At(i).T
		if !overlap.ContainsTimestamp(t) {
			continue
		}
		sv, sok := sum.ValueAtInclusive(t)
		cv, cok := count.ValueAtInclusive(t)
		if !sok || !cok || cv == 0 {
			continue
		}
		instants = append(instants, temporal.Instant[float64]{V: sv / cv, T: t})
	}
	if len(instants) == 0 {
		return nil, nil
	}
	return temporal.SequenceMake(instants, overlap.LowerInc, overlap.UpperInc, temporal.Stepwise, true)
}
