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

// Package tagg's combine.go builds the Splice combiners for the
// temporal aggregates tmin, tmax, tsum, tand and tor (spec.md
// §4.5-§4.6), plus plain helpers for tavg's (sum, count) partial and
// for counting period-set and timestamp-set members.
package tagg

import (
	"context"
	"sort"

	"github.com/temporalith/tengine/lift"
	"github.com/temporalith/tengine/period"
	"github.com/temporalith/tengine/temporal"
	"github.com/temporalith/tengine/tserr"
)

// pointwiseCombine merges two Sequences of the same base type into a
// SequenceSet covering their union timespan: where both cover a point
// in time, op combines their values; where only one covers it, that
// one's own value passes through unchanged. This realizes the
// "recompute overlapping region" half of splice's combiner contract
// (spec.md §4.5 step 4) for a homogeneous binary partial-aggregate
// combiner.
func pointwiseCombine[V temporal.Base](ctx context.Context, a, b *temporal.Sequence[V], op func(V, V) V) (*temporal.SequenceSet[V], error) {
	overlap, hasOverlap := a.TimeSpan().Intersection(b.TimeSpan())
	var pieces []*temporal.Sequence[V]
	if !hasOverlap {
		return temporal.SequenceSetMake([]*temporal.Sequence[V]{a, b}, true)
	}
	merged, err := lift.BinarySequence[V, V, V](ctx, a, b, op, lift.Continuous, nil, nil)
	if err != nil {
		return nil, err
	}
	if merged != nil {
		pieces = append(pieces, merged)
	}
	if aOnly, ok := a.MinusPeriod(overlap); ok {
		pieces = append(pieces, aOnly.Sequences()...)
	}
	if bOnly, ok := b.MinusPeriod(overlap); ok {
		pieces = append(pieces, bOnly.Sequences()...)
	}
	if len(pieces) == 0 {
		return nil, nil
	}
	return temporal.SequenceSetMake(pieces, true)
}

// homogeneousCombiner builds a Combiner that reduces removed∪incoming
// by sorting all pieces by time and pairwise-merging every
// overlapping run with op, left to right.
func homogeneousCombiner[V temporal.Base](op func(V, V) V) Combiner[V] {
	return func(ctx context.Context, removed, incoming []*temporal.Sequence[V]) ([]*temporal.Sequence[V], error) {
		all := make([]*temporal.Sequence[V], 0, len(removed)+len(incoming))
		all = append(all, removed...)
		all = append(all, incoming...)
		sort.Slice(all, func(i, j int) bool {
			return period.ComparePeriod(all[i].TimeSpan(), all[j].TimeSpan()) < 0
		})
		if len(all) == 0 {
			return nil, nil
		}
		out := []*temporal.Sequence[V]{all[0]}
		for i := 1; i < len(all); i++ {
			if err := tserr.CheckContext(ctx); err != nil {
				return nil, err
			}
			last := out[len(out)-1]
			if last.TimeSpan().Overlaps(all[i].TimeSpan()) {
				ss, err := pointwiseCombine(ctx, last, all[i], op)
				if err != nil {
					return nil, err
				}
				if ss == nil {
					continue
				}
				out = out[:len(out)-1]
				out = append(out, ss.Sequences()...)
				continue
			}
			out = append(out, all[i])
		}
		return out, nil
	}
}

// Min returns the tmin combiner.
func Min[V temporal.Base]() Combiner[V] {
	return homogeneousCombiner(func(a, b V) V {
		if temporal.Less(a, b) {
			return a
		}
		return b
	})
}

// Max returns the tmax combiner.
func Max[V temporal.Base]() Combiner[V] {
	return homogeneousCombiner(func(a, b V) V {
		if temporal.Less(a, b) {
			return b
		}
		return a
	})
}

// Sum returns the tsum combiner. Summing a continuously-varying
// (Linear, float) partial aggregate pointwise has no well-defined
// meaning — two linear float sequences add up to a well-defined third
// linear sequence (package lift's Add), but "the running sum so far"
// of a Linear float signal is not that: the redesign note in spec.md
// §9 calls for rejecting it uniformly at this layer rather than only
// in a SQL wrapper, so Sum checks both operands' interpolation before
// ever calling the combiner.
func Sum[V temporal.Base]() Combiner[V] {
	base := homogeneousCombiner(func(a, b V) V {
		return temporal.FromFloat64[V](temporal.AsFloat64(a) + temporal.AsFloat64(b))
	})
	return func(ctx context.Context, removed, incoming []*temporal.Sequence[V]) ([]*temporal.Sequence[V], error) {
		if temporal.KindOf[V]() == temporal.KindFloat {
			for _, s := range append(append([]*temporal.Sequence[V]{}, removed...), incoming...) {
				if s.Interp() == temporal.Linear {
					return nil, tserr.Unsupported("tsum: continuous float sum over a linear sequence is ill-defined")
				}
			}
		}
		return base(ctx, removed, incoming)
	}
}

// And returns the tand combiner for bool-valued Sequences.
func And() Combiner[bool] {
	return homogeneousCombiner(func(a, b bool) bool { return a && b })
}

// Or returns the tor combiner for bool-valued Sequences.
func Or() Combiner[bool] {
	return homogeneousCombiner(func(a, b bool) bool { return a || b })
}

// Double2 is the (sum, count) pair of an average's partial aggregate,
// combined by AddDouble2 and finalized by Avg. It is a plain struct,
// not a temporal.Base, so it is never stored in a Skiplist; package
// wagg carries a window average as two float64 sequences instead
// (wagg.AvgParts).
type Double2 struct {
	Sum   float64
	Count float64
}

// AddDouble2 combines two partial (sum, count) pairs.
func AddDouble2(a, b Double2) Double2 {
	return Double2{Sum: a.Sum + b.Sum, Count: a.Count + b.Count}
}

// Avg finalizes a Double2 partial aggregate into its mean. Returns
// false if count is zero.
func Avg(d Double2) (float64, bool) {
	if d.Count == 0 {
		return 0, false
	}
	return d.Sum / d.Count, true
}

// CountPeriodSet returns the number of periods in ps, the tcount of a
// bare period-set domain with no temporal value attached
// (original_source/src/temporal_aggfuncs.c).
func CountPeriodSet(ps period.PeriodSet) int { return ps.Len() }

// CountTimestampSet returns the number of timestamps in ts.
func CountTimestampSet(ts period.TimestampSet) int { return ts.Len() }
