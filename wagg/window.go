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

// window.go wires the extend/transform pieces into the public
// wmin/wmax/wsum/wcount/wavg entry points spec.md §6 names: each
// rewrites its input with the appropriate extend/transform step, then
// folds the result into a state skiplist with the matching tagg
// combiner (spec.md §4.6). The per-op Combine/Finalize wrappers exist
// for symmetry with spec.md §6's stated transition/combine/finalize
// triple, even though, for these thin window variants, combine is
// just the same combiner Splice already uses internally and finalize
// is just reading the skiplist back out.
package wagg

import (
	"context"
	"time"

	"github.com/temporalith/tengine/tagg"
	"github.com/temporalith/tengine/temporal"
)

// WMin is wmin(state, T, Δ): extend T preserving its minima, then fold
// the pieces into state with the tmin combiner.
func WMin[V temporal.Base](ctx context.Context, state *tagg.Skiplist[V], s *temporal.Sequence[V], delta time.Duration) error {
	extended, err := Extend(s, delta, AggMin)
	if err != nil {
		return err
	}
	return state.Splice(ctx, extended, WMinCombine[V]())
}

// WMinCombine is wmin's combine step: the ordinary tmin combiner.
func WMinCombine[V temporal.Base]() tagg.Combiner[V] { return tagg.Min[V]() }

// WMinFinalize is wmin's finalize step: the state's current pieces.
func WMinFinalize[V temporal.Base](state *tagg.Skiplist[V]) []*temporal.Sequence[V] {
	return state.Values()
}

// WMax is wmax(state, T, Δ): extend T preserving its maxima, then fold
// the pieces into state with the tmax combiner.
func WMax[V temporal.Base](ctx context.Context, state *tagg.Skiplist[V], s *temporal.Sequence[V], delta time.Duration) error {
	extended, err := Extend(s, delta, AggMax)
	if err != nil {
		return err
	}
	return state.Splice(ctx, extended, WMaxCombine[V]())
}

// WMaxCombine is wmax's combine step: the ordinary tmax combiner.
func WMaxCombine[V temporal.Base]() tagg.Combiner[V] { return tagg.Max[V]() }

// WMaxFinalize is wmax's finalize step: the state's current pieces.
func WMaxFinalize[V temporal.Base](state *tagg.Skiplist[V]) []*temporal.Sequence[V] {
	return state.Values()
}

// WSum is wsum(state, T, Δ): extend T (no min/max trend to preserve),
// then fold the pieces into state with the tsum combiner. tsum itself
// rejects a continuous float sum over a Linear sequence (package
// tagg's Sum), so a window sum over a Linear float input fails the
// same way an unwindowed one does.
func WSum[V temporal.Base](ctx context.Context, state *tagg.Skiplist[V], s *temporal.Sequence[V], delta time.Duration) error {
	extended, err := Extend(s, delta, AggOther)
	if err != nil {
		return err
	}
	return state.Splice(ctx, extended, WSumCombine[V]())
}

// WSumCombine is wsum's combine step: the ordinary tsum combiner.
func WSumCombine[V temporal.Base]() tagg.Combiner[V] { return tagg.Sum[V]() }

// WSumFinalize is wsum's finalize step: the state's current pieces.
func WSumFinalize[V temporal.Base](state *tagg.Skiplist[V]) []*temporal.Sequence[V] {
	return state.Values()
}

// WCount is wcount(state, T, Δ): rewrite T into unit-presence pieces
// (TransformWCount) and sum them into state.
func WCount[V temporal.Base](ctx context.Context, state *tagg.Skiplist[float64], s *temporal.Sequence[V], delta time.Duration) error {
	counts, err := TransformWCount(s, delta)
	if err != nil {
		return err
	}
	return state.Splice(ctx, counts, WCountCombine())
}

// WCountCombine is wcount's combine step: the ordinary tsum combiner
// applied to the unit-presence pieces.
func WCountCombine() tagg.Combiner[float64] { return tagg.Sum[float64]() }

// WCountFinalize is wcount's finalize step: the state's current
// presence counts.
func WCountFinalize(state *tagg.Skiplist[float64]) []*temporal.Sequence[float64] {
	return state.Values()
}

// WAvgState is wavg's state: the (sum, count) pair of skiplists
// TransformWAvg's double2 adaptation requires (see AvgParts).
type WAvgState struct {
	Sum, Count *tagg.Skiplist[float64]
}

// NewWAvgState returns an empty WAvgState.
func NewWAvgState() WAvgState {
	sumSl, _ := tagg.Make[float64](nil)
	countSl, _ := tagg.Make[float64](nil)
	return WAvgState{Sum: sumSl, Count: countSl}
}

// WAvg is wavg(state, T, Δ): lift T to a (sum, count) pair extended by
// Δ (TransformWAvg), and sum each half into its own half of state.
func WAvg[V temporal.Base](ctx context.Context, state WAvgState, s *temporal.Sequence[V], delta time.Duration) error {
	parts, err := TransformWAvg(s, delta)
	if err != nil {
		return err
	}
	if err := state.Sum.Splice(ctx, parts.Sum, WAvgCombine()); err != nil {
		return err
	}
	return state.Count.Splice(ctx, parts.Count, WAvgCombine())
}

// WAvgCombine is wavg's combine step: the ordinary tsum combiner,
// applied independently to each half of the (sum, count) pair.
func WAvgCombine() tagg.Combiner[float64] { return tagg.Sum[float64]() }

// WAvgFinalize is wavg's finalize step: it pairs up state's sum and
// count pieces by overlapping time span and divides each pair,
// mirroring FinalizeWAvg's single-pair case across however many
// pieces the skiplist currently holds.
func WAvgFinalize(state WAvgState) ([]*temporal.Sequence[float64], error) {
	sums, counts := state.Sum.Values(), state.Count.Values()
	var out []*temporal.Sequence[float64]
	i, j := 0, 0
	for i < len(sums) && j < len(counts) {
		a, b := sums[i], counts[j]
		if a.TimeSpan().Overlaps(b.TimeSpan()) {
			avg, err := FinalizeWAvg(a, b)
			if err != nil {
				return nil, err
			}
			if avg != nil {
				out = append(out, avg)
			}
		}
		if a.TimeSpan().Upper <= b.TimeSpan().Upper {
			i++
		} else {
			j++
		}
	}
	return out, nil
}
