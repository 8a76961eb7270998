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

// Package wagg implements the window-aggregate transform (spec.md
// §4.6): extend, transform_wcount, and transform_wavg rewrite an input
// temporal value into time-extended segments before the ordinary
// skiplist aggregator (package tagg) folds them.
package wagg

import (
	"time"

	"github.com/temporalith/tengine/period"
	"github.com/temporalith/tengine/temporal"
	"github.com/temporalith/tengine/tserr"
)

// AggKind selects which extremum Extend must preserve, which decides
// whether a Linear segment's start or end gets the Δ widening.
type AggKind int

const (
	AggMin AggKind = iota
	AggMax
	AggOther
)

// Extend rewrites s into one short Sequence per original instant/
// segment, each widened by delta (spec.md §4.6's extend). For a Linear
// segment whose trend is monotone increasing and kind is AggMin (or
// decreasing and AggMax), the segment's *start* is pushed back by
// delta instead of its end, so the segment's extremum — which sits at
// its start in that case — remains visible to a window ending exactly
// at the original start. Every other case extends the end; Stepwise
// segments always extend the end.
func Extend[V temporal.Base](s *temporal.Sequence[V], delta time.Duration, kind AggKind) ([]*temporal.Sequence[V], error) {
	deltaMicros := period.Timestamp(delta.Microseconds())
	if deltaMicros <= 0 {
		return nil, tserr.InvalidArg("wagg.Extend: delta must be positive")
	}
	if s.NumSegments() == 0 {
		in := s.At(0)
		seq, err := extendFlat(in.V, in.T, deltaMicros, false)
		if err != nil {
			return nil, err
		}
		return []*temporal.Sequence[V]{seq}, nil
	}
	var out []*temporal.Sequence[V]
	for i := 0; i < s.NumSegments(); i++ {
		a, b := s.Segment(i)
		extendStart := false
		if s.Interp() == temporal.Linear && temporal.Continuous[V]() {
			numeric := isNumeric[V]()
			if numeric {
				av, bv := temporal.AsFloat64(a.V), temporal.AsFloat64(b.V)
				increasing := bv > av
				decreasing := bv < av
				extendStart = (increasing && kind == AggMin) || (decreasing && kind == AggMax)
			}
		}
		var instants []temporal.Instant[V]
		var lowerInc, upperInc bool
		if extendStart {
			instants = []temporal.Instant[V]{{V: a.V, T: a.T - deltaMicros}, a, b}
			lowerInc, upperInc = true, i+1 == s.NumSegments() && s.UpperInc()
		} else {
			instants = []temporal.Instant[V]{a, b, {V: b.V, T: b.T + deltaMicros}}
			lowerInc, upperInc = i == 0 && s.LowerInc(), true
		}
		seq, err := temporal.SequenceMake(instants, lowerInc, upperInc, s.Interp(), false)
		if err != nil {
			return nil, err
		}
		out = append(out, seq)
	}
	return out, nil
}

func extendFlat[V temporal.Base](v V, t period.Timestamp, delta period.Timestamp, extendStart bool) (*temporal.Sequence[V], error) {
	if extendStart {
		return temporal.SequenceMake([]temporal.Instant[V]{{V: v, T: t - delta}, {V: v, T: t}}, true, true, temporal.Stepwise, false)
	}
	return temporal.SequenceMake([]temporal.Instant[V]{{V: v, T: t}, {V: v, T: t + delta}}, true, true, temporal.Stepwise, false)
}

func isNumeric[V temporal.Base]() bool {
	k := temporal.KindOf[V]()
	return k == temporal.KindInt || k == temporal.KindFloat
}
