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

	"github.com/temporalith/tengine/period"
	"github.com/temporalith/tengine/temporal"
)

// TransformWCount replaces every instant/segment of s by a
// constant-1 Stepwise Sequence spanning the segment's own width plus
// delta (or just delta, for a bare instant), yielding an integer
// "presence" temporal whose pieces are meant to be summed by the
// ordinary skiplist aggregator (spec.md §4.6).
func TransformWCount[V temporal.Base](s *temporal.Sequence[V], delta time.Duration) ([]*temporal.Sequence[float64], error) {
	deltaMicros := period.Timestamp(delta.Microseconds())
	if s.NumSegments() == 0 {
		in := s.At(0)
		seq, err := temporal.SequenceMake([]temporal.Instant[float64]{{V: 1, T: in.T}, {V: 1, T: in.T + deltaMicros}}, true, true, temporal.Stepwise, false)
		if err != nil {
			return nil, err
		}
		return []*temporal.Sequence[float64]{seq}, nil
	}
	var out []*temporal.Sequence[float64]
	for i := 0; i < s.NumSegments(); i++ {
		a, b := s.Segment(i)
		seq, err := temporal.SequenceMake([]temporal.Instant[float64]{
			{V: 1, T: a.T}, {V: 1, T: b.T + deltaMicros},
		}, i == 0 && s.LowerInc(), true, temporal.Stepwise, false)
		if err != nil {
			return nil, err
		}
		out = append(out, seq)
	}
	return out, nil
}
