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

package tagg

import (
	"golang.org/x/exp/maps"

	"github.com/temporalith/tengine/ints"
)

// HeightHistogram counts how many live nodes were drawn at each
// height, for debugging level-distribution skew (a well-formed
// skiplist should see roughly half as many nodes at each successive
// height). Free-listed slots are skipped.
func (s *Skiplist[V]) HeightHistogram() map[int]int {
	hist := map[int]int{}
	for i := int32(2); i < int32(len(s.nodes)); i++ {
		n := s.nodes[i]
		if !n.inUse {
			continue
		}
		hist[n.height]++
	}
	return hist
}

// Heights returns the distinct node heights currently present,
// ascending.
func (s *Skiplist[V]) Heights() []int {
	hist := s.HeightHistogram()
	heights := maps.Keys(hist)
	for i := 1; i < len(heights); i++ {
		for j := i; j > 0 && heights[j-1] > heights[j]; j-- {
			heights[j-1], heights[j] = heights[j], heights[j-1]
		}
	}
	return heights
}

// HeightRanges compresses the distinct occupied heights into maximal
// contiguous runs, e.g. heights {1,2,3,5,6} become [1,4) and [5,7): a
// compact summary of whether the level distribution has gaps (a
// missing height usually means the stored set is too small for that
// level to have been drawn yet, not a bug).
func (s *Skiplist[V]) HeightRanges() ints.Intervals {
	heights := s.Heights()
	out := make(ints.Intervals, len(heights))
	for i, h := range heights {
		out[i] = ints.Interval{Start: h, End: h + 1}
	}
	out.Compress()
	return out
}
