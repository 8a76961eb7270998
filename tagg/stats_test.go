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
	"testing"

	"github.com/temporalith/tengine/temporal"
)

func TestHeightHistogramCoversEveryLiveNode(t *testing.T) {
	sl, err := Make([]*temporal.Sequence[float64]{
		stepInstant(t, 1, 0, 10), stepInstant(t, 2, 10, 20), stepInstant(t, 3, 20, 30),
	})
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	hist := sl.HeightHistogram()
	var total int
	for _, n := range hist {
		total += n
	}
	if total != sl.Count() {
		t.Fatalf("expected the histogram to cover every live node: got %d, want %d", total, sl.Count())
	}
	heights := sl.Heights()
	for i := 1; i < len(heights); i++ {
		if heights[i-1] >= heights[i] {
			t.Fatalf("expected Heights() to be sorted ascending, got %v", heights)
		}
	}
}

func TestHeightRangesCoversEveryDistinctHeight(t *testing.T) {
	sl, err := Make([]*temporal.Sequence[float64]{
		stepInstant(t, 1, 0, 10), stepInstant(t, 2, 10, 20), stepInstant(t, 3, 20, 30),
		stepInstant(t, 4, 30, 40), stepInstant(t, 5, 40, 50), stepInstant(t, 6, 50, 60),
	})
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	heights := sl.Heights()
	ranges := sl.HeightRanges()
	var covered int
	ranges.Each(func(int) { covered++ })
	if covered != len(heights) {
		t.Fatalf("expected HeightRanges to cover %d distinct heights, covered %d", len(heights), covered)
	}
	for _, h := range heights {
		if !ranges.Overlaps(h, h+1) {
			t.Fatalf("expected HeightRanges to contain observed height %d", h)
		}
	}
}
