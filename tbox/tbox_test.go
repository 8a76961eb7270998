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

package tbox

import (
	"testing"

	"github.com/temporalith/tengine/period"
)

// TestBoundingBoxSoundness is spec.md §8's bounding-box soundness
// property: disjoint boxes in value or time must make overlap
// predicates answer false.
func TestBoundingBoxSoundness(t *testing.T) {
	a := Numeric{Min: 0, Max: 10, T: period.MustMake(0, 100, true, false)}
	b := Numeric{Min: 20, Max: 30, T: period.MustMake(0, 100, true, false)}
	if a.Overlaps(b) {
		t.Fatalf("disjoint value ranges must not overlap")
	}

	c := Numeric{Min: 0, Max: 10, T: period.MustMake(0, 100, true, false)}
	d := Numeric{Min: 0, Max: 10, T: period.MustMake(200, 300, true, false)}
	if c.Overlaps(d) {
		t.Fatalf("disjoint time ranges must not overlap")
	}
}

func TestNumericExpand(t *testing.T) {
	b := NewNumeric(5, 100)
	b.Expand(1, 50)
	b.Expand(9, 150)
	if b.Min != 1 || b.Max != 9 {
		t.Fatalf("unexpected value range: [%v,%v]", b.Min, b.Max)
	}
	if b.T.Lower != 50 || b.T.Upper != 150 {
		t.Fatalf("unexpected time range: %v", b.T)
	}
}
