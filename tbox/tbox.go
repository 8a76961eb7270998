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

// Package tbox implements the compact bounding-box summaries cached on
// every temporal value: a Period for any temporal, a Numeric box for
// temporal numbers, and a Spatial box for temporal points. Every
// operator is expected to begin with a box-overlap fast-reject test
// before running its detailed algorithm (spec.md §4.2).
package tbox

import "github.com/temporalith/tengine/period"

// Box is the minimal contract every bounding-box kind satisfies: a
// time extent. Overlap tests are per-kind Overlaps methods that take
// a box of the same kind.
type Box interface {
	TimePeriod() period.Period
}

// Period is the bounding box for any temporal value: just its time
// extent.
type Period struct {
	T period.Period
}

// TimePeriod implements Box.
func (b Period) TimePeriod() period.Period { return b.T }

// Overlaps reports whether the two time extents share a point.
func (b Period) Overlaps(o Period) bool { return b.T.Overlaps(o.T) }

// Numeric is the bounding box for a temporal number: a value range
// plus a time period.
type Numeric struct {
	Min, Max float64
	T        period.Period
}

// TimePeriod implements Box.
func (b Numeric) TimePeriod() period.Period { return b.T }

// Overlaps reports whether two numeric boxes overlap in both value
// and time. If either input box is empty (Min>Max), the test
// conservatively returns false. The zero value (Min == Max == 0) is
// not empty.
func (b Numeric) Overlaps(o Numeric) bool {
	if b.Min > b.Max || o.Min > o.Max {
		return false
	}
	return b.Min <= o.Max && o.Min <= b.Max && b.T.Overlaps(o.T)
}

// NewNumeric returns a Numeric box covering exactly v at time t, ready
// for further Expand calls.
func NewNumeric(v float64, t period.Timestamp) Numeric {
	return Numeric{Min: v, Max: v, T: period.Instant(t)}
}

// Expand grows b in place to also cover v at time t. b must already
// have been initialized (e.g. via NewNumeric).
func (b *Numeric) Expand(v float64, t period.Timestamp) {
	if v < b.Min {
		b.Min = v
	}
	if v > b.Max {
		b.Max = v
	}
	if t < b.T.Lower {
		b.T.Lower = t
		b.T.LowerInc = true
	}
	if t > b.T.Upper {
		b.T.Upper = t
		b.T.UpperInc = true
	}
}

// Spatial is the bounding box for a temporal point: per-axis min/max,
// a time period, and a geodetic flag (geography vs. plain geometry
// coordinates).
type Spatial struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
	HasZ             bool
	Geodetic         bool
	T                period.Period
}

// TimePeriod implements Box.
func (b Spatial) TimePeriod() period.Period { return b.T }

// Overlaps reports whether two spatial boxes overlap on every present
// axis and in time. Mismatched geodetic flags never overlap: a
// geometry point and a geography point are never directly comparable.
func (b Spatial) Overlaps(o Spatial) bool {
	if b.Geodetic != o.Geodetic {
		return false
	}
	if b.MinX > o.MaxX || o.MinX > b.MaxX {
		return false
	}
	if b.MinY > o.MaxY || o.MinY > b.MaxY {
		return false
	}
	if b.HasZ && o.HasZ && (b.MinZ > o.MaxZ || o.MinZ > b.MaxZ) {
		return false
	}
	return b.T.Overlaps(o.T)
}

// NewSpatial returns a Spatial box covering exactly (x, y[, z]) at
// time t, with the given geodetic flag, ready for further Expand
// calls.
func NewSpatial(x, y, z float64, hasZ, geodetic bool, t period.Timestamp) Spatial {
	b := Spatial{MinX: x, MaxX: x, MinY: y, MaxY: y, HasZ: hasZ, Geodetic: geodetic, T: period.Instant(t)}
	if hasZ {
		b.MinZ, b.MaxZ = z, z
	}
	return b
}

// Expand grows b in place to also cover (x, y[, z]) at time t. b must
// already have been initialized (e.g. via NewSpatial).
func (b *Spatial) Expand(x, y, z float64, hasZ bool, t period.Timestamp) {
	if x < b.MinX {
		b.MinX = x
	}
	if x > b.MaxX {
		b.MaxX = x
	}
	if y < b.MinY {
		b.MinY = y
	}
	if y > b.MaxY {
		b.MaxY = y
	}
	if hasZ {
		if !b.HasZ {
			b.MinZ, b.MaxZ = z, z
			b.HasZ = true
		} else {
			if z < b.MinZ {
				b.MinZ = z
			}
			if z > b.MaxZ {
				b.MaxZ = z
			}
		}
	}
	if t < b.T.Lower {
		b.T.Lower = t
		b.T.LowerInc = true
	}
	if t > b.T.Upper {
		b.T.Upper = t
		b.T.UpperInc = true
	}
}
