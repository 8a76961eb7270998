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

package temporal

import (
	"github.com/temporalith/tengine/geo"
	"github.com/temporalith/tengine/period"
	"github.com/temporalith/tengine/tserr"

	"github.com/temporalith/tengine/tbox"
)

// Instant is a single (value, timestamp) pair: one point in time.
type Instant[V Base] struct {
	V V
	T period.Timestamp
}

// NewInstant constructs an Instant.
func NewInstant[V Base](v V, t period.Timestamp) *Instant[V] {
	return &Instant[V]{V: v, T: t}
}

func (in *Instant[V]) Subtype() Subtype                 { return SubtypeInstant }
func (in *Instant[V]) BaseKind() BaseKind                { return KindOf[V]() }
func (in *Instant[V]) StartTimestamp() period.Timestamp  { return in.T }
func (in *Instant[V]) EndTimestamp() period.Timestamp    { return in.T }
func (in *Instant[V]) NumInstants() int                  { return 1 }
func (in *Instant[V]) TimeSpan() period.Period           { return period.Instant(in.T) }

func (in *Instant[V]) Box() tbox.Box {
	return boxForValue(in.V, in.T)
}

func boxForValue[V Base](v V, t period.Timestamp) tbox.Box {
	switch KindOf[V]() {
	case KindInt, KindFloat:
		return tbox.NewNumeric(AsFloat64(v), t)
	case KindGeomPoint, KindGeogPoint:
		p := any(v).(geo.Point)
		return tbox.NewSpatial(p.X, p.Y, p.Z, p.HasZ, p.Geodetic, t)
	default:
		return tbox.Period{T: period.Instant(t)}
	}
}

// expandBox widens an existing box (as constructed by boxForValue) to
// also cover v at time t.
func expandBox[V Base](b tbox.Box, v V, t period.Timestamp) tbox.Box {
	switch box := b.(type) {
	case tbox.Numeric:
		box.Expand(AsFloat64(v), t)
		return box
	case tbox.Spatial:
		p := any(v).(geo.Point)
		box.Expand(p.X, p.Y, p.Z, p.HasZ, t)
		return box
	case tbox.Period:
		if t < box.T.Lower {
			box.T.Lower, box.T.LowerInc = t, true
		}
		if t > box.T.Upper {
			box.T.Upper, box.T.UpperInc = t, true
		}
		return box
	default:
		return b
	}
}

// InstantSet is an ordered, strictly-increasing-time sequence of
// Instants sharing a base type.
type InstantSet[V Base] struct {
	instants []Instant[V]
}

// InstantSetMake builds an InstantSet from instants. If normalize is
// true, instants are sorted by time (duplicate timestamps are an
// InvalidArgument error even with normalization on, since collapsing
// them would silently discard one of two conflicting values); if
// false, the caller asserts strictly increasing times already hold.
func InstantSetMake[V Base](instants []Instant[V], normalize bool) (*InstantSet[V], error) {
	if len(instants) == 0 {
		return nil, tserr.InvalidArg("instant set must contain at least one instant")
	}
	out := make([]Instant[V], len(instants))
	copy(out, instants)
	if normalize {
		sortInstants(out)
	}
	for i := 1; i < len(out); i++ {
		if out[i-1].T >= out[i].T {
			return nil, tserr.InvalidArg("instant set times are not strictly increasing at index %d", i)
		}
	}
	return &InstantSet[V]{instants: out}, nil
}

func sortInstants[V Base](in []Instant[V]) {
	// simple insertion sort: instant sets are typically small and
	// already near-sorted; avoids pulling in golang.org/x/exp/slices'
	// generic SortFunc purely for a struct-with-type-parameter slice.
	for i := 1; i < len(in); i++ {
		for j := i; j > 0 && in[j-1].T > in[j].T; j-- {
			in[j-1], in[j] = in[j], in[j-1]
		}
	}
}

func (is *InstantSet[V]) Subtype() Subtype                { return SubtypeInstantSet }
func (is *InstantSet[V]) BaseKind() BaseKind               { return KindOf[V]() }
func (is *InstantSet[V]) StartTimestamp() period.Timestamp { return is.instants[0].T }
func (is *InstantSet[V]) EndTimestamp() period.Timestamp   { return is.instants[len(is.instants)-1].T }
func (is *InstantSet[V]) NumInstants() int                 { return len(is.instants) }

func (is *InstantSet[V]) TimeSpan() period.Period {
	return period.Period{
		Lower: is.StartTimestamp(), Upper: is.EndTimestamp(),
		LowerInc: true, UpperInc: true,
	}
}

// At returns the i-th instant.
func (is *InstantSet[V]) At(i int) Instant[V] { return is.instants[i] }

// Instants returns the underlying instants; callers must not mutate
// the returned slice.
func (is *InstantSet[V]) Instants() []Instant[V] { return is.instants }

func (is *InstantSet[V]) Box() tbox.Box {
	b := boxForValue(is.instants[0].V, is.instants[0].T)
	for i := 1; i < len(is.instants); i++ {
		b = expandBox(b, is.instants[i].V, is.instants[i].T)
	}
	return b
}

// ValueAt returns the value at timestamp t, if t is one of is's
// member timestamps.
func (is *InstantSet[V]) ValueAt(t period.Timestamp) (V, bool) {
	lo, hi := 0, len(is.instants)
	for lo < hi {
		mid := (lo + hi) / 2
		if is.instants[mid].T < t {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(is.instants) && is.instants[lo].T == t {
		return is.instants[lo].V, true
	}
	var zero V
	return zero, false
}
