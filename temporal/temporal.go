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
	"github.com/temporalith/tengine/period"
	"github.com/temporalith/tengine/tbox"
)

// Subtype is the time-structure discriminant of a temporal value.
type Subtype int

const (
	SubtypeInstant Subtype = iota
	SubtypeInstantSet
	SubtypeSequence
	SubtypeSequenceSet
)

func (s Subtype) String() string {
	switch s {
	case SubtypeInstant:
		return "Instant"
	case SubtypeInstantSet:
		return "InstantSet"
	case SubtypeSequence:
		return "Sequence"
	case SubtypeSequenceSet:
		return "SequenceSet"
	default:
		return "unknown"
	}
}

// Interp is a Sequence's interpolation mode.
type Interp int

const (
	// Linear: the value varies continuously between instants. Only
	// valid for continuous base types.
	Linear Interp = iota
	// Stepwise: the value is held constant from each instant up to
	// (but not including) the next.
	Stepwise
)

func (i Interp) String() string {
	if i == Linear {
		return "linear"
	}
	return "stepwise"
}

// Temporal is the common contract shared by Instant, InstantSet,
// Sequence, and SequenceSet over the same base type V. It is the
// sum-type/capability-table realization spec.md §9 calls for: each
// concrete struct implements Temporal once and dispatch on
// (subtype, base_type) pairs becomes an exhaustive type switch on
// Subtype() at the call site, with BaseKind giving the runtime base
// discriminant.
type Temporal[V Base] interface {
	Subtype() Subtype
	BaseKind() BaseKind
	StartTimestamp() period.Timestamp
	EndTimestamp() period.Timestamp
	NumInstants() int
	TimeSpan() period.Period
	Box() tbox.Box
}
