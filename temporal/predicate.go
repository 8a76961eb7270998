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

// Package temporal's predicate.go implements the ever/always family
// (spec.md §4.3): EverEqual, AlwaysEqual, EverLess, AlwaysLess, and
// their Or-equal variants. EverEqual, EverLess and AlwaysLess first
// check a numeric operand's bounding box; the others walk instants
// directly.
package temporal

import "github.com/temporalith/tengine/tbox"

// eachInstant calls f for every instant carried by t, in time order,
// stopping early if f returns false. It dispatches on the concrete
// subtype rather than widening to a slice, so a predicate over a long
// SequenceSet can short-circuit without materializing every instant.
func eachInstant[V Base](t Temporal[V], f func(Instant[V]) bool) {
	switch v := t.(type) {
	case *Instant[V]:
		f(*v)
	case *InstantSet[V]:
		for i := 0; i < v.NumInstants(); i++ {
			if !f(v.At(i)) {
				return
			}
		}
	case *Sequence[V]:
		for i := 0; i < v.NumInstants(); i++ {
			if !f(v.At(i)) {
				return
			}
		}
	case *SequenceSet[V]:
		for _, s := range v.seqs {
			stopped := false
			for i := 0; i < s.NumInstants(); i++ {
				if !f(s.At(i)) {
					stopped = true
					break
				}
			}
			if stopped {
				return
			}
		}
	}
}

// boxRulesOutEqual reports whether the bounding box of t proves no
// instant of t can equal v, letting EverEqual/AlwaysEqual skip the
// instant walk entirely for a numeric or spatial base.
func boxRulesOutEqual[V Base](t Temporal[V], v V) bool {
	switch b := t.Box().(type) {
	case tbox.Numeric:
		target := AsFloat64(v)
		return target < b.Min || target > b.Max
	default:
		return false
	}
}

// EverEqual reports whether some instant of t equals v. For a Linear
// Sequence this also catches a mid-segment crossing (the value can
// equal v between two instants neither of which equals v), since a
// linear segment is monotone and so crosses v at most once.
func EverEqual[V Base](t Temporal[V], v V) bool {
	if boxRulesOutEqual(t, v) {
		return false
	}
	switch tv := t.(type) {
	case *Sequence[V]:
		return sequenceEverEqual(tv, v)
	case *SequenceSet[V]:
		for _, s := range tv.seqs {
			if sequenceEverEqual(s, v) {
				return true
			}
		}
		return false
	}
	found := false
	eachInstant(t, func(in Instant[V]) bool {
		if Equal(in.V, v) {
			found = true
			return false
		}
		return true
	})
	return found
}

func sequenceEverEqual[V Base](s *Sequence[V], v V) bool {
	numeric := KindOf[V]() == KindInt || KindOf[V]() == KindFloat
	for i := 0; i < s.NumInstants(); i++ {
		if Equal(s.At(i).V, v) {
			return true
		}
	}
	if s.interp != Linear || !numeric {
		return false
	}
	target := AsFloat64(v)
	for i := 0; i < s.NumSegments(); i++ {
		a, b := s.Segment(i)
		av, bv := AsFloat64(a.V), AsFloat64(b.V)
		lo, hi := av, bv
		if lo > hi {
			lo, hi = hi, lo
		}
		if target >= lo && target <= hi {
			return true
		}
	}
	return false
}

// AlwaysEqual reports whether every instant of t equals v.
func AlwaysEqual[V Base](t Temporal[V], v V) bool {
	all := true
	eachInstant(t, func(in Instant[V]) bool {
		if !Equal(in.V, v) {
			all = false
			return false
		}
		return true
	})
	return all
}

// EverLess reports whether some instant of t is strictly less than v.
// Only defined for ordered bases; see Less.
func EverLess[V Base](t Temporal[V], v V) bool {
	if b, ok := t.Box().(tbox.Numeric); ok && AsFloat64(v) <= b.Min {
		return false
	}
	found := false
	eachInstant(t, func(in Instant[V]) bool {
		if Less(in.V, v) {
			found = true
			return false
		}
		return true
	})
	return found
}

// AlwaysLess reports whether every instant of t is strictly less than v.
func AlwaysLess[V Base](t Temporal[V], v V) bool {
	if b, ok := t.Box().(tbox.Numeric); ok && AsFloat64(v) > b.Max {
		return true
	}
	all := true
	eachInstant(t, func(in Instant[V]) bool {
		if !Less(in.V, v) {
			all = false
			return false
		}
		return true
	})
	return all
}

// EverLessOrEqual reports whether some instant of t is <= v.
func EverLessOrEqual[V Base](t Temporal[V], v V) bool {
	found := false
	eachInstant(t, func(in Instant[V]) bool {
		if Less(in.V, v) || Equal(in.V, v) {
			found = true
			return false
		}
		return true
	})
	return found
}

// AlwaysLessOrEqual reports whether every instant of t is <= v.
func AlwaysLessOrEqual[V Base](t Temporal[V], v V) bool {
	all := true
	eachInstant(t, func(in Instant[V]) bool {
		if !(Less(in.V, v) || Equal(in.V, v)) {
			all = false
			return false
		}
		return true
	})
	return all
}
