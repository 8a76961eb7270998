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

// Package temporal implements the temporal value data model: Instant,
// InstantSet, Sequence, and SequenceSet, generic over a scalar base
// type (spec.md §3). All values are immutable once constructed.
package temporal

import (
	"fmt"

	"github.com/temporalith/tengine/geo"
)

// Base lists the scalar types a temporal value may vary over: the
// built-in numeric and boolean/text kinds, plus the two geometry
// kinds reached through the opaque geo collaborator. Unlike the
// teacher's vectorized columnar types, there is no need for a
// byte-offset layout here (spec.md §9): every Base is an ordinary Go
// value stored in an owned, contiguous slice.
type Base interface {
	int64 | float64 | bool | string | geo.Point
}

// BaseKind is the runtime discriminant accompanying a Base type
// parameter, so heterogeneous collections (e.g. a skiplist node read
// back from a serialized snapshot) can dispatch without generics.
type BaseKind int

const (
	KindInt BaseKind = iota
	KindFloat
	KindBool
	KindText
	KindGeomPoint
	KindGeogPoint
)

func (k BaseKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindText:
		return "text"
	case KindGeomPoint:
		return "geompoint"
	case KindGeogPoint:
		return "geogpoint"
	default:
		return "unknown"
	}
}

// KindOf returns the BaseKind matching the static type parameter V.
func KindOf[V Base]() BaseKind {
	var zero V
	switch any(zero).(type) {
	case int64:
		return KindInt
	case float64:
		return KindFloat
	case bool:
		return KindBool
	case string:
		return KindText
	case geo.Point:
		var p geo.Point = any(zero).(geo.Point)
		if p.Geodetic {
			return KindGeogPoint
		}
		return KindGeomPoint
	default:
		panic(fmt.Sprintf("temporal: unsupported base type %T", zero))
	}
}

// Continuous reports whether V supports linear interpolation. Bool
// and text base types may only use stepwise interpolation.
func Continuous[V Base]() bool {
	k := KindOf[V]()
	return k == KindInt || k == KindFloat || k == KindGeomPoint || k == KindGeogPoint
}

// Equal reports value equality for any Base type.
func Equal[V Base](a, b V) bool {
	switch av := any(a).(type) {
	case geo.Point:
		return geo.Equal(av, any(b).(geo.Point))
	default:
		return any(a) == any(b)
	}
}

// Less reports a < b. Only defined for ordered bases (int64, float64,
// string); callers must not call Less on bool or geo.Point.
func Less[V Base](a, b V) bool {
	switch av := any(a).(type) {
	case int64:
		return av < any(b).(int64)
	case float64:
		return av < any(b).(float64)
	case string:
		return av < any(b).(string)
	default:
		panic(fmt.Sprintf("temporal: Less is undefined for base type %T", a))
	}
}

// Lerp linearly interpolates between a and b at parameter alpha in
// [0,1]. Only defined for continuous bases (int64, float64,
// geo.Point); an int64 result is truncated toward zero.
func Lerp[V Base](a, b V, alpha float64) V {
	switch av := any(a).(type) {
	case int64:
		bv := any(b).(int64)
		return any(int64(float64(av) + alpha*float64(bv-av))).(V)
	case float64:
		bv := any(b).(float64)
		return any(av + alpha*(bv-av)).(V)
	case geo.Point:
		bv := any(b).(geo.Point)
		return any(geo.Lerp(av, bv, alpha)).(V)
	default:
		panic(fmt.Sprintf("temporal: Lerp is undefined for base type %T", a))
	}
}

// AsFloat64 extracts a float64 view of a numeric base (int64 or
// float64), used by segment-solve and turning-point arithmetic in
// package lift.
func AsFloat64[V Base](v V) float64 {
	switch av := any(v).(type) {
	case int64:
		return float64(av)
	case float64:
		return av
	default:
		panic(fmt.Sprintf("temporal: AsFloat64 is undefined for base type %T", v))
	}
}

// FromFloat64 is the inverse of AsFloat64: it converts a computed
// float64 result back into a numeric base type V, truncating toward
// zero for int64. Only defined for int64 and float64.
func FromFloat64[V Base](f float64) V {
	switch KindOf[V]() {
	case KindInt:
		return any(int64(f)).(V)
	case KindFloat:
		return any(f).(V)
	default:
		panic(fmt.Sprintf("temporal: FromFloat64 is undefined for base type %s", KindOf[V]()))
	}
}
