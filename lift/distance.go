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

// Package lift's distance.go supplements spec.md §4.4's "distance
// specifics" with the NAI ("nearest approach instant"), NAD ("nearest
// approach distance"), and ShortestLine accessors from
// original_source/src/point/tpoint_distance.c, layered on top of the
// lifted Distance sequence.
package lift

import (
	"context"
	"math"

	"github.com/temporalith/tengine/geo"
	"github.com/temporalith/tengine/period"
	"github.com/temporalith/tengine/temporal"
)

// Distance lifts Euclidean or geodetic distance between two point
// Sequences, depending on their shared Geodetic flag. For two linear
// segments the turning point is the analytic minimum of the
// squared-distance quadratic in the normalized segment parameter α;
// for geodetic segments, which have no closed-form minimum, the
// turning point is instead found by ternary search over α (an
// approximate closed form, per spec.md §4.4).
func Distance(ctx context.Context, sa, sb *temporal.Sequence[geo.Point]) (*temporal.Sequence[float64], error) {
	f := func(a, b geo.Point) float64 { return geo.Distance(a, b) }
	tp := euclideanTurningPoint
	if sa.At(0).V.Geodetic {
		tp = geodeticTurningPoint
	}
	return BinarySequence[geo.Point, geo.Point, float64](ctx, sa, sb, f, Continuous, tp, nil)
}

// euclideanTurningPoint locates the analytic minimum of the squared
// Euclidean distance between two linear point segments: writing
// d(α) = (p1-q1) + α·((p2-p1)-(q2-q1)), the squared distance is a
// convex quadratic in α with minimum at
// α* = -(d0·dd) / |dd|^2, where d0 = p1-q1 and dd = (p2-p1)-(q2-q1).
func euclideanTurningPoint(p1, p2, q1, q2 geo.Point, t1, t2 period.Timestamp) (float64, period.Timestamp, bool) {
	d0x, d0y, d0z := p1.X-q1.X, p1.Y-q1.Y, p1.Z-q1.Z
	ddx := (p2.X - p1.X) - (q2.X - q1.X)
	ddy := (p2.Y - p1.Y) - (q2.Y - q1.Y)
	ddz := (p2.Z - p1.Z) - (q2.Z - q1.Z)
	dot := d0x*ddx + d0y*ddy + d0z*ddz
	normSq := ddx*ddx + ddy*ddy + ddz*ddz
	if normSq == 0 {
		return 0, 0, false
	}
	alpha := -dot / normSq
	if alpha <= 0 || alpha >= 1 {
		return 0, 0, false
	}
	pa := geo.Lerp(p1, p2, alpha)
	qa := geo.Lerp(q1, q2, alpha)
	t := t1 + period.Timestamp(alpha*float64(t2-t1))
	return geo.EuclideanDistance(pa, qa), t, true
}

// geodeticTurningPoint approximates the minimum great-circle distance
// between two moving points over a segment pair via ternary search
// over α, since the geodetic distance of two linearly-interpolated
// points has no closed-form minimum.
func geodeticTurningPoint(p1, p2, q1, q2 geo.Point, t1, t2 period.Timestamp) (float64, period.Timestamp, bool) {
	dist := func(alpha float64) float64 {
		pa := geo.Lerp(p1, p2, alpha)
		qa := geo.Lerp(q1, q2, alpha)
		return geo.GeodeticDistance(pa, qa)
	}
	lo, hi := 0.0, 1.0
	for i := 0; i < 40; i++ {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3
		if dist(m1) < dist(m2) {
			hi = m2
		} else {
			lo = m1
		}
	}
	alpha := (lo + hi) / 2
	if alpha <= 1e-9 || alpha >= 1-1e-9 {
		return 0, 0, false
	}
	t := t1 + period.Timestamp(alpha*float64(t2-t1))
	return dist(alpha), t, true
}

// NAD returns the nearest-approach distance between sa and sb: the
// minimum value of their lifted Distance sequence.
func NAD(ctx context.Context, sa, sb *temporal.Sequence[geo.Point]) (float64, bool, error) {
	d, err := Distance(ctx, sa, sb)
	if err != nil || d == nil {
		return 0, false, err
	}
	min := math.Inf(1)
	for i := 0; i < d.NumInstants(); i++ {
		if v := d.At(i).V; v < min {
			min = v
		}
	}
	return min, true, nil
}

// NAI returns the nearest-approach instant between sa and sb: the
// timestamp at which their lifted Distance sequence is minimized.
func NAI(ctx context.Context, sa, sb *temporal.Sequence[geo.Point]) (period.Timestamp, bool, error) {
	d, err := Distance(ctx, sa, sb)
	if err != nil || d == nil {
		return 0, false, err
	}
	min := math.Inf(1)
	var at period.Timestamp
	for i := 0; i < d.NumInstants(); i++ {
		if v := d.At(i).V; v < min {
			min = v
			at = d.At(i).T
		}
	}
	return at, true, nil
}

// ShortestLine returns the pair of points realizing the
// nearest-approach distance between sa and sb.
func ShortestLine(ctx context.Context, sa, sb *temporal.Sequence[geo.Point]) (geo.Point, geo.Point, bool, error) {
	t, ok, err := NAI(ctx, sa, sb)
	if err != nil || !ok {
		return geo.Point{}, geo.Point{}, false, err
	}
	pa, paok := sa.ValueAtInclusive(t)
	pb, pbok := sb.ValueAtInclusive(t)
	if !paok || !pbok {
		return geo.Point{}, geo.Point{}, false, nil
	}
	return pa, pb, true, nil
}
