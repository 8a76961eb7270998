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

package geo

import "testing"

func TestLerpMidpoint(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 10, Y: 20}
	mid := Lerp(a, b, 0.5)
	if mid.X != 5 || mid.Y != 10 {
		t.Fatalf("expected midpoint (5,10), got (%v,%v)", mid.X, mid.Y)
	}
}

func TestLerpIgnoresZWhenHasZFalse(t *testing.T) {
	a := Point{X: 0, Y: 0, Z: 100}
	b := Point{X: 10, Y: 10, Z: 200}
	mid := Lerp(a, b, 0.5)
	if mid.Z != 0 {
		t.Fatalf("expected Z to stay zero when HasZ is false, got %v", mid.Z)
	}
}

func TestEqualRequiresMatchingFlags(t *testing.T) {
	a := Point{X: 1, Y: 2}
	b := Point{X: 1, Y: 2, Geodetic: true}
	if Equal(a, b) {
		t.Fatalf("points with different Geodetic flags should not be equal")
	}
}

func TestEuclideanDistance3_4_5Triangle(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 3, Y: 4}
	if d := EuclideanDistance(a, b); d != 5 {
		t.Fatalf("expected distance 5 for a 3-4-5 triangle, got %v", d)
	}
}

func TestGeodeticDistanceZeroForSamePoint(t *testing.T) {
	p := Point{X: 10, Y: 20, Geodetic: true}
	if d := GeodeticDistance(p, p); d != 0 {
		t.Fatalf("expected zero distance between a point and itself, got %v", d)
	}
}

func TestDistanceDispatchesOnGeodeticFlag(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 3, Y: 4}
	if Distance(a, b) != EuclideanDistance(a, b) {
		t.Fatalf("expected planar points to use EuclideanDistance")
	}
	ga := Point{X: 0, Y: 0, Geodetic: true}
	gb := Point{X: 1, Y: 1, Geodetic: true}
	if Distance(ga, gb) != GeodeticDistance(ga, gb) {
		t.Fatalf("expected geodetic points to use GeodeticDistance")
	}
}
