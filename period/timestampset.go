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

package period

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/temporalith/tengine/tserr"
)

// TimestampSet is a finite ordered sequence of distinct timestamps,
// with a cached bounding Period covering [first, last] (both bounds
// inclusive).
type TimestampSet struct {
	times []Timestamp
	bbox  Period
}

// TimestampSetMake builds a TimestampSet from times. If normalize is
// true, times are sorted and deduplicated; if false, the caller
// asserts times is already strictly increasing, and Make fails with
// InvalidArgument if that assertion does not hold.
func TimestampSetMake(times []Timestamp, normalize bool) (TimestampSet, error) {
	if len(times) == 0 {
		return TimestampSet{}, tserr.InvalidArg("timestamp set must contain at least one timestamp")
	}
	out := slices.Clone(times)
	if normalize {
		slices.SortFunc(out, Compare)
		out = slices.Compact(out)
	} else {
		for i := 1; i < len(out); i++ {
			if out[i-1] >= out[i] {
				return TimestampSet{}, tserr.InvalidArg("timestamp set is not strictly increasing at index %d", i)
			}
		}
	}
	return TimestampSet{
		times: out,
		bbox:  Period{Lower: out[0], Upper: out[len(out)-1], LowerInc: true, UpperInc: true},
	}, nil
}

// Len returns the number of timestamps in ts.
func (ts TimestampSet) Len() int { return len(ts.times) }

// At returns the i-th timestamp.
func (ts TimestampSet) At(i int) Timestamp { return ts.times[i] }

// Times returns the underlying timestamps; callers must not mutate
// the returned slice.
func (ts TimestampSet) Times() []Timestamp { return ts.times }

// Bbox returns the cached bounding period.
func (ts TimestampSet) Bbox() Period { return ts.bbox }

func (ts TimestampSet) String() string {
	return fmt.Sprintf("%v", ts.times)
}

// Search returns the index of t in ts (found=true), or the index at
// which t would be inserted to keep ts sorted (found=false). This is
// the O(log n) entry point used by every containment/restriction
// operator over TimestampSet.
func (ts TimestampSet) Search(t Timestamp) (idx int, found bool) {
	idx, found = slices.BinarySearchFunc(ts.times, t, func(a, b Timestamp) int { return Compare(a, b) })
	return
}

// Contains reports whether t is a member of ts.
func (ts TimestampSet) Contains(t Timestamp) bool {
	_, found := ts.Search(t)
	return found
}

// ContainsPeriod reports whether every timestamp in ts lies within p.
func (ts TimestampSet) ContainsPeriod(p Period) bool {
	if ts.Len() == 0 {
		return true
	}
	return p.ContainsTimestamp(ts.times[0]) && p.ContainsTimestamp(ts.times[len(ts.times)-1])
}

// Union merges two timestamp sets.
func (a TimestampSet) Union(b TimestampSet) TimestampSet {
	out := make([]Timestamp, 0, a.Len()+b.Len())
	i, j := 0, 0
	for i < a.Len() && j < b.Len() {
		switch {
		case a.times[i] < b.times[j]:
			out = append(out, a.times[i])
			i++
		case a.times[i] > b.times[j]:
			out = append(out, b.times[j])
			j++
		default:
			out = append(out, a.times[i])
			i++
			j++
		}
	}
	out = append(out, a.times[i:]...)
	out = append(out, b.times[j:]...)
	res, _ := TimestampSetMake(out, false)
	return res
}

// Intersection returns the timestamps present in both a and b. The
// result may be empty (ok=false).
func (a TimestampSet) Intersection(b TimestampSet) (TimestampSet, bool) {
	var out []Timestamp
	i, j := 0, 0
	for i < a.Len() && j < b.Len() {
		switch {
		case a.times[i] < b.times[j]:
			i++
		case a.times[i] > b.times[j]:
			j++
		default:
			out = append(out, a.times[i])
			i++
			j++
		}
	}
	if len(out) == 0 {
		return TimestampSet{}, false
	}
	res, _ := TimestampSetMake(out, false)
	return res, true
}

// Minus returns the timestamps of a not present in b. The result may
// be empty (ok=false).
func (a TimestampSet) Minus(b TimestampSet) (TimestampSet, bool) {
	var out []Timestamp
	i, j := 0, 0
	for i < a.Len() {
		if j < b.Len() && a.times[i] == b.times[j] {
			i++
			j++
			continue
		}
		if j < b.Len() && a.times[i] > b.times[j] {
			j++
			continue
		}
		out = append(out, a.times[i])
		i++
	}
	if len(out) == 0 {
		return TimestampSet{}, false
	}
	res, _ := TimestampSetMake(out, false)
	return res, true
}
