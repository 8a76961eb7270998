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

// Package period implements the time-set algebra: Timestamp, Period
// (a bounded interval with per-endpoint inclusivity), TimestampSet,
// and PeriodSet, plus the 4x4 predicate/operator matrix across them.
package period

import (
	"time"

	"github.com/temporalith/tengine/date"
)

// Timestamp is a monotone integer instant with microsecond
// resolution, comparable and subtractable.
type Timestamp int64

// PostgresEpochMicros is the fixed offset (in microseconds) between
// this engine's internal epoch (Unix epoch) and the epoch historically
// used by trajectory-M coordinates (2000-01-01 UTC). It is recorded
// once here and never varies at runtime.
const PostgresEpochMicros int64 = 946684800000000

// FromTime converts a date.Time into a Timestamp.
func FromTime(t date.Time) Timestamp {
	return Timestamp(t.UnixMicro())
}

// Time converts a Timestamp back into a date.Time.
func (t Timestamp) Time() date.Time {
	return date.UnixMicro(int64(t))
}

// Parse parses an RFC3339-ish timestamp using date.Parse.
func Parse(s string) (Timestamp, bool) {
	t, ok := date.Parse([]byte(s))
	if !ok {
		return 0, false
	}
	return FromTime(t), true
}

// Before reports whether t is strictly before u.
func (t Timestamp) Before(u Timestamp) bool { return t < u }

// After reports whether t is strictly after u.
func (t Timestamp) After(u Timestamp) bool { return t > u }

// Sub returns the duration between two timestamps.
func (t Timestamp) Sub(u Timestamp) time.Duration {
	return time.Duration(int64(t)-int64(u)) * time.Microsecond
}

// Add shifts t by d, rounding d down to microsecond resolution.
func (t Timestamp) Add(d time.Duration) Timestamp {
	return t + Timestamp(d/time.Microsecond)
}

func (t Timestamp) String() string {
	return t.Time().String()
}

// Compare implements a three-way comparison, for use with
// golang.org/x/exp/slices sort/search helpers.
func Compare(a, b Timestamp) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
