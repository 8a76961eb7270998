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

package tagg

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v2"

	"github.com/temporalith/tengine/period"
	"github.com/temporalith/tengine/temporal"
)

// goldenSeq is one held-value row of a golden fixture: a constant
// value over a half-open [lower, upper) span. Bounds are RFC3339
// strings, parsed through period.Parse the way a real ingest path
// would turn wire timestamps into Timestamps (rather than hand-rolled
// integer offsets), and re-formatted the same way on the way out.
type goldenSeq struct {
	Value float64 `yaml:"value"`
	Lower string  `yaml:"lower"`
	Upper string  `yaml:"upper"`
}

type goldenScenario struct {
	Initial  []goldenSeq `yaml:"initial"`
	Incoming []goldenSeq `yaml:"incoming"`
	Expected []goldenSeq `yaml:"expected"`
}

func (g goldenSeq) toSequence(t *testing.T) *temporal.Sequence[float64] {
	t.Helper()
	lower, ok := period.Parse(g.Lower)
	if !ok {
		t.Fatalf("period.Parse(%q): not a recognized timestamp", g.Lower)
	}
	upper, ok := period.Parse(g.Upper)
	if !ok {
		t.Fatalf("period.Parse(%q): not a recognized timestamp", g.Upper)
	}
	return stepInstant(t, g.Value, int64(lower), int64(upper))
}

func toGolden(s *temporal.Sequence[float64]) goldenSeq {
	lower := s.TimeSpan().Lower.Time().Time().UTC().Format(time.RFC3339)
	upper := s.TimeSpan().Upper.Time().Time().UTC().Format(time.RFC3339)
	return goldenSeq{Value: s.At(0).V, Lower: lower, Upper: upper}
}

// TestGoldenSpliceScenario loads a tsum splice fixture from YAML (the
// same fixture format spec.md §3's test tooling calls for) and checks
// the combiner's output against the expected rows with go-cmp.
func TestGoldenSpliceScenario(t *testing.T) {
	raw, err := os.ReadFile("testdata/golden_splice.yaml")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var scenario goldenScenario
	if err := yaml.Unmarshal(raw, &scenario); err != nil {
		t.Fatalf("yaml.Unmarshal: %v", err)
	}

	removed := make([]*temporal.Sequence[float64], len(scenario.Initial))
	for i, g := range scenario.Initial {
		removed[i] = g.toSequence(t)
	}
	incoming := make([]*temporal.Sequence[float64], len(scenario.Incoming))
	for i, g := range scenario.Incoming {
		incoming[i] = g.toSequence(t)
	}

	got, err := Sum[float64]()(context.Background(), removed, incoming)
	if err != nil {
		t.Fatalf("Sum combiner: %v", err)
	}

	gotGolden := make([]goldenSeq, len(got))
	for i, s := range got {
		gotGolden[i] = toGolden(s)
	}
	if diff := cmp.Diff(scenario.Expected, gotGolden); diff != "" {
		t.Fatalf("golden splice scenario mismatch (-want +got):\n%s", diff)
	}
}
