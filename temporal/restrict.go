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

// Package temporal's restrict.go implements the "restrict to / minus"
// family from spec.md §4.3: against a value, a value-set, a range, a
// range-set, a timestamp, a timestamp-set, a period, or a period-set.
// Range and its set/value-set siblings are defined in range.go.
package temporal

import (
	"github.com/temporalith/tengine/period"
)

// ---- Instant ----

// AtTimestamp restricts in to t, returning in itself if its timestamp
// equals t.
func (in *Instant[V]) AtTimestamp(t period.Timestamp) (*Instant[V], bool) {
	if in.T == t {
		return in, true
	}
	return nil, false
}

// MinusTimestamp is the complement of AtTimestamp.
func (in *Instant[V]) MinusTimestamp(t period.Timestamp) (*Instant[V], bool) {
	if in.T != t {
		return in, true
	}
	return nil, false
}

// AtPeriod restricts in to p.
func (in *Instant[V]) AtPeriod(p period.Period) (*Instant[V], bool) {
	if p.ContainsTimestamp(in.T) {
		return in, true
	}
	return nil, false
}

// MinusPeriod is the complement of AtPeriod.
func (in *Instant[V]) MinusPeriod(p period.Period) (*Instant[V], bool) {
	if !p.ContainsTimestamp(in.T) {
		return in, true
	}
	return nil, false
}

// AtValue restricts in to v.
func (in *Instant[V]) AtValue(v V) (*Instant[V], bool) {
	if Equal(in.V, v) {
		return in, true
	}
	return nil, false
}

// MinusValue is the complement of AtValue.
func (in *Instant[V]) MinusValue(v V) (*Instant[V], bool) {
	if !Equal(in.V, v) {
		return in, true
	}
	return nil, false
}

// AtRange restricts in to r. Non-numeric bases never satisfy a range,
// since Range is restricted to int64/float64 (spec.md §4.3).
func (in *Instant[V]) AtRange(r Range[V]) (*Instant[V], bool) {
	if r.Contains(in.V) {
		return in, true
	}
	return nil, false
}

// MinusRange is the complement of AtRange.
func (in *Instant[V]) MinusRange(r Range[V]) (*Instant[V], bool) {
	if !r.Contains(in.V) {
		return in, true
	}
	return nil, false
}

// AtRangeSet restricts in to rs.
func (in *Instant[V]) AtRangeSet(rs RangeSet[V]) (*Instant[V], bool) {
	if rs.Contains(in.V) {
		return in, true
	}
	return nil, false
}

// MinusRangeSet is the complement of AtRangeSet.
func (in *Instant[V]) MinusRangeSet(rs RangeSet[V]) (*Instant[V], bool) {
	if !rs.Contains(in.V) {
		return in, true
	}
	return nil, false
}

// AtValueSet restricts in to vs.
func (in *Instant[V]) AtValueSet(vs ValueSet[V]) (*Instant[V], bool) {
	if vs.Contains(in.V) {
		return in, true
	}
	return nil, false
}

// MinusValueSet is the complement of AtValueSet.
func (in *Instant[V]) MinusValueSet(vs ValueSet[V]) (*Instant[V], bool) {
	if !vs.Contains(in.V) {
		return in, true
	}
	return nil, false
}

// ---- InstantSet ----

// AtTimestampSet restricts is to the members of ts.
func (is *InstantSet[V]) AtTimestampSet(ts period.TimestampSet) (*InstantSet[V], bool) {
	var out []Instant[V]
	for _, in := range is.instants {
		if ts.Contains(in.T) {
			out = append(out, in)
		}
	}
	return instantSetOrNil(out)
}

// MinusTimestampSet is the complement of AtTimestampSet.
func (is *InstantSet[V]) MinusTimestampSet(ts period.TimestampSet) (*InstantSet[V], bool) {
	var out []Instant[V]
	for _, in := range is.instants {
		if !ts.Contains(in.T) {
			out = append(out, in)
		}
	}
	return instantSetOrNil(out)
}

// AtPeriodSet restricts is to the members falling within ps.
func (is *InstantSet[V]) AtPeriodSet(ps period.PeriodSet) (*InstantSet[V], bool) {
	var out []Instant[V]
	for _, in := range is.instants {
		if ps.Contains(in.T) {
			out = append(out, in)
		}
	}
	return instantSetOrNil(out)
}

// MinusPeriodSet is the complement of AtPeriodSet.
func (is *InstantSet[V]) MinusPeriodSet(ps period.PeriodSet) (*InstantSet[V], bool) {
	var out []Instant[V]
	for _, in := range is.instants {
		if !ps.Contains(in.T) {
			out = append(out, in)
		}
	}
	return instantSetOrNil(out)
}

// AtValue restricts is to the members equal to v.
func (is *InstantSet[V]) AtValue(v V) (*InstantSet[V], bool) {
	var out []Instant[V]
	for _, in := range is.instants {
		if Equal(in.V, v) {
			out = append(out, in)
		}
	}
	return instantSetOrNil(out)
}

// MinusValue is the complement of AtValue.
func (is *InstantSet[V]) MinusValue(v V) (*InstantSet[V], bool) {
	var out []Instant[V]
	for _, in := range is.instants {
		if !Equal(in.V, v) {
			out = append(out, in)
		}
	}
	return instantSetOrNil(out)
}

// AtRange restricts is to the members falling within r.
func (is *InstantSet[V]) AtRange(r Range[V]) (*InstantSet[V], bool) {
	var out []Instant[V]
	for _, in := range is.instants {
		if r.Contains(in.V) {
			out = append(out, in)
		}
	}
	return instantSetOrNil(out)
}

// MinusRange is the complement of AtRange.
func (is *InstantSet[V]) MinusRange(r Range[V]) (*InstantSet[V], bool) {
	var out []Instant[V]
	for _, in := range is.instants {
		if !r.Contains(in.V) {
			out = append(out, in)
		}
	}
	return instantSetOrNil(out)
}

// AtRangeSet restricts is to the members falling within rs.
func (is *InstantSet[V]) AtRangeSet(rs RangeSet[V]) (*InstantSet[V], bool) {
	var out []Instant[V]
	for _, in := range is.instants {
		if rs.Contains(in.V) {
			out = append(out, in)
		}
	}
	return instantSetOrNil(out)
}

// MinusRangeSet is the complement of AtRangeSet.
func (is *InstantSet[V]) MinusRangeSet(rs RangeSet[V]) (*InstantSet[V], bool) {
	var out []Instant[V]
	for _, in := range is.instants {
		if !rs.Contains(in.V) {
			out = append(out, in)
		}
	}
	return instantSetOrNil(out)
}

// AtValueSet restricts is to the members present in vs.
func (is *InstantSet[V]) AtValueSet(vs ValueSet[V]) (*InstantSet[V], bool) {
	var out []Instant[V]
	for _, in := range is.instants {
		if vs.Contains(in.V) {
			out = append(out, in)
		}
	}
	return instantSetOrNil(out)
}

// MinusValueSet is the complement of AtValueSet.
func (is *InstantSet[V]) MinusValueSet(vs ValueSet[V]) (*InstantSet[V], bool) {
	var out []Instant[V]
	for _, in := range is.instants {
		if !vs.Contains(in.V) {
			out = append(out, in)
		}
	}
	return instantSetOrNil(out)
}

func instantSetOrNil[V Base](in []Instant[V]) (*InstantSet[V], bool) {
	if len(in) == 0 {
		return nil, false
	}
	is, _ := InstantSetMake(in, false)
	return is, true
}

// ---- Sequence ----

// AtPeriod restricts s to its intersection with p, re-interpolating
// the cropped endpoints if they fall strictly inside a segment.
func (s *Sequence[V]) AtPeriod(p period.Period) (*Sequence[V], bool) {
	isect, ok := s.span.Intersection(p)
	if !ok {
		return nil, false
	}
	return s.crop(isect)
}

// MinusPeriod returns the portion(s) of s outside p. The result may
// span zero, one, or two sub-sequences, so it is returned as a
// SequenceSet.
func (s *Sequence[V]) MinusPeriod(p period.Period) (*SequenceSet[V], bool) {
	ps := s.span.AsPeriodSet()
	qs := p.AsPeriodSet()
	diff, ok := ps.Minus(qs)
	if !ok {
		return nil, false
	}
	var out []*Sequence[V]
	for i := 0; i < diff.Len(); i++ {
		if cropped, ok := s.crop(diff.At(i)); ok {
			out = append(out, cropped)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	res, _ := SequenceSetMake(out, false)
	return res, true
}

// crop returns the portion of s within p, synthesizing interpolated
// boundary instants as needed.
func (s *Sequence[V]) crop(p period.Period) (*Sequence[V], bool) {
	var out []Instant[V]
	for _, in := range s.instants {
		if p.ContainsTimestamp(in.T) {
			out = append(out, in)
		}
	}
	// synthesize the lower boundary instant if p starts strictly
	// inside a segment
	if (len(out) == 0 || out[0].T != p.Lower) && s.span.ContainsTimestamp(p.Lower) {
		if v, ok := s.ValueAtInclusive(p.Lower); ok {
			out = append([]Instant[V]{{V: v, T: p.Lower}}, out...)
		}
	}
	if (len(out) == 0 || out[len(out)-1].T != p.Upper) && s.span.ContainsTimestamp(p.Upper) {
		if v, ok := s.ValueAtInclusive(p.Upper); ok {
			out = append(out, Instant[V]{V: v, T: p.Upper})
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	seq, err := SequenceMake(out, p.LowerInc, p.UpperInc, s.interp, false)
	if err != nil {
		return nil, false
	}
	return seq, true
}

// AtPeriodSet restricts s to its intersection with ps.
func (s *Sequence[V]) AtPeriodSet(ps period.PeriodSet) (*SequenceSet[V], bool) {
	var out []*Sequence[V]
	for i := 0; i < ps.Len(); i++ {
		if isect, ok := s.span.Intersection(ps.At(i)); ok {
			if cropped, ok := s.crop(isect); ok {
				out = append(out, cropped)
			}
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	res, _ := SequenceSetMake(out, false)
	return res, true
}

// MinusPeriodSet is the complement of AtPeriodSet.
func (s *Sequence[V]) MinusPeriodSet(ps period.PeriodSet) (*SequenceSet[V], bool) {
	diff, ok := s.span.AsPeriodSet().Minus(ps)
	if !ok {
		return nil, false
	}
	var out []*Sequence[V]
	for i := 0; i < diff.Len(); i++ {
		if cropped, ok := s.crop(diff.At(i)); ok {
			out = append(out, cropped)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	res, _ := SequenceSetMake(out, false)
	return res, true
}

// AtTimestamp restricts s to the single instant at t, if t is within
// s's declared domain (honoring exclusive bounds; see ValueAt).
func (s *Sequence[V]) AtTimestamp(t period.Timestamp) (*Instant[V], bool) {
	v, ok := s.ValueAt(t)
	if !ok {
		return nil, false
	}
	return &Instant[V]{V: v, T: t}, true
}

// MinusTimestamp removes t from s, if present.
func (s *Sequence[V]) MinusTimestamp(t period.Timestamp) (*SequenceSet[V], bool) {
	if _, ok := s.ValueAt(t); !ok {
		res, _ := SequenceSetMake([]*Sequence[V]{s}, false)
		return res, true
	}
	ts, _ := period.TimestampSetMake([]period.Timestamp{t}, false)
	return s.MinusTimestampSet(ts)
}

// AtTimestampSet restricts s to the instants of ts that fall within
// its domain.
func (s *Sequence[V]) AtTimestampSet(ts period.TimestampSet) (*InstantSet[V], bool) {
	var out []Instant[V]
	for i := 0; i < ts.Len(); i++ {
		if v, ok := s.ValueAt(ts.At(i)); ok {
			out = append(out, Instant[V]{V: v, T: ts.At(i)})
		}
	}
	return instantSetOrNil(out)
}

// MinusTimestampSet removes every timestamp of ts from s.
func (s *Sequence[V]) MinusTimestampSet(ts period.TimestampSet) (*SequenceSet[V], bool) {
	// Build the period-set complement of ts restricted to s's own span,
	// then crop s to each remaining piece.
	var gaps []period.Period
	prevExclusiveStart := s.span.Lower
	prevInc := s.span.LowerInc
	for i := 0; i < ts.Len(); i++ {
		t := ts.At(i)
		if !s.span.ContainsTimestamp(t) {
			continue
		}
		if t > prevExclusiveStart || (t == prevExclusiveStart && !prevInc) {
			if p, err := period.Make(prevExclusiveStart, t, prevInc, false); err == nil {
				gaps = append(gaps, p)
			}
		}
		prevExclusiveStart = t
		prevInc = false
	}
	if prevExclusiveStart < s.span.Upper || (prevExclusiveStart == s.span.Upper && prevInc && s.span.UpperInc) {
		if p, err := period.Make(prevExclusiveStart, s.span.Upper, prevInc, s.span.UpperInc); err == nil {
			gaps = append(gaps, p)
		}
	}
	var out []*Sequence[V]
	for _, g := range gaps {
		if cropped, ok := s.crop(g); ok {
			out = append(out, cropped)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	res, _ := SequenceSetMake(out, false)
	return res, true
}

// AtValue restricts s to the points where it equals v: for a Linear
// numeric segment this solves segment(t) = v analytically and emits a
// degenerate [t,t] singleton sequence at each crossing (spec.md §4.3);
// for a Stepwise segment (or any non-numeric base, which can only use
// Stepwise) a held segment equal to v is emitted as a whole, still
// cropped to s's own bounds.
func (s *Sequence[V]) AtValue(v V) (*SequenceSet[V], bool) {
	var out []*Sequence[V]
	numeric := KindOf[V]() == KindInt || KindOf[V]() == KindFloat
	for i := 0; i < s.NumSegments(); i++ {
		a, b := s.Segment(i)
		if s.interp == Stepwise {
			if Equal(a.V, v) {
				// the held value ends just before b.T, where b's own value
				// starts; a final instant equal to v is added below
				if p, err := period.Make(a.T, b.T, true, false); err == nil {
					if seg, ok := s.crop(p); ok {
						out = append(out, seg)
					}
				}
			}
			continue
		}
		if !numeric {
			continue
		}
		av, bv, target := AsFloat64(a.V), AsFloat64(b.V), AsFloat64(v)
		if av == bv {
			if av == target {
				if p, err := period.Make(a.T, b.T, true, i+1 == s.NumSegments() && s.span.UpperInc); err == nil {
					if seg, ok := s.crop(p); ok {
						out = append(out, seg)
					}
				}
			}
			continue
		}
		lo, hi := av, bv
		if lo > hi {
			lo, hi = hi, lo
		}
		if target < lo || target > hi {
			continue
		}
		alpha := (target - av) / (bv - av)
		t := a.T + period.Timestamp(alpha*float64(b.T-a.T))
		if in, ok := s.AtTimestamp(t); ok && Equal(in.V, v) {
			if seq, err := SequenceMake([]Instant[V]{*in}, true, true, Linear, false); err == nil {
				out = append(out, seq)
			}
		}
	}
	// the final instant itself, if s's period includes its own upper
	// bound and it equals v (non-Stepwise segments above only emit a
	// crossing strictly between bracketing instants)
	if last := s.instants[len(s.instants)-1]; s.span.UpperInc && Equal(last.V, v) {
		if seq, err := SequenceMake([]Instant[V]{last}, true, true, Linear, false); err == nil {
			out = append(out, seq)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	res, _ := SequenceSetMake(out, true)
	return res, true
}

// MinusValue is the complement of AtValue.
func (s *Sequence[V]) MinusValue(v V) (*SequenceSet[V], bool) {
	at, ok := s.AtValue(v)
	if !ok {
		res, _ := SequenceSetMake([]*Sequence[V]{s}, false)
		return res, true
	}
	periods := make([]period.Period, at.NumSequences())
	for i := 0; i < at.NumSequences(); i++ {
		periods[i] = at.Sequence(i).span
	}
	ps, err := period.PeriodSetMake(periods, period.NormalizeYes)
	if err != nil {
		return nil, false
	}
	return s.MinusPeriodSet(ps)
}

// alphaWindowForLinearRange finds the sub-window of a Linear segment's
// own [0,1] alpha-parameterization (value(alpha) = av + alpha*(bv-av))
// over which value(alpha) satisfies r's [rl,ru] bounds, honoring r's
// own per-endpoint inclusivity. ok=false if the segment never enters
// r. Mirrors AtValue's per-segment crossing solve (restrict.go above),
// generalized from a single crossing point to a crossing interval.
func alphaWindowForLinearRange(av, bv, rl, ru float64, rlInc, ruInc bool) (lo, hi float64, loInc, hiInc bool, ok bool) {
	d := bv - av
	a1, a2 := (rl-av)/d, (ru-av)/d
	inc1, inc2 := rlInc, ruInc
	if d < 0 {
		a1, a2 = a2, a1
		inc1, inc2 = inc2, inc1
	}
	lo, hi, loInc, hiInc = a1, a2, inc1, inc2
	if lo < 0 {
		lo, loInc = 0, true
	}
	if hi > 1 {
		hi, hiInc = 1, true
	}
	if lo > hi || (lo == hi && !(loInc && hiInc)) {
		return 0, 0, false, false, false
	}
	return lo, hi, loInc, hiInc, true
}

// AtRange restricts s to the points where its value falls within r: for
// a Linear numeric segment this solves the crossing interval
// analytically via alphaWindowForLinearRange, the same way AtValue
// solves the singleton crossing; for a Stepwise segment (or a constant
// Linear one) the held value is tested directly against r and, if it
// qualifies, the whole segment is emitted, cropped to s's own bounds.
// Non-numeric bases never match, since Range is numeric-only.
func (s *Sequence[V]) AtRange(r Range[V]) (*SequenceSet[V], bool) {
	k := KindOf[V]()
	if k != KindInt && k != KindFloat {
		return nil, false
	}
	var out []*Sequence[V]
	rl, ru := AsFloat64(r.Lower), AsFloat64(r.Upper)
	for i := 0; i < s.NumSegments(); i++ {
		a, b := s.Segment(i)
		upperInc := i+1 == s.NumSegments() && s.span.UpperInc
		av, bv := AsFloat64(a.V), AsFloat64(b.V)
		if s.interp == Stepwise || av == bv {
			if r.Contains(a.V) {
				if p, err := period.Make(a.T, b.T, true, upperInc); err == nil {
					if seg, ok := s.crop(p); ok {
						out = append(out, seg)
					}
				}
			}
			continue
		}
		lo, hi, loInc, hiInc, ok := alphaWindowForLinearRange(av, bv, rl, ru, r.LowerInc, r.UpperInc)
		if !ok {
			continue
		}
		if hi == 1 {
			hiInc = hiInc && upperInc
		}
		tLo := a.T + period.Timestamp(lo*float64(b.T-a.T))
		tHi := a.T + period.Timestamp(hi*float64(b.T-a.T))
		if p, err := period.Make(tLo, tHi, loInc, hiInc); err == nil {
			if seg, ok := s.crop(p); ok {
				out = append(out, seg)
			}
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	res, _ := SequenceSetMake(out, true)
	return res, true
}

// MinusRange is the complement of AtRange.
func (s *Sequence[V]) MinusRange(r Range[V]) (*SequenceSet[V], bool) {
	at, ok := s.AtRange(r)
	if !ok {
		res, _ := SequenceSetMake([]*Sequence[V]{s}, false)
		return res, true
	}
	periods := make([]period.Period, at.NumSequences())
	for i := 0; i < at.NumSequences(); i++ {
		periods[i] = at.Sequence(i).span
	}
	ps, err := period.PeriodSetMake(periods, period.NormalizeYes)
	if err != nil {
		return nil, false
	}
	return s.MinusPeriodSet(ps)
}

// AtRangeSet restricts s to the points falling within any range of rs.
func (s *Sequence[V]) AtRangeSet(rs RangeSet[V]) (*SequenceSet[V], bool) {
	var out []*Sequence[V]
	for i := 0; i < rs.Len(); i++ {
		if r, ok := s.AtRange(rs.At(i)); ok {
			out = append(out, r.seqs...)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	res, _ := SequenceSetMake(out, true)
	return res, true
}

// MinusRangeSet is the complement of AtRangeSet.
func (s *Sequence[V]) MinusRangeSet(rs RangeSet[V]) (*SequenceSet[V], bool) {
	at, ok := s.AtRangeSet(rs)
	if !ok {
		res, _ := SequenceSetMake([]*Sequence[V]{s}, false)
		return res, true
	}
	periods := make([]period.Period, at.NumSequences())
	for i := 0; i < at.NumSequences(); i++ {
		periods[i] = at.Sequence(i).span
	}
	ps, err := period.PeriodSetMake(periods, period.NormalizeYes)
	if err != nil {
		return nil, false
	}
	return s.MinusPeriodSet(ps)
}

// AtValueSet restricts s to the points equal to any member of vs.
func (s *Sequence[V]) AtValueSet(vs ValueSet[V]) (*SequenceSet[V], bool) {
	var out []*Sequence[V]
	for i := 0; i < vs.Len(); i++ {
		if r, ok := s.AtValue(vs.At(i)); ok {
			out = append(out, r.seqs...)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	res, _ := SequenceSetMake(out, true)
	return res, true
}

// MinusValueSet is the complement of AtValueSet.
func (s *Sequence[V]) MinusValueSet(vs ValueSet[V]) (*SequenceSet[V], bool) {
	at, ok := s.AtValueSet(vs)
	if !ok {
		res, _ := SequenceSetMake([]*Sequence[V]{s}, false)
		return res, true
	}
	periods := make([]period.Period, at.NumSequences())
	for i := 0; i < at.NumSequences(); i++ {
		periods[i] = at.Sequence(i).span
	}
	ps, err := period.PeriodSetMake(periods, period.NormalizeYes)
	if err != nil {
		return nil, false
	}
	return s.MinusPeriodSet(ps)
}

// ---- SequenceSet ----

// AtPeriod restricts ss to its intersection with p.
func (ss *SequenceSet[V]) AtPeriod(p period.Period) (*SequenceSet[V], bool) {
	var out []*Sequence[V]
	for _, s := range ss.seqs {
		if cropped, ok := s.AtPeriod(p); ok {
			out = append(out, cropped)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	res, _ := SequenceSetMake(out, false)
	return res, true
}

// MinusPeriod is the complement of AtPeriod.
func (ss *SequenceSet[V]) MinusPeriod(p period.Period) (*SequenceSet[V], bool) {
	var out []*Sequence[V]
	for _, s := range ss.seqs {
		if rest, ok := s.MinusPeriod(p); ok {
			out = append(out, rest.seqs...)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	res, _ := SequenceSetMake(out, false)
	return res, true
}

// AtPeriodSet restricts ss to its intersection with ps.
func (ss *SequenceSet[V]) AtPeriodSet(ps period.PeriodSet) (*SequenceSet[V], bool) {
	var out []*Sequence[V]
	for _, s := range ss.seqs {
		if cropped, ok := s.AtPeriodSet(ps); ok {
			out = append(out, cropped.seqs...)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	res, _ := SequenceSetMake(out, false)
	return res, true
}

// MinusPeriodSet is the complement of AtPeriodSet.
func (ss *SequenceSet[V]) MinusPeriodSet(ps period.PeriodSet) (*SequenceSet[V], bool) {
	var out []*Sequence[V]
	for _, s := range ss.seqs {
		if rest, ok := s.MinusPeriodSet(ps); ok {
			out = append(out, rest.seqs...)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	res, _ := SequenceSetMake(out, false)
	return res, true
}

// AtTimestamp restricts ss to the instant at t.
func (ss *SequenceSet[V]) AtTimestamp(t period.Timestamp) (*Instant[V], bool) {
	v, ok := ss.ValueAt(t)
	if !ok {
		return nil, false
	}
	return &Instant[V]{V: v, T: t}, true
}

// AtTimestampSet restricts ss to the instants of ts present in its
// domain.
func (ss *SequenceSet[V]) AtTimestampSet(ts period.TimestampSet) (*InstantSet[V], bool) {
	var out []Instant[V]
	for i := 0; i < ts.Len(); i++ {
		if v, ok := ss.ValueAt(ts.At(i)); ok {
			out = append(out, Instant[V]{V: v, T: ts.At(i)})
		}
	}
	return instantSetOrNil(out)
}

// AtValue restricts ss to the sub-portions equal to v.
func (ss *SequenceSet[V]) AtValue(v V) (*SequenceSet[V], bool) {
	var out []*Sequence[V]
	for _, s := range ss.seqs {
		if r, ok := s.AtValue(v); ok {
			out = append(out, r.seqs...)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	res, _ := SequenceSetMake(out, false)
	return res, true
}

// MinusValue is the complement of AtValue.
func (ss *SequenceSet[V]) MinusValue(v V) (*SequenceSet[V], bool) {
	var out []*Sequence[V]
	for _, s := range ss.seqs {
		if r, ok := s.MinusValue(v); ok {
			out = append(out, r.seqs...)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	res, _ := SequenceSetMake(out, false)
	return res, true
}

// AtRange restricts ss to the sub-portions falling within r.
func (ss *SequenceSet[V]) AtRange(r Range[V]) (*SequenceSet[V], bool) {
	var out []*Sequence[V]
	for _, s := range ss.seqs {
		if res, ok := s.AtRange(r); ok {
			out = append(out, res.seqs...)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	res, _ := SequenceSetMake(out, false)
	return res, true
}

// MinusRange is the complement of AtRange.
func (ss *SequenceSet[V]) MinusRange(r Range[V]) (*SequenceSet[V], bool) {
	var out []*Sequence[V]
	for _, s := range ss.seqs {
		if res, ok := s.MinusRange(r); ok {
			out = append(out, res.seqs...)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	res, _ := SequenceSetMake(out, false)
	return res, true
}

// AtRangeSet restricts ss to the sub-portions falling within any
// range of rs.
func (ss *SequenceSet[V]) AtRangeSet(rs RangeSet[V]) (*SequenceSet[V], bool) {
	var out []*Sequence[V]
	for _, s := range ss.seqs {
		if res, ok := s.AtRangeSet(rs); ok {
			out = append(out, res.seqs...)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	res, _ := SequenceSetMake(out, false)
	return res, true
}

// MinusRangeSet is the complement of AtRangeSet.
func (ss *SequenceSet[V]) MinusRangeSet(rs RangeSet[V]) (*SequenceSet[V], bool) {
	var out []*Sequence[V]
	for _, s := range ss.seqs {
		if res, ok := s.MinusRangeSet(rs); ok {
			out = append(out, res.seqs...)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	res, _ := SequenceSetMake(out, false)
	return res, true
}

// AtValueSet restricts ss to the sub-portions equal to any member of
// vs.
func (ss *SequenceSet[V]) AtValueSet(vs ValueSet[V]) (*SequenceSet[V], bool) {
	var out []*Sequence[V]
	for _, s := range ss.seqs {
		if res, ok := s.AtValueSet(vs); ok {
			out = append(out, res.seqs...)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	res, _ := SequenceSetMake(out, false)
	return res, true
}

// MinusValueSet is the complement of AtValueSet.
func (ss *SequenceSet[V]) MinusValueSet(vs ValueSet[V]) (*SequenceSet[V], bool) {
	var out []*Sequence[V]
	for _, s := range ss.seqs {
		if res, ok := s.MinusValueSet(vs); ok {
			out = append(out, res.seqs...)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	res, _ := SequenceSetMake(out, false)
	return res, true
}
