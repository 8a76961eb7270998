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
	"github.com/temporalith/tengine/tserr"
)

// SequenceSet is an ordered array of Sequences whose periods are
// pairwise disjoint and not mergeable (no two are adjacent with
// matching interpolation and matching boundary value).
type SequenceSet[V Base] struct {
	seqs []*Sequence[V]
}

// SequenceSetMake builds a SequenceSet from sequences. normalize
// sorts by period and merges adjacent sequences that touch with
// matching inclusivity and an equal boundary value under the same
// interpolation mode (spec.md §3's SequenceSet invariant); without
// normalize, the caller asserts the sequences are already disjoint,
// ordered, and non-mergeable.
func SequenceSetMake[V Base](seqs []*Sequence[V], normalize bool) (*SequenceSet[V], error) {
	if len(seqs) == 0 {
		return nil, tserr.InvalidArg("sequence set must contain at least one sequence")
	}
	out := make([]*Sequence[V], len(seqs))
	copy(out, seqs)
	sortSequences(out)
	if normalize {
		out = mergeAdjacentSequences(out)
	}
	for i := 1; i < len(out); i++ {
		if out[i-1].span.Overlaps(out[i].span) {
			return nil, tserr.InvalidArg("sequence set periods overlap at index %d", i)
		}
	}
	return &SequenceSet[V]{seqs: out}, nil
}

func sortSequences[V Base](seqs []*Sequence[V]) {
	for i := 1; i < len(seqs); i++ {
		for j := i; j > 0 && period.ComparePeriod(seqs[j-1].span, seqs[j].span) > 0; j-- {
			seqs[j-1], seqs[j] = seqs[j], seqs[j-1]
		}
	}
}

func mergeAdjacentSequences[V Base](seqs []*Sequence[V]) []*Sequence[V] {
	out := seqs[:1:1]
	for i := 1; i < len(seqs); i++ {
		prev := out[len(out)-1]
		cur := seqs[i]
		if prev.span.Adjacent(cur.span) && prev.interp == cur.interp &&
			Equal(prev.instants[len(prev.instants)-1].V, cur.instants[0].V) {
			merged := append(append([]Instant[V]{}, prev.instants...), cur.instants[1:]...)
			span, _ := period.Make(prev.span.Lower, cur.span.Upper, prev.span.LowerInc, cur.span.UpperInc)
			out[len(out)-1] = &Sequence[V]{instants: merged, span: span, interp: prev.interp}
			continue
		}
		out = append(out, cur)
	}
	return out
}

func (ss *SequenceSet[V]) Subtype() Subtype  { return SubtypeSequenceSet }
func (ss *SequenceSet[V]) BaseKind() BaseKind { return KindOf[V]() }
func (ss *SequenceSet[V]) StartTimestamp() period.Timestamp {
	return ss.seqs[0].StartTimestamp()
}
func (ss *SequenceSet[V]) EndTimestamp() period.Timestamp {
	return ss.seqs[len(ss.seqs)-1].EndTimestamp()
}
func (ss *SequenceSet[V]) NumInstants() int {
	n := 0
	for _, s := range ss.seqs {
		n += s.NumInstants()
	}
	return n
}

func (ss *SequenceSet[V]) TimeSpan() period.Period {
	first, last := ss.seqs[0].span, ss.seqs[len(ss.seqs)-1].span
	return period.Period{
		Lower: first.Lower, Upper: last.Upper,
		LowerInc: first.LowerInc, UpperInc: last.UpperInc,
	}
}

// NumSequences returns the number of inner sequences.
func (ss *SequenceSet[V]) NumSequences() int { return len(ss.seqs) }

// Sequence returns the i-th inner sequence.
func (ss *SequenceSet[V]) Sequence(i int) *Sequence[V] { return ss.seqs[i] }

// Sequences returns the underlying sequences; callers must not mutate
// the returned slice or its elements.
func (ss *SequenceSet[V]) Sequences() []*Sequence[V] { return ss.seqs }

func (ss *SequenceSet[V]) Box() tbox.Box {
	b := ss.seqs[0].Box()
	for i := 1; i < len(ss.seqs); i++ {
		b = mergeBoxes(b, ss.seqs[i].Box())
	}
	return b
}

func mergeBoxes(a, b tbox.Box) tbox.Box {
	switch av := a.(type) {
	case tbox.Numeric:
		bv := b.(tbox.Numeric)
		av.Expand(bv.Min, bv.T.Lower)
		av.Expand(bv.Max, bv.T.Upper)
		return av
	case tbox.Spatial:
		bv := b.(tbox.Spatial)
		av.Expand(bv.MinX, bv.MinY, bv.MinZ, bv.HasZ, bv.T.Lower)
		av.Expand(bv.MaxX, bv.MaxY, bv.MaxZ, bv.HasZ, bv.T.Upper)
		return av
	case tbox.Period:
		bv := b.(tbox.Period)
		p, _ := av.T.Union(bv.T)
		return tbox.Period{T: p}
	default:
		return a
	}
}

// ValueAt returns the value at timestamp t, if some member sequence's
// period contains it.
func (ss *SequenceSet[V]) ValueAt(t period.Timestamp) (V, bool) {
	lo, hi := 0, len(ss.seqs)
	for lo < hi {
		mid := (lo + hi) / 2
		if sp := ss.seqs[mid].span; sp.Upper < t || (sp.Upper == t && !sp.UpperInc) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(ss.seqs) {
		return ss.seqs[lo].ValueAt(t)
	}
	var zero V
	return zero, false
}
