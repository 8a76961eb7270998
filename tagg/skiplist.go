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

// Package tagg implements the aggregation skiplist (spec.md §4.5): an
// ordered, array-backed skiplist keyed by the bounding period of each
// stored Sequence, with a generic splice operation that recomputes an
// overlapping region through a caller-supplied combiner.
package tagg

import (
	"context"
	"math/bits"

	"github.com/dchest/siphash"
	"github.com/google/uuid"

	"github.com/temporalith/tengine/ints"
	"github.com/temporalith/tengine/period"
	"github.com/temporalith/tengine/temporal"
	"github.com/temporalith/tengine/tserr"
)

// MaxHeight is the fixed maximum skiplist height H.
const MaxHeight = 24

const (
	headIdx int32 = 0
	tailIdx int32 = 1
	nilIdx  int32 = -1
)

type node[V temporal.Base] struct {
	value  *temporal.Sequence[V]
	bbox   period.Period
	height int
	next   []int32
	inUse  bool
}

// Skiplist is the per-aggregation-context ordered structure described
// in spec.md §4.5. It is not safe for concurrent use; the caller owns
// exclusive access to one Skiplist per aggregation (spec.md §5).
type Skiplist[V temporal.Base] struct {
	nodes    []node[V]
	free     []int32
	maxLevel int
	count    int
	k0, k1   uint64
	counter  uint64
	ctxID    uuid.UUID
}

// ContextID returns the skiplist's identifier, drawn by newEmpty; its
// bytes also key the siphash height draws. Serialize does not write
// it, so a deserialized skiplist gets a new one.
func (s *Skiplist[V]) ContextID() uuid.UUID { return s.ctxID }

// Count returns the number of Sequences currently stored.
func (s *Skiplist[V]) Count() int { return s.count }

func newEmpty[V temporal.Base]() *Skiplist[V] {
	id := uuid.New()
	k0 := uint64(id[0])<<56 | uint64(id[1])<<48 | uint64(id[2])<<40 | uint64(id[3])<<32 |
		uint64(id[4])<<24 | uint64(id[5])<<16 | uint64(id[6])<<8 | uint64(id[7])
	k1 := uint64(id[8])<<56 | uint64(id[9])<<48 | uint64(id[10])<<40 | uint64(id[11])<<32 |
		uint64(id[12])<<24 | uint64(id[13])<<16 | uint64(id[14])<<8 | uint64(id[15])
	s := &Skiplist[V]{
		maxLevel: 1,
		k0:       k0, k1: k1,
		ctxID: id,
	}
	s.nodes = append(s.nodes, node[V]{height: s.maxLevel, next: newNextSlice(s.maxLevel)})
	s.nodes = append(s.nodes, node[V]{height: s.maxLevel, next: newNextSlice(s.maxLevel)})
	for l := 0; l < s.maxLevel; l++ {
		s.nodes[headIdx].next[l] = tailIdx
	}
	return s
}

func newNextSlice(h int) []int32 {
	out := make([]int32, h)
	for i := range out {
		out[i] = nilIdx
	}
	return out
}

// drawHeight draws a node height as the position of the lowest zero
// bit of a siphash-derived pseudorandom word, truncated to MaxHeight
// (spec.md §4.5): a word whose low k bits are all 1 yields height k+1,
// matching the classic geometric level distribution without a runtime
// dependency on math/rand.
func (s *Skiplist[V]) drawHeight() int {
	s.counter++
	var buf [8]byte
	c := s.counter
	for i := 0; i < 8; i++ {
		buf[i] = byte(c)
		c >>= 8
	}
	h := siphash.Hash(s.k0, s.k1, buf[:])
	height := bits.TrailingZeros64(^h) + 1
	return ints.Clamp(height, 1, MaxHeight)
}

func (s *Skiplist[V]) alloc(v *temporal.Sequence[V], height int) int32 {
	n := node[V]{value: v, bbox: v.TimeSpan(), height: height, next: newNextSlice(height), inUse: true}
	if len(s.free) > 0 {
		idx := s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
		s.nodes[idx] = n
		return idx
	}
	s.nodes = append(s.nodes, n)
	return int32(len(s.nodes) - 1)
}

func (s *Skiplist[V]) growTo(level int) {
	if level <= s.maxLevel {
		return
	}
	for l := s.maxLevel; l < level; l++ {
		s.nodes[headIdx].next = append(s.nodes[headIdx].next, tailIdx)
		s.nodes[tailIdx].next = append(s.nodes[tailIdx].next, nilIdx)
	}
	s.nodes[headIdx].height = level
	s.nodes[tailIdx].height = level
	s.maxLevel = level
}

// shrink drops empty top levels off head/tail, per spec.md §4.5 step 5.
func (s *Skiplist[V]) shrink() {
	for s.maxLevel > 1 && s.nodes[headIdx].next[s.maxLevel-1] == tailIdx {
		s.maxLevel--
		s.nodes[headIdx].next = s.nodes[headIdx].next[:s.maxLevel]
		s.nodes[tailIdx].next = s.nodes[tailIdx].next[:s.maxLevel]
		s.nodes[headIdx].height = s.maxLevel
		s.nodes[tailIdx].height = s.maxLevel
	}
}

// before reports whether node a's bbox sorts strictly before node b's.
func before(a, b period.Period) bool {
	return period.ComparePeriod(a, b) < 0
}

// Make bulk-loads a deterministically balanced skiplist from a
// time-ordered, non-overlapping slice of Sequences: height
// ceil(log2 n), linking every level at stride 2^level (spec.md §4.5).
func Make[V temporal.Base](values []*temporal.Sequence[V]) (*Skiplist[V], error) {
	s := newEmpty[V]()
	if len(values) == 0 {
		return s, nil
	}
	for i := 1; i < len(values); i++ {
		if !values[i-1].TimeSpan().Before(values[i].TimeSpan()) && !values[i-1].TimeSpan().Adjacent(values[i].TimeSpan()) {
			if values[i-1].TimeSpan().Overlaps(values[i].TimeSpan()) {
				return nil, tserr.InvalidArg("tagg.Make: input sequences overlap at index %d", i)
			}
		}
	}
	levels := ints.Clamp(bits.Len(uint(len(values)-1)), 1, MaxHeight)
	s.growTo(levels)
	update := make([]int32, levels)
	for l := range update {
		update[l] = headIdx
	}
	for i, v := range values {
		height := ints.Min(bits.TrailingZeros(uint(i+1))+1, levels)
		idx := s.alloc(v, height)
		for l := 0; l < height; l++ {
			s.nodes[idx].next[l] = s.nodes[update[l]].next[l]
			s.nodes[update[l]].next[l] = idx
			update[l] = idx
		}
		s.count++
	}
	return s, nil
}

// findUpdate walks from head downward, recording at each level the
// rightmost node strictly before p, per spec.md §4.5 step 2.
func (s *Skiplist[V]) findUpdate(p period.Period) []int32 {
	update := make([]int32, s.maxLevel)
	cur := headIdx
	for l := s.maxLevel - 1; l >= 0; l-- {
		for {
			nxt := s.nodes[cur].next[l]
			if nxt == tailIdx {
				break
			}
			if s.nodes[nxt].bbox.Overlaps(p) || !before(s.nodes[nxt].bbox, p) {
				break
			}
			cur = nxt
		}
		update[l] = cur
	}
	return update
}

// Combiner merges the array of removed values (nodes whose bbox
// overlapped the incoming batch's envelope) with the incoming batch
// itself, returning the ordered, non-overlapping result to insert.
type Combiner[V temporal.Base] func(ctx context.Context, removed, incoming []*temporal.Sequence[V]) ([]*temporal.Sequence[V], error)

// Splice implements spec.md §4.5's splice: it removes every node
// overlapping the envelope of newItems, recomputes the aggregate of
// removed∪new via combiner, and re-inserts the result. Splice takes
// no crossings argument and does no crossing detection of its own;
// the combiners in combine.go lift with Continuous continuity.
func (s *Skiplist[V]) Splice(ctx context.Context, newItems []*temporal.Sequence[V], combiner Combiner[V]) error {
	if len(newItems) == 0 {
		return nil
	}
	if err := tserr.CheckContext(ctx); err != nil {
		return err
	}
	envelope := period.MustMake(newItems[0].TimeSpan().Lower, newItems[len(newItems)-1].TimeSpan().Upper,
		newItems[0].TimeSpan().LowerInc, newItems[len(newItems)-1].TimeSpan().UpperInc)

	update := s.findUpdate(envelope)
	var removed []*temporal.Sequence[V]
	cur := s.nodes[update[0]].next[0]
	for cur != tailIdx && s.nodes[cur].bbox.Overlaps(envelope) {
		removed = append(removed, s.nodes[cur].value)
		nxt := s.nodes[cur].next[0]
		s.unlink(cur, update)
		cur = nxt
	}

	toInsert := newItems
	if len(removed) > 0 {
		merged, err := combiner(ctx, removed, newItems)
		if err != nil {
			return err
		}
		toInsert = merged
	}
	for _, v := range toInsert {
		s.insertOne(v)
	}
	s.shrink()
	return nil
}

// unlink removes node idx from every level using the supplied update
// cursors, and returns it to the free-list.
func (s *Skiplist[V]) unlink(idx int32, update []int32) {
	n := s.nodes[idx]
	for l := 0; l < n.height; l++ {
		if s.nodes[update[l]].next[l] == idx {
			s.nodes[update[l]].next[l] = n.next[l]
		}
	}
	s.nodes[idx] = node[V]{}
	s.free = append(s.free, idx)
	s.count--
}

// insertOne inserts a single Sequence, growing head/tail height if the
// drawn height exceeds the current max level.
func (s *Skiplist[V]) insertOne(v *temporal.Sequence[V]) {
	height := s.drawHeight()
	if height > s.maxLevel {
		s.growTo(height)
	}
	update := s.findUpdate(v.TimeSpan())
	idx := s.alloc(v, height)
	for l := 0; l < height; l++ {
		s.nodes[idx].next[l] = s.nodes[update[l]].next[l]
		s.nodes[update[l]].next[l] = idx
	}
	s.count++
}

// Values returns every stored Sequence in time order.
func (s *Skiplist[V]) Values() []*temporal.Sequence[V] {
	out := make([]*temporal.Sequence[V], 0, s.count)
	cur := s.nodes[headIdx].next[0]
	for cur != tailIdx {
		out = append(out, s.nodes[cur].value)
		cur = s.nodes[cur].next[0]
	}
	return out
}
