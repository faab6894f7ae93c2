package layoutanim

import (
	"slices"
	"sort"
)

// ghostFilter selects which delayed removals take part in an index
// adjustment.
type ghostFilter uint8

const (
	allGhosts         ghostFilter = iota
	skipLastAnimation             // ignore removals delayed by the current pull
	lastAnimationOnly             // only removals delayed by the current pull
)

func (s *surfaceState) addGhost(kf *keyFrame) {
	s.ghosts[kf.parent.Tag] = append(s.ghosts[kf.parent.Tag], kf)
}

func (s *surfaceState) dropGhost(kf *keyFrame) {
	list := s.ghosts[kf.parent.Tag]
	if i := slices.Index(list, kf); i >= 0 {
		list = slices.Delete(list, i, i+1)
	}
	if len(list) == 0 {
		delete(s.ghosts, kf.parent.Tag)
		return
	}
	s.ghosts[kf.parent.Tag] = list
}

// ghostIndices returns, ascending, the current child-list positions under
// parent of nodes whose Remove is delayed.
func (s *surfaceState) ghostIndices(parent Tag, filter ghostFilter) []int {
	var out []int
	for _, kf := range s.ghosts[parent] {
		latest := kf.gen == s.gen
		if (filter == skipLastAnimation && latest) || (filter == lastAnimationOnly && !latest) {
			continue
		}
		out = append(out, kf.removeIndex)
	}
	sort.Ints(out)
	return out
}

// adjustImmediateForDelayed rewrites the index of an Insert or Remove that
// is about to execute so it addresses the executor's child list, which
// still holds every node whose Remove was delayed. The incoming index counts
// only live children; each delayed node sitting before the target position
// pushes it one further. An Insert lands in front of a delayed node at the
// same position, a Remove steps over it.
func (s *surfaceState) adjustImmediateForDelayed(m *Mutation, filter ghostFilter) {
	if m.Type != MutationInsert && m.Type != MutationRemove {
		return
	}
	idx := m.Index
	for _, g := range s.ghostIndices(m.Parent.Tag, filter) {
		if g < idx || (g == idx && m.Type == MutationRemove) {
			idx++
		}
	}
	m.Index = idx
}

// adjustDelayedForMutation keeps the stored index of every delayed Remove
// valid after m has been applied to the executor's child list.
func (s *surfaceState) adjustDelayedForMutation(m Mutation) {
	switch m.Type {
	case MutationRemove:
		for _, kf := range s.ghosts[m.Parent.Tag] {
			if kf.removeIndex > m.Index {
				kf.removeIndex--
			}
		}
	case MutationInsert:
		for _, kf := range s.ghosts[m.Parent.Tag] {
			if kf.removeIndex >= m.Index {
				kf.removeIndex++
			}
		}
	}
}
