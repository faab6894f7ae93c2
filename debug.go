package layoutanim

import (
	"fmt"
	"slices"
)

// debugCheckSurface panics with a descriptive message when the in-flight set
// of s is inconsistent. Only called in debug mode; release builds skip it.
func debugCheckSurface(s *surfaceState) {
	ghosts := 0
	for parent, list := range s.ghosts {
		if len(list) == 0 {
			panic(fmt.Sprintf("layoutanim: surface %d keeps an empty ghost list for parent %d", s.id, parent))
		}
		for _, kf := range list {
			if s.keyFrames[kf.tag] != kf {
				panic(fmt.Sprintf("layoutanim: surface %d delayed removal of tag %d has no keyframe", s.id, kf.tag))
			}
			if kf.kind != KindDelete || kf.parent.Tag != parent {
				panic(fmt.Sprintf("layoutanim: surface %d tag %d filed under parent %d", s.id, kf.tag, parent))
			}
		}
		idx := s.ghostIndices(parent, allGhosts)
		if idx[0] < 0 {
			panic(fmt.Sprintf("layoutanim: surface %d negative removal index under parent %d: %v", s.id, parent, idx))
		}
		if len(slices.Compact(slices.Clone(idx))) != len(idx) {
			panic(fmt.Sprintf("layoutanim: surface %d duplicate removal index under parent %d: %v", s.id, parent, idx))
		}
		latest := len(s.ghostIndices(parent, lastAnimationOnly))
		older := len(s.ghostIndices(parent, skipLastAnimation))
		if latest+older != len(idx) {
			panic(fmt.Sprintf("layoutanim: surface %d ghost generations under parent %d do not add up", s.id, parent))
		}
		ghosts += len(list)
	}

	deletes := 0
	for tag, kf := range s.keyFrames {
		if kf.tag != tag {
			panic(fmt.Sprintf("layoutanim: surface %d keyframe for tag %d filed under %d", s.id, kf.tag, tag))
		}
		if kf.anim == nil || kf.anim.pending <= 0 {
			panic(fmt.Sprintf("layoutanim: surface %d keyframe for tag %d has no running animation", s.id, tag))
		}
		if kf.kind == KindDelete {
			deletes++
		}
	}
	if deletes != ghosts {
		panic(fmt.Sprintf("layoutanim: surface %d has %d delete keyframes but %d delayed removals", s.id, deletes, ghosts))
	}
}
