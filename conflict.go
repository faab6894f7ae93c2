package layoutanim

import "sort"

// takeConflicting returns, in creation order, the keyframes that batch
// supersedes: those animating a node the batch touches again, and delayed
// removals whose parent the batch removes or deletes. The latter must be
// flushed first, or the parent would leave the tree still holding a child
// the diff no longer knows about.
func (s *surfaceState) takeConflicting(batch MutationList) []*keyFrame {
	seen := make(map[*keyFrame]bool)
	var out []*keyFrame
	take := func(kf *keyFrame) {
		if !seen[kf] {
			seen[kf] = true
			out = append(out, kf)
		}
	}
	for _, m := range batch {
		if kf, ok := s.keyFrames[m.Tag()]; ok {
			take(kf)
		}
		if m.Type == MutationRemove || m.Type == MutationDelete {
			for _, kf := range s.ghosts[m.Tag()] {
				take(kf)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// resolveConflicts removes every superseded keyframe from the in-flight set
// and returns its final mutations, carrying the last emitted view as the
// "before" state so the batch applies on top of what the executor shows.
// Keyframes cut short count as interrupted; one whose time was already up
// completes normally.
func (s *surfaceState) resolveConflicts(batch MutationList, p *pass) MutationList {
	var out MutationList
	for _, kf := range s.takeConflicting(batch) {
		linear, _ := Progress(p.now, kf.anim.startTime, kf.config)
		out = append(out, s.finish(kf, linear < 1, p)...)
	}
	return out
}
