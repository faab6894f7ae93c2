package layoutanim

// schedule splits batch into the mutations to execute now and new
// keyframes, then rewrites indices so the immediate list addresses the
// executor's child lists (which still hold nodes with delayed removals). The
// returned list is sorted for execution.
//
// The batch follows the differ's index convention: Remove indices address
// the parent's child list before the batch, Insert indices address it after
// the batch and ascend per parent.
func (s *surfaceState) schedule(batch MutationList, anim *LayoutAnimation, p *pass) MutationList {
	s.gen++
	run := &runningAnimation{startTime: p.now}
	if anim != nil {
		run.onSuccess = anim.OnSuccess
	}

	created := make(map[Tag]bool)
	inserted := make(map[Tag]bool)
	deleted := make(map[Tag]bool)
	removedFrom := make(map[Tag]Tag)
	for _, m := range batch {
		switch m.Type {
		case MutationCreate:
			created[m.New.Tag] = true
		case MutationInsert:
			inserted[m.New.Tag] = true
		case MutationDelete:
			deleted[m.Old.Tag] = true
		case MutationRemove:
			removedFrom[m.Old.Tag] = m.Parent.Tag
		}
	}

	// rootOf walks up through parents deleted in the same batch.
	rootOf := func(tag Tag) Tag {
		for range len(removedFrom) + 1 {
			parent, ok := removedFrom[tag]
			if !ok || !deleted[parent] {
				break
			}
			tag = parent
		}
		return tag
	}

	// A subtree that a surviving node is moved out of cannot wait: the move
	// would change child lists the delayed teardown still relies on.
	leaky := make(map[Tag]bool)
	for _, m := range batch {
		if m.Type == MutationRemove && deleted[m.Parent.Tag] && !deleted[m.Old.Tag] {
			leaky[rootOf(m.Parent.Tag)] = true
		}
	}

	// Deleted subtree roots fade out in place. Their Remove is delayed; the
	// rest of the subtree's teardown waits with it.
	fading := make(map[Tag]*keyFrame)
	if cfg := anim.config(KindDelete); cfg != nil {
		for _, m := range batch {
			if m.Type != MutationRemove || !deleted[m.Old.Tag] || deleted[m.Parent.Tag] || leaky[m.Old.Tag] {
				continue
			}
			pi, ok := p.interpolatorFor(m.Old)
			if !ok {
				continue
			}
			kf := s.newKeyFrame(KindDelete, m.Parent, m.Old, cfg.Property.hidden(m.Old), *cfg, pi, run, p)
			if kf == nil {
				continue
			}
			// The batch index counts live children before this pull; nodes
			// delayed by this same pull are live in that count.
			rm := m
			s.adjustImmediateForDelayed(&rm, skipLastAnimation)
			kf.removeIndex = rm.Index
			s.addGhost(kf)
			fading[kf.tag] = kf
		}
	}

	// Created nodes fade in: they are inserted hidden right away.
	createCfg := anim.config(KindCreate)
	fadeIn := make(map[Tag]PropsInterpolator)
	if createCfg != nil {
		for _, m := range batch {
			if m.Type != MutationCreate || !inserted[m.New.Tag] {
				continue
			}
			if _, busy := s.keyFrames[m.New.Tag]; busy {
				continue
			}
			if pi, ok := p.interpolatorFor(m.New); ok {
				fadeIn[m.New.Tag] = pi
			}
		}
	}

	updateCfg := anim.config(KindUpdate)
	immediate := make(MutationList, 0, len(batch))
	for _, m := range batch {
		tag := m.Tag()
		switch m.Type {
		case MutationCreate:
			if _, ok := fadeIn[tag]; ok {
				m.New = createCfg.Property.hidden(m.New)
			}
		case MutationInsert:
			if pi, ok := fadeIn[tag]; ok && created[tag] {
				end := m.New
				m.New = createCfg.Property.hidden(end)
				s.newKeyFrame(KindCreate, m.Parent, m.New, end, *createCfg, pi, run, p)
			}
		case MutationUpdate:
			if updateCfg == nil {
				break
			}
			if pi, ok := p.interpolatorFor(m.New); ok {
				if s.newKeyFrame(KindUpdate, m.Parent, m.Old, m.New, *updateCfg, pi, run, p) != nil {
					continue
				}
			}
		case MutationRemove, MutationDelete:
			if !deleted[tag] {
				break
			}
			if kf, ok := fading[rootOf(tag)]; ok {
				if tag != kf.tag {
					kf.deferred = append(kf.deferred, m)
				}
				continue
			}
		}
		immediate = append(immediate, m)
	}

	SortMutations(immediate)
	for i := range immediate {
		m := &immediate[i]
		switch m.Type {
		case MutationRemove:
			s.adjustImmediateForDelayed(m, skipLastAnimation)
		case MutationInsert:
			s.adjustImmediateForDelayed(m, allGhosts)
		default:
			continue
		}
		s.adjustDelayedForMutation(*m)
	}

	for _, m := range immediate {
		p.logger.Debug("layoutanim: immediate", "surface", s.id, "mutation", m)
	}
	if run.pending == 0 {
		p.complete(run)
	}
	return immediate
}
