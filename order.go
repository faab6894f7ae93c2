package layoutanim

import "sort"

// orderRank groups mutation types into execution phases. Deletes run last
// because they deallocate, removes run before inserts, creates before
// inserts. The remaining relative orders are arbitrary but fixed so the
// relation below is a strict weak ordering.
func orderRank(t MutationType) int {
	switch t {
	case MutationRemove:
		return 0
	case MutationCreate:
		return 1
	case MutationUpdate:
		return 2
	case MutationInsert:
		return 3
	default:
		return 4
	}
}

// ShouldFirstComeBeforeSecond reports whether a must execute before b:
//
//   - Delete mutations come after everything else.
//   - Remove and Create come before Insert.
//   - Removes from the same parent come in descending index order, so each
//     removal leaves the indices of the pending ones valid.
//
// Two removes from the same parent at the same index are invalid input.
func ShouldFirstComeBeforeSecond(a, b Mutation) bool {
	ra, rb := orderRank(a.Type), orderRank(b.Type)
	if ra != rb {
		return ra < rb
	}
	if a.Type != MutationRemove {
		return false
	}
	if a.Parent.Tag != b.Parent.Tag {
		return a.Parent.Tag < b.Parent.Tag
	}
	return a.Index > b.Index
}

// SortMutations orders list in place for execution. The sort is stable:
// inserts into one parent keep their (ascending) input order.
func SortMutations(list MutationList) {
	sort.SliceStable(list, func(i, j int) bool {
		return ShouldFirstComeBeforeSecond(list[i], list[j])
	})
}
