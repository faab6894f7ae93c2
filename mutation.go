package layoutanim

import (
	"fmt"
	"log/slog"
)

// MutationType identifies a kind of structural or property edit.
type MutationType uint8

const (
	MutationCreate MutationType = iota // allocate a node; carries New
	MutationInsert                     // attach New to Parent at Index
	MutationRemove                     // detach Old from Parent at Index
	MutationUpdate                     // replace Old with New in place
	MutationDelete                     // deallocate a detached node; carries Old
)

var mutationTypeNames = [...]string{
	MutationCreate: "Create",
	MutationInsert: "Insert",
	MutationRemove: "Remove",
	MutationUpdate: "Update",
	MutationDelete: "Delete",
}

func (t MutationType) String() string {
	if int(t) < len(mutationTypeNames) {
		return mutationTypeNames[t]
	}
	return fmt.Sprintf("MutationType(%d)", t)
}

// Mutation is one edit of the view tree. Mutations are values; a batch is
// an ordered MutationList.
type Mutation struct {
	Type   MutationType
	Parent ShadowView // Insert, Remove, Update
	Old    ShadowView // Remove, Update, Delete
	New    ShadowView // Create, Insert, Update
	Index  int        // Insert, Remove
}

// MutationList is a batch of mutations for one surface.
type MutationList []Mutation

// CreateMutation returns a Create of view.
func CreateMutation(view ShadowView) Mutation {
	return Mutation{Type: MutationCreate, New: view}
}

// DeleteMutation returns a Delete of view.
func DeleteMutation(view ShadowView) Mutation {
	return Mutation{Type: MutationDelete, Old: view}
}

// InsertMutation returns an Insert of child into parent at index.
func InsertMutation(parent, child ShadowView, index int) Mutation {
	return Mutation{Type: MutationInsert, Parent: parent, New: child, Index: index}
}

// RemoveMutation returns a Remove of child from parent at index.
func RemoveMutation(parent, child ShadowView, index int) Mutation {
	return Mutation{Type: MutationRemove, Parent: parent, Old: child, Index: index}
}

// UpdateMutation returns an Update of a child of parent from old to next.
func UpdateMutation(parent, old, next ShadowView) Mutation {
	return Mutation{Type: MutationUpdate, Parent: parent, Old: old, New: next}
}

// Tag returns the tag of the node the mutation affects.
func (m Mutation) Tag() Tag {
	switch m.Type {
	case MutationRemove, MutationDelete:
		return m.Old.Tag
	default:
		return m.New.Tag
	}
}

// View returns the snapshot the mutation leaves the node in (Old for
// Remove and Delete).
func (m Mutation) View() ShadowView {
	switch m.Type {
	case MutationRemove, MutationDelete:
		return m.Old
	default:
		return m.New
	}
}

func (m Mutation) String() string {
	switch m.Type {
	case MutationInsert, MutationRemove:
		return fmt.Sprintf("%s [%d] parent [%d] index %d", m.Type, m.Tag(), m.Parent.Tag, m.Index)
	case MutationUpdate:
		return fmt.Sprintf("%s [%d] layout %v", m.Type, m.Tag(), m.New.Layout)
	default:
		return fmt.Sprintf("%s [%d]", m.Type, m.Tag())
	}
}

// LogValue renders the mutation as a structured log group.
func (m Mutation) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("type", m.Type.String()),
		slog.Int("tag", int(m.Tag())),
	}
	switch m.Type {
	case MutationInsert, MutationRemove:
		attrs = append(attrs, slog.Int("parent", int(m.Parent.Tag)), slog.Int("index", m.Index))
	case MutationUpdate:
		attrs = append(attrs, slog.Any("layout", m.New.Layout))
	}
	return slog.GroupValue(attrs...)
}
