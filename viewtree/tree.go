// Package viewtree is a mounted view hierarchy that applies mutation lists
// the way a platform mounting layer does. It is strict: every mutation is
// validated against the current tree, so it doubles as a checker for the
// output of a layoutanim.Manager.
package viewtree

import (
	"errors"
	"fmt"

	"github.com/phanxgames/layoutanim"
)

// ErrInvalidMutation is wrapped by every error Apply returns.
var ErrInvalidMutation = errors.New("viewtree: invalid mutation")

// Node is one mounted view.
type Node struct {
	View     layoutanim.ShadowView
	Parent   *Node
	children []*Node
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

func (n *Node) addChildAt(child *Node, index int) {
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
}

func (n *Node) removeChildAt(index int) *Node {
	child := n.children[index]
	copy(n.children[index:], n.children[index+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.Parent = nil
	return child
}

// Tree holds every allocated node of one surface, attached or not.
type Tree struct {
	root  *Node
	nodes map[layoutanim.Tag]*Node

	// StrictViews makes Update, Remove and Delete also check that the
	// mutation's old view equals the mounted one.
	StrictViews bool
}

// New returns a tree holding only root.
func New(root layoutanim.ShadowView) *Tree {
	n := &Node{View: root}
	return &Tree{
		root:  n,
		nodes: map[layoutanim.Tag]*Node{root.Tag: n},
	}
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return t.root
}

// Node returns the node with tag, attached or not.
func (t *Tree) Node(tag layoutanim.Tag) (*Node, bool) {
	n, ok := t.nodes[tag]
	return n, ok
}

// Len returns the number of allocated nodes, including the root.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Apply executes list in order. It stops at the first invalid mutation; the
// mutations before it stay applied.
func (t *Tree) Apply(list layoutanim.MutationList) error {
	for i, m := range list {
		if err := t.ApplyMutation(m); err != nil {
			return fmt.Errorf("mutation %d: %w", i, err)
		}
	}
	return nil
}

// ApplyMutation executes a single mutation.
func (t *Tree) ApplyMutation(m layoutanim.Mutation) error {
	switch m.Type {
	case layoutanim.MutationCreate:
		if _, ok := t.nodes[m.New.Tag]; ok {
			return t.invalid(m, "tag already allocated")
		}
		t.nodes[m.New.Tag] = &Node{View: m.New}

	case layoutanim.MutationDelete:
		n, ok := t.nodes[m.Old.Tag]
		switch {
		case !ok:
			return t.invalid(m, "unknown tag")
		case n == t.root:
			return t.invalid(m, "cannot delete the root")
		case n.Parent != nil:
			return t.invalid(m, "node is still attached")
		case len(n.children) > 0:
			return t.invalid(m, "node still has children")
		case t.StrictViews && !n.View.Equal(m.Old):
			return t.invalid(m, "old view does not match")
		}
		delete(t.nodes, m.Old.Tag)

	case layoutanim.MutationInsert:
		parent, ok := t.nodes[m.Parent.Tag]
		if !ok {
			return t.invalid(m, "unknown parent")
		}
		child, ok := t.nodes[m.New.Tag]
		switch {
		case !ok:
			return t.invalid(m, "unknown child")
		case child.Parent != nil:
			return t.invalid(m, "child is already attached")
		case child == t.root:
			return t.invalid(m, "cannot insert the root")
		case m.Index < 0 || m.Index > len(parent.children):
			return t.invalid(m, fmt.Sprintf("index out of range [0, %d]", len(parent.children)))
		}
		parent.addChildAt(child, m.Index)

	case layoutanim.MutationRemove:
		parent, ok := t.nodes[m.Parent.Tag]
		if !ok {
			return t.invalid(m, "unknown parent")
		}
		if m.Index < 0 || m.Index >= len(parent.children) {
			return t.invalid(m, fmt.Sprintf("index out of range [0, %d)", len(parent.children)))
		}
		child := parent.children[m.Index]
		if child.View.Tag != m.Old.Tag {
			return t.invalid(m, fmt.Sprintf("index holds tag %d", child.View.Tag))
		}
		if t.StrictViews && !child.View.Equal(m.Old) {
			return t.invalid(m, "old view does not match")
		}
		parent.removeChildAt(m.Index)

	case layoutanim.MutationUpdate:
		n, ok := t.nodes[m.New.Tag]
		switch {
		case !ok:
			return t.invalid(m, "unknown tag")
		case m.Old.Tag != m.New.Tag:
			return t.invalid(m, "old and new tags differ")
		case t.StrictViews && !n.View.Equal(m.Old):
			return t.invalid(m, "old view does not match")
		}
		n.View = m.New

	default:
		return t.invalid(m, "unknown mutation type")
	}
	return nil
}

func (t *Tree) invalid(m layoutanim.Mutation, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidMutation, m, reason)
}

// Shape is a snapshot of a subtree, comparable with go-cmp.
type Shape struct {
	View     layoutanim.ShadowView
	Children []Shape
}

// Shape returns a snapshot of the attached tree.
func (t *Tree) Shape() Shape {
	return shapeOf(t.root)
}

func shapeOf(n *Node) Shape {
	s := Shape{View: n.View}
	for _, c := range n.children {
		s.Children = append(s.Children, shapeOf(c))
	}
	return s
}

// Tags returns the tags of the attached tree in depth-first order.
func (t *Tree) Tags() []layoutanim.Tag {
	var out []layoutanim.Tag
	var walk func(n *Node)
	walk = func(n *Node) {
		out = append(out, n.View.Tag)
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t.root)
	return out
}
