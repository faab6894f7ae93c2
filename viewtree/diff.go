package viewtree

import "github.com/phanxgames/layoutanim"

type placement struct {
	view   layoutanim.ShadowView
	parent layoutanim.ShadowView
	index  int
	kids   []layoutanim.Tag
}

func index(s Shape, parent *layoutanim.ShadowView, i int, out map[layoutanim.Tag]*placement, order *[]layoutanim.Tag) {
	p := &placement{view: s.View, index: i}
	if parent != nil {
		p.parent = *parent
	}
	for j, c := range s.Children {
		p.kids = append(p.kids, c.View.Tag)
		index(c, &s.View, j, out, order)
	}
	out[s.View.Tag] = p
	*order = append(*order, s.View.Tag)
}

// Diff returns the batch that turns the tree from into the tree to, in the
// index convention layoutanim.Manager expects: Remove indices address child
// lists before the batch, Insert indices address them after it and ascend
// per parent. Both shapes must share the root tag.
//
// A child keeps its place when it stays under the same parent without
// overtaking a sibling that also stays; every other change of position is a
// Remove followed by an Insert.
func Diff(from, to Shape) layoutanim.MutationList {
	var oldOrder, newOrder []layoutanim.Tag
	before := make(map[layoutanim.Tag]*placement)
	after := make(map[layoutanim.Tag]*placement)
	index(from, nil, 0, before, &oldOrder)
	index(to, nil, 0, after, &newOrder)
	root := to.View.Tag

	stays := make(map[layoutanim.Tag]bool)
	for _, tag := range oldOrder {
		op, np := before[tag], after[tag]
		if np == nil {
			continue
		}
		pos := make(map[layoutanim.Tag]int, len(np.kids))
		for j, k := range np.kids {
			pos[k] = j
		}
		last := -1
		for _, k := range op.kids {
			if j, ok := pos[k]; ok && j > last {
				stays[k] = true
				last = j
			}
		}
	}

	var out layoutanim.MutationList
	for _, tag := range oldOrder {
		if tag != root && !stays[tag] {
			p := before[tag]
			out = append(out, layoutanim.RemoveMutation(p.parent, p.view, p.index))
		}
	}
	for _, tag := range oldOrder {
		if after[tag] == nil {
			out = append(out, layoutanim.DeleteMutation(before[tag].view))
		}
	}
	for _, tag := range newOrder {
		if before[tag] == nil {
			out = append(out, layoutanim.CreateMutation(after[tag].view))
		}
	}
	for _, tag := range newOrder {
		op, np := before[tag], after[tag]
		if op == nil || op.view.Equal(np.view) {
			continue
		}
		var parent layoutanim.ShadowView
		if tag != root {
			parent = np.parent
		}
		out = append(out, layoutanim.UpdateMutation(parent, op.view, np.view))
	}
	// Pre-order walk of the new tree, so inserts ascend within each parent.
	var walk func(s Shape)
	walk = func(s Shape) {
		for j, c := range s.Children {
			if !stays[c.View.Tag] {
				out = append(out, layoutanim.InsertMutation(s.View, c.View, j))
			}
		}
		for _, c := range s.Children {
			walk(c)
		}
	}
	walk(to)
	return out
}

// FromShape builds a mounted tree matching s.
func FromShape(s Shape) *Tree {
	t := New(s.View)
	var attach func(parent *Node, s Shape)
	attach = func(parent *Node, s Shape) {
		for j, c := range s.Children {
			n := &Node{View: c.View}
			t.nodes[c.View.Tag] = n
			parent.addChildAt(n, j)
			attach(n, c)
		}
	}
	attach(t.root, s)
	return t
}
