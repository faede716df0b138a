package thread

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"hoopboard/model"
)

// Index holds the lookup structures for one post's comment list: direct
// children per parent and comment by id. Keys are hex object ids; the
// empty string keys the top-level comments. An Index is a pure function
// of the input list and holds no store state.
type Index struct {
	children map[string][]model.Comment
	byID     map[string]model.Comment
}

// Build organizes a flat comment list. Input order is preserved within
// each child list, so a chronologically sorted input yields
// chronologically sorted sibling groups.
func Build(comments []model.Comment) Index {
	idx := Index{
		children: make(map[string][]model.Comment, len(comments)),
		byID:     make(map[string]model.Comment, len(comments)),
	}
	for _, c := range comments {
		idx.byID[c.ID.Hex()] = c
		key := ""
		if c.ParentID != nil {
			key = c.ParentID.Hex()
		}
		idx.children[key] = append(idx.children[key], c)
	}
	return idx
}

// Roots returns the top-level comments.
func (idx Index) Roots() []model.Comment {
	return idx.children[""]
}

// Children returns the direct replies of a comment.
func (idx Index) Children(id bson.ObjectID) []model.Comment {
	return idx.children[id.Hex()]
}

// Get looks up a comment by id.
func (idx Index) Get(id bson.ObjectID) (model.Comment, bool) {
	c, ok := idx.byID[id.Hex()]
	return c, ok
}

// Descendants returns every comment in the reply subtree below id, at any
// depth, excluding id itself. Order is unspecified. An id with no replies,
// or one not present in the index at all (stale or already deleted),
// yields an empty result — cascade delete relies on that.
//
// Iterative DFS over the child index: the parent relation is acyclic (a
// parent always exists before its replies), but pathological depth must
// not blow the goroutine stack, so no recursion.
func (idx Index) Descendants(id bson.ObjectID) []model.Comment {
	var out []model.Comment
	stack := []string{id.Hex()}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range idx.children[cur] {
			out = append(out, child)
			stack = append(stack, child.ID.Hex())
		}
	}
	return out
}

// DescendantCounts computes the reply count for every comment in the
// index in one pass over the list. Render paths that need a count per
// comment use this instead of calling Descendants per id, which would be
// quadratic across a full thread.
func (idx Index) DescendantCounts() map[string]int {
	counts := make(map[string]int, len(idx.byID))
	for id := range idx.byID {
		counts[id] = 0
	}
	// Each comment contributes 1 to every ancestor. Walking parent links
	// is bounded by the list length because the forest is acyclic.
	for _, c := range idx.byID {
		p := c.ParentID
		for steps := 0; p != nil && steps < len(idx.byID); steps++ {
			counts[p.Hex()]++
			parent, ok := idx.byID[p.Hex()]
			if !ok {
				break
			}
			p = parent.ParentID
		}
	}
	return counts
}

// Len returns the number of comments in the index.
func (idx Index) Len() int {
	return len(idx.byID)
}
