package parser

// topology.go - island and containment reconstruction from area-to-line linkage
// An area's adjacency list holds its outer border, then one zero-introduced
// sub-list per island. Neighbors are found through each line's left/right area.

import (
	"strconv"
	"strings"
)

// ZeroStop returns the ids before the first zero, i.e. an area's outer border
func ZeroStop(ids []int) []int {
	for i, id := range ids {
		if id == 0 {
			return ids[:i]
		}
	}
	return ids
}

// BetweenZeroes returns the id sequences introduced by each zero.
// Ids before the first zero are not part of any sequence, so a list without
// zeros yields no sequences. Returned slices share the input's backing array.
func BetweenZeroes(ids []int) [][]int {
	var zeroes []int
	for i, id := range ids {
		if id == 0 {
			zeroes = append(zeroes, i)
		}
	}
	if len(zeroes) == 0 {
		return nil
	}
	zeroes = append(zeroes, len(ids))

	seqs := make([][]int, 0, len(zeroes)-1)
	for k := 1; k < len(zeroes); k++ {
		seqs = append(seqs, ids[zeroes[k-1]+1:zeroes[k]])
	}
	return seqs
}

// Island is a sub-loop of an area's border enclosing nested areas.
// Area references are 1-based ids into File.Areas.
type Island struct {
	AreaID int   // Enclosing area
	Border []int // Signed line ids bordering the island

	// BorderAreas are the areas directly across the border lines, in first-seen order
	BorderAreas []int

	// ToplevelInnerAreas are all areas directly contained in the enclosing area
	// through this island: the border areas plus every area reachable from them
	// through outer borders, without passing back through the enclosing area.
	ToplevelInnerAreas []int
}

// topology resolves area and line ids against the fully loaded sections
type topology struct {
	areas []Area
	lines []Line
}

// line returns the line referenced by a signed line id
func (t topology) line(areaID, lineID int) (*Line, error) {
	idx := lineID
	if idx < 0 {
		idx = -idx
	}
	if idx == 0 || idx > len(t.lines) {
		return nil, &ErrTopologyInconsistency{AreaID: areaID, LineID: lineID, Reason: "line id out of range"}
	}
	return &t.lines[idx-1], nil
}

// beyond returns the distinct areas lying across the given border lines from
// areaID, in first-seen order. A line with areaID on both sides cannot be
// resolved to a neighbor.
func (t topology) beyond(areaID int, border []int) ([]int, error) {
	var r []int
	seen := make(map[int]bool, len(border))
	for _, l := range border {
		line, err := t.line(areaID, l)
		if err != nil {
			return nil, err
		}
		id := line.LeftArea
		if id == areaID {
			id = line.RightArea
		}
		if id == areaID {
			return nil, &ErrTopologyInconsistency{AreaID: areaID, LineID: l, Reason: "area on both sides of line"}
		}
		if id < 1 || id > len(t.areas) {
			return nil, &ErrTopologyInconsistency{AreaID: areaID, LineID: l, Reason: "neighbor area " + strconv.Itoa(id) + " out of range"}
		}
		if !seen[id] {
			seen[id] = true
			r = append(r, id)
		}
	}
	return r, nil
}

// outsideAreas returns the neighbors across an area's outer border
func (t topology) outsideAreas(areaID int) ([]int, error) {
	return t.beyond(areaID, ZeroStop(t.areas[areaID-1].AdjLineIDs))
}

// innerToplevelAreas expands an island's border areas through outer-border
// neighbors. The traversal is a depth-first preorder on an explicit stack and
// never enters the enclosing area.
func (t topology) innerToplevelAreas(isle *Island) ([]int, error) {
	result := append([]int(nil), isle.BorderAreas...)
	inResult := make(map[int]bool, len(result))
	for _, id := range result {
		inResult[id] = true
	}
	visited := map[int]bool{isle.AreaID: true}

	// result grows while it is scanned; areas found through earlier border
	// areas are already visited when reached here
	for i := 0; i < len(result); i++ {
		if visited[result[i]] {
			continue
		}
		stack := []int{result[i]}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[id] {
				continue
			}
			visited[id] = true
			if !inResult[id] {
				inResult[id] = true
				result = append(result, id)
			}

			next, err := t.outsideAreas(id)
			if err != nil {
				return nil, err
			}
			// Reverse push keeps the recursive visiting order
			for k := len(next) - 1; k >= 0; k-- {
				if !visited[next[k]] {
					stack = append(stack, next[k])
				}
			}
		}
	}
	return result, nil
}

// buildIslands derives every area's islands from its adjacency list.
// It runs once all lines are loaded.
func buildIslands(areas []Area, lines []Line) error {
	t := topology{areas: areas, lines: lines}

	for i := range areas {
		a := &areas[i]
		borders := BetweenZeroes(a.AdjLineIDs)
		if len(borders) == 0 {
			continue
		}
		a.Islands = make([]Island, 0, len(borders))
		for _, border := range borders {
			isle := Island{AreaID: a.ID, Border: border}
			var err error
			if isle.BorderAreas, err = t.beyond(a.ID, border); err != nil {
				return err
			}
			a.Islands = append(a.Islands, isle)
		}
	}

	// Toplevel expansion reads other areas' outer borders only, so it can
	// follow once every island's border areas are known
	for i := range areas {
		for j := range areas[i].Islands {
			isle := &areas[i].Islands[j]
			inner, err := t.innerToplevelAreas(isle)
			if err != nil {
				return err
			}
			isle.ToplevelInnerAreas = inner
		}
	}
	return nil
}

// TreeNode is a node of the island containment tree.
// AreaID is 0 for the synthetic root.
type TreeNode struct {
	AreaID   int
	Children []*TreeNode
}

// IslandTree is the nested containment of areas through islands.
// The root's children are all areas having islands, at any depth.
type IslandTree struct {
	Root *TreeNode
}

// buildTree builds the containment tree for areas with nb_islands > 0.
// A containment cycle is a topology error.
func buildTree(areas []Area) (*IslandTree, error) {
	root := &TreeNode{}
	for i := range areas {
		if areas[i].NbIslands > 0 {
			n, err := subtree(areas, areas[i].ID, map[int]bool{})
			if err != nil {
				return nil, err
			}
			root.Children = append(root.Children, n)
		}
	}
	return &IslandTree{Root: root}, nil
}

func subtree(areas []Area, areaID int, path map[int]bool) (*TreeNode, error) {
	if path[areaID] {
		return nil, &ErrTopologyInconsistency{AreaID: areaID, Reason: "area contains itself through islands"}
	}
	path[areaID] = true
	defer delete(path, areaID)

	n := &TreeNode{AreaID: areaID}
	for _, isle := range areas[areaID-1].Islands {
		for _, id := range isle.ToplevelInnerAreas {
			if areas[id-1].NbIslands > 0 {
				kid, err := subtree(areas, id, path)
				if err != nil {
					return nil, err
				}
				n.Children = append(n.Children, kid)
			} else {
				n.Children = append(n.Children, &TreeNode{AreaID: id})
			}
		}
	}
	return n, nil
}

// Walk calls fn for every node below n in preorder with its depth (children of n are depth 0)
func (n *TreeNode) Walk(fn func(node *TreeNode, depth int)) {
	n.walk(fn, 0)
}

func (n *TreeNode) walk(fn func(node *TreeNode, depth int), depth int) {
	for _, k := range n.Children {
		fn(k, depth)
		k.walk(fn, depth+1)
	}
}

// Format renders the tree as one area id per line, indented four spaces per level
func (t *IslandTree) Format() string {
	var b strings.Builder
	if t == nil || t.Root == nil {
		return ""
	}
	t.Root.Walk(func(n *TreeNode, depth int) {
		b.WriteString(strings.Repeat("    ", depth))
		b.WriteString(strconv.Itoa(n.AreaID))
		b.WriteByte('\n')
	})
	return b.String()
}

// Size returns the number of non-root nodes
func (t *IslandTree) Size() int {
	if t == nil || t.Root == nil {
		return 0
	}
	size := 0
	t.Root.Walk(func(*TreeNode, int) { size++ })
	return size
}
