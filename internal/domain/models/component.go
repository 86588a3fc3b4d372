package models

import (
	"sort"
	"time"
)

// Component is a bill-of-materials line under a product.
type Component struct {
	ID                   string    `json:"id"`
	ExplosionLevel       int       `json:"explosionLevel"`
	ItemNumber           string    `json:"itemNumber"`
	ComponentName        string    `json:"componentName"`
	ComponentDescription *string   `json:"componentDescription"`
	Quantity             float64   `json:"quantity"`
	Unit                 *string   `json:"unit"`
	MassFactor           *float64  `json:"massFactor"`
	ProductID            string    `json:"productId"`
	ParentID             *string   `json:"parentId"`
	CreatedAt            time.Time `json:"createdAt"`
}

// ComponentNode is a component with its children, as rendered in the BOM tree.
type ComponentNode struct {
	Component
	Depth    int
	Children []*ComponentNode
}

// BuildComponentTree assembles the parent relation into a forest. Children are
// ordered by item number. A component whose parent is not in the list becomes a root,
// as does the first member of a parent cycle.
func BuildComponentTree(components []Component) []*ComponentNode {
	nodes := make(map[string]*ComponentNode, len(components))
	for _, c := range components {
		nodes[c.ID] = &ComponentNode{Component: c}
	}

	var roots []*ComponentNode
	for _, c := range components {
		node := nodes[c.ID]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok && parent != node {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	seen := make(map[*ComponentNode]bool, len(nodes))
	for _, root := range roots {
		setDepth(root, 0, seen)
	}

	// Components caught in a parent cycle are unreachable from any root.
	for _, c := range components {
		node := nodes[c.ID]
		if seen[node] {
			continue
		}
		parent := nodes[*c.ParentID]
		parent.Children = removeNode(parent.Children, node)
		roots = append(roots, node)
		setDepth(node, 0, seen)
	}

	sortNodes(roots)
	return roots
}

func removeNode(nodes []*ComponentNode, target *ComponentNode) []*ComponentNode {
	out := nodes[:0]
	for _, n := range nodes {
		if n != target {
			out = append(out, n)
		}
	}
	return out
}

// Flatten walks the forest depth-first, the order a table renders it in.
func Flatten(roots []*ComponentNode) []*ComponentNode {
	var out []*ComponentNode
	var walk func(nodes []*ComponentNode)
	walk = func(nodes []*ComponentNode) {
		for _, n := range nodes {
			out = append(out, n)
			walk(n.Children)
		}
	}
	walk(roots)
	return out
}

func setDepth(node *ComponentNode, depth int, seen map[*ComponentNode]bool) {
	if seen[node] {
		return
	}
	seen[node] = true
	node.Depth = depth
	sortNodes(node.Children)
	for _, child := range node.Children {
		setDepth(child, depth+1, seen)
	}
}

func sortNodes(nodes []*ComponentNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].ItemNumber < nodes[j].ItemNumber
	})
}
