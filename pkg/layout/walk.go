package layout

import (
	"fmt"
)

// Visit walks the nodes depth-first in layout order, calling fn for every
// node. Returning false from fn skips the node's children.
func Visit(nodes []Node, fn func(node Node) bool) {
	for _, node := range nodes {
		if node == nil || !fn(node) {
			continue
		}
		switch n := node.(type) {
		case Group:
			Visit(n.Children, fn)
		case Columns:
			for _, region := range n.Regions {
				Visit(region, fn)
			}
		}
	}
}

// Names lists every referenced field name in render order. Duplicates are
// kept so callers can detect fields placed twice.
func Names(nodes []Node) []string {
	var names []string
	Visit(nodes, func(node Node) bool {
		if ref, ok := node.(FieldRef); ok {
			names = append(names, ref.Name())
		}
		return true
	})
	return names
}

// Validate reports nil nodes anywhere in the tree. A Columns node without
// regions is valid and renders an empty grid wrapper. Field names are not
// resolved here.
func Validate(nodes []Node) error {
	return validate(nodes, "layout")
}

func validate(nodes []Node, path string) error {
	for idx, node := range nodes {
		at := fmt.Sprintf("%s[%d]", path, idx)
		switch n := node.(type) {
		case nil:
			return fmt.Errorf("layout: nil node at %s", at)
		case FieldRef, RawHTML:
		case Group:
			if err := validate(n.Children, at+".children"); err != nil {
				return err
			}
		case Columns:
			for ridx, region := range n.Regions {
				if err := validate(region, fmt.Sprintf("%s.regions[%d]", at, ridx)); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("layout: unsupported node %T at %s", node, at)
		}
	}
	return nil
}
