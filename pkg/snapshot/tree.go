package snapshot

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// treeNode is one directory level in the repository tree
type treeNode struct {
	children map[string]*treeNode
	isRepo   bool
}

func (n *treeNode) child(name string) *treeNode {
	if n.children == nil {
		n.children = make(map[string]*treeNode)
	}
	c, ok := n.children[name]
	if !ok {
		c = &treeNode{}
		n.children[name] = c
	}
	return c
}

// buildRepoTree renders the discovered repositories as a box-drawing
// tree rooted at base. Returns the tree lines and the repository count.
func buildRepoTree(repoRoots []string, base string) ([]string, int) {
	// Single repository at the base collapses to one line.
	if len(repoRoots) == 1 && repoRoots[0] == base {
		return []string{fmt.Sprintf("%-40s ✓ repo", ".")}, 1
	}

	root := &treeNode{}
	for _, repo := range repoRoots {
		rel, err := filepath.Rel(base, repo)
		if err != nil || strings.HasPrefix(rel, "..") {
			rel = repo
		}
		node := root
		if rel == "." {
			node.isRepo = true
			continue
		}
		for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
			node = node.child(part)
		}
		node.isRepo = true
	}

	top := "."
	if root.isRepo {
		top = fmt.Sprintf("%-40s ✓ repo", ".")
	}
	lines := []string{top}
	lines = append(lines, renderTree(root, "")...)
	return lines, len(repoRoots)
}

func renderTree(node *treeNode, prefix string) []string {
	names := make([]string, 0, len(node.children))
	for name := range node.children {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []string
	for i, name := range names {
		child := node.children[name]
		last := i == len(names)-1

		connector := "├─ "
		if last {
			connector = "└─ "
		}

		line := prefix + connector + name + "/"
		if child.isRepo {
			line = fmt.Sprintf("%-40s ✓ repo", line)
		}
		lines = append(lines, line)

		if len(child.children) > 0 {
			extension := "│  "
			if last {
				extension = "   "
			}
			lines = append(lines, renderTree(child, prefix+extension)...)
		}
	}
	return lines
}
