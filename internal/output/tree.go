package output

import (
	"slices"
	"strings"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// annotationColumn is where per-entry annotations start.
	annotationColumn = 30
)

// TreeNode is a node in a rendered file tree.
type TreeNode struct {
	Name       string
	Annotation string
	IsDir      bool
	Children   []*TreeNode
}

// TreeEntry is one path to place in a tree. Paths use forward slashes.
type TreeEntry struct {
	Path       string
	IsDir      bool
	Annotation string
}

// RenderFileTree renders entries beneath root, directories first and then
// alphabetically, with annotations aligned at a fixed column.
func RenderFileTree(root string, entries []TreeEntry) string {
	node := &TreeNode{Name: root, IsDir: true}

	for _, e := range entries {
		parts := strings.Split(strings.Trim(e.Path, "/"), "/")
		current := node

		for i, part := range parts {
			isLast := i == len(parts)-1

			idx := slices.IndexFunc(current.Children, func(c *TreeNode) bool { return c.Name == part })
			var child *TreeNode
			if idx >= 0 {
				child = current.Children[idx]
			} else {
				child = &TreeNode{Name: part, IsDir: !isLast || e.IsDir}
				current.Children = append(current.Children, child)
			}

			if isLast {
				child.Annotation = e.Annotation
				child.IsDir = child.IsDir || e.IsDir
			}
			current = child
		}
	}

	sortTree(node)

	var sb strings.Builder
	renderNode(&sb, node, "", true, true)
	return sb.String()
}

func sortTree(node *TreeNode) {
	slices.SortFunc(node.Children, func(a, b *TreeNode) int {
		if a.IsDir != b.IsDir {
			if a.IsDir {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})

	for _, child := range node.Children {
		sortTree(child)
	}
}

func renderNode(sb *strings.Builder, node *TreeNode, prefix string, isRoot, isLast bool) {
	if isRoot {
		sb.WriteString(StyleSummary.Render(strings.TrimSuffix(node.Name, "/") + "/"))
		sb.WriteString("\n")
	} else {
		connector := treeEdge
		if isLast {
			connector = treeLast
		}

		name := node.Name
		if node.IsDir {
			name += "/"
		}

		line := prefix + connector + name
		if node.Annotation != "" {
			padding := max(annotationColumn-len([]rune(line)), 2)
			line += strings.Repeat(" ", padding) + StyleDim.Render(node.Annotation)
		}

		sb.WriteString(line)
		sb.WriteString("\n")
	}

	for i, child := range node.Children {
		childPrefix := ""
		if !isRoot {
			if isLast {
				childPrefix = prefix + treeSpace
			} else {
				childPrefix = prefix + treeVert
			}
		}
		renderNode(sb, child, childPrefix, false, i == len(node.Children)-1)
	}
}
