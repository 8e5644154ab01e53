package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"testflo/internal/domain"
)

// Formatter formats lists of discovered tests
type Formatter struct {
	w io.Writer
}

// NewFormatter creates a new Formatter
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

// treeNode is a unit, or a case within a unit
type treeNode struct {
	name     string
	children []*treeNode
	index    map[string]*treeNode
}

func newTreeNode(name string) *treeNode {
	return &treeNode{name: name, index: make(map[string]*treeNode)}
}

func (n *treeNode) child(name string) *treeNode {
	if c, ok := n.index[name]; ok {
		return c
	}
	c := newTreeNode(name)
	n.index[name] = c
	n.children = append(n.children, c)
	return c
}

// buildTree groups identifiers by unit and case, keeping first-seen order
func buildTree(ids []domain.Identifier) *treeNode {
	root := newTreeNode("")
	for _, id := range ids {
		unit, name, method := id.Parts()
		node := root.child(unit)
		if name == "" {
			continue
		}
		node = node.child(name)
		if method != "" {
			node.child(method)
		}
	}
	return root
}

// PrintTree prints the tests grouped by unit and case
func (f *Formatter) PrintTree(ids []domain.Identifier) error {
	if len(ids) == 0 {
		_, err := color.New(color.FgYellow).Fprintln(f.w, "No tests found")
		return err
	}

	root := buildTree(ids)
	if _, err := color.New(color.FgGreen).Fprintf(f.w, "Found %d test(s) in %d unit(s):\n\n", len(ids), len(root.children)); err != nil {
		return err
	}

	return f.printTreeNode(root, "", 0)
}

func (f *Formatter) printTreeNode(node *treeNode, prefix string, depth int) error {
	palette := []*color.Color{
		color.New(color.FgCyan),
		color.New(color.FgYellow),
		color.New(color.Reset),
	}

	for i, child := range node.children {
		isLast := i == len(node.children)-1

		connector, nextPrefix := "├── ", prefix+"│   "
		if isLast {
			connector, nextPrefix = "└── ", prefix+"    "
		}

		c := palette[min(depth, len(palette)-1)]
		if _, err := fmt.Fprintf(f.w, "%s%s%s\n", prefix, connector, c.Sprint(child.name)); err != nil {
			return err
		}
		if err := f.printTreeNode(child, nextPrefix, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// PrintTable prints the tests as a table of unit, case and test name
func (f *Formatter) PrintTable(ids []domain.Identifier) error {
	t := table.NewWriter()
	t.SetOutputMirror(f.w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Unit", "Case", "Test"})

	for i, id := range ids {
		unit, name, method := id.Parts()
		kase, test := "", name
		if method != "" {
			kase, test = name, method
		}
		t.AppendRow(table.Row{i + 1, unit, kase, test})
	}

	t.AppendFooter(table.Row{"", "", "Total", len(ids)})
	t.Render()
	return nil
}
