// Package tree reads Newick trees and lists their leaves in order. It
// supplies the "tree order" of alignment rows.
package tree

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parser modes.
type mode int

const (
	normal mode = iota
	length
	comment
)

// Tree is a rooted tree.
type Tree struct {
	*Node
	nNodes int
	leaves []*Node
}

// NNodes returns the number of nodes, the root included.
func (tree *Tree) NNodes() int {
	if tree.nNodes == 0 {
		tree.nNodes = tree.NSubNodes()
	}
	return tree.nNodes
}

// Leaves returns the terminal nodes from left to right.
func (tree *Tree) Leaves() []*Node {
	if tree.leaves == nil {
		tree.Walk(func(node *Node) {
			if node.IsTerminal() {
				tree.leaves = append(tree.leaves, node)
			}
		})
	}
	return tree.leaves
}

// NLeaves returns the number of terminal nodes.
func (tree *Tree) NLeaves() int {
	return len(tree.Leaves())
}

// Order calls visit for every leaf from left to right with its
// position, starting at 1.
func (tree *Tree) Order(visit func(leaf *Node, nr int)) {
	for i, leaf := range tree.Leaves() {
		visit(leaf, i+1)
	}
}

// Node is a tree node. Leaves carry the sequence names.
type Node struct {
	Name         string
	BranchLength float64
	Parent       *Node
	childNodes   []*Node
	Id           int
}

// NewNode creates a node with an id.
func NewNode(parent *Node, nodeId int) (node *Node) {
	node = &Node{Parent: parent, Id: nodeId}
	return
}

// AddChild appends a child node.
func (node *Node) AddChild(subNode *Node) {
	subNode.Parent = node
	node.childNodes = append(node.childNodes, subNode)
}

// String formats the subtree in Newick format.
func (node *Node) String() (s string) {
	if node.IsTerminal() {
		return fmt.Sprintf("%s:%0.6f", node.Name, node.BranchLength)
	}
	s += "("
	for i, child := range node.childNodes {
		s += child.String()
		if i != len(node.childNodes)-1 {
			s += ","
		}
	}
	s += ")" + node.Name
	if node.IsRoot() {
		return s + ";"
	}
	return s + fmt.Sprintf(":%0.6f", node.BranchLength)
}

// ChildNodes returns the children of a node.
func (node *Node) ChildNodes() []*Node {
	return node.childNodes
}

// Walk visits the subtree depth first, parents before children and
// children from left to right.
func (node *Node) Walk(visit func(*Node)) {
	visit(node)
	for _, child := range node.childNodes {
		child.Walk(visit)
	}
}

// NSubNodes counts the nodes of the subtree.
func (node *Node) NSubNodes() (size int) {
	for _, node := range node.childNodes {
		size += node.NSubNodes()
	}
	return size + 1
}

// IsRoot tests if the node has no parent.
func (node *Node) IsRoot() bool {
	return node.Parent == nil
}

// IsTerminal tests if the node is a leaf.
func (node *Node) IsTerminal() bool {
	return len(node.childNodes) == 0
}

// IsSpecial tests if a rune is a Newick punctuation symbol.
func IsSpecial(c rune) bool {
	switch c {
	case '(', ')', ':', ';', ',', '[', ']':
		return true
	}
	return false
}

// NewickSplit is a bufio.SplitFunc returning Newick tokens.
func NewickSplit(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	// Skip leading spaces; and return 1-char tokens.
	for width := 0; start < len(data); start += width {
		var r rune
		r, width = utf8.DecodeRune(data[start:])
		if IsSpecial(r) {
			return start + width, data[start : start+width], nil
		}
		if !unicode.IsSpace(r) {
			break
		}
	}
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	// Scan until space or special character.
	for width, i := 0, start; i < len(data); i += width {
		var r rune
		r, width = utf8.DecodeRune(data[i:])
		if unicode.IsSpace(r) || IsSpecial(r) {
			return i, data[start:i], nil
		}
	}
	// A final word without a terminator.
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	// Request more data.
	return 0, nil, nil
}

// ParseNewick reads a tree in Newick format. Bracketed comments are
// skipped and quotes around names are removed.
func ParseNewick(rd io.Reader) (tree *Tree, err error) {
	scanner := bufio.NewScanner(rd)
	scanner.Split(NewickSplit)

	nodeId := 0
	node := NewNode(nil, nodeId)
	tree = &Tree{Node: node}
	nodeId++

	m := normal
	depth := 0

	for scanner.Scan() {
		text := scanner.Text()
		if m == comment {
			if text == "]" {
				m = normal
			}
			continue
		}
		switch text {
		case "(":
			subNode := NewNode(nil, nodeId)
			nodeId++
			node.AddChild(subNode)
			node = subNode
			depth++
		case ",":
			if node.Parent == nil {
				return nil, errors.New("top level comma mismatch")
			}
			subNode := NewNode(nil, nodeId)
			nodeId++
			node.Parent.AddChild(subNode)
			node = subNode
		case ")":
			if node.Parent == nil {
				return nil, errors.New("brackets mismatch")
			}
			node = node.Parent
			depth--
		case "[":
			m = comment
		case "]":
			return nil, errors.New("unexpected ]")
		case ":":
			m = length
		case ";":
			if depth != 0 {
				return nil, errors.New("brackets mismatch")
			}
			return tree, nil
		default:
			if m == length {
				l, err := strconv.ParseFloat(text, 64)
				if err != nil {
					return nil, fmt.Errorf("branch length %q: %w", text, err)
				}
				node.BranchLength = l
				m = normal
				continue
			}
			node.Name = strings.Trim(text, "'\"")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if depth != 0 {
		return nil, errors.New("brackets mismatch")
	}
	return tree, nil
}

// ReadNewickFile parses the first tree of a file.
func ReadNewickFile(fname string) (*Tree, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ParseNewick(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return t, nil
}
