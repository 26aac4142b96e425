package ccg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedDerivation is returned for derivation text that does not
// form a tree of T and L nodes.
var ErrMalformedDerivation = errors.New("malformed derivation")

// Node is a node of a CCG derivation: a *Tree or a *Leaf.
type Node interface {
	Category() Category
	isNode()
}

// Tree is an internal node with one or two children.
type Tree struct {
	Cat      Category
	Head     int
	Children []Node
}

// Leaf is a lexical node.
type Leaf struct {
	Cat     Category
	POS     string // modified POS tag
	OrigPOS string
	Word    string
	PredArg string
	// Index is the position of the word in the sentence, from 0.
	Index int
}

func (t *Tree) Category() Category { return t.Cat }
func (l *Leaf) Category() Category { return l.Cat }

func (*Tree) isNode() {}
func (*Leaf) isNode() {}

// Leaves returns the leaves of n from left to right.
func Leaves(n Node) []*Leaf {
	var out []*Leaf
	var walk func(Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case *Leaf:
			out = append(out, n)
		case *Tree:
			for _, c := range n.Children {
				walk(c)
			}
		}
	}
	walk(n)
	return out
}

// Sentence joins the words of n with single spaces.
func Sentence(n Node) string {
	leaves := Leaves(n)
	words := make([]string, len(leaves))
	for i, l := range leaves {
		words[i] = l.Word
	}
	return strings.Join(words, " ")
}

// ParseDerivation reads a derivation in CCGbank AUTO format:
//
//	(<T S[dcl] 0 2> (<L NP NNP NNP John N>) (<L S[dcl]\NP VBZ VBZ runs S[dcl]\NP>))
func ParseDerivation(s string) (Node, error) {
	p := &treeParser{src: s}
	n, err := p.node()
	if err != nil {
		return nil, err
	}
	p.skip()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected %q after derivation", p.src[p.pos:])
	}
	return n, nil
}

type treeParser struct {
	src    string
	pos    int
	leaves int
}

func (p *treeParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", ErrMalformedDerivation, fmt.Sprintf(format, args...), p.pos)
}

func (p *treeParser) skip() {
	for p.pos < len(p.src) && strings.ContainsRune(" \t\r\n", rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *treeParser) node() (Node, error) {
	p.skip()
	if !strings.HasPrefix(p.src[p.pos:], "(<") {
		return nil, p.errorf("expected '(<'")
	}
	p.pos += 2
	if strings.HasPrefix(p.src[p.pos:], "L") {
		return p.leaf()
	}
	if !strings.HasPrefix(p.src[p.pos:], "T") {
		return nil, p.errorf("expected T or L node")
	}
	end := strings.IndexByte(p.src[p.pos:], '>')
	if end < 0 {
		return nil, p.errorf("unterminated node header")
	}
	fields := strings.Fields(p.src[p.pos : p.pos+end])
	p.pos += end + 1
	if len(fields) != 4 {
		return nil, p.errorf("T node needs 3 fields, got %d", len(fields)-1)
	}
	cat, err := Parse(fields[1])
	if err != nil {
		return nil, err
	}
	head, err1 := strconv.Atoi(fields[2])
	count, err2 := strconv.Atoi(fields[3])
	if err1 != nil || err2 != nil {
		return nil, p.errorf("bad head or child count in %q", strings.Join(fields, " "))
	}
	t := &Tree{Cat: cat, Head: head}
	for {
		p.skip()
		if p.pos >= len(p.src) {
			return nil, p.errorf("unterminated T node %s", cat)
		}
		if p.src[p.pos] == ')' {
			p.pos++
			break
		}
		c, err := p.node()
		if err != nil {
			return nil, err
		}
		t.Children = append(t.Children, c)
	}
	if len(t.Children) != count || count < 1 || count > 2 {
		return nil, p.errorf("T node %s declares %d children, has %d", cat, count, len(t.Children))
	}
	return t, nil
}

func (p *treeParser) leaf() (Node, error) {
	end := strings.Index(p.src[p.pos:], ">)")
	if end < 0 {
		return nil, p.errorf("unterminated leaf")
	}
	fields := strings.Fields(p.src[p.pos : p.pos+end])
	p.pos += end + 2
	if len(fields) != 6 {
		return nil, p.errorf("L node needs 5 fields, got %d", len(fields)-1)
	}
	cat, err := Parse(fields[1])
	if err != nil {
		return nil, err
	}
	l := &Leaf{
		Cat:     cat,
		POS:     fields[2],
		OrigPOS: fields[3],
		Word:    fields[4],
		PredArg: fields[5],
		Index:   p.leaves,
	}
	p.leaves++
	return l, nil
}
