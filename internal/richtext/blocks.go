package richtext

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Command is a formatting toggle offered by the editor toolbar.
type Command string

const (
	Bold        Command = "bold"
	Italic      Command = "italic"
	Underline   Command = "underline"
	Strike      Command = "strike"
	Heading2    Command = "h2"
	Heading3    Command = "h3"
	BulletList  Command = "bulletList"
	OrderedList Command = "orderedList"
	Blockquote  Command = "blockquote"
)

// Commands lists every toolbar command in display order.
var Commands = []Command{Bold, Italic, Underline, Strike, Heading2, Heading3, BulletList, OrderedList, Blockquote}

// marks maps inline commands to the element they wrap with, plus equivalent
// elements that count as already applied.
var marks = map[Command][]atom.Atom{
	Bold:      {atom.Strong, atom.B},
	Italic:    {atom.Em, atom.I},
	Underline: {atom.U},
	Strike:    {atom.S, atom.Strike, atom.Del},
}

var blockCommands = map[Command]atom.Atom{
	Heading2:    atom.H2,
	Heading3:    atom.H3,
	BulletList:  atom.Ul,
	OrderedList: atom.Ol,
	Blockquote:  atom.Blockquote,
}

// Valid reports whether c is a known command.
func (c Command) Valid() bool {
	_, inline := marks[c]
	_, block := blockCommands[c]
	return inline || block
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.H1, atom.H2, atom.H3, atom.H4, atom.Ul, atom.Ol, atom.Blockquote, atom.Pre, atom.Hr:
		return true
	default:
		return false
	}
}

func isBlank(n *html.Node) bool {
	return n.Type == html.TextNode && strings.TrimSpace(n.Data) == ""
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
}

func moveChildren(from, to *html.Node) {
	for c := from.FirstChild; c != nil; {
		next := c.NextSibling
		from.RemoveChild(c)
		to.AppendChild(c)
		c = next
	}
}

func detach(n *html.Node) *html.Node {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	return n
}

// parseBlocks sanitizes s and returns its top-level blocks. Loose inline
// content is gathered into paragraphs.
func parseBlocks(s string) []*html.Node {
	nodes, err := parseFragment(Sanitize(s))
	if err != nil {
		return nil
	}
	return groupInline(nodes)
}

func groupInline(nodes []*html.Node) []*html.Node {
	var out []*html.Node
	var para *html.Node
	for _, n := range nodes {
		detach(n)
		if n.Type == html.ElementNode && isBlock(n.DataAtom) {
			para = nil
			out = append(out, n)
			continue
		}
		if para == nil {
			if isBlank(n) {
				continue
			}
			para = element(atom.P)
			out = append(out, para)
		}
		para.AppendChild(n)
	}
	return out
}

func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// paragraphs flattens a block into plain paragraphs, keeping inline content.
func paragraphs(n *html.Node) []*html.Node {
	switch n.DataAtom {
	case atom.Ul, atom.Ol:
		var out []*html.Node
		for _, li := range children(n) {
			if li.DataAtom != atom.Li {
				continue
			}
			p := element(atom.P)
			moveChildren(li, p)
			out = append(out, p)
		}
		return out
	case atom.Blockquote:
		var out []*html.Node
		for _, b := range groupInline(children(n)) {
			out = append(out, paragraphs(b)...)
		}
		return out
	case atom.P, atom.H1, atom.H2, atom.H3, atom.H4:
		p := element(atom.P)
		moveChildren(n, p)
		return []*html.Node{p}
	default:
		return []*html.Node{n}
	}
}

func retag(n *html.Node, a atom.Atom) *html.Node {
	if n.DataAtom == atom.P {
		n.Data = a.String()
		n.DataAtom = a
	}
	return n
}

func toggleBlock(block *html.Node, target atom.Atom) []*html.Node {
	switch target {
	case atom.H2, atom.H3:
		if block.DataAtom == target {
			return paragraphs(block)
		}
		ps := paragraphs(block)
		for _, p := range ps {
			retag(p, target)
		}
		return ps
	case atom.Ul, atom.Ol:
		if block.DataAtom == target {
			return paragraphs(block)
		}
		if block.DataAtom == atom.Ul || block.DataAtom == atom.Ol {
			block.Data = target.String()
			block.DataAtom = target
			return []*html.Node{block}
		}
		list := element(target)
		for _, p := range paragraphs(block) {
			li := element(atom.Li)
			if p.DataAtom == atom.P {
				moveChildren(p, li)
			} else {
				li.AppendChild(detach(p))
			}
			list.AppendChild(li)
		}
		return []*html.Node{list}
	case atom.Blockquote:
		if block.DataAtom == atom.Blockquote {
			return paragraphs(block)
		}
		q := element(atom.Blockquote)
		for _, p := range paragraphs(block) {
			q.AppendChild(detach(p))
		}
		return []*html.Node{q}
	}
	return []*html.Node{block}
}

// markTargets returns the elements whose inline content a mark applies to.
func markTargets(block *html.Node) []*html.Node {
	switch block.DataAtom {
	case atom.P, atom.H1, atom.H2, atom.H3, atom.H4, atom.Li:
		return []*html.Node{block}
	case atom.Ul, atom.Ol, atom.Blockquote:
		var out []*html.Node
		for _, c := range children(block) {
			if c.Type == html.ElementNode {
				out = append(out, markTargets(c)...)
			}
		}
		return out
	default:
		return nil
	}
}

// wrappedIn returns the single mark element wrapping all of n's content, if any.
func wrappedIn(n *html.Node, kinds []atom.Atom) *html.Node {
	var only *html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isBlank(c) {
			continue
		}
		if only != nil {
			return nil
		}
		only = c
	}
	if only == nil || only.Type != html.ElementNode {
		return nil
	}
	for _, k := range kinds {
		if only.DataAtom == k {
			return only
		}
	}
	return nil
}

func markActive(block *html.Node, kinds []atom.Atom) bool {
	targets := markTargets(block)
	if len(targets) == 0 {
		return false
	}
	for _, t := range targets {
		if wrappedIn(t, kinds) == nil {
			return false
		}
	}
	return true
}

func toggleMark(block *html.Node, kinds []atom.Atom) {
	targets := markTargets(block)
	if markActive(block, kinds) {
		for _, t := range targets {
			w := wrappedIn(t, kinds)
			for c := w.FirstChild; c != nil; {
				next := c.NextSibling
				w.RemoveChild(c)
				t.InsertBefore(c, w)
				c = next
			}
			t.RemoveChild(w)
		}
		return
	}
	for _, t := range targets {
		if wrappedIn(t, kinds) != nil || t.FirstChild == nil {
			continue
		}
		w := element(kinds[0])
		moveChildren(t, w)
		t.AppendChild(w)
	}
}
