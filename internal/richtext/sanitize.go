// Package richtext holds the HTML body of blog posts: an allow-list
// sanitizer, a block-level editor with bounded undo history, and markdown import.
package richtext

import (
	"bytes"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// allowedTags are kept with their children; other elements are unwrapped.
var allowedTags = map[atom.Atom]bool{
	atom.P: true, atom.Br: true, atom.Strong: true, atom.B: true, atom.Em: true, atom.I: true,
	atom.U: true, atom.S: true, atom.Strike: true, atom.Del: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Blockquote: true,
	atom.A: true, atom.Code: true, atom.Pre: true, atom.Img: true, atom.Hr: true,
}

// droppedTags are removed along with everything inside them.
var droppedTags = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Iframe: true, atom.Object: true,
	atom.Embed: true, atom.Noscript: true, atom.Template: true, atom.Form: true,
	atom.Head: true, atom.Title: true, atom.Meta: true, atom.Link: true,
}

var allowedAttrs = map[atom.Atom][]string{
	atom.A:   {"href", "title"},
	atom.Img: {"src", "alt", "title"},
}

// Sanitize parses s as an HTML fragment and re-renders it keeping only the
// allow-listed tags and attributes. Links and images keep http, https, mailto
// and relative URLs only.
func Sanitize(s string) string {
	nodes, err := parseFragment(s)
	if err != nil {
		return html.EscapeString(s)
	}
	var out []*html.Node
	for _, n := range nodes {
		out = append(out, clean(n)...)
	}
	return render(out)
}

func parseFragment(s string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	return html.ParseFragment(strings.NewReader(s), ctx)
}

// clean returns the sanitized replacement of n: itself, its cleaned children
// when n is unwrapped, or nothing.
func clean(n *html.Node) []*html.Node {
	switch n.Type {
	case html.TextNode:
		return []*html.Node{{Type: html.TextNode, Data: n.Data}}
	case html.ElementNode:
	default:
		return nil
	}

	if droppedTags[n.DataAtom] {
		return nil
	}
	var kids []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		kids = append(kids, clean(c)...)
	}
	if !allowedTags[n.DataAtom] {
		return kids
	}

	el := &html.Node{Type: html.ElementNode, Data: n.DataAtom.String(), DataAtom: n.DataAtom}
	for _, a := range n.Attr {
		if a.Namespace != "" || !attrAllowed(n.DataAtom, a.Key) {
			continue
		}
		if (a.Key == "href" || a.Key == "src") && !safeURL(a.Val) {
			continue
		}
		el.Attr = append(el.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	if n.DataAtom == atom.A {
		el.Attr = append(el.Attr, html.Attribute{Key: "rel", Val: "noopener noreferrer"})
	}
	if n.DataAtom == atom.Img && !hasAttr(el, "src") {
		return nil
	}
	for _, k := range kids {
		el.AppendChild(k)
	}
	return []*html.Node{el}
}

func attrAllowed(tag atom.Atom, key string) bool {
	for _, k := range allowedAttrs[tag] {
		if k == key {
			return true
		}
	}
	return false
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func safeURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto":
		return true
	default:
		return false
	}
}

func render(nodes []*html.Node) string {
	var buf bytes.Buffer
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		_ = html.Render(&buf, n)
	}
	return buf.String()
}

// PlainText returns the text content of an HTML fragment with whitespace collapsed.
func PlainText(s string) string {
	nodes, err := parseFragment(s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// IsEmpty reports whether s carries no visible text.
func IsEmpty(s string) bool {
	return PlainText(s) == ""
}
