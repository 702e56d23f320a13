package telegraph

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Node is one element of Telegraph's content tree: either a string or an
// element with a tag, attributes and children.
type Node any

// Element is a tagged Telegraph node.
type Element struct {
	Tag      string            `json:"tag"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []Node            `json:"children,omitempty"`
}

// allowedTags are the tags Telegraph accepts in page content.
var allowedTags = map[string]bool{
	"a": true, "aside": true, "b": true, "blockquote": true, "br": true,
	"code": true, "em": true, "figcaption": true, "figure": true, "h3": true,
	"h4": true, "hr": true, "i": true, "iframe": true, "img": true, "li": true,
	"ol": true, "p": true, "pre": true, "s": true, "strong": true, "u": true,
	"ul": true, "video": true,
}

// ToNodes parses an HTML fragment into Telegraph nodes. Tags Telegraph does
// not support are replaced by their children.
func ToNodes(fragment string) ([]Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	parsed, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}

	var nodes []Node
	for _, n := range parsed {
		nodes = append(nodes, convert(n)...)
	}
	return nodes, nil
}

func convert(n *html.Node) []Node {
	switch n.Type {
	case html.TextNode:
		if n.Data == "" {
			return nil
		}
		return []Node{n.Data}
	case html.ElementNode:
		var children []Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			children = append(children, convert(c)...)
		}
		if !allowedTags[n.Data] {
			return children
		}
		el := Element{Tag: n.Data, Children: children}
		for _, a := range n.Attr {
			if a.Key == "href" || a.Key == "src" {
				if el.Attrs == nil {
					el.Attrs = make(map[string]string)
				}
				el.Attrs[a.Key] = a.Val
			}
		}
		return []Node{el}
	}
	return nil
}
