package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Attr returns the value of key on n, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether n carries key, with or without a value.
func HasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

// HasClass reports whether class is in n's class list.
func HasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(Attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass appends class to n's class list if it is not already there.
func AddClass(n *html.Node, class string) {
	if HasClass(n, class) {
		return
	}
	for i, a := range n.Attr {
		if a.Key == "class" {
			if strings.TrimSpace(a.Val) == "" {
				n.Attr[i].Val = class
			} else {
				n.Attr[i].Val = a.Val + " " + class
			}
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
}
