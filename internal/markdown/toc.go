package markdown

import (
	"strings"

	"golang.org/x/net/html"
)

// Heading is a table-of-contents entry extracted from rendered HTML.
type Heading struct {
	ID    string
	Text  string
	Level int // 2 for h2, 3 for h3
}

// ExtractHeadings walks rendered HTML and collects h2/h3 headings that carry
// an id attribute. Headings without IDs cannot be linked and are skipped.
func ExtractHeadings(body string) []Heading {
	node, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil
	}
	var out []Heading
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			var level int
			switch n.Data {
			case "h2":
				level = 2
			case "h3":
				level = 3
			}
			if level != 0 {
				id := attr(n, "id")
				if id != "" {
					out = append(out, Heading{
						ID:    id,
						Text:  strings.TrimSpace(textContent(n)),
						Level: level,
					})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return out
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}
