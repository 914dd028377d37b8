package adapter

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// cleanText collapses runs of whitespace (including non-breaking spaces)
// into single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// anchorText joins the trimmed text nodes under the selection with single
// spaces, so "<a><b>Data</b><i>Analyst</i></a>" reads "Data Analyst".
func anchorText(s *goquery.Selection) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return cleanText(strings.Join(parts, " "))
}

// resolveLink returns href unchanged when it is already absolute (http or
// https), otherwise resolves it against base.
func resolveLink(base *url.URL, href string) string {
	if strings.HasPrefix(href, "http") || base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
