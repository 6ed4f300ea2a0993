package reddit

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// flattenHTML turns a rendered (and entity-escaped) Reddit body into plain
// text, one block element per line, so markup and link targets never reach
// ticker extraction.
func flattenHTML(escaped string) string {
	unescaped := html.UnescapeString(escaped)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(unescaped))
	if err != nil {
		return unescaped
	}

	var blocks []string
	doc.Find("p, li, h1, h2, h3, h4, pre").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			blocks = append(blocks, text)
		}
	})

	if len(blocks) == 0 {
		return strings.TrimSpace(doc.Text())
	}
	return strings.Join(blocks, "\n")
}
