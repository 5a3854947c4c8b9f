package parsing

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlTagRe = regexp.MustCompile(`(?i)<(?:html|body|div|p|br|li|ul|h[1-6]|span|table|section)\b`)

// LooksLikeHTML reports whether text appears to be an HTML document or fragment
// rather than plain text.
func LooksLikeHTML(text string) bool {
	head := text
	if len(head) > 4096 {
		head = head[:4096]
	}
	return len(htmlTagRe.FindAllStringIndex(head, 3)) >= 2 ||
		strings.HasPrefix(strings.ToLower(strings.TrimSpace(head)), "<!doctype html")
}

// HTMLToText converts an HTML resume into plain text, keeping one line per block element
// so that section headers survive.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &HTMLError{Message: "failed to parse HTML", Cause: err}
	}

	doc.Find("script, style, noscript, head, nav").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").PrependHtml("• ")
	doc.Find("p, div, li, tr, h1, h2, h3, h4, h5, h6, section, article, header, footer, ul, ol, table").
		AfterHtml("\n")
	doc.Find("h1, h2, h3, h4, h5, h6, section").BeforeHtml("\n")

	body := doc.Find("body")
	if body.Length() == 0 {
		return CleanText(doc.Text()), nil
	}
	return CleanText(body.Text()), nil
}
