package source

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanText turns an HTML fragment (post bodies often carry markup and
// entities) into plain, single-spaced text. Plain input is only re-spaced.
func CleanText(s string) string {
	if strings.ContainsAny(s, "<&") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			doc.Find("script, style").Remove()
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}
