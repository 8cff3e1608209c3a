package seo

import (
	"fmt"
	"strings"
)

// GenerateMetaTags formats title, description and keywords into an HTML
// head fragment with standard and Open Graph tags. Inputs are embedded
// verbatim; callers embedding the output in a page must sanitize first.
func GenerateMetaTags(title, description string, keywords []string) string {
	keywordsStr := strings.Join(keywords, ", ")
	return fmt.Sprintf(`<title>%s</title>
<meta name="description" content="%s">
<meta name="keywords" content="%s">
<meta property="og:title" content="%s">
<meta property="og:description" content="%s">
`, title, description, keywordsStr, title, description)
}
