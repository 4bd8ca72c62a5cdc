package converter

import (
	"regexp"
	"strings"
)

// Markup stripping is a deliberately naive linear pass, not an HTML parser.
// The replacement order matters and is part of the contract; a real parser
// would change the output for malformed markup.
var (
	scriptBlockPattern = regexp.MustCompile(`(?s)<script.*?</script>`)
	styleBlockPattern  = regexp.MustCompile(`(?s)<style.*?</style>`)
	brTagPattern       = regexp.MustCompile(`<br\s*/?>`)
	pTagPattern        = regexp.MustCompile(`<p.*?>`)
	headingTagPattern  = regexp.MustCompile(`<h[1-6].*?>`)
	divTagPattern      = regexp.MustCompile(`<div.*?>`)
	anyTagPattern      = regexp.MustCompile(`<.*?>`)
	blankRunPattern    = regexp.MustCompile(`\n\s*\n`)
)

// StripMarkup reduces an (X)HTML content document to plain text. Script and
// style blocks are dropped whole, block-boundary tags become newlines, all
// remaining tags are removed, four common entities are decoded, and runs of
// blank lines collapse to a single blank line. The transform is idempotent
// on entity-free output; decoded &lt;/&gt; entities can reintroduce markup
// that a second pass would strip.
func StripMarkup(html string) string {
	html = scriptBlockPattern.ReplaceAllString(html, "")
	html = styleBlockPattern.ReplaceAllString(html, "")

	html = brTagPattern.ReplaceAllString(html, "\n")
	html = pTagPattern.ReplaceAllString(html, "\n")
	html = headingTagPattern.ReplaceAllString(html, "\n")
	html = divTagPattern.ReplaceAllString(html, "\n")

	html = anyTagPattern.ReplaceAllString(html, "")

	html = strings.ReplaceAll(html, "&nbsp;", " ")
	html = strings.ReplaceAll(html, "&amp;", "&")
	html = strings.ReplaceAll(html, "&lt;", "<")
	html = strings.ReplaceAll(html, "&gt;", ">")

	html = blankRunPattern.ReplaceAllString(html, "\n\n")
	return strings.TrimSpace(html)
}
