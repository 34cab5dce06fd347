package content

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

var policy = newHTMLPolicy()

func newHTMLPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("figure", "figcaption")
	p.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span")
	p.AllowAttrs("loading").OnElements("img")
	p.RequireNoFollowOnLinks(true)
	return p
}

// HTML renders markdown source to sanitized HTML safe for template embedding.
// Long-form catalog prose and CMS page bodies pass through here; raw HTML in
// the source survives only where the sanitation policy allows it.
func HTML(source string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		// Render the source as sanitized text rather than dropping it.
		return template.HTML(policy.Sanitize(template.HTMLEscapeString(source)))
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}

// SanitizeHTML applies the sanitation policy to pre-rendered HTML.
func SanitizeHTML(source string) template.HTML {
	return template.HTML(policy.Sanitize(source))
}
