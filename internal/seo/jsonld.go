package seo

import (
	"encoding/json"
	"html/template"
)

// JSONLD renders a structured-data object as a safe <script> payload.
// Marshal failures degrade to an empty object rather than breaking the page.
func JSONLD(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return template.JS("{}")
	}
	return template.JS(b)
}

// Organization describes the site publisher.
func Organization() map[string]any {
	return map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     siteName,
		"url":      defaultURL,
	}
}

// WebSite describes the site with its search action.
func WebSite() map[string]any {
	return map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     siteName,
		"url":      defaultURL,
		"potentialAction": map[string]any{
			"@type":       "SearchAction",
			"target":      defaultURL + "/?q={search_term_string}",
			"query-input": "required name=search_term_string",
		},
	}
}

// Article describes a single miracle detail page.
func Article(title, description, path, image, published, modified string) map[string]any {
	doc := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Article",
		"headline":    title,
		"description": description,
		"url":         defaultURL + path,
		"publisher":   Organization(),
	}
	if image != "" {
		doc["image"] = image
	}
	if published != "" {
		doc["datePublished"] = published
	}
	if modified != "" {
		doc["dateModified"] = modified
	}
	return doc
}
