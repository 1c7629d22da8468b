package render

import (
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	iconClassPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	iconClassList    = regexp.MustCompile(`^[A-Za-z0-9_\- ]+$`)

	policyOnce  sync.Once
	stripPolicy *bluemonday.Policy
	labelPolicy *bluemonday.Policy
	svgPolicy   *bluemonday.Policy
)

// IsIconMarkup reports whether an icon value carries inline markup rather
// than class names.
func IsIconMarkup(raw string) bool {
	return strings.HasPrefix(strings.TrimSpace(raw), "<")
}

// SanitizeIcon returns the class list of an icon value with markup removed
// and every token outside [A-Za-z0-9_-] dropped.
func SanitizeIcon(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	policies()
	cleaned := stripPolicy.Sanitize(raw)
	var classes []string
	for _, class := range strings.Fields(cleaned) {
		if iconClassPattern.MatchString(class) {
			classes = append(classes, class)
		}
	}
	return strings.Join(classes, " ")
}

// SanitizeIconMarkup keeps inline SVG icon markup and strips everything else.
func SanitizeIconMarkup(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	policies()
	return strings.TrimSpace(svgPolicy.Sanitize(raw))
}

// SanitizeLabel returns label markup restricted to inline formatting
// elements. The result is safe to insert without escaping.
func SanitizeLabel(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	policies()
	return strings.TrimSpace(labelPolicy.Sanitize(raw))
}

func policies() {
	policyOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()

		labelPolicy = bluemonday.StrictPolicy()
		labelPolicy.AllowElements("b", "strong", "i", "em", "small", "sup", "sub", "abbr", "span", "br")
		labelPolicy.AllowAttrs("title").OnElements("abbr", "span")
		labelPolicy.AllowAttrs("class").Matching(iconClassList).OnElements("span", "i")

		svgPolicy = bluemonday.StrictPolicy()
		svgPolicy.AllowElements("svg", "g", "path", "circle", "rect", "line", "polyline", "polygon", "title")
		svgPolicy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke", "stroke-width",
			"aria-hidden", "role", "focusable", "class",
		).OnElements("svg")
		for _, el := range []string{"path", "circle", "rect", "line", "polyline", "polygon"} {
			svgPolicy.AllowAttrs(
				"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
				"points", "rx", "ry", "fill", "stroke", "stroke-width",
			).OnElements(el)
		}
	})
}
