package render

import (
	"regexp"
	"strings"
)

// Top-level SPA routes. A section template may carry navigation markup; links
// to these routes would navigate the host application out of the brochure/PDF
// rendering context, so they are rewritten to inert fragment links.
var appRoutes = map[string]bool{
	"/":             true,
	"/courses":      true,
	"/instructors":  true,
	"/documents":    true,
	"/my-documents": true,
	"/templates":    true,
}

var hrefPattern = regexp.MustCompile(`href\s*=\s*("([^"]*)"|'([^']*)')`)

// SanitizeEmbeddedHTML rewrites anchor hrefs that target a top-level
// application route to "#". The match is exact on the path after stripping
// query and fragment; deep paths, external urls and fragment-only links pass
// through unchanged. Single pass, no HTML parsing.
func SanitizeEmbeddedHTML(html string) string {
	return hrefPattern.ReplaceAllStringFunc(html, func(attr string) string {
		m := hrefPattern.FindStringSubmatch(attr)
		if m == nil {
			return attr
		}
		val := m[2]
		if val == "" {
			val = m[3]
		}
		if !isAppRoute(val) {
			return attr
		}
		quote := `"`
		if strings.Contains(attr, "'") && !strings.Contains(attr, `"`) {
			quote = "'"
		}
		return "href=" + quote + "#" + quote
	})
}

func isAppRoute(href string) bool {
	if href == "" || !strings.HasPrefix(href, "/") {
		return false
	}
	path := href
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return appRoutes[path]
}
