package render

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html"
	"time"
)

// pdfPrintCSS is the fixed print-helper stylesheet appended to every
// composed package so the downstream PDF renderer paginates sections
// predictably.
const pdfPrintCSS = `
@page { size: A4; margin: 18mm 14mm; }
@media print {
  .brochure-section { page-break-inside: avoid; }
  .brochure-section + .brochure-section { page-break-before: always; }
  a { color: inherit; text-decoration: none; }
}
body { -webkit-print-color-adjust: exact; print-color-adjust: exact; }
`

// PackageMeta is the top-level template context under the "brochure" key.
type PackageMeta struct {
	Title              string
	Summary            string
	IncludeToc         bool
	IncludeCourses     bool
	IncludeInstructors bool
	CourseFirst        bool
	OutputMode         string
}

// NewPackageID returns a fresh package id: UTC timestamp plus a random hex
// suffix. Ids are never reused; a package is immutable once created.
func NewPackageID() string {
	suffix := make([]byte, 4)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("%s-%s", time.Now().UTC().Format("20060102150405"), hex.EncodeToString(suffix))
}

// ComposePackage runs the brochure template over the rendered sections and
// wraps the result in a standalone HTML document.
func ComposePackage(engine *Engine, templateHTML, templateCSS string, meta PackageMeta, courses, instructors []map[string]interface{}) (string, error) {
	ctx := map[string]interface{}{
		"brochure": map[string]interface{}{
			"title":              meta.Title,
			"summary":            meta.Summary,
			"includeToc":         meta.IncludeToc,
			"includeCourses":     meta.IncludeCourses,
			"includeInstructors": meta.IncludeInstructors,
			"courseFirst":        meta.CourseFirst,
			"outputMode":         meta.OutputMode,
		},
		"courses":     courses,
		"instructors": instructors,
	}
	body, err := engine.Render(templateHTML, ctx)
	if err != nil {
		return "", fmt.Errorf("render brochure template: %w", err)
	}
	return WrapDocument(meta.Title, body, templateCSS), nil
}

// WrapDocument produces the final standalone document: doctype, charset,
// template CSS plus the print-helper CSS, then the rendered body.
func WrapDocument(title, body, css string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
%s
%s
</style>
</head>
<body>
%s
</body>
</html>`, html.EscapeString(title), css, pdfPrintCSS, body)
}
