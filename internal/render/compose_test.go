package render

import (
	"regexp"
	"strings"
	"testing"
)

func TestNewPackageIDShape(t *testing.T) {
	idPattern := regexp.MustCompile(`^\d{14}-[0-9a-f]{8}$`)
	id := NewPackageID()
	if !idPattern.MatchString(id) {
		t.Fatalf("unexpected id shape: %q", id)
	}
	if other := NewPackageID(); other == id {
		t.Fatalf("ids must not repeat: %q", id)
	}
}

func TestComposePackage(t *testing.T) {
	engine := NewEngine()
	tpl := `<h1>{{brochure.title}}</h1>` +
		`{{#if brochure.courseFirst}}` +
		`{{#each courses}}[C:{{title}}]{{/each}}{{#each instructors}}[I:{{name}}]{{/each}}` +
		`{{else}}` +
		`{{#each instructors}}[I:{{name}}]{{/each}}{{#each courses}}[C:{{title}}]{{/each}}` +
		`{{/if}}`

	meta := PackageMeta{
		Title:       "봄 학기 <브로셔>",
		CourseFirst: false,
		OutputMode:  "web",
	}
	courses := []map[string]interface{}{{"title": "Go 입문"}}
	instructors := []map[string]interface{}{{"name": "김강사"}}

	out, err := ComposePackage(engine, tpl, ".brochure { color: red; }", meta, courses, instructors)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Fatalf("expected standalone document, got %q", out[:40])
	}
	if !strings.Contains(out, "<title>봄 학기 &lt;브로셔&gt;</title>") {
		t.Fatalf("title not escaped: %q", out)
	}
	if !strings.Contains(out, ".brochure { color: red; }") {
		t.Fatal("template css missing")
	}
	if !strings.Contains(out, "@page") {
		t.Fatal("print helper css missing")
	}
	instructorAt := strings.Index(out, "[I:김강사]")
	courseAt := strings.Index(out, "[C:Go 입문]")
	if instructorAt < 0 || courseAt < 0 {
		t.Fatalf("sections missing: %q", out)
	}
	if instructorAt > courseAt {
		t.Fatal("instructor section should precede course section when courseFirst is false")
	}
}

func TestComposePackageBadTemplate(t *testing.T) {
	engine := NewEngine()
	if _, err := ComposePackage(engine, `{{#each`, "", PackageMeta{}, nil, nil); err == nil {
		t.Fatal("expected error for broken template")
	}
}
