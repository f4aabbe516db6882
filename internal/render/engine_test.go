package render

import (
	"strings"
	"testing"
)

func TestRenderPlus1Helper(t *testing.T) {
	engine := NewEngine()
	out, err := engine.Render(`{{#each items}}{{plus1 @index}}. {{this}} {{/each}}`, map[string]interface{}{
		"items": []string{"a", "b", "c"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "1. a 2. b 3. c " {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRenderEscapesByDefault(t *testing.T) {
	engine := NewEngine()
	out, err := engine.Render(`{{value}}`, map[string]interface{}{"value": `<b>bold</b>`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<b>") {
		t.Fatalf("expected escaped output, got %q", out)
	}
}

func TestRenderTripleStashPassesHTMLThrough(t *testing.T) {
	engine := NewEngine()
	out, err := engine.Render(`{{{value}}}`, map[string]interface{}{"value": `<section class="x">hi</section>`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != `<section class="x">hi</section>` {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRenderHelperIsPerTemplate(t *testing.T) {
	engine := NewEngine()
	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := engine.Render(`{{plus1 n}}`, map[string]interface{}{"n": 1})
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent render: %v", err)
		}
	}
}

func TestRenderParseError(t *testing.T) {
	engine := NewEngine()
	if _, err := engine.Render(`{{#each items}}no close`, nil); err == nil {
		t.Fatal("expected parse error")
	}
}
