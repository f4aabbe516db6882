package render

import (
	"fmt"
	"strconv"

	"github.com/mailgun/raymond/v2"
)

// Engine renders Handlebars sources. Helpers are registered on each parsed
// template instance, never on the process-global registry, so concurrent
// renders cannot interfere with each other.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) Render(source string, ctx interface{}) (string, error) {
	tpl, err := raymond.Parse(source)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}
	tpl.RegisterHelper("plus1", func(n int) string {
		return strconv.Itoa(n + 1)
	})
	out, err := tpl.Exec(ctx)
	if err != nil {
		return "", fmt.Errorf("exec template: %w", err)
	}
	return out, nil
}
