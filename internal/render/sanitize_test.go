package render

import "testing"

func TestSanitizeEmbeddedHTML(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "top level route rewritten",
			in:   `<a href="/courses">강의</a>`,
			want: `<a href="#">강의</a>`,
		},
		{
			name: "root rewritten",
			in:   `<a href="/">home</a>`,
			want: `<a href="#">home</a>`,
		},
		{
			name: "route with query rewritten",
			in:   `<a href="/my-documents?page=2">docs</a>`,
			want: `<a href="#">docs</a>`,
		},
		{
			name: "route with fragment rewritten",
			in:   `<a href="/templates#list">tpl</a>`,
			want: `<a href="#">tpl</a>`,
		},
		{
			name: "deep path untouched",
			in:   `<a href="/courses/123">detail</a>`,
			want: `<a href="/courses/123">detail</a>`,
		},
		{
			name: "external url untouched",
			in:   `<a href="https://example.com/courses">ext</a>`,
			want: `<a href="https://example.com/courses">ext</a>`,
		},
		{
			name: "fragment only untouched",
			in:   `<a href="#top">top</a>`,
			want: `<a href="#top">top</a>`,
		},
		{
			name: "single quoted route rewritten",
			in:   `<a href='/instructors'>강사</a>`,
			want: `<a href='#'>강사</a>`,
		},
		{
			name: "multiple anchors in one pass",
			in:   `<a href="/documents">a</a><a href="/static/logo.png">b</a>`,
			want: `<a href="#">a</a><a href="/static/logo.png">b</a>`,
		},
		{
			name: "non anchor text untouched",
			in:   `<p>visit /courses today</p>`,
			want: `<p>visit /courses today</p>`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SanitizeEmbeddedHTML(tc.in)
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
