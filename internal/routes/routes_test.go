package routes

import (
	"strings"
	"testing"
)

func TestTableShape(t *testing.T) {
	for name, template := range Table {
		if !strings.HasPrefix(template, "/") {
			t.Errorf("route %q template %q does not start with /", name, template)
		}
		if strings.Contains(template, " ") {
			t.Errorf("route %q template %q contains whitespace", name, template)
		}
	}
}

func TestPathBuilders(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"article", ArticlePath("hello-world"), "/articles/hello-world"},
		{"category", CategoryPath("tech"), "/categories/tech"},
		{"tag", TagPath("go"), "/tags/go"},
		{"event", EventPath("42"), "/events/42"},
		{"profile", ProfilePath("jdoe"), "/profile/jdoe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestBuildersLeaveNoParameters(t *testing.T) {
	paths := []string{
		ArticlePath("a"), CategoryPath("b"), TagPath("c"),
		EventPath("d"), ProfilePath("e"),
	}
	for _, p := range paths {
		if strings.ContainsAny(p, "{}") {
			t.Errorf("built path %q still contains a parameter placeholder", p)
		}
	}
}
