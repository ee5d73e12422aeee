package praline

import (
	"os"
	"testing"

	"gopkg.in/yaml.v3"
)

// The served document is read from disk at runtime, so at minimum it has to
// parse and still describe every route the router registers.
func TestOpenAPIDocumentCoversRoutes(t *testing.T) {
	data, err := os.ReadFile("openapi.yaml")
	if err != nil {
		t.Fatalf("read openapi.yaml: %v", err)
	}

	var doc struct {
		OpenAPI string                    `yaml:"openapi"`
		Paths   map[string]map[string]any `yaml:"paths"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("openapi.yaml does not parse: %v", err)
	}
	if doc.OpenAPI == "" {
		t.Fatalf("missing openapi version")
	}

	want := map[string][]string{
		"/images/album/{album}":         {"post", "get"},
		"/images/album/{album}/starred": {"get", "patch"},
		"/images/{id}":                  {"get", "delete"},
		"/healthz":                      {"get"},
		"/readyz":                       {"get"},
	}
	for path, methods := range want {
		ops, ok := doc.Paths[path]
		if !ok {
			t.Fatalf("openapi.yaml missing path %s", path)
		}
		for _, m := range methods {
			if _, ok := ops[m]; !ok {
				t.Fatalf("openapi.yaml missing %s %s", m, path)
			}
		}
	}
}
