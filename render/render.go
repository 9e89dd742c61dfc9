// Package render defines the renderer capability surface consumed by the
// validation engine. Renderers are supplied by the caller; the engine only
// checks registry membership and, during smoke tests, invokes entries.
package render

// Renderer produces markup for one component instance.
type Renderer func(instance map[string]any, rctx *Context) (string, error)

// Registry maps component-type names to renderers.
type Registry map[string]Renderer

// Context is the minimal rendering context handed to renderers during smoke
// tests.
type Context struct {
	// Asset resolves an asset path to a servable URL.
	Asset func(path string) string
	// Scope is an empty mutable scratch area shared with the renderer.
	Scope map[string]any
}

// NewContext returns a context with an identity asset resolver and an empty
// scope.
func NewContext() *Context {
	return &Context{
		Asset: func(path string) string { return path },
		Scope: map[string]any{},
	}
}
