package search

import "fmt"

// Router maps a category identifier to the ordered list of sources to
// query. The mapping is fixed at construction time.
type Router struct {
	categories map[string][]Source
}

// NewRouter builds a router from a category -> source-name mapping and
// the set of available sources. Every category must resolve to at
// least one known source.
func NewRouter(categories map[string][]string, sources []Source) (*Router, error) {
	byName := make(map[string]Source, len(sources))
	for _, s := range sources {
		byName[s.Name()] = s
	}

	resolved := make(map[string][]Source, len(categories))
	for category, names := range categories {
		var list []Source
		for _, name := range names {
			src, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("category %q references unknown source %q", category, name)
			}
			list = append(list, src)
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("category %q has no sources", category)
		}
		resolved[category] = list
	}

	return &Router{categories: resolved}, nil
}

// Resolve returns the sources for a category, in configured order.
func (r *Router) Resolve(category string) ([]Source, error) {
	sources, ok := r.categories[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return sources, nil
}

// Categories lists the configured category identifiers.
func (r *Router) Categories() []string {
	out := make([]string, 0, len(r.categories))
	for c := range r.categories {
		out = append(out, c)
	}
	return out
}
