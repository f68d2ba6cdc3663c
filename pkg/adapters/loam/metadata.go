package loam

// DocumentMetadata is the frontmatter (or whole body, for JSON and YAML
// files) of a workspace document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type DocumentMetadata struct {
	ID     string           `json:"id,omitempty" mapstructure:"id"`
	Title  string           `json:"title,omitempty" mapstructure:"title"`
	Layout map[string]any   `json:"layout,omitempty" mapstructure:"layout"`
	Traces []map[string]any `json:"traces,omitempty" mapstructure:"traces"`
	// Trace is shorthand for a single-trace document.
	Trace map[string]any `json:"trace,omitempty" mapstructure:"trace"`
}
