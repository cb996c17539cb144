package suggest

// ToolSpec is an immutable description of one tool the engine can suggest.
// Name and Description are required; everything else is optional context
// that feeds indexing or passes through to results unchanged, except
// Locales, which the engine accepts but does not read.
type ToolSpec struct {
	Name        string         `validate:"required" yaml:"name" toml:"name"`
	Description string         `validate:"required" yaml:"description" toml:"description"`
	Keywords    []string       `yaml:"keywords" toml:"keywords"`
	Aliases     []string       `yaml:"aliases" toml:"aliases"`
	Tags        []string       `yaml:"tags" toml:"tags"`
	ArgsSchema  map[string]any `yaml:"args_schema" toml:"args_schema"`
	Locales     []string       `yaml:"locales" toml:"locales"`
}

// reservedKinds are name prefixes that mark a ToolSpec as an "mcp"-kind tool
// at output time; every other tool is kind "tool". This is a naming
// convention read off ToolSpec.Name, not a stored field.
var reservedKinds = []string{"db.", "api.", "mcp.", "filesystem."}

func kindOf(name string) string {
	for _, prefix := range reservedKinds {
		if len(name) >= len(prefix) && name[:len(prefix)] == prefix {
			return "mcp"
		}
	}
	return "tool"
}

// Suggestion is one ranked result returned by submit/feed.
type Suggestion struct {
	ID                string         `json:"id"`
	Kind              string         `json:"kind"`
	Score             float64        `json:"score"`
	Label             string         `json:"label"`
	Reason            string         `json:"reason"`
	ArgumentsTemplate map[string]any `json:"arguments_template,omitempty"`
	Metadata          Metadata       `json:"metadata"`
}

// Metadata carries catalog context alongside a Suggestion that isn't part
// of the ranking itself.
type Metadata struct {
	Tags []string `json:"tags,omitempty"`
}
