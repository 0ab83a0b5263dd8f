// Package layer merges configuration sources by priority.
//
// Higher priority layers override values from lower priority layers. Maps
// are merged key by key; any other value replaces the lower one.
package layer

// Source indicates where a configuration layer came from.
type Source uint8

const (
	// SourceBuiltin is the built-in defaults.
	SourceBuiltin Source = iota
	// SourceFile is a TOML configuration file.
	SourceFile
	// SourceDotEnv is a .env file.
	SourceDotEnv
	// SourceEnv is the process environment.
	SourceEnv
	// SourceArgs is command-line flags.
	SourceArgs
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "builtin"
	case SourceFile:
		return "file"
	case SourceDotEnv:
		return "dotenv"
	case SourceEnv:
		return "env"
	case SourceArgs:
		return "args"
	default:
		return "unknown"
	}
}

// Priority of each source. Higher values override lower values.
const (
	PriorityBuiltin = 0
	PriorityFile    = 100
	PriorityDotEnv  = 400
	PriorityEnv     = 500
	PriorityArgs    = 600
)

// DefaultPriority returns the priority for a source.
func DefaultPriority(source Source) int {
	switch source {
	case SourceFile:
		return PriorityFile
	case SourceDotEnv:
		return PriorityDotEnv
	case SourceEnv:
		return PriorityEnv
	case SourceArgs:
		return PriorityArgs
	default:
		return PriorityBuiltin
	}
}

// Layer is one configuration source.
type Layer struct {
	// Name identifies the layer.
	Name string
	// Priority determines merge order (higher overrides lower).
	Priority int
	// Source indicates where this layer was loaded from.
	Source Source
	// Path is the file path, if loaded from a file.
	Path string
	// Data holds the configuration values as a nested map.
	Data map[string]any
}

// NewLayer creates a layer with the default priority of its source.
func NewLayer(name string, source Source, data map[string]any) *Layer {
	if data == nil {
		data = make(map[string]any)
	}
	return &Layer{
		Name:     name,
		Source:   source,
		Priority: DefaultPriority(source),
		Data:     data,
	}
}
