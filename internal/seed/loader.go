package seed

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultSet []byte

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Loader reads a seed set from a YAML file, or the embedded default set
// when no path is given.
type Loader struct {
	filePath string
}

// NewLoader creates a new seed loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the seed file
func (l *Loader) Load() (Set, error) {
	data := defaultSet
	if l.filePath != "" {
		var err error
		data, err = os.ReadFile(l.filePath)
		if err != nil {
			return Set{}, fmt.Errorf("failed to read seed file: %w", err)
		}
	}

	data = expandEnv(data)

	var set Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return Set{}, fmt.Errorf("failed to parse seed yaml: %w", err)
	}
	return set, nil
}

// Source names where the set comes from, for logs.
func (l *Loader) Source() string {
	if l.filePath == "" {
		return "embedded default"
	}
	return l.filePath
}

// expandEnv replaces ${NAME} with the value of the environment variable.
// Unset variables expand to "". A bare $ is left alone.
func expandEnv(data []byte) []byte {
	return envRef.ReplaceAllFunc(data, func(m []byte) []byte {
		name := envRef.FindSubmatch(m)[1]
		return []byte(os.Getenv(string(name)))
	})
}
