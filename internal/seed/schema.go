package seed

// Game is one local game entry of a seed file.
type Game struct {
	Name       string   `yaml:"name"`
	Logo       string   `yaml:"logo"`
	URL        string   `yaml:"url"`
	EmbedLinks []string `yaml:"embedLinks"`
	Active     *bool    `yaml:"active"` // defaults to true
}

// Set is the root structure of a seed file.
type Set struct {
	Games []Game `yaml:"games"`
}

// Names returns the game names in file order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s.Games))
	for _, g := range s.Games {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	return names
}
