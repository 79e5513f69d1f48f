package catalog

// File is the top-level structure of the site catalog YAML.
type File struct {
	Sites []SiteProps `yaml:"sites"`
}

// SiteProps describes one known site in the catalog.
type SiteProps struct {
	Name        string   `yaml:"name"`
	URL         string   `yaml:"url"`
	Category    string   `yaml:"category,omitempty"`
	Image       string   `yaml:"image,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	CardColor   string   `yaml:"card_color,omitempty"`
}
