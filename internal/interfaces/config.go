package interfaces

// Config represents the wizard's own tool settings, distinct from the
// namelist being built.
type Config struct {
	OutputFile   string `toml:"output_file"`
	ExistingFile string `toml:"existing_file"`
	GeogDataPath string `toml:"geog_data_path"`
	QuitWord     string `toml:"quit_word"`
	Target       string `toml:"target"`
	DateFormat   string `toml:"date_format"`
}

// ConfigManager handles tool-settings loading and resolution.
type ConfigManager interface {
	// Load loads settings from the specified path
	Load(path string) (*Config, error)

	// Resolve applies precedence rules (flags > env > config > defaults)
	Resolve() (*Config, error)

	// Validate validates the settings values
	Validate(config *Config) error
}
