package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the corpus locations and output settings.
type Config struct {
	// CorpusDir is the root directory of the annotation documents.
	CorpusDir string `yaml:"corpus_dir" env:"CHILDES_CORPUS_DIR" env-default:"./corpus"`

	// Pattern selects the document files inside CorpusDir
	// (filepath.Match syntax).
	Pattern string `yaml:"pattern" env:"CHILDES_PATTERN" env-default:"*.xml"`

	// DBPath is the SQLite database used by the import command.
	DBPath string `yaml:"db" env:"CHILDES_DB" env-default:"./childes.db"`

	NoColor bool `yaml:"no_color" env:"CHILDES_NO_COLOR" env-default:"false"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults. The file path comes from CONFIG_PATH
// (fallback "./childes.yaml"); a missing fallback file is not an error.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = "./childes.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	return &cfg, nil
}
