package classifier

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CategoriesConfig is the on-disk shape of the category taxonomy file.
type CategoriesConfig struct {
	Categories []string `yaml:"categories"`
}

// DefaultCategories is the built-in taxonomy used when no file is
// configured.
var DefaultCategories = []string{
	"Food & Dining",
	"Groceries",
	"Transport",
	"Shopping",
	"Bills & Utilities",
	"Entertainment",
	"Health",
	"Travel",
	"Education",
	"Transfers",
	"Income",
	"Fees & Charges",
	"Uncategorized",
}

// LoadCategories reads the category list from a YAML file, or returns the
// defaults when path is empty.
func LoadCategories(path string) ([]string, error) {
	if path == "" {
		return DefaultCategories, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading categories file %q: %w", path, err)
	}

	var cfg CategoriesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing categories file %q: %w", path, err)
	}
	if len(cfg.Categories) == 0 {
		return nil, fmt.Errorf("categories file %q lists no categories", path)
	}
	return cfg.Categories, nil
}
