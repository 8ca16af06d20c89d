package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/questcycle/backend/internal/domain/dependency"
	"github.com/questcycle/backend/internal/domain/questionbank"
)

type catalogFile struct {
	Dependencies map[string][]string `mapstructure:"dependencies"`
	Media        map[string]mediaFile `mapstructure:"media"`
}

type mediaFile struct {
	Image      string `mapstructure:"image"`
	Caption    string `mapstructure:"caption"`
	Before     string `mapstructure:"before"`
	After      string `mapstructure:"after"`
	ImageFirst bool   `mapstructure:"image_first"`
}

// Catalog is the content configuration loaded from CATALOG_PATH.
type Catalog struct {
	Dependencies *dependency.Catalog
	Media        map[questionbank.ID]questionbank.Media
}

// LoadCatalog reads dependency groups and the media overlay from path
// (YAML, JSON or TOML). An empty path, or a file without a dependencies
// section, yields the built-in groups. A malformed group is an error
// wrapping dependency.ErrMalformedCatalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return &Catalog{Dependencies: dependency.MustNew(dependency.DefaultGroups())}, nil
	}

	vip := viper.New()
	vip.SetConfigFile(path)
	if err := vip.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var raw catalogFile
	if err := vip.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}

	groups := dependency.DefaultGroups()
	if vip.IsSet("dependencies") {
		groups = make(map[questionbank.ID][]questionbank.ID, len(raw.Dependencies))
		for principal, deps := range raw.Dependencies {
			ids := make([]questionbank.ID, len(deps))
			for i, d := range deps {
				ids[i] = questionbank.ID(d)
			}
			groups[questionbank.ID(principal)] = ids
		}
	}

	deps, err := dependency.New(groups)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}

	media := make(map[questionbank.ID]questionbank.Media, len(raw.Media))
	for id, m := range raw.Media {
		media[questionbank.ID(id)] = questionbank.Media{
			Image:      m.Image,
			Caption:    m.Caption,
			Before:     m.Before,
			After:      m.After,
			ImageFirst: m.ImageFirst,
		}
	}

	return &Catalog{Dependencies: deps, Media: media}, nil
}
