// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package style

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// fileConfig is the YAML shape of a custom style definition. Enum fields
// are strings and parsed through the same functions the CLI flags use.
type fileConfig struct {
	Elements []struct {
		Kind   string        `yaml:"kind"`
		Format ElementFormat `yaml:"format"`
	} `yaml:"elements"`

	AuthorFormat    string `yaml:"authorFormat"`
	AuthorSeparator string `yaml:"authorSeparator"`
	EtAlLimit       int    `yaml:"etAlLimit"`
	UseAnd          bool   `yaml:"useAnd"`
	UseAmpersand    bool   `yaml:"useAmpersand"`

	DOIFormat    string `yaml:"doiFormat"`
	DOIHyperlink bool   `yaml:"doiHyperlink"`

	PageFormat   string `yaml:"pageFormat"`
	JournalStyle string `yaml:"journalStyle"`

	NumberingStyle   string `yaml:"numberingStyle"`
	FinalPunctuation bool   `yaml:"finalPunctuation"`
}

// LoadConfig reads a custom style definition from a YAML file and returns a
// validated Config with the Custom variant set.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading style file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parsing style file %s: %w", path, err)
	}

	cfg := Config{
		Variant:          Custom,
		AuthorSeparator:  fc.AuthorSeparator,
		EtAlLimit:        fc.EtAlLimit,
		UseAnd:           fc.UseAnd,
		UseAmpersand:     fc.UseAmpersand,
		DOIHyperlink:     fc.DOIHyperlink,
		FinalPunctuation: fc.FinalPunctuation,
	}

	for _, e := range fc.Elements {
		kind, err := ParseElementKind(e.Kind)
		if err != nil {
			return Config{}, err
		}
		cfg.Elements = append(cfg.Elements, Element{Kind: kind, Format: e.Format})
	}

	if fc.AuthorFormat != "" {
		if cfg.AuthorFormat, err = ParseAuthorFormat(fc.AuthorFormat); err != nil {
			return Config{}, err
		}
	}
	if fc.DOIFormat != "" {
		if cfg.DOIFormat, err = ParseDOIFormat(fc.DOIFormat); err != nil {
			return Config{}, err
		}
	}
	if fc.PageFormat != "" {
		if cfg.PageFormat, err = ParsePageFormat(fc.PageFormat); err != nil {
			return Config{}, err
		}
	}
	if fc.JournalStyle != "" {
		if cfg.JournalStyle, err = ParseJournalStyle(fc.JournalStyle); err != nil {
			return Config{}, err
		}
	}
	if fc.NumberingStyle != "" {
		if cfg.NumberingStyle, err = ParseNumberingStyle(fc.NumberingStyle); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("style file %s: %w", path, err)
	}
	return cfg, nil
}
