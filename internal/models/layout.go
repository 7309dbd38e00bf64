package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ContentLayout names the AOIs that carry actual content (paragraphs, figures)
// for one piece of study material. Everything else a fixation lands on counts
// as environment.
type ContentLayout struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title,omitempty"`
	ContentAOIs []string `yaml:"content_aois"`
}

// LayoutSet holds all content layouts known to the study.
type LayoutSet struct {
	Layouts []ContentLayout `yaml:"layouts"`

	byID map[string][]string
}

// LoadLayouts reads and parses the layouts YAML file.
func LoadLayouts(path string) (*LayoutSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layouts file: %w", err)
	}

	var set LayoutSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal layouts YAML: %w", err)
	}

	set.byID = make(map[string][]string, len(set.Layouts))
	for _, layout := range set.Layouts {
		set.byID[layout.ID] = layout.ContentAOIs
	}
	return &set, nil
}

// ContentAOIs returns the content AOI set for a content ID, if known.
func (s *LayoutSet) ContentAOIs(contentID string) ([]string, bool) {
	aois, ok := s.byID[contentID]
	return aois, ok
}
