package messages

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed resources.yaml
var resourcesYAML []byte

type localeResources struct {
	Running      string            `yaml:"running"`
	UnknownTest  string            `yaml:"unknown_test"`
	SingleResult string            `yaml:"single_result"`
	MultiHeader  string            `yaml:"multi_header"`
	MultiLine    string            `yaml:"multi_line"`
	SingleScore  string            `yaml:"single_score"`
	MultiScore   string            `yaml:"multi_score"`
	Names        map[string]string `yaml:"names"`
}

type resourceFile struct {
	Locales map[string]localeResources `yaml:"locales"`
}

func parseResources(data []byte) (*resourceFile, error) {
	var res resourceFile
	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("parse message resources: %w", err)
	}
	for tag, loc := range res.Locales {
		if loc.Running == "" || loc.SingleScore == "" || loc.MultiScore == "" {
			return nil, fmt.Errorf("message resources for %s are incomplete", tag)
		}
	}
	return &res, nil
}

// loadResources parses the embedded resources on first use. The result is
// shared and must not be modified.
var loadResources = sync.OnceValues(func() (*resourceFile, error) {
	return parseResources(resourcesYAML)
})

func (r *resourceFile) tags() []string {
	tags := make([]string, 0, len(r.Locales))
	for tag := range r.Locales {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}
