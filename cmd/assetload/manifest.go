package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/assets"
)

// manifest lists the resources of one load batch.
type manifest struct {
	BaseURL     string  `yaml:"baseURL"`
	Concurrency int     `yaml:"concurrency"`
	Resources   []entry `yaml:"resources"`
}

type entry struct {
	Name     string          `yaml:"name"`
	URL      string          `yaml:"url"`
	Metadata assets.Metadata `yaml:"metadata"`
}

func readManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return parseManifest(data)
}

func parseManifest(data []byte) (*manifest, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if len(m.Resources) == 0 {
		return nil, errors.New("manifest lists no resources")
	}
	for i, e := range m.Resources {
		if e.Name == "" && e.URL == "" {
			return nil, fmt.Errorf("resource %d has neither name nor url", i)
		}
		if e.Name == "" {
			m.Resources[i].Name = e.URL
		}
	}
	return &m, nil
}

// queue adds every manifest entry to l.
func (m *manifest) queue(l *assets.Loader) error {
	for _, e := range m.Resources {
		if _, err := l.Add(e.Name, e.URL, assets.WithMetadata(e.Metadata)); err != nil {
			return err
		}
	}
	return nil
}
