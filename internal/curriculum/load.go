package curriculum

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

type fileTopic struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Tier        string `yaml:"tier"`
}

type file struct {
	Topics []fileTopic `yaml:"topics"`
}

// Parse builds a Map from YAML.
func Parse(data []byte) (*Map, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse curriculum: %w", err)
	}

	topics := make([]Topic, 0, len(f.Topics))
	for _, ft := range f.Topics {
		topics = append(topics, Topic{
			ID:          TopicID(ft.ID),
			Name:        ft.Name,
			Description: ft.Description,
			Tier:        Difficulty(ft.Tier),
		})
	}
	return New(topics)
}

// Load reads and parses a curriculum file.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read curriculum %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the built-in curriculum.
func Default() *Map {
	m, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded curriculum is invalid: %v", err))
	}
	return m
}
