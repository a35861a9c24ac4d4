package internal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML dataset file
func ParseYAML(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return decodeYAMLDataset(data)
}

func decodeYAMLDataset(data []byte) (*Dataset, error) {
	var file DatasetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return NewDataset(file.Quarters...)
}

func init() {
	RegisterParser("yaml", ParserFunc(ParseYAML), ".yaml", ".yml")
}
