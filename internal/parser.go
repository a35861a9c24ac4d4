package internal

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Parser parses dataset files into a Dataset
type Parser interface {
	Parse(path string) (*Dataset, error)
}

// ParserFunc is a function that implements Parser
type ParserFunc func(path string) (*Dataset, error)

func (f ParserFunc) Parse(path string) (*Dataset, error) {
	return f(path)
}

// parsers is the registry of available parsers
var parsers = map[string]Parser{}

// extensions maps file extensions to parser names for format detection
var extensions = map[string]string{}

// RegisterParser registers a parser with the given name and the file
// extensions it handles by default
func RegisterParser(name string, p Parser, exts ...string) {
	parsers[name] = p
	for _, ext := range exts {
		extensions[strings.ToLower(ext)] = name
	}
}

// GetParser returns the parser for the given source type
func GetParser(source string) (Parser, error) {
	p, ok := parsers[source]
	if !ok {
		return nil, fmt.Errorf("unknown source type: %s (available: %v)", source, AvailableSources())
	}
	return p, nil
}

// AvailableSources returns a sorted list of registered source types
func AvailableSources() []string {
	var sources []string
	for name := range parsers {
		sources = append(sources, name)
	}
	sort.Strings(sources)
	return sources
}

// IsKnownParser returns true if the name is a registered parser
func IsKnownParser(name string) bool {
	_, ok := parsers[name]
	return ok
}

// ParseFileArg parses a file argument that may have a format prefix.
// Returns (format, path). If no valid prefix, format is empty.
// Example: "json:data.json" → ("json", "data.json")
// Example: "C:\path\sre.xlsx" → ("", "C:\path\sre.xlsx")
func ParseFileArg(arg string) (format, path string) {
	idx := strings.Index(arg, ":")
	if idx == -1 {
		return "", arg
	}
	prefix := arg[:idx]
	if IsKnownParser(prefix) {
		return prefix, arg[idx+1:]
	}
	return "", arg
}

// DetectFormat picks a parser name for path from its extension.
func DetectFormat(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if name, ok := extensions[ext]; ok {
		return name, nil
	}
	return "", fmt.Errorf("cannot detect dataset format of %q (available: %v)", path, AvailableSources())
}

// LoadDataset resolves the format of arg (explicit source, "format:" prefix,
// then file extension) and parses it.
func LoadDataset(arg, source string) (*Dataset, error) {
	format, path := ParseFileArg(arg)
	if source != "" {
		format = source
	}
	if format == "" {
		detected, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = detected
	}
	p, err := GetParser(format)
	if err != nil {
		return nil, err
	}
	return p.Parse(path)
}
