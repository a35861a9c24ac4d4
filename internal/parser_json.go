package internal

import (
	"encoding/json"
	"fmt"
	"os"
)

// DatasetFile is the document shape shared by the json and yaml formats.
// Example:
//
//	{
//	  "quarters": [
//	    {"key": "q1", "period": "Q1 2025", "periodLabel": "Jan - Mar", "income": {...}, ...}
//	  ]
//	}
type DatasetFile struct {
	Quarters []QuarterEntry `json:"quarters" yaml:"quarters"`
}

// ParseJSON parses a JSON dataset file
func ParseJSON(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var file DatasetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	return NewDataset(file.Quarters...)
}

func init() {
	RegisterParser("json", ParserFunc(ParseJSON), ".json")
}
