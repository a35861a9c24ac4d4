package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SiteIndexEntry lists one rendered quarter in index.json
type SiteIndexEntry struct {
	Key         QuarterKey `json:"key"`
	Period      string     `json:"period"`
	PeriodLabel string     `json:"periodLabel"`
	File        string     `json:"file"`
}

// SiteIndex is the content of index.json
type SiteIndex struct {
	Quarters []SiteIndexEntry `json:"quarters"`
}

// SiteRenderer writes static data files for the transparency page: one
// sre-<key>.json per quarter and an index.json written on Close.
type SiteRenderer struct {
	dir   string
	index SiteIndex
}

func NewSiteRenderer(dir string) (*SiteRenderer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return &SiteRenderer{dir: dir, index: SiteIndex{Quarters: []SiteIndexEntry{}}}, nil
}

// SiteFileName is the data file name of a quarter.
func SiteFileName(key QuarterKey) string {
	return "sre-" + string(key) + ".json"
}

func (r *SiteRenderer) Render(p Projection) error {
	name := SiteFileName(p.Quarter)
	if err := writeJSONFile(filepath.Join(r.dir, name), p); err != nil {
		return err
	}
	entry := SiteIndexEntry{
		Key:         p.Quarter,
		Period:      p.Period,
		PeriodLabel: p.PeriodLabel,
		File:        name,
	}
	// a quarter rendered twice keeps its first position
	for i, e := range r.index.Quarters {
		if e.Key == p.Quarter {
			r.index.Quarters[i] = entry
			return nil
		}
	}
	r.index.Quarters = append(r.index.Quarters, entry)
	return nil
}

func (r *SiteRenderer) Close() error {
	return writeJSONFile(filepath.Join(r.dir, "index.json"), r.index)
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
