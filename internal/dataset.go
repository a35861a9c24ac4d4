package internal

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyDataset     = errors.New("dataset has no quarters")
	ErrDuplicateQuarter = errors.New("duplicate quarter key")
	ErrEmptyQuarterKey  = errors.New("empty quarter key")
)

//go:embed data/sre-2025.yaml
var defaultDatasetYAML []byte

// QuarterEntry pairs a quarter key with its report. It is also the on-disk
// shape of one quarter in yaml and json datasets.
type QuarterEntry struct {
	Key           QuarterKey `json:"key" yaml:"key"`
	QuarterReport `yaml:",inline"`
}

// Dataset is an ordered, read-only set of quarter reports.
// The first quarter is the default one for selection fallback.
type Dataset struct {
	keys    []QuarterKey
	reports map[QuarterKey]QuarterReport
}

// NewDataset builds a dataset, keeping the entries' order.
func NewDataset(entries ...QuarterEntry) (*Dataset, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyDataset
	}
	d := &Dataset{
		keys:    make([]QuarterKey, 0, len(entries)),
		reports: make(map[QuarterKey]QuarterReport, len(entries)),
	}
	for _, e := range entries {
		key := QuarterKey(strings.TrimSpace(string(e.Key)))
		if key == "" {
			return nil, ErrEmptyQuarterKey
		}
		if _, exists := d.reports[key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateQuarter, key)
		}
		d.keys = append(d.keys, key)
		d.reports[key] = e.QuarterReport
	}
	return d, nil
}

// DefaultDataset returns the embedded FY 2025 dataset.
func DefaultDataset() *Dataset {
	d, err := decodeYAMLDataset(defaultDatasetYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded dataset is invalid: %v", err))
	}
	return d
}

// Keys returns the quarter keys in dataset order.
func (d *Dataset) Keys() []QuarterKey {
	return append([]QuarterKey(nil), d.keys...)
}

func (d *Dataset) Len() int {
	return len(d.keys)
}

// Get returns the report for key.
func (d *Dataset) Get(key QuarterKey) (QuarterReport, bool) {
	r, ok := d.reports[key]
	return r, ok
}

// DefaultKey is the first quarter of the dataset.
func (d *Dataset) DefaultKey() QuarterKey {
	return d.keys[0]
}

// Resolve returns key when the dataset knows it, otherwise the default key.
func (d *Dataset) Resolve(key QuarterKey) QuarterKey {
	if _, ok := d.reports[key]; ok {
		return key
	}
	return d.DefaultKey()
}

// Entries returns the dataset as an ordered list of entries.
func (d *Dataset) Entries() []QuarterEntry {
	out := make([]QuarterEntry, 0, len(d.keys))
	for _, k := range d.keys {
		out = append(out, QuarterEntry{Key: k, QuarterReport: d.reports[k]})
	}
	return out
}

// Check runs the totals check over every quarter in order.
func (d *Dataset) Check(tolerance float64) []Discrepancy {
	var out []Discrepancy
	for _, k := range d.keys {
		out = append(out, CheckTotals(k, d.reports[k], tolerance)...)
	}
	return out
}
