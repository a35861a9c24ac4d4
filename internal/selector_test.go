package internal

import (
	"errors"
	"reflect"
	"testing"
)

func TestSelector_DefaultsToFirstQuarter(t *testing.T) {
	s := NewSelector(DefaultDataset(), nil)
	if s.Current() != "q1" {
		t.Errorf("Current() = %q, want q1", s.Current())
	}
	if s.Projection().Period != "Q1 2025" {
		t.Errorf("Projection().Period = %q", s.Projection().Period)
	}
}

func TestSelector_Select(t *testing.T) {
	d := DefaultDataset()
	q1, _ := d.Get("q1")
	q2, _ := d.Get("q2")

	tests := []struct {
		name    string
		key     QuarterKey
		current QuarterKey
		want    Projection
	}{
		{"q1", "q1", "q1", Project("q1", q1)},
		{"q2", "q2", "q2", Project("q2", q2)},
		{"unknown falls back", "bogus", "q1", Project("q1", q1)},
		{"empty falls back", "", "q1", Project("q1", q1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelector(d, nil)
			s.Select("q2")
			got, err := s.Select(tt.key)
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if s.Current() != tt.current {
				t.Errorf("Current() = %q, want %q", s.Current(), tt.current)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Select(%q) projection differs from Project(%q)", tt.key, tt.current)
			}
		})
	}
}

func TestSelector_Renders(t *testing.T) {
	var rendered []QuarterKey
	r := RendererFunc(func(p Projection) error {
		rendered = append(rendered, p.Quarter)
		return nil
	})

	s := NewSelector(DefaultDataset(), r)
	for _, k := range []QuarterKey{"q2", "bogus", "q1"} {
		if _, err := s.Select(k); err != nil {
			t.Fatalf("Select(%q) error = %v", k, err)
		}
	}

	want := []QuarterKey{"q2", "q1", "q1"}
	if !reflect.DeepEqual(rendered, want) {
		t.Errorf("rendered = %v, want %v", rendered, want)
	}
}

func TestSelector_RenderError(t *testing.T) {
	boom := errors.New("boom")
	s := NewSelector(DefaultDataset(), RendererFunc(func(Projection) error { return boom }))

	p, err := s.Select("q2")
	if !errors.Is(err, boom) {
		t.Errorf("Select() error = %v, want %v", err, boom)
	}
	if p.Quarter != "q2" || s.Current() != "q2" {
		t.Errorf("selection should still move to q2, got %q / %q", p.Quarter, s.Current())
	}
}

func TestSelector_ChartColors(t *testing.T) {
	s := NewSelector(DefaultDataset(), nil, WithChartColors([]string{"#111111"}, []string{"#aaaaaa", "#bbbbbb"}))
	p := s.Projection()

	if want := []string{"#111111", "#111111"}; !reflect.DeepEqual(p.IncomeChart.Colors, want) {
		t.Errorf("income colors = %v, want %v", p.IncomeChart.Colors, want)
	}
	if want := []string{"#aaaaaa", "#bbbbbb", "#aaaaaa", "#bbbbbb"}; !reflect.DeepEqual(p.ExpenditureChart.Colors, want) {
		t.Errorf("expenditure colors = %v, want %v", p.ExpenditureChart.Colors, want)
	}
}

func TestSelector_EmptyColorsKeepDefaults(t *testing.T) {
	s := NewSelector(DefaultDataset(), nil, WithChartColors(nil, nil))
	p := s.Projection()
	if !reflect.DeepEqual(p.ExpenditureChart.Colors, ExpenditureChartColors) {
		t.Errorf("expenditure colors = %v, want defaults", p.ExpenditureChart.Colors)
	}
}
