package internal

// Selector holds the active quarter of a dataset. Selecting a quarter
// recomputes its projection and hands it to the renderer.
//
// A Selector is owned by one caller and is not safe for concurrent use.
type Selector struct {
	dataset  *Dataset
	renderer Renderer
	current  QuarterKey

	incomeColors      []string
	expenditureColors []string
}

// SelectorOption configures a Selector
type SelectorOption func(*Selector)

// WithChartColors overrides the chart palettes. Empty slices keep the defaults.
func WithChartColors(income, expenditure []string) SelectorOption {
	return func(s *Selector) {
		s.incomeColors = income
		s.expenditureColors = expenditure
	}
}

// NewSelector creates a selector on the dataset's default quarter.
// renderer may be nil, in which case projections are only returned.
func NewSelector(d *Dataset, renderer Renderer, opts ...SelectorOption) *Selector {
	s := &Selector{
		dataset:  d,
		renderer: renderer,
		current:  d.DefaultKey(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the active quarter key.
func (s *Selector) Current() QuarterKey {
	return s.current
}

// Select makes key the active quarter, falling back to the default quarter
// for unknown keys, and renders its projection. The returned error comes
// from the renderer only.
func (s *Selector) Select(key QuarterKey) (Projection, error) {
	s.current = s.dataset.Resolve(key)
	p := s.Projection()
	if s.renderer == nil {
		return p, nil
	}
	return p, s.renderer.Render(p)
}

// Projection computes the projection of the active quarter without rendering.
func (s *Selector) Projection() Projection {
	report, _ := s.dataset.Get(s.current)
	p := Project(s.current, report)
	if len(s.incomeColors) > 0 {
		p.IncomeChart.Colors = paletteFor(s.incomeColors, len(p.IncomeChart.Values))
	}
	if len(s.expenditureColors) > 0 {
		p.ExpenditureChart.Colors = paletteFor(s.expenditureColors, len(p.ExpenditureChart.Values))
	}
	return p
}

// paletteFor cycles colors until there is one per value.
func paletteFor(colors []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = colors[i%len(colors)]
	}
	return out
}
