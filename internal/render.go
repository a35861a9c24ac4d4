package internal

// Renderer is the presentation side of a projection: a terminal table, a
// file, a page. The aggregator only computes; renderers do the I/O.
type Renderer interface {
	Render(p Projection) error
}

// RendererFunc is a function that implements Renderer
type RendererFunc func(p Projection) error

func (f RendererFunc) Render(p Projection) error {
	return f(p)
}

// Closer is implemented by renderers that buffer output until all
// quarters are rendered, such as the workbook and site renderers.
type Closer interface {
	Close() error
}

// Aborter is implemented by buffering renderers that can drop their output
// when a run fails before Close.
type Aborter interface {
	Abort() error
}
