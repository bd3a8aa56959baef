package coverage

// LayerOptions configures a coverage layer.
type LayerOptions struct {
	Source *Source

	// Stroke overrides the renderer's cosmetic stroke width when
	// non-nil. See Layer.Stroke for the default rule.
	Stroke *float64

	// UpdateWhileAnimating rebuilds the draw batch during animations
	// instead of reusing the previous frame's.
	UpdateWhileAnimating bool

	// UpdateWhileInteracting rebuilds the draw batch during user
	// interaction instead of reusing the previous frame's.
	UpdateWhileInteracting bool
}

// Layer binds a coverage source to the per-layer rendering configuration
// the renderers consume each frame.
type Layer struct {
	source                 *Source
	stroke                 *float64
	updateWhileAnimating   bool
	updateWhileInteracting bool
}

// NewLayer creates a layer over a coverage source.
func NewLayer(opts LayerOptions) *Layer {
	return &Layer{
		source:                 opts.Source,
		stroke:                 opts.Stroke,
		updateWhileAnimating:   opts.UpdateWhileAnimating,
		updateWhileInteracting: opts.UpdateWhileInteracting,
	}
}

// Source returns the layer's coverage source.
func (l *Layer) Source() *Source {
	return l.source
}

// Style returns the source's active style.
func (l *Layer) Style() Style {
	return l.source.Style()
}

// SetStyle replaces the source's style (bumping its revision, which
// invalidates cached geometry).
func (l *Layer) SetStyle(style Style) {
	l.source.SetStyle(style)
}

// SetDrawFunction replaces the source's coverage draw function.
func (l *Layer) SetDrawFunction(fn CoverageDrawFunction) {
	l.source.SetDrawFunction(fn)
}

// Stroke returns the explicit stroke width override, if any. Without an
// override, renderers use 1 for non-rectangular cells or reprojected
// views (hiding seams between adjacent cells) and 0 otherwise.
func (l *Layer) Stroke() (float64, bool) {
	if l.stroke == nil {
		return 0, false
	}
	return *l.stroke, true
}

// SetStroke sets the stroke width override.
func (l *Layer) SetStroke(width float64) {
	l.stroke = &width
}

// ClearStroke removes the stroke override, restoring the default rule.
func (l *Layer) ClearStroke() {
	l.stroke = nil
}

// UpdateWhileAnimating reports whether batches rebuild during animations.
func (l *Layer) UpdateWhileAnimating() bool {
	return l.updateWhileAnimating
}

// SetUpdateWhileAnimating toggles batch rebuilds during animations.
func (l *Layer) SetUpdateWhileAnimating(v bool) {
	l.updateWhileAnimating = v
}

// UpdateWhileInteracting reports whether batches rebuild during
// interaction.
func (l *Layer) UpdateWhileInteracting() bool {
	return l.updateWhileInteracting
}

// SetUpdateWhileInteracting toggles batch rebuilds during interaction.
func (l *Layer) SetUpdateWhileInteracting(v bool) {
	l.updateWhileInteracting = v
}
