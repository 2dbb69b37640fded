package cycle

// Renderer materializes substitutions on a Surface. Every caret placement
// collapses immediately after the affected content.
type Renderer struct {
	surface Surface
}

// NewRenderer returns a renderer writing to s.
func NewRenderer(s Surface) *Renderer {
	return &Renderer{surface: s}
}

// Render replaces the current selection with a styled node containing
// variant and places the caret after it.
func (r *Renderer) Render(variant string) (Node, error) {
	sel, ok := r.surface.Selection()
	if !ok {
		return nil, ErrNoInsertionPoint
	}

	at := r.surface.DeleteSelection(sel)
	node := r.surface.InsertNode(at, variant)
	r.surface.CollapseCaret(r.surface.NodeEnd(node))
	return node, nil
}

// Rewrite swaps the content of n in place.
func (r *Renderer) Rewrite(n Node, variant string) error {
	if n == nil || !n.IsAttached() {
		return ErrDetachedNode
	}
	r.surface.SetNodeText(n, variant)
	return nil
}

// Commit replaces n with plain text at the same position and moves the
// caret after it.
func (r *Renderer) Commit(n Node) error {
	if n == nil || !n.IsAttached() {
		return ErrDetachedNode
	}
	end := r.surface.ReplaceWithText(n)
	r.surface.CollapseCaret(end)
	return nil
}
