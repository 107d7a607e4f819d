package pagination

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Params is the skip/limit window of a list request.
type Params struct {
	Skip  int
	Limit int
}

func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// Normalize clamps skip to zero and applies NormalizeLimit.
func (p Params) Normalize() Params {
	p.Skip = max(p.Skip, 0)
	p.Limit = NormalizeLimit(p.Limit)
	return p
}

// HasMore reports whether a page holding count rows may be followed by
// another one. A full page is assumed to have a successor.
func (p Params) HasMore(count int) bool {
	return count >= p.Normalize().Limit
}

// Next returns the window directly after p.
func (p Params) Next() Params {
	n := p.Normalize()
	n.Skip += n.Limit
	return n
}
