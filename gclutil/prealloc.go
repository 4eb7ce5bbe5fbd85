package gclutil

// Prealloc hands out slices of one fixed backing array so that a set
// of small pre-encoded keys can share a single allocation.
type Prealloc struct {
	b []byte
}

func NewPrealloc(n []byte) *Prealloc {
	var p Prealloc
	p.Set(n)
	return &p
}

func (p *Prealloc) Set(n []byte) {
	p.b = n
}

// Pack copies n into the backing array if it fits, otherwise n is
// returned as-is.
func (p *Prealloc) Pack(n []byte) []byte {
	if len(n) > len(p.b) {
		return n
	}
	c := p.b[:len(n)]
	p.b = p.b[len(n):]
	copy(c, n)
	return c
}
