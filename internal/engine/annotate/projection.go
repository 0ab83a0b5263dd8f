package annotate

// transform maps an offset from one coordinate space to the next.
//
// A render pass accumulates transforms; projecting an offset applies all of
// them in the order they were recorded.
type transform interface {
	apply(index int) (int, error)
}

// shift moves every offset at or after threshold by delta.
type shift struct {
	threshold int
	delta     int
}

func (s shift) apply(index int) (int, error) {
	if index >= s.threshold {
		return index + s.delta, nil
	}
	return index, nil
}

// removed rejects offsets in [start, end): the text there no longer exists.
type removed struct {
	start int
	end   int
}

func (r removed) apply(index int) (int, error) {
	if index >= r.start && index < r.end {
		return 0, &IndexRemovedError{Index: index}
	}
	return index, nil
}

// projection is an ordered list of transforms.
type projection []transform

// project maps index through every transform in order.
func (p projection) project(index int) (int, error) {
	var err error
	for _, t := range p {
		index, err = t.apply(index)
		if err != nil {
			return 0, err
		}
	}
	return index, nil
}

// projectRange maps both ends of r.
func (p projection) projectRange(r Range) (Range, error) {
	start, err := p.project(r.Start)
	if err != nil {
		return Range{}, err
	}
	end, err := p.project(r.End)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: start, End: end}, nil
}

// record appends the transforms for replacing [start, end) with newLen runes.
func (p projection) record(start, end, newLen int) projection {
	oldLen := end - start
	if newLen < oldLen {
		p = append(p, removed{start: start + newLen, end: end})
	}
	return append(p, shift{threshold: end, delta: newLen - oldLen})
}
