package anim2d

import "sort"

// zorderSet holds the visible objects sorted by (z-order, creation
// sequence, name). Membership changes only when an object's visibility or
// z-order changes, never by probing.
type zorderSet struct {
	items []Object
}

func zorderLess(a, b *ObjectBase) bool {
	if a.zorder != b.zorder {
		return a.zorder < b.zorder
	}
	if a.seq != b.seq {
		return a.seq < b.seq
	}
	return a.name < b.name
}

func (s *zorderSet) search(b *ObjectBase) int {
	return sort.Search(len(s.items), func(i int) bool {
		return !zorderLess(s.items[i].objectBase(), b)
	})
}

func (s *zorderSet) insert(o Object) {
	i := s.search(o.objectBase())
	s.items = append(s.items, nil)
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = o
}

func (s *zorderSet) remove(o Object) {
	i := s.search(o.objectBase())
	if i < len(s.items) && s.items[i] == o {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
}

func (s *zorderSet) len() int { return len(s.items) }

// snapshot returns a copy of the ordered objects so drawing is not affected
// by objects hidden or deleted while the frame is generated.
func (s *zorderSet) snapshot() []Object {
	return append([]Object(nil), s.items...)
}
