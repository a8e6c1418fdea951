package domain

import "math/bits"

// Subtype is satisfied by the closed subtype enums used for inclusion filtering.
type Subtype interface {
	~uint8
}

// Set is a bitmap over a subtype enum. Every uint8 value has a slot, so a Set
// covers the full cardinality of DescrType, FeatDef and SeqIDType. The zero
// value is empty.
type Set[K Subtype] struct {
	words [4]uint64
}

// NewSet returns a set holding the supplied members.
func NewSet[K Subtype](members ...K) *Set[K] {
	s := &Set[K]{}
	for _, m := range members {
		s.Add(m)
	}
	return s
}

// Add includes k in the set.
func (s *Set[K]) Add(k K) {
	s.words[uint8(k)>>6] |= 1 << (uint8(k) & 63)
}

// Remove excludes k from the set.
func (s *Set[K]) Remove(k K) {
	s.words[uint8(k)>>6] &^= 1 << (uint8(k) & 63)
}

// Has reports membership. A nil set has no members.
func (s *Set[K]) Has(k K) bool {
	if s == nil {
		return false
	}
	return s.words[uint8(k)>>6]&(1<<(uint8(k)&63)) != 0
}

// Len returns the number of members.
func (s *Set[K]) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Members lists the set in ascending order.
func (s *Set[K]) Members() []K {
	if s == nil {
		return nil
	}
	out := make([]K, 0, s.Len())
	for i := 0; i < 256; i++ {
		if s.words[i>>6]&(1<<(uint(i)&63)) != 0 {
			out = append(out, K(i))
		}
	}
	return out
}

// Clone returns an independent copy.
func (s *Set[K]) Clone() *Set[K] {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

// DescrFilter selects descriptor kinds.
type DescrFilter = Set[DescrType]

// FeatFilter selects feature subtypes.
type FeatFilter = Set[FeatDef]

// SeqIDFilter selects sequence identifier kinds.
type SeqIDFilter = Set[SeqIDType]

// AllDescrTypesFilter returns a filter including every descriptor kind.
func AllDescrTypesFilter() *DescrFilter { return NewSet(AllDescrTypes()...) }

// AllFeatDefsFilter returns a filter including every feature subtype.
func AllFeatDefsFilter() *FeatFilter { return NewSet(AllFeatDefs()...) }
