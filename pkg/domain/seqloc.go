package domain

// Strand is the orientation of a location on its sequence.
type Strand uint8

const (
	StrandUnknown Strand = iota
	StrandPlus
	StrandMinus
	StrandBoth
)

// SeqLoc is a location on one or more Bioseqs.
type SeqLoc interface {
	isSeqLoc()
}

// NullLoc marks a gap in a mixed location.
type NullLoc struct{}

// WholeLoc covers an entire sequence.
type WholeLoc struct {
	ID SeqID `json:"-"`
}

// IntervalLoc covers [From, To] (zero-based, inclusive).
type IntervalLoc struct {
	ID     SeqID  `json:"-"`
	From   int    `json:"from"`
	To     int    `json:"to"`
	Strand Strand `json:"strand,omitempty"`
}

// PointLoc is a single residue.
type PointLoc struct {
	ID     SeqID  `json:"-"`
	Point  int    `json:"point"`
	Strand Strand `json:"strand,omitempty"`
}

// MixLoc is an ordered combination of locations.
type MixLoc struct {
	Locs []SeqLoc `json:"-"`
}

func (*NullLoc) isSeqLoc()     {}
func (*WholeLoc) isSeqLoc()    {}
func (*IntervalLoc) isSeqLoc() {}
func (*PointLoc) isSeqLoc()    {}
func (*MixLoc) isSeqLoc()      {}

// LocationIDs returns the identifiers referenced by loc in document order.
func LocationIDs(loc SeqLoc) []SeqID {
	var out []SeqID
	var walk func(SeqLoc)
	walk = func(l SeqLoc) {
		switch v := l.(type) {
		case *WholeLoc:
			if v.ID != nil {
				out = append(out, v.ID)
			}
		case *IntervalLoc:
			if v.ID != nil {
				out = append(out, v.ID)
			}
		case *PointLoc:
			if v.ID != nil {
				out = append(out, v.ID)
			}
		case *MixLoc:
			for _, sub := range v.Locs {
				walk(sub)
			}
		}
	}
	walk(loc)
	return out
}
