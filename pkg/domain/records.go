// Package domain defines the sequence record object graph edited by sequincore:
// Bioseqs, sets, identifiers, features, descriptors and the citation hierarchy,
// together with the rule evaluation primitives applied when records are stored.
package domain

import "time"

// EntityType identifies the type of object stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	// EntityRecord identifies a whole sequence record.
	EntityRecord EntityType = "record"
)

// Record is the top-level container for a submission or a bare sequence entry.
// The record owns everything beneath it.
type Record struct {
	ID        string       `json:"id"`
	Name      string       `json:"name,omitempty"`
	Submit    *SubmitBlock `json:"submit,omitempty"`
	Entries   []SeqEntry   `json:"-"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// IsSubmission reports whether the record carries a submission block.
func (r *Record) IsSubmission() bool { return r.Submit != nil }

// SeqEntry is either a single Bioseq or a BioseqSet.
type SeqEntry interface {
	isSeqEntry()
}

// MolType is the broad molecule class of a sequence.
type MolType string

const (
	MolNotSet  MolType = ""
	MolDNA     MolType = "dna"
	MolRNA     MolType = "rna"
	MolProtein MolType = "aa"
	MolNA      MolType = "na"
)

// SeqInst holds the residues. The engine never edits it.
type SeqInst struct {
	Mol    MolType `json:"mol,omitempty"`
	Repr   string  `json:"repr,omitempty"`
	Length int     `json:"length"`
	Seq    string  `json:"seq,omitempty"`
}

// Bioseq is a single nucleotide or protein sequence.
type Bioseq struct {
	IDs   []SeqID     `json:"-"`
	Descr []SeqDescr  `json:"-"`
	Annot []*SeqAnnot `json:"annot,omitempty"`
	Inst  SeqInst     `json:"inst"`
}

// Label returns the FASTA label of the first identifier.
func (b *Bioseq) Label() string {
	if len(b.IDs) == 0 || b.IDs[0] == nil {
		return ""
	}
	return b.IDs[0].Label()
}

// SetClass classifies a BioseqSet.
type SetClass int

// Common set classes.
const (
	SetClassNotSet     SetClass = 0
	SetClassNucProt    SetClass = 1
	SetClassSegSet     SetClass = 2
	SetClassGenBank    SetClass = 7
	SetClassMutSet     SetClass = 13
	SetClassPopSet     SetClass = 14
	SetClassPhySet     SetClass = 15
	SetClassEcoSet     SetClass = 16
	SetClassGenProdSet SetClass = 22
	SetClassOther      SetClass = 255
)

// BioseqSet groups related entries.
type BioseqSet struct {
	Class SetClass    `json:"class,omitempty"`
	Descr []SeqDescr  `json:"-"`
	Annot []*SeqAnnot `json:"annot,omitempty"`
	Seqs  []SeqEntry  `json:"-"`
}

func (*Bioseq) isSeqEntry()    {}
func (*BioseqSet) isSeqEntry() {}

// SeqAnnot is a named bundle of features, alignments or graphs.
type SeqAnnot struct {
	Name   string      `json:"name,omitempty"`
	Feats  []*SeqFeat  `json:"feats,omitempty"`
	Aligns []*SeqAlign `json:"aligns,omitempty"`
	Graphs []*SeqGraph `json:"graphs,omitempty"`
}

// SeqAlign is a dense-segment alignment between sequences.
type SeqAlign struct {
	Type   int     `json:"type,omitempty"`
	Dim    int     `json:"dim,omitempty"`
	IDs    []SeqID `json:"-"`
	Starts []int   `json:"starts,omitempty"`
	Lens   []int   `json:"lens,omitempty"`
}

// SeqGraph is a quality or other numeric track over a location.
type SeqGraph struct {
	Title   string `json:"title,omitempty"`
	Comment string `json:"comment,omitempty"`
	Loc     SeqLoc `json:"-"`
	Values  []int  `json:"values,omitempty"`
}

// ContactInfo identifies the person responsible for a submission.
type ContactInfo struct {
	Name    string   `json:"name,omitempty"`
	Address []string `json:"address,omitempty"`
	Phone   string   `json:"phone,omitempty"`
	Fax     string   `json:"fax,omitempty"`
	Email   string   `json:"email,omitempty"`
	Contact *Author  `json:"contact,omitempty"`
}

// SubmitBlock carries the submission-level metadata.
type SubmitBlock struct {
	Contact     *ContactInfo `json:"contact,omitempty"`
	Cit         *CitSub      `json:"cit,omitempty"`
	Hup         bool         `json:"hup,omitempty"`
	ReleaseDate *Date        `json:"reldate,omitempty"`
	Tool        string       `json:"tool,omitempty"`
	UserTag     string       `json:"user_tag,omitempty"`
	Comment     string       `json:"comment,omitempty"`
}

// Bioseqs returns every Bioseq in pre-order.
func (r *Record) Bioseqs() []*Bioseq {
	var out []*Bioseq
	r.walkEntries(func(e SeqEntry) {
		if bs, ok := e.(*Bioseq); ok {
			out = append(out, bs)
		}
	})
	return out
}

// Annots returns every SeqAnnot in pre-order, set annotations before their members'.
func (r *Record) Annots() []*SeqAnnot {
	var out []*SeqAnnot
	r.walkEntries(func(e SeqEntry) {
		switch v := e.(type) {
		case *Bioseq:
			out = append(out, v.Annot...)
		case *BioseqSet:
			out = append(out, v.Annot...)
		}
	})
	return out
}

// Features returns every feature in pre-order.
func (r *Record) Features() []*SeqFeat {
	var out []*SeqFeat
	for _, a := range r.Annots() {
		if a != nil {
			out = append(out, a.Feats...)
		}
	}
	return out
}

// Alignments returns every alignment in pre-order.
func (r *Record) Alignments() []*SeqAlign {
	var out []*SeqAlign
	for _, a := range r.Annots() {
		if a != nil {
			out = append(out, a.Aligns...)
		}
	}
	return out
}

// Graphs returns every graph in pre-order.
func (r *Record) Graphs() []*SeqGraph {
	var out []*SeqGraph
	for _, a := range r.Annots() {
		if a != nil {
			out = append(out, a.Graphs...)
		}
	}
	return out
}

// Descriptors returns every descriptor in pre-order.
func (r *Record) Descriptors() []SeqDescr {
	var out []SeqDescr
	r.walkEntries(func(e SeqEntry) {
		switch v := e.(type) {
		case *Bioseq:
			out = append(out, v.Descr...)
		case *BioseqSet:
			out = append(out, v.Descr...)
		}
	})
	return out
}

func (r *Record) walkEntries(fn func(SeqEntry)) {
	var walk func([]SeqEntry)
	walk = func(entries []SeqEntry) {
		for _, e := range entries {
			if e == nil {
				continue
			}
			fn(e)
			if set, ok := e.(*BioseqSet); ok {
				walk(set.Seqs)
			}
		}
	}
	walk(r.Entries)
}
