package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SeqIDType enumerates sequence identifier kinds using the NCBI Seq-id choice numbering.
type SeqIDType uint8

// Seq-id kinds.
const (
	SeqIDNotSet SeqIDType = iota
	SeqIDLocal
	SeqIDGIBBSQ
	SeqIDGIBBMT
	SeqIDGIIM
	SeqIDGenBank
	SeqIDEMBL
	SeqIDPIR
	SeqIDSwissProt
	SeqIDPatent
	SeqIDOther
	SeqIDGeneral
	SeqIDGI
	SeqIDDDBJ
	SeqIDPRF
	SeqIDPDB
	SeqIDTPG
	SeqIDTPE
	SeqIDTPD
	SeqIDGpipe
	seqIDTypeCount
)

var seqIDPrefixes = [seqIDTypeCount]string{
	SeqIDNotSet:    "",
	SeqIDLocal:     "lcl",
	SeqIDGIBBSQ:    "bbs",
	SeqIDGIBBMT:    "bbm",
	SeqIDGIIM:      "gim",
	SeqIDGenBank:   "gb",
	SeqIDEMBL:      "emb",
	SeqIDPIR:       "pir",
	SeqIDSwissProt: "sp",
	SeqIDPatent:    "pat",
	SeqIDOther:     "ref",
	SeqIDGeneral:   "gnl",
	SeqIDGI:        "gi",
	SeqIDDDBJ:      "dbj",
	SeqIDPRF:       "prf",
	SeqIDPDB:       "pdb",
	SeqIDTPG:       "tpg",
	SeqIDTPE:       "tpe",
	SeqIDTPD:       "tpd",
	SeqIDGpipe:     "gpp",
}

// String returns the FASTA label prefix for the kind ("lcl", "gb", ...).
func (t SeqIDType) String() string {
	if t >= seqIDTypeCount {
		return fmt.Sprintf("seqid(%d)", uint8(t))
	}
	return seqIDPrefixes[t]
}

// ParseSeqIDType resolves a FASTA label prefix into its kind.
func ParseSeqIDType(prefix string) (SeqIDType, bool) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	for i := SeqIDLocal; i < seqIDTypeCount; i++ {
		if seqIDPrefixes[i] == prefix {
			return i, true
		}
	}
	return SeqIDNotSet, false
}

// AllSeqIDTypes lists every defined Seq-id kind.
func AllSeqIDTypes() []SeqIDType {
	out := make([]SeqIDType, 0, int(seqIDTypeCount)-1)
	for i := SeqIDLocal; i < seqIDTypeCount; i++ {
		out = append(out, i)
	}
	return out
}

// IsTextSeqIDType reports whether the kind carries a Textseq-id payload.
func IsTextSeqIDType(t SeqIDType) bool {
	switch t {
	case SeqIDGenBank, SeqIDEMBL, SeqIDPIR, SeqIDSwissProt, SeqIDOther, SeqIDDDBJ,
		SeqIDPRF, SeqIDTPG, SeqIDTPE, SeqIDTPD, SeqIDGpipe:
		return true
	}
	return false
}

// SeqID identifies a Bioseq. Implementations are closed to this package.
type SeqID interface {
	SeqIDType() SeqIDType
	Label() string
	isSeqID()
}

// ObjectID is either a numeric or a string identifier; Str wins when set.
type ObjectID struct {
	ID  int    `json:"id,omitempty"`
	Str string `json:"str,omitempty"`
}

func (o ObjectID) String() string {
	if o.Str != "" {
		return o.Str
	}
	return strconv.Itoa(o.ID)
}

// DbTag is a database cross-reference.
type DbTag struct {
	Db  string   `json:"db"`
	Tag ObjectID `json:"tag"`
}

// LocalID is a submitter-assigned identifier.
type LocalID struct {
	Tag ObjectID `json:"tag"`
}

// TextSeqID carries the accession-style identifiers (GenBank, EMBL, DDBJ, ...).
// Kind must be one of the kinds accepted by IsTextSeqIDType.
type TextSeqID struct {
	Kind      SeqIDType `json:"kind"`
	Name      string    `json:"name,omitempty"`
	Accession string    `json:"accession,omitempty"`
	Release   string    `json:"release,omitempty"`
	Version   int       `json:"version,omitempty"`
}

// PatentSeqID identifies a sequence published in a patent.
type PatentSeqID struct {
	SeqNum int   `json:"seqid"`
	Cit    IDPat `json:"cit"`
}

// PDBSeqID identifies a structure chain.
type PDBSeqID struct {
	Mol     string `json:"mol"`
	Chain   string `json:"chain,omitempty"`
	Release string `json:"release,omitempty"`
}

// GeneralSeqID is a database-scoped identifier.
type GeneralSeqID struct {
	Tag DbTag `json:"tag"`
}

// GISeqID is a numeric GenInfo identifier.
type GISeqID struct {
	GI int64 `json:"gi"`
}

// GIBBSeqID is a numeric GenInfo backbone identifier (bbs or bbm).
type GIBBSeqID struct {
	Kind SeqIDType `json:"kind"`
	Num  int       `json:"num"`
}

// GIIMSeqID is a GenInfo import identifier.
type GIIMSeqID struct {
	ID      int    `json:"id"`
	DB      string `json:"db,omitempty"`
	Release string `json:"release,omitempty"`
}

func (*LocalID) SeqIDType() SeqIDType      { return SeqIDLocal }
func (t *TextSeqID) SeqIDType() SeqIDType  { return t.Kind }
func (*PatentSeqID) SeqIDType() SeqIDType  { return SeqIDPatent }
func (*PDBSeqID) SeqIDType() SeqIDType     { return SeqIDPDB }
func (*GeneralSeqID) SeqIDType() SeqIDType { return SeqIDGeneral }
func (*GISeqID) SeqIDType() SeqIDType      { return SeqIDGI }
func (g *GIBBSeqID) SeqIDType() SeqIDType  { return g.Kind }
func (*GIIMSeqID) SeqIDType() SeqIDType    { return SeqIDGIIM }

func (*LocalID) isSeqID()      {}
func (*TextSeqID) isSeqID()    {}
func (*PatentSeqID) isSeqID()  {}
func (*PDBSeqID) isSeqID()     {}
func (*GeneralSeqID) isSeqID() {}
func (*GISeqID) isSeqID()      {}
func (*GIBBSeqID) isSeqID()    {}
func (*GIIMSeqID) isSeqID()    {}

// Label renders the identifier in FASTA "prefix|field|field" form.
func (l *LocalID) Label() string { return "lcl|" + l.Tag.String() }

func (t *TextSeqID) Label() string {
	acc := t.Accession
	if acc != "" && t.Version > 0 {
		acc += "." + strconv.Itoa(t.Version)
	}
	return t.Kind.String() + "|" + acc + "|" + t.Name
}

func (p *PatentSeqID) Label() string {
	return "pat|" + p.Cit.Country + "|" + p.Cit.Number + "|" + strconv.Itoa(p.SeqNum)
}

func (p *PDBSeqID) Label() string { return "pdb|" + p.Mol + "|" + p.Chain }

func (g *GeneralSeqID) Label() string { return "gnl|" + g.Tag.Db + "|" + g.Tag.Tag.String() }

func (g *GISeqID) Label() string { return "gi|" + strconv.FormatInt(g.GI, 10) }

func (g *GIBBSeqID) Label() string { return g.Kind.String() + "|" + strconv.Itoa(g.Num) }

func (g *GIIMSeqID) Label() string { return "gim|" + strconv.Itoa(g.ID) }

// ParseSeqID reads a FASTA-style label. A bare token with no '|' is a local ID.
func ParseSeqID(label string) (SeqID, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fmt.Errorf("empty seq-id")
	}
	parts := strings.Split(label, "|")
	if len(parts) == 1 {
		return &LocalID{Tag: ObjectID{Str: label}}, nil
	}
	kind, ok := ParseSeqIDType(parts[0])
	if !ok {
		return nil, fmt.Errorf("unknown seq-id prefix %q", parts[0])
	}
	field := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}
	switch {
	case kind == SeqIDLocal:
		return &LocalID{Tag: parseObjectID(field(1))}, nil
	case IsTextSeqIDType(kind):
		id := &TextSeqID{Kind: kind, Name: field(2)}
		acc := field(1)
		if dot := strings.LastIndexByte(acc, '.'); dot > 0 {
			if v, err := strconv.Atoi(acc[dot+1:]); err == nil {
				id.Version = v
				acc = acc[:dot]
			}
		}
		id.Accession = acc
		return id, nil
	case kind == SeqIDPatent:
		num, err := strconv.Atoi(field(3))
		if err != nil {
			return nil, fmt.Errorf("patent seq-id %q: %w", label, err)
		}
		return &PatentSeqID{SeqNum: num, Cit: IDPat{Country: field(1), Number: field(2)}}, nil
	case kind == SeqIDPDB:
		return &PDBSeqID{Mol: field(1), Chain: field(2)}, nil
	case kind == SeqIDGeneral:
		return &GeneralSeqID{Tag: DbTag{Db: field(1), Tag: parseObjectID(field(2))}}, nil
	case kind == SeqIDGI:
		gi, err := strconv.ParseInt(field(1), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("gi seq-id %q: %w", label, err)
		}
		return &GISeqID{GI: gi}, nil
	case kind == SeqIDGIBBSQ || kind == SeqIDGIBBMT:
		n, err := strconv.Atoi(field(1))
		if err != nil {
			return nil, fmt.Errorf("backbone seq-id %q: %w", label, err)
		}
		return &GIBBSeqID{Kind: kind, Num: n}, nil
	case kind == SeqIDGIIM:
		n, err := strconv.Atoi(field(1))
		if err != nil {
			return nil, fmt.Errorf("giim seq-id %q: %w", label, err)
		}
		return &GIIMSeqID{ID: n}, nil
	}
	return nil, fmt.Errorf("unsupported seq-id %q", label)
}

func parseObjectID(s string) ObjectID {
	if n, err := strconv.Atoi(s); err == nil {
		return ObjectID{ID: n}
	}
	return ObjectID{Str: s}
}
