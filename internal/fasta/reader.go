// Package fasta imports FASTA text into sequence records. Definition lines may
// carry bracketed source modifiers in the form
//
//	>lcl|seq1 [organism=Danio rerio] [strain=AB] partial cds
//
// which become a BioSource descriptor. The remaining text becomes the title.
package fasta

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"sequincore/pkg/domain"
)

// ErrNoSequences is returned when the input holds no FASTA records.
var ErrNoSequences = errors.New("fasta: no sequences in input")

// Options tunes how parsed sequences are assembled into a record.
type Options struct {
	// Class is used for the wrapping set when the input holds more than one
	// sequence. Zero selects SetClassGenBank.
	Class domain.SetClass
	// Mol forces the molecule type. Empty means guess from the residues.
	Mol domain.MolType
}

// Defline is a parsed FASTA definition line.
type Defline struct {
	ID    domain.SeqID
	Title string
	Mods  []Modifier
}

// Modifier is one bracketed key=value pair from a definition line.
type Modifier struct {
	Key   string
	Value string
}

// Read parses every sequence in r into a Bioseq.
func Read(r io.Reader, opts Options) ([]*domain.Bioseq, error) {
	fr := fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA))
	var out []*domain.Bioseq
	for {
		s, err := fr.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("fasta: read sequence %d: %w", len(out)+1, err)
		}
		ls, ok := s.(*linear.Seq)
		if !ok {
			return nil, fmt.Errorf("fasta: unexpected sequence type %T", s)
		}
		dl, err := ParseDefline(ls.Name(), ls.Description())
		if err != nil {
			return nil, fmt.Errorf("fasta: sequence %d: %w", len(out)+1, err)
		}
		residues := letters(ls.Seq)
		mol := opts.Mol
		if mol == domain.MolNotSet {
			mol = GuessMol(residues)
		}
		out = append(out, dl.Bioseq(residues, mol))
	}
	if len(out) == 0 {
		return nil, ErrNoSequences
	}
	return out, nil
}

// ReadRecord parses r into a single record. One sequence yields a bare Bioseq
// entry; several are wrapped in a BioseqSet.
func ReadRecord(r io.Reader, name string, opts Options) (domain.Record, error) {
	seqs, err := Read(r, opts)
	if err != nil {
		return domain.Record{}, err
	}
	rec := domain.Record{Name: name}
	if len(seqs) == 1 {
		rec.Entries = []domain.SeqEntry{seqs[0]}
		return rec, nil
	}
	class := opts.Class
	if class == domain.SetClassNotSet {
		class = domain.SetClassGenBank
	}
	set := &domain.BioseqSet{Class: class}
	for _, bs := range seqs {
		set.Seqs = append(set.Seqs, bs)
	}
	rec.Entries = []domain.SeqEntry{set}
	return rec, nil
}

// ParseDefline splits a definition line into its identifier, modifiers and
// title. Bracketed text that is not a key=value pair stays in the title.
func ParseDefline(id, desc string) (Defline, error) {
	sid, err := domain.ParseSeqID(id)
	if err != nil {
		return Defline{}, err
	}
	dl := Defline{ID: sid}
	var title strings.Builder
	rest := desc
	for {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			title.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[open:], ']')
		if end < 0 {
			title.WriteString(rest)
			break
		}
		end += open
		key, value, ok := strings.Cut(rest[open+1:end], "=")
		key = strings.ToLower(strings.TrimSpace(key))
		if !ok || key == "" {
			title.WriteString(rest[:end+1])
		} else {
			title.WriteString(rest[:open])
			dl.Mods = append(dl.Mods, Modifier{Key: key, Value: strings.TrimSpace(value)})
		}
		rest = rest[end+1:]
	}
	dl.Title = strings.Join(strings.Fields(title.String()), " ")
	return dl, nil
}

// Bioseq builds the sequence described by the definition line.
func (d Defline) Bioseq(residues string, mol domain.MolType) *domain.Bioseq {
	bs := &domain.Bioseq{
		IDs: []domain.SeqID{d.ID},
		Inst: domain.SeqInst{
			Mol:    mol,
			Repr:   "raw",
			Length: len(residues),
			Seq:    residues,
		},
	}
	if src := d.BioSource(); src != nil {
		bs.Descr = append(bs.Descr, src)
	}
	if d.Title != "" {
		bs.Descr = append(bs.Descr, &domain.TitleDescr{Text: d.Title})
	}
	return bs
}

var orgMods = map[string]domain.OrgModType{
	"strain":     domain.OrgModStrain,
	"substrain":  domain.OrgModSubstrain,
	"sub-strain": domain.OrgModSubstrain,
	"subtype":    domain.OrgModSubtype,
	"variety":    domain.OrgModVariety,
	"serotype":   domain.OrgModSerotype,
	"cultivar":   domain.OrgModCultivar,
	"isolate":    domain.OrgModIsolate,
	"acronym":    domain.OrgModAcronym,
	"subspecies": domain.OrgModSubspecies,
}

var subSources = map[string]domain.SubSourceType{
	"chromosome":       domain.SubSourceChromosome,
	"map":              domain.SubSourceMapLoc,
	"clone":            domain.SubSourceClone,
	"tissue-type":      domain.SubSourceTissueType,
	"tissue_type":      domain.SubSourceTissueType,
	"country":          domain.SubSourceCountry,
	"isolation-source": domain.SubSourceIsolationSrc,
	"isolation_source": domain.SubSourceIsolationSrc,
	"lat-lon":          domain.SubSourceLatLon,
	"lat_lon":          domain.SubSourceLatLon,
	"collected-by":     domain.SubSourceCollectedBy,
	"collected_by":     domain.SubSourceCollectedBy,
	"note":             domain.SubSourceNote,
	"subsource-note":   domain.SubSourceNote,
}

// BioSource assembles the source descriptor from the modifiers. It returns nil
// when no modifier describes the source.
func (d Defline) BioSource() *domain.BioSource {
	var (
		src  domain.BioSource
		org  domain.OrgRef
		name domain.OrgName
		seen bool
	)
	for _, m := range d.Mods {
		if m.Value == "" {
			continue
		}
		switch m.Key {
		case "organism", "org":
			org.Taxname = m.Value
		case "common", "common-name":
			org.Common = m.Value
		case "lineage":
			name.Lineage = m.Value
		case "div", "division":
			name.Div = m.Value
		default:
			if t, ok := orgMods[m.Key]; ok {
				name.Mod = append(name.Mod, domain.OrgMod{Subtype: t, Subname: m.Value})
			} else if t, ok := subSources[m.Key]; ok {
				src.Subtype = append(src.Subtype, domain.SubSource{Subtype: t, Name: m.Value})
			} else {
				continue
			}
		}
		seen = true
	}
	if !seen {
		return nil
	}
	if len(name.Mod) > 0 || name.Lineage != "" || name.Div != "" {
		org.OrgName = &name
	}
	if org.Taxname != "" || org.Common != "" || org.OrgName != nil {
		src.Org = &org
	}
	return &src
}

// GuessMol classifies residues as nucleotide or protein. Anything outside the
// IUPAC nucleotide codes makes the sequence a protein; U without T makes it RNA.
func GuessMol(residues string) domain.MolType {
	if residues == "" {
		return domain.MolNA
	}
	var hasT, hasU bool
	for i := 0; i < len(residues); i++ {
		switch residues[i] | 0x20 {
		case 't':
			hasT = true
		case 'u':
			hasU = true
		case 'a', 'c', 'g', 'n', 'r', 'y', 'k', 'm', 's', 'w', 'b', 'd', 'h', 'v', '-':
		default:
			return domain.MolProtein
		}
	}
	if hasU && !hasT {
		return domain.MolRNA
	}
	return domain.MolDNA
}

func letters(ls alphabet.Letters) string {
	b := make([]byte, len(ls))
	for i, l := range ls {
		b[i] = byte(l)
	}
	return string(b)
}
