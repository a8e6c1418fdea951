package domain

import (
	"fmt"
	"sort"
	"strings"
)

// FeatDef enumerates feature subtypes using the NCBI FEATDEF numbering.
type FeatDef uint8

// Feature subtypes. Import (Imp) features refine into the keyed subtypes below.
const (
	FeatDefBad           FeatDef = 0
	FeatDefGene          FeatDef = 1
	FeatDefOrg           FeatDef = 2
	FeatDefCDS           FeatDef = 3
	FeatDefProt          FeatDef = 4
	FeatDefPreRNA        FeatDef = 5
	FeatDefMRNA          FeatDef = 6
	FeatDefTRNA          FeatDef = 7
	FeatDefRRNA          FeatDef = 8
	FeatDefSnRNA         FeatDef = 9
	FeatDefScRNA         FeatDef = 10
	FeatDefOtherRNA      FeatDef = 11
	FeatDefPub           FeatDef = 12
	FeatDefSeq           FeatDef = 13
	FeatDefImp           FeatDef = 14
	FeatDefAllele        FeatDef = 15
	FeatDefExon          FeatDef = 24
	FeatDefIntron        FeatDef = 27
	FeatDefLTR           FeatDef = 29
	FeatDefMatPeptide    FeatDef = 30
	FeatDefMiscFeature   FeatDef = 33
	FeatDefMiscRNA       FeatDef = 35
	FeatDefPolyASite     FeatDef = 43
	FeatDefPromoter      FeatDef = 47
	FeatDefRepeatRegion  FeatDef = 50
	FeatDefSigPeptide    FeatDef = 55
	FeatDefSource        FeatDef = 56
	FeatDefSTS           FeatDef = 58
	FeatDefVariation     FeatDef = 65
	FeatDefUTR3          FeatDef = 68
	FeatDefUTR5          FeatDef = 70
	FeatDefRegion        FeatDef = 74
	FeatDefComment       FeatDef = 75
	FeatDefBond          FeatDef = 76
	FeatDefSite          FeatDef = 77
	FeatDefRSite         FeatDef = 78
	FeatDefUser          FeatDef = 79
	FeatDefTxInit        FeatDef = 80
	FeatDefNum           FeatDef = 81
	FeatDefPSecStr       FeatDef = 82
	FeatDefNonStdResidue FeatDef = 83
	FeatDefHet           FeatDef = 84
	FeatDefBioSrc        FeatDef = 85
)

var featDefNames = map[FeatDef]string{
	FeatDefGene:          "gene",
	FeatDefOrg:           "org",
	FeatDefCDS:           "CDS",
	FeatDefProt:          "Protein",
	FeatDefPreRNA:        "preRNA",
	FeatDefMRNA:          "mRNA",
	FeatDefTRNA:          "tRNA",
	FeatDefRRNA:          "rRNA",
	FeatDefSnRNA:         "snRNA",
	FeatDefScRNA:         "scRNA",
	FeatDefOtherRNA:      "otherRNA",
	FeatDefPub:           "Cit",
	FeatDefSeq:           "Xref",
	FeatDefImp:           "Imp",
	FeatDefAllele:        "allele",
	FeatDefExon:          "exon",
	FeatDefIntron:        "intron",
	FeatDefLTR:           "LTR",
	FeatDefMatPeptide:    "mat_peptide",
	FeatDefMiscFeature:   "misc_feature",
	FeatDefMiscRNA:       "misc_RNA",
	FeatDefPolyASite:     "polyA_site",
	FeatDefPromoter:      "promoter",
	FeatDefRepeatRegion:  "repeat_region",
	FeatDefSigPeptide:    "sig_peptide",
	FeatDefSource:        "source",
	FeatDefSTS:           "STS",
	FeatDefVariation:     "variation",
	FeatDefUTR3:          "3'UTR",
	FeatDefUTR5:          "5'UTR",
	FeatDefRegion:        "Region",
	FeatDefComment:       "Comment",
	FeatDefBond:          "Bond",
	FeatDefSite:          "Site",
	FeatDefRSite:         "Rsite",
	FeatDefUser:          "User",
	FeatDefTxInit:        "TxInit",
	FeatDefNum:           "Num",
	FeatDefPSecStr:       "SecStr",
	FeatDefNonStdResidue: "NonStdRes",
	FeatDefHet:           "Het",
	FeatDefBioSrc:        "Src",
}

// impKeyDefs maps import feature keys onto their keyed subtype.
var impKeyDefs = map[string]FeatDef{
	"allele":        FeatDefAllele,
	"exon":          FeatDefExon,
	"intron":        FeatDefIntron,
	"LTR":           FeatDefLTR,
	"mat_peptide":   FeatDefMatPeptide,
	"misc_feature":  FeatDefMiscFeature,
	"misc_RNA":      FeatDefMiscRNA,
	"polyA_site":    FeatDefPolyASite,
	"promoter":      FeatDefPromoter,
	"repeat_region": FeatDefRepeatRegion,
	"sig_peptide":   FeatDefSigPeptide,
	"source":        FeatDefSource,
	"STS":           FeatDefSTS,
	"variation":     FeatDefVariation,
	"3'UTR":         FeatDefUTR3,
	"5'UTR":         FeatDefUTR5,
}

func (d FeatDef) String() string {
	if name, ok := featDefNames[d]; ok {
		return name
	}
	return fmt.Sprintf("featdef(%d)", uint8(d))
}

// ParseFeatDef resolves a subtype name case-insensitively.
func ParseFeatDef(name string) (FeatDef, bool) {
	for def, n := range featDefNames {
		if strings.EqualFold(n, name) {
			return def, true
		}
	}
	return FeatDefBad, false
}

// AllFeatDefs lists every defined feature subtype in ascending order.
func AllFeatDefs() []FeatDef {
	out := make([]FeatDef, 0, len(featDefNames))
	for def := range featDefNames {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FeatData is the type-specific payload of a feature.
type FeatData interface {
	isFeatData()
}

// GeneRef describes a gene.
type GeneRef struct {
	Locus    string   `json:"locus,omitempty"`
	Allele   string   `json:"allele,omitempty"`
	Desc     string   `json:"desc,omitempty"`
	Maploc   string   `json:"maploc,omitempty"`
	LocusTag string   `json:"locus_tag,omitempty"`
	Pseudo   bool     `json:"pseudo,omitempty"`
	Db       []DbTag  `json:"db,omitempty"`
	Syn      []string `json:"syn,omitempty"`
}

// CdRegion marks a coding region. It carries no free text.
type CdRegion struct {
	Frame       int  `json:"frame,omitempty"`
	Orf         bool `json:"orf,omitempty"`
	Conflict    bool `json:"conflict,omitempty"`
	GeneticCode int  `json:"genetic_code,omitempty"`
}

// ProtRef describes a protein.
type ProtRef struct {
	Name      []string `json:"name,omitempty"`
	Desc      string   `json:"desc,omitempty"`
	EC        []string `json:"ec,omitempty"`
	Activity  []string `json:"activity,omitempty"`
	Db        []DbTag  `json:"db,omitempty"`
	Processed int      `json:"processed,omitempty"`
}

// RNAType enumerates RNA feature kinds.
type RNAType uint8

const (
	RNAUnknown          RNAType = 0
	RNAPre              RNAType = 1
	RNAMessage          RNAType = 2
	RNATransfer         RNAType = 3
	RNARibosomal        RNAType = 4
	RNASmallNuclear     RNAType = 5
	RNASmallCytoplasmic RNAType = 6
	RNAOther            RNAType = 255
)

// RNARef describes an RNA product.
type RNARef struct {
	Type   RNAType `json:"type"`
	Pseudo bool    `json:"pseudo,omitempty"`
	Name   string  `json:"name,omitempty"`
}

// ImpFeat is a feature imported from a flat file. Key selects its subtype.
type ImpFeat struct {
	Key   string `json:"key"`
	Loc   string `json:"loc,omitempty"`
	Descr string `json:"descr,omitempty"`
}

// SeqRefFeat points at another sequence region.
type SeqRefFeat struct {
	Loc SeqLoc `json:"-"`
}

// RegionFeat names a region of interest.
type RegionFeat struct {
	Name string `json:"name"`
}

// CommentFeat is a comment-only feature; the text lives on the SeqFeat.
type CommentFeat struct{}

// BondFeat is a chemical bond.
type BondFeat struct {
	Kind int `json:"kind"`
}

// SiteFeat is a site of interest.
type SiteFeat struct {
	Kind int `json:"kind"`
}

// RSiteFeat is a restriction site, named or referenced.
type RSiteFeat struct {
	Str string `json:"str,omitempty"`
	Db  *DbTag `json:"db,omitempty"`
}

// TxInitFeat is a transcription initiation site.
type TxInitFeat struct {
	Name string `json:"name"`
}

// NumFeat is a numbering system.
type NumFeat struct {
	Kind int `json:"kind"`
}

// PSecStrFeat is a protein secondary structure.
type PSecStrFeat struct {
	Kind int `json:"kind"`
}

// NonStdResidueFeat is a non-standard residue.
type NonStdResidueFeat struct {
	Residue string `json:"residue"`
}

// HetFeat is a heterogen.
type HetFeat struct {
	Name string `json:"name"`
}

func (*GeneRef) isFeatData()           {}
func (*OrgRef) isFeatData()            {}
func (*CdRegion) isFeatData()          {}
func (*ProtRef) isFeatData()           {}
func (*RNARef) isFeatData()            {}
func (*Pubdesc) isFeatData()           {}
func (*SeqRefFeat) isFeatData()        {}
func (*ImpFeat) isFeatData()           {}
func (*RegionFeat) isFeatData()        {}
func (*CommentFeat) isFeatData()       {}
func (*BondFeat) isFeatData()          {}
func (*SiteFeat) isFeatData()          {}
func (*RSiteFeat) isFeatData()         {}
func (*UserObject) isFeatData()        {}
func (*TxInitFeat) isFeatData()        {}
func (*NumFeat) isFeatData()           {}
func (*PSecStrFeat) isFeatData()       {}
func (*NonStdResidueFeat) isFeatData() {}
func (*HetFeat) isFeatData()           {}
func (*BioSource) isFeatData()         {}

// GBQual is a flat-file qualifier.
type GBQual struct {
	Qual string `json:"qual"`
	Val  string `json:"val"`
}

// FeatXref links a feature to gene or protein data it does not own.
type FeatXref struct {
	Data FeatData `json:"-"`
}

// SeqFeat is a feature annotated on a sequence.
type SeqFeat struct {
	Data       FeatData   `json:"-"`
	Location   SeqLoc     `json:"-"`
	Product    SeqLoc     `json:"-"`
	Cit        []Pub      `json:"-"`
	Xref       []FeatXref `json:"xref,omitempty"`
	Partial    bool       `json:"partial,omitempty"`
	Except     bool       `json:"except,omitempty"`
	Pseudo     bool       `json:"pseudo,omitempty"`
	Comment    string     `json:"comment,omitempty"`
	Title      string     `json:"title,omitempty"`
	ExceptText string     `json:"except_text,omitempty"`
	Qual       []GBQual   `json:"qual,omitempty"`
	Dbxref     []DbTag    `json:"dbxref,omitempty"`
}

// Subtype resolves the feature's FeatDef from its payload.
func (f *SeqFeat) Subtype() FeatDef {
	switch d := f.Data.(type) {
	case *GeneRef:
		return FeatDefGene
	case *OrgRef:
		return FeatDefOrg
	case *CdRegion:
		return FeatDefCDS
	case *ProtRef:
		return FeatDefProt
	case *RNARef:
		switch d.Type {
		case RNAPre:
			return FeatDefPreRNA
		case RNAMessage:
			return FeatDefMRNA
		case RNATransfer:
			return FeatDefTRNA
		case RNARibosomal:
			return FeatDefRRNA
		case RNASmallNuclear:
			return FeatDefSnRNA
		case RNASmallCytoplasmic:
			return FeatDefScRNA
		}
		return FeatDefOtherRNA
	case *Pubdesc:
		return FeatDefPub
	case *SeqRefFeat:
		return FeatDefSeq
	case *ImpFeat:
		if def, ok := impKeyDefs[d.Key]; ok {
			return def
		}
		return FeatDefImp
	case *RegionFeat:
		return FeatDefRegion
	case *CommentFeat:
		return FeatDefComment
	case *BondFeat:
		return FeatDefBond
	case *SiteFeat:
		return FeatDefSite
	case *RSiteFeat:
		return FeatDefRSite
	case *UserObject:
		return FeatDefUser
	case *TxInitFeat:
		return FeatDefTxInit
	case *NumFeat:
		return FeatDefNum
	case *PSecStrFeat:
		return FeatDefPSecStr
	case *NonStdResidueFeat:
		return FeatDefNonStdResidue
	case *HetFeat:
		return FeatDefHet
	case *BioSource:
		return FeatDefBioSrc
	}
	return FeatDefBad
}
