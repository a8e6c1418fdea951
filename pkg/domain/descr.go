package domain

import (
	"fmt"
	"strings"
)

// DescrType enumerates descriptor kinds using the NCBI Seqdescr choice numbering.
type DescrType uint8

// Descriptor kinds.
const (
	DescrNotSet     DescrType = 0
	DescrMolType    DescrType = 1
	DescrModif      DescrType = 2
	DescrMethod     DescrType = 3
	DescrName       DescrType = 4
	DescrTitle      DescrType = 5
	DescrOrg        DescrType = 6
	DescrComment    DescrType = 7
	DescrGenBank    DescrType = 11
	DescrPub        DescrType = 12
	DescrRegion     DescrType = 13
	DescrUser       DescrType = 14
	DescrCreateDate DescrType = 18
	DescrUpdateDate DescrType = 19
	DescrHet        DescrType = 22
	DescrSource     DescrType = 23
	DescrMolInfo    DescrType = 24
)

var descrTypeNames = []struct {
	t    DescrType
	name string
}{
	{DescrMolType, "mol_type"},
	{DescrModif, "modif"},
	{DescrMethod, "method"},
	{DescrName, "name"},
	{DescrTitle, "title"},
	{DescrOrg, "org"},
	{DescrComment, "comment"},
	{DescrGenBank, "genbank"},
	{DescrPub, "pub"},
	{DescrRegion, "region"},
	{DescrUser, "user"},
	{DescrCreateDate, "create_date"},
	{DescrUpdateDate, "update_date"},
	{DescrHet, "het"},
	{DescrSource, "source"},
	{DescrMolInfo, "molinfo"},
}

func (t DescrType) String() string {
	for _, e := range descrTypeNames {
		if e.t == t {
			return e.name
		}
	}
	return fmt.Sprintf("descr(%d)", uint8(t))
}

// ParseDescrType resolves a descriptor kind name.
func ParseDescrType(name string) (DescrType, bool) {
	for _, e := range descrTypeNames {
		if strings.EqualFold(e.name, name) {
			return e.t, true
		}
	}
	return DescrNotSet, false
}

// AllDescrTypes lists every defined descriptor kind in ascending order.
func AllDescrTypes() []DescrType {
	out := make([]DescrType, 0, len(descrTypeNames))
	for _, e := range descrTypeNames {
		out = append(out, e.t)
	}
	return out
}

// SeqDescr is a descriptor attached to a Bioseq or BioseqSet.
type SeqDescr interface {
	DescrType() DescrType
	isSeqDescr()
}

// NameDescr is a short name for the sequence.
type NameDescr struct {
	Text string `json:"text"`
}

// TitleDescr is the sequence definition line.
type TitleDescr struct {
	Text string `json:"text"`
}

// CommentDescr is a free-text comment.
type CommentDescr struct {
	Text string `json:"text"`
}

// RegionDescr names the region the sequence covers.
type RegionDescr struct {
	Text string `json:"text"`
}

// HetDescr names a heterogen.
type HetDescr struct {
	Text string `json:"text"`
}

// GBBlock carries GenBank flat-file specific fields.
type GBBlock struct {
	ExtraAccessions []string `json:"extra_accessions,omitempty"`
	Source          string   `json:"source,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	Origin          string   `json:"origin,omitempty"`
	Date            string   `json:"date,omitempty"`
	Div             string   `json:"div,omitempty"`
	Taxonomy        string   `json:"taxonomy,omitempty"`
}

// MolInfo describes the molecule. Only TechExp is free text.
type MolInfo struct {
	Biomol       int    `json:"biomol,omitempty"`
	Tech         int    `json:"tech,omitempty"`
	TechExp      string `json:"techexp,omitempty"`
	Completeness int    `json:"completeness,omitempty"`
}

// CreateDateDescr records when the entry was created.
type CreateDateDescr struct {
	Date Date `json:"date"`
}

// UpdateDateDescr records when the entry was last updated.
type UpdateDateDescr struct {
	Date Date `json:"date"`
}

// MolTypeDescr is the legacy numeric molecule type.
type MolTypeDescr struct {
	Mol int `json:"mol"`
}

// MethodDescr is the legacy numeric sequencing method.
type MethodDescr struct {
	Method int `json:"method"`
}

// ModifDescr is the legacy numeric modifier list.
type ModifDescr struct {
	Modif []int `json:"modif"`
}

func (*NameDescr) DescrType() DescrType       { return DescrName }
func (*TitleDescr) DescrType() DescrType      { return DescrTitle }
func (*CommentDescr) DescrType() DescrType    { return DescrComment }
func (*RegionDescr) DescrType() DescrType     { return DescrRegion }
func (*HetDescr) DescrType() DescrType        { return DescrHet }
func (*OrgRef) DescrType() DescrType          { return DescrOrg }
func (*GBBlock) DescrType() DescrType         { return DescrGenBank }
func (*Pubdesc) DescrType() DescrType         { return DescrPub }
func (*UserObject) DescrType() DescrType      { return DescrUser }
func (*BioSource) DescrType() DescrType       { return DescrSource }
func (*MolInfo) DescrType() DescrType         { return DescrMolInfo }
func (*CreateDateDescr) DescrType() DescrType { return DescrCreateDate }
func (*UpdateDateDescr) DescrType() DescrType { return DescrUpdateDate }
func (*MolTypeDescr) DescrType() DescrType    { return DescrMolType }
func (*MethodDescr) DescrType() DescrType     { return DescrMethod }
func (*ModifDescr) DescrType() DescrType      { return DescrModif }

func (*NameDescr) isSeqDescr()       {}
func (*TitleDescr) isSeqDescr()      {}
func (*CommentDescr) isSeqDescr()    {}
func (*RegionDescr) isSeqDescr()     {}
func (*HetDescr) isSeqDescr()        {}
func (*OrgRef) isSeqDescr()          {}
func (*GBBlock) isSeqDescr()         {}
func (*Pubdesc) isSeqDescr()         {}
func (*UserObject) isSeqDescr()      {}
func (*BioSource) isSeqDescr()       {}
func (*MolInfo) isSeqDescr()         {}
func (*CreateDateDescr) isSeqDescr() {}
func (*UpdateDateDescr) isSeqDescr() {}
func (*MolTypeDescr) isSeqDescr()    {}
func (*MethodDescr) isSeqDescr()     {}
func (*ModifDescr) isSeqDescr()      {}
