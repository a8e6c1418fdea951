package domain

// Pub is one publication in the citation hierarchy.
type Pub interface {
	isPub()
}

// TitleKind names the flavour of a title entry.
type TitleKind string

// Title kinds.
const (
	TitleName   TitleKind = "name"
	TitleTsub   TitleKind = "tsub"
	TitleTrans  TitleKind = "trans"
	TitleJTA    TitleKind = "jta"
	TitleISOJTA TitleKind = "iso-jta"
	TitleMLJTA  TitleKind = "ml-jta"
	TitleCoden  TitleKind = "coden"
	TitleISSN   TitleKind = "issn"
	TitleAbr    TitleKind = "abr"
	TitleISBN   TitleKind = "isbn"
)

// Title is one entry of a title set.
type Title struct {
	Kind  TitleKind `json:"kind"`
	Value string    `json:"value"`
}

// Date is either a free-text date or a structured one.
type Date struct {
	Str   string `json:"str,omitempty"`
	Year  int    `json:"year,omitempty"`
	Month int    `json:"month,omitempty"`
	Day   int    `json:"day,omitempty"`
}

// AffilKind distinguishes free-text from structured affiliations.
type AffilKind string

const (
	AffilStr AffilKind = "str"
	AffilStd AffilKind = "std"
)

// Affil is an author or submitter affiliation.
type Affil struct {
	Kind       AffilKind `json:"kind"`
	Str        string    `json:"str,omitempty"`
	Affil      string    `json:"affil,omitempty"`
	Div        string    `json:"div,omitempty"`
	City       string    `json:"city,omitempty"`
	Sub        string    `json:"sub,omitempty"`
	Country    string    `json:"country,omitempty"`
	Street     string    `json:"street,omitempty"`
	Email      string    `json:"email,omitempty"`
	Fax        string    `json:"fax,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	PostalCode string    `json:"postal_code,omitempty"`
}

// AuthorName is the person identifier for an author.
type AuthorName interface {
	isAuthorName()
}

// NameStd is a structured personal name.
type NameStd struct {
	Last     string `json:"last"`
	First    string `json:"first,omitempty"`
	Middle   string `json:"middle,omitempty"`
	Full     string `json:"full,omitempty"`
	Initials string `json:"initials,omitempty"`
	Suffix   string `json:"suffix,omitempty"`
	Title    string `json:"title,omitempty"`
}

// MLName is a MEDLINE formatted name ("Smith JA").
type MLName struct {
	Name string `json:"name"`
}

// StrName is an unstructured name.
type StrName struct {
	Name string `json:"name"`
}

// ConsortiumName names a consortium author.
type ConsortiumName struct {
	Name string `json:"name"`
}

// DbTagName identifies an author by database reference.
type DbTagName struct {
	Tag DbTag `json:"tag"`
}

func (*NameStd) isAuthorName()        {}
func (*MLName) isAuthorName()         {}
func (*StrName) isAuthorName()        {}
func (*ConsortiumName) isAuthorName() {}
func (*DbTagName) isAuthorName()      {}

// Author is one entry of a standard author list.
type Author struct {
	Name  AuthorName `json:"-"`
	Affil *Affil     `json:"affil,omitempty"`
	Role  int        `json:"role,omitempty"`
}

// AuthListKind selects how the names of an author list are stored.
type AuthListKind string

const (
	AuthListStd AuthListKind = "std"
	AuthListML  AuthListKind = "ml"
	AuthListStr AuthListKind = "str"
)

// AuthList holds either structured authors or plain name strings.
type AuthList struct {
	Kind  AuthListKind `json:"kind"`
	Std   []*Author    `json:"std,omitempty"`
	Names []string     `json:"names,omitempty"`
	Affil *Affil       `json:"affil,omitempty"`
}

// Imprint describes where and when a citation appeared.
type Imprint struct {
	Date     *Date  `json:"date,omitempty"`
	Volume   string `json:"volume,omitempty"`
	Issue    string `json:"issue,omitempty"`
	Pages    string `json:"pages,omitempty"`
	Section  string `json:"section,omitempty"`
	Pub      *Affil `json:"pub,omitempty"`
	Language string `json:"language,omitempty"`
	PartSup  string `json:"part_sup,omitempty"`
	Prepub   int    `json:"prepub,omitempty"`
}

// CitGen is a generic, loosely structured citation.
type CitGen struct {
	Cit          string    `json:"cit,omitempty"`
	Authors      *AuthList `json:"authors,omitempty"`
	MUID         int       `json:"muid,omitempty"`
	Journal      []Title   `json:"journal,omitempty"`
	Volume       string    `json:"volume,omitempty"`
	Issue        string    `json:"issue,omitempty"`
	Pages        string    `json:"pages,omitempty"`
	Date         *Date     `json:"date,omitempty"`
	SerialNumber int       `json:"serial_number,omitempty"`
	Title        string    `json:"title,omitempty"`
	PMID         int       `json:"pmid,omitempty"`
}

// CitSub is a direct submission citation.
type CitSub struct {
	Authors *AuthList `json:"authors,omitempty"`
	Imp     *Imprint  `json:"imp,omitempty"`
	Medium  int       `json:"medium,omitempty"`
	Date    *Date     `json:"date,omitempty"`
	Descr   string    `json:"descr,omitempty"`
}

// MeshTerm is a MEDLINE subject heading.
type MeshTerm struct {
	Term string `json:"term"`
	MP   bool   `json:"mp,omitempty"`
}

// MedlineRN is a chemical substance record.
type MedlineRN struct {
	Type int    `json:"type,omitempty"`
	Cit  string `json:"cit,omitempty"`
	Name string `json:"name"`
}

// MedlineEntry is a full MEDLINE record.
type MedlineEntry struct {
	UID       int         `json:"uid,omitempty"`
	EM        *Date       `json:"em,omitempty"`
	Cit       *CitArt     `json:"cit,omitempty"`
	Abstract  string      `json:"abstract,omitempty"`
	Mesh      []MeshTerm  `json:"mesh,omitempty"`
	Substance []MedlineRN `json:"substance,omitempty"`
	Gene      []string    `json:"gene,omitempty"`
	IDNum     []string    `json:"idnum,omitempty"`
	PMID      int         `json:"pmid,omitempty"`
}

// MUIDPub references a MEDLINE UID with no text payload.
type MUIDPub struct {
	UID int `json:"uid"`
}

// PMIDPub references a PubMed ID with no text payload.
type PMIDPub struct {
	PMID int `json:"pmid"`
}

// CitArt is an article. From holds a *CitJour, *CitBook or *CitProc.
type CitArt struct {
	Title   []Title   `json:"title,omitempty"`
	Authors *AuthList `json:"authors,omitempty"`
	From    Pub       `json:"-"`
}

// CitJour is a journal.
type CitJour struct {
	Title []Title  `json:"title,omitempty"`
	Imp   *Imprint `json:"imp,omitempty"`
}

// CitBook is a book or a chapter host.
type CitBook struct {
	Title   []Title   `json:"title,omitempty"`
	Coll    []Title   `json:"coll,omitempty"`
	Authors *AuthList `json:"authors,omitempty"`
	Imp     *Imprint  `json:"imp,omitempty"`
}

// Meeting describes where proceedings were presented.
type Meeting struct {
	Number string `json:"number,omitempty"`
	Date   *Date  `json:"date,omitempty"`
	Place  *Affil `json:"place,omitempty"`
}

// CitProc is a proceedings citation.
type CitProc struct {
	Book *CitBook `json:"book,omitempty"`
	Meet *Meeting `json:"meet,omitempty"`
}

// CitPat is a patent citation.
type CitPat struct {
	Title      string    `json:"title,omitempty"`
	Authors    *AuthList `json:"authors,omitempty"`
	Country    string    `json:"country,omitempty"`
	DocType    string    `json:"doc_type,omitempty"`
	Number     string    `json:"number,omitempty"`
	DateIssue  *Date     `json:"date_issue,omitempty"`
	Class      []string  `json:"class,omitempty"`
	AppNumber  string    `json:"app_number,omitempty"`
	AppDate    *Date     `json:"app_date,omitempty"`
	Applicants *AuthList `json:"applicants,omitempty"`
	Assignees  *AuthList `json:"assignees,omitempty"`
	Abstract   string    `json:"abstract,omitempty"`
}

// IDPat identifies a patent by number.
type IDPat struct {
	Country   string `json:"country"`
	Number    string `json:"number,omitempty"`
	AppNumber string `json:"app_number,omitempty"`
}

// CitLet is a letter, thesis or manuscript.
type CitLet struct {
	Cit   *CitBook `json:"cit,omitempty"`
	ManID string   `json:"man_id,omitempty"`
	Type  int      `json:"type,omitempty"`
}

// PubEquiv groups citations describing the same publication.
type PubEquiv struct {
	Pubs []Pub `json:"-"`
}

func (*CitGen) isPub()       {}
func (*CitSub) isPub()       {}
func (*MedlineEntry) isPub() {}
func (*MUIDPub) isPub()      {}
func (*PMIDPub) isPub()      {}
func (*CitArt) isPub()       {}
func (*CitJour) isPub()      {}
func (*CitBook) isPub()      {}
func (*CitProc) isPub()      {}
func (*CitPat) isPub()       {}
func (*IDPat) isPub()        {}
func (*CitLet) isPub()       {}
func (*PubEquiv) isPub()     {}

// Pubdesc attaches a publication to a sequence or a feature.
type Pubdesc struct {
	Pub     []Pub  `json:"-"`
	Name    string `json:"name,omitempty"`
	Fig     string `json:"fig,omitempty"`
	Maploc  string `json:"maploc,omitempty"`
	SeqRaw  string `json:"seq_raw,omitempty"`
	Comment string `json:"comment,omitempty"`
	PolyA   bool   `json:"poly_a,omitempty"`
	RefType int    `json:"reftype,omitempty"`
}
