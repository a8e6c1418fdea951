package domain

// TaxonDb is the dbxref database name carrying the NCBI taxonomy ID of an organism.
const TaxonDb = "taxon"

// OrgMod is a typed organism modifier (strain, isolate, ...).
type OrgMod struct {
	Subtype OrgModType `json:"subtype"`
	Subname string     `json:"subname"`
	Attrib  string     `json:"attrib,omitempty"`
}

// OrgModType enumerates organism modifier kinds.
type OrgModType int

// Organism modifier kinds (subset of the NCBI OrgMod subtype list).
const (
	OrgModStrain     OrgModType = 2
	OrgModSubstrain  OrgModType = 3
	OrgModSubtype    OrgModType = 5
	OrgModVariety    OrgModType = 6
	OrgModSerotype   OrgModType = 7
	OrgModCultivar   OrgModType = 10
	OrgModIsolate    OrgModType = 17
	OrgModCommon     OrgModType = 18
	OrgModAcronym    OrgModType = 19
	OrgModSubspecies OrgModType = 22
	OrgModOther      OrgModType = 255
)

// OrgName holds the formal name and lineage of an organism.
type OrgName struct {
	Name    string   `json:"name,omitempty"`
	Attrib  string   `json:"attrib,omitempty"`
	Mod     []OrgMod `json:"mod,omitempty"`
	Lineage string   `json:"lineage,omitempty"`
	GCode   int      `json:"gcode,omitempty"`
	MGCode  int      `json:"mgcode,omitempty"`
	Div     string   `json:"div,omitempty"`
}

// OrgRef is a reference to an organism.
type OrgRef struct {
	Taxname string   `json:"taxname,omitempty"`
	Common  string   `json:"common,omitempty"`
	Mod     []string `json:"mod,omitempty"`
	Db      []DbTag  `json:"db,omitempty"`
	Syn     []string `json:"syn,omitempty"`
	OrgName *OrgName `json:"orgname,omitempty"`
}

// TaxonID returns the taxonomy identifier recorded in the dbxrefs, if any.
func (o *OrgRef) TaxonID() (int, bool) {
	for _, db := range o.Db {
		if db.Db == TaxonDb {
			return db.Tag.ID, true
		}
	}
	return 0, false
}

// SubSourceType enumerates source qualifier kinds.
type SubSourceType int

// Source qualifier kinds (subset of the NCBI SubSource subtype list).
const (
	SubSourceChromosome   SubSourceType = 1
	SubSourceMapLoc       SubSourceType = 2
	SubSourceClone        SubSourceType = 3
	SubSourceTissueType   SubSourceType = 11
	SubSourceCountry      SubSourceType = 23
	SubSourceIsolationSrc SubSourceType = 28
	SubSourceLatLon       SubSourceType = 29
	SubSourceCollectedBy  SubSourceType = 31
	SubSourceNote         SubSourceType = 255
)

// SubSource is a typed source qualifier.
type SubSource struct {
	Subtype SubSourceType `json:"subtype"`
	Name    string        `json:"name"`
	Attrib  string        `json:"attrib,omitempty"`
}

// BioSource describes the biological origin of a sequence.
type BioSource struct {
	Genome  int         `json:"genome,omitempty"`
	Origin  int         `json:"origin,omitempty"`
	Org     *OrgRef     `json:"org,omitempty"`
	Subtype []SubSource `json:"subtype,omitempty"`
	IsFocus bool        `json:"is_focus,omitempty"`
}

// UserField is one labelled value of a user object. Exactly one of the value
// fields is normally populated.
type UserField struct {
	Label  ObjectID    `json:"label"`
	Str    string      `json:"str,omitempty"`
	Strs   []string    `json:"strs,omitempty"`
	Int    int         `json:"int,omitempty"`
	Fields []UserField `json:"fields,omitempty"`
	Object *UserObject `json:"object,omitempty"`
}

// UserObject is an application-defined structured annotation.
type UserObject struct {
	Class string      `json:"class,omitempty"`
	Type  ObjectID    `json:"type"`
	Data  []UserField `json:"data,omitempty"`
}
