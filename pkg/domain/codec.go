package domain

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Sealed interfaces are encoded as {"type": "<variant>", "value": {...}}.
type envelope struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

type unionCodec[T any] struct {
	family string
	kinds  map[string]func() T
	names  map[reflect.Type]string
}

func newUnionCodec[T any](family string, kinds map[string]func() T) *unionCodec[T] {
	c := &unionCodec[T]{family: family, kinds: kinds, names: make(map[reflect.Type]string, len(kinds))}
	for name, mk := range kinds {
		c.names[reflect.TypeOf(mk())] = name
	}
	return c
}

func isNilVariant(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func (c *unionCodec[T]) encode(v T) (json.RawMessage, error) {
	if isNilVariant(v) {
		return nil, nil
	}
	name, ok := c.names[reflect.TypeOf(v)]
	if !ok {
		return nil, fmt.Errorf("%s: unsupported variant %T", c.family, v)
	}
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", c.family, name, err)
	}
	return json.Marshal(envelope{Type: name, Value: body})
}

func (c *unionCodec[T]) decode(raw json.RawMessage) (T, error) {
	var zero T
	if len(raw) == 0 || string(raw) == "null" {
		return zero, nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, fmt.Errorf("%s: %w", c.family, err)
	}
	mk, ok := c.kinds[env.Type]
	if !ok {
		return zero, fmt.Errorf("%s: unknown variant %q", c.family, env.Type)
	}
	v := mk()
	if len(env.Value) > 0 {
		if err := json.Unmarshal(env.Value, any(v)); err != nil {
			return zero, fmt.Errorf("%s %s: %w", c.family, env.Type, err)
		}
	}
	return v, nil
}

func (c *unionCodec[T]) encodeList(vs []T) ([]json.RawMessage, error) {
	if len(vs) == 0 {
		return nil, nil
	}
	out := make([]json.RawMessage, 0, len(vs))
	for _, v := range vs {
		raw, err := c.encode(v)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}

func (c *unionCodec[T]) decodeList(raws []json.RawMessage) ([]T, error) {
	if len(raws) == 0 {
		return nil, nil
	}
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		v, err := c.decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

var seqEntryCodec = newUnionCodec("seq-entry", map[string]func() SeqEntry{
	"seq": func() SeqEntry { return &Bioseq{} },
	"set": func() SeqEntry { return &BioseqSet{} },
})

var seqIDCodec = newUnionCodec("seq-id", map[string]func() SeqID{
	"local":   func() SeqID { return &LocalID{} },
	"text":    func() SeqID { return &TextSeqID{} },
	"patent":  func() SeqID { return &PatentSeqID{} },
	"pdb":     func() SeqID { return &PDBSeqID{} },
	"general": func() SeqID { return &GeneralSeqID{} },
	"gi":      func() SeqID { return &GISeqID{} },
	"gibb":    func() SeqID { return &GIBBSeqID{} },
	"giim":    func() SeqID { return &GIIMSeqID{} },
})

var seqLocCodec = newUnionCodec("seq-loc", map[string]func() SeqLoc{
	"null":  func() SeqLoc { return &NullLoc{} },
	"whole": func() SeqLoc { return &WholeLoc{} },
	"int":   func() SeqLoc { return &IntervalLoc{} },
	"pnt":   func() SeqLoc { return &PointLoc{} },
	"mix":   func() SeqLoc { return &MixLoc{} },
})

var seqDescrCodec = newUnionCodec("seq-descr", map[string]func() SeqDescr{
	"name":        func() SeqDescr { return &NameDescr{} },
	"title":       func() SeqDescr { return &TitleDescr{} },
	"comment":     func() SeqDescr { return &CommentDescr{} },
	"region":      func() SeqDescr { return &RegionDescr{} },
	"het":         func() SeqDescr { return &HetDescr{} },
	"org":         func() SeqDescr { return &OrgRef{} },
	"genbank":     func() SeqDescr { return &GBBlock{} },
	"pub":         func() SeqDescr { return &Pubdesc{} },
	"user":        func() SeqDescr { return &UserObject{} },
	"source":      func() SeqDescr { return &BioSource{} },
	"molinfo":     func() SeqDescr { return &MolInfo{} },
	"create_date": func() SeqDescr { return &CreateDateDescr{} },
	"update_date": func() SeqDescr { return &UpdateDateDescr{} },
	"mol_type":    func() SeqDescr { return &MolTypeDescr{} },
	"method":      func() SeqDescr { return &MethodDescr{} },
	"modif":       func() SeqDescr { return &ModifDescr{} },
})

var featDataCodec = newUnionCodec("seqfeat-data", map[string]func() FeatData{
	"gene":            func() FeatData { return &GeneRef{} },
	"org":             func() FeatData { return &OrgRef{} },
	"cdregion":        func() FeatData { return &CdRegion{} },
	"prot":            func() FeatData { return &ProtRef{} },
	"rna":             func() FeatData { return &RNARef{} },
	"pub":             func() FeatData { return &Pubdesc{} },
	"seq":             func() FeatData { return &SeqRefFeat{} },
	"imp":             func() FeatData { return &ImpFeat{} },
	"region":          func() FeatData { return &RegionFeat{} },
	"comment":         func() FeatData { return &CommentFeat{} },
	"bond":            func() FeatData { return &BondFeat{} },
	"site":            func() FeatData { return &SiteFeat{} },
	"rsite":           func() FeatData { return &RSiteFeat{} },
	"user":            func() FeatData { return &UserObject{} },
	"txinit":          func() FeatData { return &TxInitFeat{} },
	"num":             func() FeatData { return &NumFeat{} },
	"psec_str":        func() FeatData { return &PSecStrFeat{} },
	"non_std_residue": func() FeatData { return &NonStdResidueFeat{} },
	"het":             func() FeatData { return &HetFeat{} },
	"biosrc":          func() FeatData { return &BioSource{} },
})

var pubCodec = newUnionCodec("pub", map[string]func() Pub{
	"gen":     func() Pub { return &CitGen{} },
	"sub":     func() Pub { return &CitSub{} },
	"medline": func() Pub { return &MedlineEntry{} },
	"muid":    func() Pub { return &MUIDPub{} },
	"pmid":    func() Pub { return &PMIDPub{} },
	"article": func() Pub { return &CitArt{} },
	"journal": func() Pub { return &CitJour{} },
	"book":    func() Pub { return &CitBook{} },
	"proc":    func() Pub { return &CitProc{} },
	"patent":  func() Pub { return &CitPat{} },
	"pat_id":  func() Pub { return &IDPat{} },
	"man":     func() Pub { return &CitLet{} },
	"equiv":   func() Pub { return &PubEquiv{} },
})

var authorNameCodec = newUnionCodec("person-id", map[string]func() AuthorName{
	"name":       func() AuthorName { return &NameStd{} },
	"ml":         func() AuthorName { return &MLName{} },
	"str":        func() AuthorName { return &StrName{} },
	"consortium": func() AuthorName { return &ConsortiumName{} },
	"dbtag":      func() AuthorName { return &DbTagName{} },
})

func (r Record) MarshalJSON() ([]byte, error) {
	type plain Record
	entries, err := seqEntryCodec.encodeList(r.Entries)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		plain
		Entries []json.RawMessage `json:"entries"`
	}{plain: plain(r), Entries: entries})
}

func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	aux := struct {
		*plain
		Entries []json.RawMessage `json:"entries"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	entries, err := seqEntryCodec.decodeList(aux.Entries)
	if err != nil {
		return err
	}
	r.Entries = entries
	return nil
}

func (b Bioseq) MarshalJSON() ([]byte, error) {
	type plain Bioseq
	ids, err := seqIDCodec.encodeList(b.IDs)
	if err != nil {
		return nil, err
	}
	descr, err := seqDescrCodec.encodeList(b.Descr)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		plain
		IDs   []json.RawMessage `json:"ids"`
		Descr []json.RawMessage `json:"descr,omitempty"`
	}{plain: plain(b), IDs: ids, Descr: descr})
}

func (b *Bioseq) UnmarshalJSON(data []byte) error {
	type plain Bioseq
	aux := struct {
		*plain
		IDs   []json.RawMessage `json:"ids"`
		Descr []json.RawMessage `json:"descr"`
	}{plain: (*plain)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	if b.IDs, err = seqIDCodec.decodeList(aux.IDs); err != nil {
		return err
	}
	if b.Descr, err = seqDescrCodec.decodeList(aux.Descr); err != nil {
		return err
	}
	return nil
}

func (s BioseqSet) MarshalJSON() ([]byte, error) {
	type plain BioseqSet
	descr, err := seqDescrCodec.encodeList(s.Descr)
	if err != nil {
		return nil, err
	}
	seqs, err := seqEntryCodec.encodeList(s.Seqs)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		plain
		Descr []json.RawMessage `json:"descr,omitempty"`
		Seqs  []json.RawMessage `json:"seqs"`
	}{plain: plain(s), Descr: descr, Seqs: seqs})
}

func (s *BioseqSet) UnmarshalJSON(data []byte) error {
	type plain BioseqSet
	aux := struct {
		*plain
		Descr []json.RawMessage `json:"descr"`
		Seqs  []json.RawMessage `json:"seqs"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	if s.Descr, err = seqDescrCodec.decodeList(aux.Descr); err != nil {
		return err
	}
	if s.Seqs, err = seqEntryCodec.decodeList(aux.Seqs); err != nil {
		return err
	}
	return nil
}

func (a SeqAlign) MarshalJSON() ([]byte, error) {
	type plain SeqAlign
	ids, err := seqIDCodec.encodeList(a.IDs)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		plain
		IDs []json.RawMessage `json:"ids,omitempty"`
	}{plain: plain(a), IDs: ids})
}

func (a *SeqAlign) UnmarshalJSON(data []byte) error {
	type plain SeqAlign
	aux := struct {
		*plain
		IDs []json.RawMessage `json:"ids"`
	}{plain: (*plain)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	a.IDs, err = seqIDCodec.decodeList(aux.IDs)
	return err
}

func (g SeqGraph) MarshalJSON() ([]byte, error) {
	type plain SeqGraph
	loc, err := seqLocCodec.encode(g.Loc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		plain
		Loc json.RawMessage `json:"loc,omitempty"`
	}{plain: plain(g), Loc: loc})
}

func (g *SeqGraph) UnmarshalJSON(data []byte) error {
	type plain SeqGraph
	aux := struct {
		*plain
		Loc json.RawMessage `json:"loc"`
	}{plain: (*plain)(g)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	g.Loc, err = seqLocCodec.decode(aux.Loc)
	return err
}

func (l WholeLoc) MarshalJSON() ([]byte, error) {
	id, err := seqIDCodec.encode(l.ID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		ID json.RawMessage `json:"id,omitempty"`
	}{ID: id})
}

func (l *WholeLoc) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	l.ID, err = seqIDCodec.decode(aux.ID)
	return err
}

func (l IntervalLoc) MarshalJSON() ([]byte, error) {
	type plain IntervalLoc
	id, err := seqIDCodec.encode(l.ID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		plain
		ID json.RawMessage `json:"id,omitempty"`
	}{plain: plain(l), ID: id})
}

func (l *IntervalLoc) UnmarshalJSON(data []byte) error {
	type plain IntervalLoc
	aux := struct {
		*plain
		ID json.RawMessage `json:"id"`
	}{plain: (*plain)(l)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	l.ID, err = seqIDCodec.decode(aux.ID)
	return err
}

func (l PointLoc) MarshalJSON() ([]byte, error) {
	type plain PointLoc
	id, err := seqIDCodec.encode(l.ID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		plain
		ID json.RawMessage `json:"id,omitempty"`
	}{plain: plain(l), ID: id})
}

func (l *PointLoc) UnmarshalJSON(data []byte) error {
	type plain PointLoc
	aux := struct {
		*plain
		ID json.RawMessage `json:"id"`
	}{plain: (*plain)(l)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	l.ID, err = seqIDCodec.decode(aux.ID)
	return err
}

func (l MixLoc) MarshalJSON() ([]byte, error) {
	locs, err := seqLocCodec.encodeList(l.Locs)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Locs []json.RawMessage `json:"locs"`
	}{Locs: locs})
}

func (l *MixLoc) UnmarshalJSON(data []byte) error {
	var aux struct {
		Locs []json.RawMessage `json:"locs"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	l.Locs, err = seqLocCodec.decodeList(aux.Locs)
	return err
}

func (f SeqFeat) MarshalJSON() ([]byte, error) {
	type plain SeqFeat
	data, err := featDataCodec.encode(f.Data)
	if err != nil {
		return nil, err
	}
	loc, err := seqLocCodec.encode(f.Location)
	if err != nil {
		return nil, err
	}
	product, err := seqLocCodec.encode(f.Product)
	if err != nil {
		return nil, err
	}
	cit, err := pubCodec.encodeList(f.Cit)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		plain
		Data     json.RawMessage   `json:"data"`
		Location json.RawMessage   `json:"location,omitempty"`
		Product  json.RawMessage   `json:"product,omitempty"`
		Cit      []json.RawMessage `json:"cit,omitempty"`
	}{plain: plain(f), Data: data, Location: loc, Product: product, Cit: cit})
}

func (f *SeqFeat) UnmarshalJSON(data []byte) error {
	type plain SeqFeat
	aux := struct {
		*plain
		Data     json.RawMessage   `json:"data"`
		Location json.RawMessage   `json:"location"`
		Product  json.RawMessage   `json:"product"`
		Cit      []json.RawMessage `json:"cit"`
	}{plain: (*plain)(f)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	if f.Data, err = featDataCodec.decode(aux.Data); err != nil {
		return err
	}
	if f.Location, err = seqLocCodec.decode(aux.Location); err != nil {
		return err
	}
	if f.Product, err = seqLocCodec.decode(aux.Product); err != nil {
		return err
	}
	if f.Cit, err = pubCodec.decodeList(aux.Cit); err != nil {
		return err
	}
	return nil
}

func (x FeatXref) MarshalJSON() ([]byte, error) {
	data, err := featDataCodec.encode(x.Data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Data json.RawMessage `json:"data,omitempty"`
	}{Data: data})
}

func (x *FeatXref) UnmarshalJSON(data []byte) error {
	var aux struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	x.Data, err = featDataCodec.decode(aux.Data)
	return err
}

func (s SeqRefFeat) MarshalJSON() ([]byte, error) {
	loc, err := seqLocCodec.encode(s.Loc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Loc json.RawMessage `json:"loc,omitempty"`
	}{Loc: loc})
}

func (s *SeqRefFeat) UnmarshalJSON(data []byte) error {
	var aux struct {
		Loc json.RawMessage `json:"loc"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	s.Loc, err = seqLocCodec.decode(aux.Loc)
	return err
}

func (a Author) MarshalJSON() ([]byte, error) {
	type plain Author
	name, err := authorNameCodec.encode(a.Name)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		plain
		Name json.RawMessage `json:"name,omitempty"`
	}{plain: plain(a), Name: name})
}

func (a *Author) UnmarshalJSON(data []byte) error {
	type plain Author
	aux := struct {
		*plain
		Name json.RawMessage `json:"name"`
	}{plain: (*plain)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	a.Name, err = authorNameCodec.decode(aux.Name)
	return err
}

func (c CitArt) MarshalJSON() ([]byte, error) {
	type plain CitArt
	from, err := pubCodec.encode(c.From)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		plain
		From json.RawMessage `json:"from,omitempty"`
	}{plain: plain(c), From: from})
}

func (c *CitArt) UnmarshalJSON(data []byte) error {
	type plain CitArt
	aux := struct {
		*plain
		From json.RawMessage `json:"from"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	c.From, err = pubCodec.decode(aux.From)
	return err
}

func (p PubEquiv) MarshalJSON() ([]byte, error) {
	pubs, err := pubCodec.encodeList(p.Pubs)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Pubs []json.RawMessage `json:"pubs"`
	}{Pubs: pubs})
}

func (p *PubEquiv) UnmarshalJSON(data []byte) error {
	var aux struct {
		Pubs []json.RawMessage `json:"pubs"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	p.Pubs, err = pubCodec.decodeList(aux.Pubs)
	return err
}

func (p Pubdesc) MarshalJSON() ([]byte, error) {
	type plain Pubdesc
	pubs, err := pubCodec.encodeList(p.Pub)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		plain
		Pub []json.RawMessage `json:"pub"`
	}{plain: plain(p), Pub: pubs})
}

func (p *Pubdesc) UnmarshalJSON(data []byte) error {
	type plain Pubdesc
	aux := struct {
		*plain
		Pub []json.RawMessage `json:"pub"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	p.Pub, err = pubCodec.decodeList(aux.Pub)
	return err
}

// CloneRecord deep-copies a record through its JSON encoding.
func CloneRecord(r Record) (Record, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return Record{}, fmt.Errorf("clone record %s: %w", r.ID, err)
	}
	var out Record
	if err := json.Unmarshal(data, &out); err != nil {
		return Record{}, fmt.Errorf("clone record %s: %w", r.ID, err)
	}
	return out, nil
}
