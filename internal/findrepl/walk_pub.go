package findrepl

import "sequincore/pkg/domain"

func (w *walker) visitPubdesc(p *domain.Pubdesc) {
	if p == nil {
		return
	}
	for _, pub := range p.Pub {
		w.visitPub(pub)
	}
	w.text(&p.Name)
	w.text(&p.Fig)
	w.text(&p.Maploc)
	w.text(&p.SeqRaw)
	w.text(&p.Comment)
}

// visitPub dispatches on the citation kind. MUID and PMID references carry no text.
func (w *walker) visitPub(pub domain.Pub) {
	switch v := pub.(type) {
	case *domain.CitGen:
		w.visitCitGen(v)
	case *domain.CitSub:
		w.visitCitSub(v)
	case *domain.MedlineEntry:
		w.visitMedline(v)
	case *domain.CitArt:
		w.visitCitArt(v)
	case *domain.CitJour:
		w.visitCitJour(v)
	case *domain.CitBook:
		w.visitCitBook(v)
	case *domain.CitProc:
		w.visitCitProc(v)
	case *domain.CitPat:
		w.visitCitPat(v)
	case *domain.IDPat:
		w.visitIDPat(v)
	case *domain.CitLet:
		if v != nil {
			w.visitCitBook(v.Cit)
			w.text(&v.ManID)
		}
	case *domain.PubEquiv:
		if v != nil {
			for _, sub := range v.Pubs {
				w.visitPub(sub)
			}
		}
	}
}

func (w *walker) visitCitGen(g *domain.CitGen) {
	if g == nil {
		return
	}
	w.text(&g.Cit)
	w.visitAuthList(g.Authors)
	w.visitTitles(g.Journal)
	w.text(&g.Volume)
	w.text(&g.Issue)
	w.text(&g.Pages)
	w.visitDate(g.Date)
	w.text(&g.Title)
}

func (w *walker) visitCitSub(c *domain.CitSub) {
	if c == nil {
		return
	}
	w.visitAuthList(c.Authors)
	w.visitImprint(c.Imp)
	w.visitDate(c.Date)
	w.text(&c.Descr)
}

func (w *walker) visitMedline(m *domain.MedlineEntry) {
	if m == nil {
		return
	}
	w.visitDate(m.EM)
	w.visitCitArt(m.Cit)
	w.text(&m.Abstract)
	for i := range m.Mesh {
		w.text(&m.Mesh[i].Term)
	}
	for i := range m.Substance {
		w.text(&m.Substance[i].Cit)
		w.text(&m.Substance[i].Name)
	}
	w.texts(m.Gene)
	w.texts(m.IDNum)
}

func (w *walker) visitCitArt(a *domain.CitArt) {
	if a == nil {
		return
	}
	w.visitTitles(a.Title)
	w.visitAuthList(a.Authors)
	switch from := a.From.(type) {
	case *domain.CitJour:
		w.visitCitJour(from)
	case *domain.CitBook:
		w.visitCitBook(from)
	case *domain.CitProc:
		w.visitCitProc(from)
	}
}

func (w *walker) visitCitJour(j *domain.CitJour) {
	if j == nil {
		return
	}
	w.visitTitles(j.Title)
	w.visitImprint(j.Imp)
}

func (w *walker) visitCitBook(b *domain.CitBook) {
	if b == nil {
		return
	}
	w.visitTitles(b.Title)
	w.visitTitles(b.Coll)
	w.visitAuthList(b.Authors)
	w.visitImprint(b.Imp)
}

func (w *walker) visitCitProc(p *domain.CitProc) {
	if p == nil {
		return
	}
	w.visitCitBook(p.Book)
	if m := p.Meet; m != nil {
		w.text(&m.Number)
		w.visitDate(m.Date)
		w.visitAffil(m.Place)
	}
}

func (w *walker) visitCitPat(p *domain.CitPat) {
	if p == nil {
		return
	}
	w.text(&p.Title)
	w.visitAuthList(p.Authors)
	w.text(&p.Country)
	w.text(&p.DocType)
	w.text(&p.Number)
	w.visitDate(p.DateIssue)
	w.texts(p.Class)
	w.text(&p.AppNumber)
	w.visitDate(p.AppDate)
	w.visitAuthList(p.Applicants)
	w.visitAuthList(p.Assignees)
	w.text(&p.Abstract)
}

func (w *walker) visitIDPat(p *domain.IDPat) {
	if p == nil {
		return
	}
	w.text(&p.Country)
	w.text(&p.Number)
	w.text(&p.AppNumber)
}

func (w *walker) visitTitles(titles []domain.Title) {
	for i := range titles {
		w.text(&titles[i].Value)
	}
}

func (w *walker) visitImprint(imp *domain.Imprint) {
	if imp == nil {
		return
	}
	w.visitDate(imp.Date)
	w.text(&imp.Volume)
	w.text(&imp.Issue)
	w.text(&imp.Pages)
	w.text(&imp.Section)
	w.visitAffil(imp.Pub)
	w.text(&imp.Language)
	w.text(&imp.PartSup)
}

func (w *walker) visitAuthList(l *domain.AuthList) {
	if l == nil {
		return
	}
	for _, a := range l.Std {
		w.visitAuthor(a)
	}
	w.texts(l.Names)
	w.visitAffil(l.Affil)
}

func (w *walker) visitAuthor(a *domain.Author) {
	if a == nil {
		return
	}
	switch n := a.Name.(type) {
	case *domain.NameStd:
		w.text(&n.Last)
		w.text(&n.First)
		w.text(&n.Middle)
		w.text(&n.Full)
		w.text(&n.Initials)
		w.text(&n.Suffix)
		w.text(&n.Title)
	case *domain.MLName:
		w.text(&n.Name)
	case *domain.StrName:
		w.text(&n.Name)
	case *domain.ConsortiumName:
		w.text(&n.Name)
	case *domain.DbTagName:
		w.visitDbTag(&n.Tag)
	}
	w.visitAffil(a.Affil)
}

func (w *walker) visitAffil(a *domain.Affil) {
	if a == nil {
		return
	}
	w.text(&a.Str)
	w.text(&a.Affil)
	w.text(&a.Div)
	w.text(&a.City)
	w.text(&a.Sub)
	w.text(&a.Country)
	w.text(&a.Street)
	w.text(&a.Email)
	w.text(&a.Fax)
	w.text(&a.Phone)
	w.text(&a.PostalCode)
}
