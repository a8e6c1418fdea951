package findrepl

import "sequincore/pkg/domain"

func (w *walker) visitSeqDescr(d domain.SeqDescr) {
	if d == nil || (w.descr != nil && !w.descr.Has(d.DescrType())) {
		return
	}
	switch v := d.(type) {
	case *domain.NameDescr:
		w.text(&v.Text)
	case *domain.TitleDescr:
		w.text(&v.Text)
	case *domain.CommentDescr:
		w.text(&v.Text)
	case *domain.RegionDescr:
		w.text(&v.Text)
	case *domain.HetDescr:
		w.text(&v.Text)
	case *domain.OrgRef:
		w.visitOrgRef(v)
	case *domain.GBBlock:
		w.visitGBBlock(v)
	case *domain.Pubdesc:
		w.visitPubdesc(v)
	case *domain.UserObject:
		w.visitUserObject(v)
	case *domain.BioSource:
		w.visitBioSource(v)
	case *domain.MolInfo:
		w.text(&v.TechExp)
	case *domain.CreateDateDescr:
		w.visitDate(&v.Date)
	case *domain.UpdateDateDescr:
		w.visitDate(&v.Date)
	}
}

func (w *walker) visitGBBlock(g *domain.GBBlock) {
	w.texts(g.ExtraAccessions)
	w.text(&g.Source)
	w.texts(g.Keywords)
	w.text(&g.Origin)
	w.text(&g.Date)
	w.text(&g.Div)
	w.text(&g.Taxonomy)
}
