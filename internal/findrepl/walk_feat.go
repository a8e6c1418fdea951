package findrepl

import "sequincore/pkg/domain"

func (w *walker) visitSeqFeat(f *domain.SeqFeat) {
	if w.feat != nil && !w.feat.Has(f.Subtype()) {
		return
	}
	w.visitFeatData(f.Data)
	w.text(&f.Comment)
	w.text(&f.Title)
	w.text(&f.ExceptText)
	for i := range f.Qual {
		// qualifier names select flat-file behaviour; only values are text
		w.text(&f.Qual[i].Val)
	}
	w.visitDbTags(f.Dbxref)
	w.visitSeqLoc(f.Location)
	w.visitSeqLoc(f.Product)
	for _, p := range f.Cit {
		w.visitPub(p)
	}
	for i := range f.Xref {
		w.visitFeatData(f.Xref[i].Data)
	}
}

func (w *walker) visitFeatData(data domain.FeatData) {
	switch v := data.(type) {
	case *domain.GeneRef:
		w.visitGeneRef(v)
	case *domain.OrgRef:
		w.visitOrgRef(v)
	case *domain.ProtRef:
		w.visitProtRef(v)
	case *domain.RNARef:
		w.text(&v.Name)
	case *domain.Pubdesc:
		w.visitPubdesc(v)
	case *domain.SeqRefFeat:
		w.visitSeqLoc(v.Loc)
	case *domain.ImpFeat:
		// Key drives the feature subtype and is left alone.
		w.text(&v.Loc)
		w.text(&v.Descr)
	case *domain.RegionFeat:
		w.text(&v.Name)
	case *domain.RSiteFeat:
		w.text(&v.Str)
		if v.Db != nil {
			w.visitDbTag(v.Db)
		}
	case *domain.UserObject:
		w.visitUserObject(v)
	case *domain.TxInitFeat:
		w.text(&v.Name)
	case *domain.NonStdResidueFeat:
		w.text(&v.Residue)
	case *domain.HetFeat:
		w.text(&v.Name)
	case *domain.BioSource:
		w.visitBioSource(v)
	}
}

func (w *walker) visitGeneRef(g *domain.GeneRef) {
	w.text(&g.Locus)
	w.text(&g.Allele)
	w.text(&g.Desc)
	w.text(&g.Maploc)
	w.text(&g.LocusTag)
	w.visitDbTags(g.Db)
	w.texts(g.Syn)
}

func (w *walker) visitProtRef(p *domain.ProtRef) {
	w.texts(p.Name)
	w.text(&p.Desc)
	w.texts(p.EC)
	w.texts(p.Activity)
	w.visitDbTags(p.Db)
}
