package findrepl

import "sequincore/pkg/domain"

// visitOrgRef rewrites an organism reference. A changed taxname invalidates the
// taxonomy dbxref and the common name.
func (w *walker) visitOrgRef(o *domain.OrgRef) {
	if o == nil {
		return
	}
	before := o.Taxname
	w.text(&o.Taxname)
	if o.Taxname != before {
		o.Db = dropTaxon(o.Db)
		o.Common = ""
	}
	w.text(&o.Common)
	w.texts(o.Mod)
	w.visitDbTags(o.Db)
	w.texts(o.Syn)
	w.visitOrgName(o.OrgName)
}

func dropTaxon(tags []domain.DbTag) []domain.DbTag {
	out := tags[:0]
	for _, t := range tags {
		if t.Db != domain.TaxonDb {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (w *walker) visitOrgName(n *domain.OrgName) {
	if n == nil {
		return
	}
	w.text(&n.Name)
	w.text(&n.Attrib)
	for i := range n.Mod {
		w.text(&n.Mod[i].Subname)
		w.text(&n.Mod[i].Attrib)
	}
	w.text(&n.Lineage)
	w.text(&n.Div)
}

func (w *walker) visitBioSource(b *domain.BioSource) {
	if b == nil {
		return
	}
	w.visitOrgRef(b.Org)
	for i := range b.Subtype {
		w.text(&b.Subtype[i].Name)
		w.text(&b.Subtype[i].Attrib)
	}
}
