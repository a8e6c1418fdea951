package core

import (
	"context"
	"fmt"

	"sequincore/pkg/domain"
)

// NewTaxonomyXrefRule warns about organisms that keep a taxonomy xref after
// their taxname was cleared.
func NewTaxonomyXrefRule() domain.Rule {
	return taxonomyXrefRule{}
}

type taxonomyXrefRule struct{}

func (taxonomyXrefRule) Name() string { return "taxonomy_xref" }

func (r taxonomyXrefRule) Evaluate(_ context.Context, _ domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, rec := range changedRecords(changes) {
		for _, org := range recordOrgRefs(rec) {
			taxID, ok := org.TaxonID()
			if !ok || org.Taxname != "" {
				continue
			}
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     r.Name(),
				Severity: domain.SeverityWarn,
				Message:  fmt.Sprintf("organism with taxon %d has no taxname", taxID),
				Entity:   domain.EntityRecord,
				EntityID: rec.ID,
			})
		}
	}
	return res, nil
}

// recordOrgRefs collects organism references from descriptors and features.
func recordOrgRefs(rec *domain.Record) []*domain.OrgRef {
	var out []*domain.OrgRef
	add := func(org *domain.OrgRef) {
		if org != nil {
			out = append(out, org)
		}
	}
	for _, d := range rec.Descriptors() {
		switch v := d.(type) {
		case *domain.OrgRef:
			add(v)
		case *domain.BioSource:
			add(v.Org)
		}
	}
	for _, feat := range rec.Features() {
		if feat == nil {
			continue
		}
		switch v := feat.Data.(type) {
		case *domain.OrgRef:
			add(v)
		case *domain.BioSource:
			add(v.Org)
		}
	}
	return out
}
