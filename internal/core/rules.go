package core

import "sequincore/pkg/domain"

// NewDefaultRulesEngine builds a rules engine with the built-in record checks.
func NewDefaultRulesEngine() *RulesEngine {
	engine := NewRulesEngine()
	engine.Register(NewBioseqIdentifiersRule())
	engine.Register(NewImportFeatureKeyRule())
	engine.Register(NewTaxonomyXrefRule())
	return engine
}

// changedRecords returns the post-change images of created and updated records.
func changedRecords(changes []domain.Change) []*domain.Record {
	var out []*domain.Record
	for _, change := range changes {
		if change.Entity != domain.EntityRecord || change.After == nil {
			continue
		}
		out = append(out, change.After)
	}
	return out
}
