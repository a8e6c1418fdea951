package core

import (
	"context"
	"fmt"

	"sequincore/pkg/domain"
)

// NewBioseqIdentifiersRule blocks records holding a Bioseq without identifiers
// or two Bioseqs sharing one.
func NewBioseqIdentifiersRule() domain.Rule {
	return bioseqIdentifiersRule{}
}

type bioseqIdentifiersRule struct{}

func (bioseqIdentifiersRule) Name() string { return "bioseq_identifiers" }

func (r bioseqIdentifiersRule) Evaluate(_ context.Context, _ domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, rec := range changedRecords(changes) {
		seen := make(map[string]int)
		for i, bs := range rec.Bioseqs() {
			if len(bs.IDs) == 0 {
				res.Violations = append(res.Violations, r.violation(rec.ID, fmt.Sprintf("bioseq %d has no identifier", i+1)))
				continue
			}
			for _, id := range bs.IDs {
				if id == nil {
					continue
				}
				label := id.Label()
				if prev, dup := seen[label]; dup && prev != i {
					res.Violations = append(res.Violations, r.violation(rec.ID, fmt.Sprintf("identifier %s used by bioseqs %d and %d", label, prev+1, i+1)))
					continue
				}
				seen[label] = i
			}
		}
	}
	return res, nil
}

func (r bioseqIdentifiersRule) violation(recordID, msg string) domain.Violation {
	return domain.Violation{
		Rule:     r.Name(),
		Severity: domain.SeverityBlock,
		Message:  msg,
		Entity:   domain.EntityRecord,
		EntityID: recordID,
	}
}
