package core

import (
	"context"
	"fmt"
	"strings"

	"sequincore/pkg/domain"
)

// NewImportFeatureKeyRule blocks records holding an import feature with an empty key.
func NewImportFeatureKeyRule() domain.Rule {
	return importFeatureKeyRule{}
}

type importFeatureKeyRule struct{}

func (importFeatureKeyRule) Name() string { return "import_feature_key" }

func (r importFeatureKeyRule) Evaluate(_ context.Context, _ domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, rec := range changedRecords(changes) {
		for i, feat := range rec.Features() {
			if feat == nil {
				continue
			}
			imp, ok := feat.Data.(*domain.ImpFeat)
			if !ok || strings.TrimSpace(imp.Key) != "" {
				continue
			}
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     r.Name(),
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("feature %d is an import feature without a key", i+1),
				Entity:   domain.EntityRecord,
				EntityID: rec.ID,
			})
		}
	}
	return res, nil
}
