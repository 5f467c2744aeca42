package source

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/company-research/internal/model"
	"github.com/sells-group/company-research/pkg/relevance"
)

// relevanceSource researches a company through the Relevance AI LinkedIn
// tool, the professional-network slot in the priority order.
type relevanceSource struct {
	client relevance.Client
}

// NewRelevance creates the professional-network source.
func NewRelevance(client relevance.Client) Source {
	return &relevanceSource{client: client}
}

func (s *relevanceSource) Name() string {
	return NameRelevance
}

func (s *relevanceSource) Fetch(ctx context.Context, companyName string) (*model.Partial, error) {
	resp, err := s.client.CompanyLookup(ctx, companyName)
	if err != nil {
		return nil, err
	}

	p := &model.Partial{
		Description:  clean(resp.Description),
		Address:      clean(resp.Address),
		State:        clean(resp.State),
		PostalCode:   clean(resp.PostalCode),
		Phone:        cleanPhone(resp.Phone),
		Country:      clean(resp.Country),
		Email:        cleanEmail(resp.Email),
		Employees:    clean(resp.Employees),
		Website:      cleanWebsite(resp.Website),
		IndustryType: clean(resp.Industry),
	}

	if p.Empty() {
		zap.L().Debug("relevance: no usable fields",
			zap.String("source", NameRelevance),
			zap.String("company", companyName),
		)
		return nil, nil
	}
	return p, nil
}
