// Package source implements the external research sources consulted for a
// company, each producing an optional partial record. Adapters validate and
// sanitize provider output at this boundary so the merger only ever sees a
// uniform typed shape.
package source

import (
	"context"

	"github.com/sells-group/company-research/internal/model"
)

// Source is one external data provider. Fetch returns (nil, nil) when the
// provider responded but had nothing usable for the company; an error means
// the call itself failed (network, auth, quota, timeout).
type Source interface {
	Name() string
	Fetch(ctx context.Context, companyName string) (*model.Partial, error)
}

// Known source names, also the keys accepted in research.priority config.
const (
	NameGoogle     = "google"
	NameRelevance  = "relevance"
	NameSummarizer = "summarizer"
)
