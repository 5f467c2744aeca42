package main

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/company-research/internal/config"
	"github.com/sells-group/company-research/internal/research"
	"github.com/sells-group/company-research/internal/source"
	"github.com/sells-group/company-research/pkg/anthropic"
	"github.com/sells-group/company-research/pkg/gsearch"
	"github.com/sells-group/company-research/pkg/relevance"
)

// newResearcher wires the configured sources, in research.priority order,
// into a Researcher. Credentials are injected here, at construction.
func newResearcher(cfg *config.Config) (*research.Researcher, error) {
	byName := map[string]func() source.Source{
		source.NameGoogle: func() source.Source {
			client := gsearch.NewClient(cfg.Google.Key, cfg.Google.CX,
				gsearch.WithBaseURL(cfg.Google.BaseURL),
				gsearch.WithRateLimit(cfg.Google.RequestsPerSecond),
			)
			return source.NewGoogle(client, cfg.Google.NumResults)
		},
		source.NameRelevance: func() source.Source {
			client := relevance.NewClient(cfg.Relevance.Token, cfg.Relevance.ProjectID,
				relevance.WithBaseURL(cfg.Relevance.BaseURL),
			)
			return source.NewRelevance(client)
		},
		source.NameSummarizer: func() source.Source {
			client := anthropic.NewClient(cfg.Anthropic.Key)
			return source.NewSummarizer(client, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens)
		},
	}

	var sources []source.Source
	for _, name := range cfg.Research.Priority {
		build, ok := byName[name]
		if !ok {
			return nil, eris.Errorf("unknown source in research.priority: %q", name)
		}
		sources = append(sources, build())
	}
	if len(sources) == 0 {
		return nil, eris.New("research.priority configured no sources")
	}

	return research.New(sources,
		research.WithSourceTimeout(time.Duration(cfg.Research.SourceTimeoutSecs)*time.Second),
		research.WithConcurrency(cfg.Batch.MaxConcurrentCompanies),
	), nil
}
