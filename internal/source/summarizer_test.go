package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/company-research/pkg/anthropic"
)

type stubMessages struct {
	text string
	err  error
	req  anthropic.MessageRequest
}

func (s *stubMessages) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: s.text}},
	}, nil
}

func TestSummarizerFetch(t *testing.T) {
	stub := &stubMessages{text: "```json\n" + `{
		"name": "Acme Corporation",
		"description": "Acme manufactures industrial anvils.",
		"address": "123 Main Street",
		"state": "CA",
		"postal_code": "94105",
		"phone": "650-253-0000",
		"country": "United States",
		"email": "info@acme.com",
		"employees": "51-200",
		"website": "https://acme.com",
		"industry_type": "Technical and Engineering"
	}` + "\n```"}
	src := NewSummarizer(stub, "claude-haiku-4-5-20251001", 1024)

	p, err := src.Fetch(context.Background(), "Acme Corp")
	require.NoError(t, err)
	require.NotNil(t, p)

	require.NotNil(t, p.Name)
	assert.Equal(t, "Acme Corporation", *p.Name)
	require.NotNil(t, p.Phone)
	assert.Equal(t, "+1 650-253-0000", *p.Phone)
	require.NotNil(t, p.IndustryType)
	assert.Equal(t, "Technical and Engineering", *p.IndustryType)
	require.NotNil(t, p.Website)
	assert.Equal(t, "https://acme.com", *p.Website)

	assert.Equal(t, "claude-haiku-4-5-20251001", stub.req.Model)
	assert.Equal(t, int64(1024), stub.req.MaxTokens)
	assert.Equal(t, summarizerSystem, stub.req.System)
	require.Len(t, stub.req.Messages, 1)
	assert.Contains(t, stub.req.Messages[0].Content, `"Acme Corp"`)
}

func TestSummarizerFetchEmptyFieldsAbsent(t *testing.T) {
	stub := &stubMessages{text: `{"name": "Ghost LLC", "description": "", "phone": "", "industry_type": ""}`}
	src := NewSummarizer(stub, "m", 256)

	p, err := src.Fetch(context.Background(), "Ghost LLC")
	require.NoError(t, err)
	require.NotNil(t, p)

	require.NotNil(t, p.Name)
	assert.Nil(t, p.Description)
	assert.Nil(t, p.Phone)
	assert.Nil(t, p.IndustryType)
}

func TestSummarizerFetchUnparseableOutput(t *testing.T) {
	stub := &stubMessages{text: "I could not find anything about this company."}
	src := NewSummarizer(stub, "m", 256)

	p, err := src.Fetch(context.Background(), "Ghost LLC")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestIndustryOrGeneral(t *testing.T) {
	got := industryOrGeneral("software and it")
	require.NotNil(t, got)
	assert.Equal(t, "Software and IT", *got)

	got = industryOrGeneral("Underwater Basketweaving")
	require.NotNil(t, got)
	assert.Equal(t, "General", *got)

	assert.Nil(t, industryOrGeneral(""))
	assert.Nil(t, industryOrGeneral("N/A"))
}

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding prose", "Here you go:\n{\"a\":1}\nLet me know!", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanJSON(tt.in))
		})
	}
}
