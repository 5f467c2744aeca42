package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/company-research/internal/model"
	"github.com/sells-group/company-research/pkg/anthropic"
)

// IndustryTypes is the closed vocabulary for the industry_type field. The
// summarizer must answer from this list; anything else degrades to General.
var IndustryTypes = []string{
	"Business and Marketing",
	"Automotive",
	"Finance and Banking and Insurance",
	"Chemical",
	"Electronics and Home Appliance",
	"Energy and Environment",
	"Tourism and Hotel and Catering",
	"Gaming and Video Games",
	"Medical and Healthcare",
	"Government and NPO",
	"Legal and Contracts",
	"Literary and Art and History",
	"Software and IT",
	"Telecommunications",
	"Ecommerce and Shipping",
	"Technical and Engineering",
	"Certificates",
	"Education and E-learning",
	"Patent and Intellectual Property",
	"Media and Entertainment",
	"General",
}

const summarizerSystem = "You are a company data expert."

const summarizerPrompt = `Summarize what you know about the company "%s".
Return a valid JSON object with these fields:
- name: string (the company's proper name)
- description: string (2-4 professional sentences about the company's industry, services, and market role)
- address: string (street-level headquarters address)
- state: string (state/region abbreviation, e.g. CA)
- postal_code: string
- phone: string (international format)
- country: string
- email: string (an official contact address)
- employees: string (a number or range, e.g. "51-200")
- website: string (the official domain, with scheme)
- industry_type: string (exactly one entry from this list: %s)

Only report information you are confident is real. If a field cannot be
determined, use an empty string. Respond with only the JSON object.`

// summaryPayload is the raw JSON shape the model returns.
type summaryPayload struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Address      string `json:"address"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Phone        string `json:"phone"`
	Country      string `json:"country"`
	Email        string `json:"email"`
	Employees    string `json:"employees"`
	Website      string `json:"website"`
	IndustryType string `json:"industry_type"`
}

// summarizerSource asks Claude for a structured company summary, the
// language-model slot in the priority order. It sits last so directory data
// outranks a model's recollection for structured fields like phone numbers.
type summarizerSource struct {
	client    anthropic.Client
	modelName string
	maxTokens int64
}

// NewSummarizer creates the language-model source.
func NewSummarizer(client anthropic.Client, modelName string, maxTokens int64) Source {
	return &summarizerSource{
		client:    client,
		modelName: modelName,
		maxTokens: maxTokens,
	}
}

func (s *summarizerSource) Name() string {
	return NameSummarizer
}

func (s *summarizerSource) Fetch(ctx context.Context, companyName string) (*model.Partial, error) {
	temp := 0.2
	resp, err := s.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       s.modelName,
		MaxTokens:   s.maxTokens,
		System:      summarizerSystem,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(summarizerPrompt, companyName, strings.Join(IndustryTypes, "; "))},
		},
	})
	if err != nil {
		return nil, err
	}

	var payload summaryPayload
	if err := json.Unmarshal([]byte(cleanJSON(resp.Text())), &payload); err != nil {
		zap.L().Warn("summarizer: unparseable model output",
			zap.String("company", companyName),
			zap.Error(err),
		)
		return nil, nil
	}

	p := &model.Partial{
		Name:         clean(payload.Name),
		Description:  clean(payload.Description),
		Address:      clean(payload.Address),
		State:        clean(payload.State),
		PostalCode:   clean(payload.PostalCode),
		Phone:        cleanPhone(payload.Phone),
		Country:      clean(payload.Country),
		Email:        cleanEmail(payload.Email),
		Employees:    clean(payload.Employees),
		Website:      cleanWebsite(payload.Website),
		IndustryType: industryOrGeneral(payload.IndustryType),
	}

	return partialOrNil(p), nil
}

// industryOrGeneral keeps values from the closed vocabulary and maps any
// off-list answer to General. An empty answer stays absent.
func industryOrGeneral(v string) *string {
	p := clean(v)
	if p == nil {
		return nil
	}
	for _, t := range IndustryTypes {
		if strings.EqualFold(*p, t) {
			return model.Str(t)
		}
	}
	return model.Str("General")
}

// cleanJSON extracts a JSON object from text that may be wrapped in
// markdown code fences or prose.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
