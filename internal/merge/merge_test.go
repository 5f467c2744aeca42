package merge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/company-research/internal/model"
)

var fixedTime = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func TestMergeEchoesQueryName(t *testing.T) {
	m := New().WithNow(fixedTime)

	rec := m.Merge("Acme Corp", []Slot{
		{Source: "google", Record: &model.Partial{Name: model.Str("ACME Corporation Inc.")}},
	})

	assert.Equal(t, "Acme Corp", rec.CompanyName)
	require.NotNil(t, rec.Name)
	assert.Equal(t, "ACME Corporation Inc.", *rec.Name)
}

func TestMergeAllAbsentIsPartial(t *testing.T) {
	m := New().WithNow(fixedTime)

	rec := m.Merge("Ghost LLC", []Slot{
		{Source: "google", Record: nil},
		{Source: "relevance", Record: nil},
		{Source: "summarizer", Record: nil},
	})

	assert.Equal(t, model.StatusPartial, rec.Status)
	assert.Equal(t, "Ghost LLC", rec.CompanyName)
	assert.Equal(t, "2026-03-15T10:30:00Z", rec.ResearchDate)
	assert.Nil(t, rec.Description)
	assert.Nil(t, rec.Phone)
	assert.Nil(t, rec.Website)
	assert.Nil(t, rec.Email)
}

func TestMergePriorityOrderWins(t *testing.T) {
	m := New().WithNow(fixedTime)

	rec := m.Merge("Acme Corp", []Slot{
		{Source: "google", Record: &model.Partial{Phone: model.Str("+1 555-000-0001"), Website: model.Str("https://acme.com")}},
		{Source: "relevance", Record: nil},
		{Source: "summarizer", Record: &model.Partial{Description: model.Str("Makes anvils."), Phone: model.Str("+1 555-000-0002")}},
	})

	require.NotNil(t, rec.Phone)
	assert.Equal(t, "+1 555-000-0001", *rec.Phone)
	require.NotNil(t, rec.Website)
	assert.Equal(t, "https://acme.com", *rec.Website)
	require.NotNil(t, rec.Description)
	assert.Equal(t, "Makes anvils.", *rec.Description)
	assert.Equal(t, model.StatusCompleted, rec.Status)
}

func TestMergeFieldsResolveIndependently(t *testing.T) {
	m := New().WithNow(fixedTime)

	rec := m.Merge("Acme Corp", []Slot{
		{Source: "google", Record: &model.Partial{Website: model.Str("https://acme.com")}},
		{Source: "relevance", Record: &model.Partial{Employees: model.Str("51-200"), Phone: model.Str("+1 650-253-0000")}},
		{Source: "summarizer", Record: &model.Partial{IndustryType: model.Str("Software and IT")}},
	})

	require.NotNil(t, rec.Website)
	assert.Equal(t, "https://acme.com", *rec.Website)
	require.NotNil(t, rec.Employees)
	assert.Equal(t, "51-200", *rec.Employees)
	require.NotNil(t, rec.Phone)
	assert.Equal(t, "+1 650-253-0000", *rec.Phone)
	require.NotNil(t, rec.IndustryType)
	assert.Equal(t, "Software and IT", *rec.IndustryType)
}

func TestMergeSkipsWhitespaceValues(t *testing.T) {
	m := New().WithNow(fixedTime)

	rec := m.Merge("Acme Corp", []Slot{
		{Source: "google", Record: &model.Partial{Email: model.Str("   ")}},
		{Source: "relevance", Record: &model.Partial{Email: model.Str("info@acme.com")}},
	})

	require.NotNil(t, rec.Email)
	assert.Equal(t, "info@acme.com", *rec.Email)
}

func TestMergeSingleFieldIsCompleted(t *testing.T) {
	m := New().WithNow(fixedTime)

	rec := m.Merge("Acme Corp", []Slot{
		{Source: "summarizer", Record: &model.Partial{Description: model.Str("Makes anvils.")}},
	})

	assert.Equal(t, model.StatusCompleted, rec.Status)
}

func TestMergeIsDeterministic(t *testing.T) {
	m := New().WithNow(fixedTime)
	slots := []Slot{
		{Source: "google", Record: &model.Partial{Phone: model.Str("+1 555-000-0001")}},
		{Source: "relevance", Record: &model.Partial{Email: model.Str("info@acme.com")}},
	}

	first := m.Merge("Acme Corp", slots)
	second := m.Merge("Acme Corp", slots)

	assert.Equal(t, first, second)
}

func TestFailed(t *testing.T) {
	m := New().WithNow(fixedTime)

	rec := m.Failed("Acme Corp")

	assert.Equal(t, "Acme Corp", rec.CompanyName)
	assert.Equal(t, model.StatusFailed, rec.Status)
	assert.Equal(t, "2026-03-15T10:30:00Z", rec.ResearchDate)
	assert.Nil(t, rec.Description)
	assert.Nil(t, rec.Phone)
}
