// Package model defines the partial and merged company record types.
package model

// Partial is one source's field-sparse view of a company. A nil field means
// the source had no opinion on it; adapters sanitize provider placeholders
// ("N/A" and friends) to nil before a Partial leaves the boundary, so a
// non-nil field always carries a usable value.
type Partial struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Address      *string `json:"address,omitempty"`
	State        *string `json:"state,omitempty"`
	PostalCode   *string `json:"postal_code,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Country      *string `json:"country,omitempty"`
	Email        *string `json:"email,omitempty"`
	Employees    *string `json:"employees,omitempty"`
	Website      *string `json:"website,omitempty"`
	IndustryType *string `json:"industry_type,omitempty"`
}

// Empty reports whether the partial carries no values at all.
func (p *Partial) Empty() bool {
	if p == nil {
		return true
	}
	for _, f := range []*string{
		p.Name, p.Description, p.Address, p.State, p.PostalCode,
		p.Phone, p.Country, p.Email, p.Employees, p.Website, p.IndustryType,
	} {
		if f != nil {
			return false
		}
	}
	return true
}

// Status describes how complete a merged record is.
type Status string

// Record statuses. Failed records are constructed at the boundary from an
// all-sources-failed error, never by the merger.
const (
	StatusCompleted Status = "completed"
	StatusPartial   Status = "partial"
	StatusFailed    Status = "failed"
)

// Record is the merged company record returned to callers. CompanyName
// always echoes the original query verbatim; every optional field is copied
// verbatim from exactly one source's Partial. Records are built fresh per
// request and never mutated after being returned.
type Record struct {
	CompanyName  string  `json:"company_name"`
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Address      *string `json:"address,omitempty"`
	State        *string `json:"state,omitempty"`
	PostalCode   *string `json:"postal_code,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Country      *string `json:"country,omitempty"`
	Email        *string `json:"email,omitempty"`
	Employees    *string `json:"employees,omitempty"`
	Website      *string `json:"website,omitempty"`
	IndustryType *string `json:"industry_type,omitempty"`
	ResearchDate string  `json:"research_date"`
	Status       Status  `json:"status"`
}

// Str returns a pointer to s. Convenience for building optional fields.
func Str(s string) *string {
	return &s
}
