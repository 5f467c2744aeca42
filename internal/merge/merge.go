// Package merge combines per-source partial records into a single company
// record using priority-ordered, first-non-empty-wins field resolution.
package merge

import (
	"strings"
	"time"

	"github.com/sells-group/company-research/internal/model"
)

// Slot is one source's position in the priority order. Record is nil when
// the source failed or returned nothing for the company.
type Slot struct {
	Source string
	Record *model.Partial
}

// Merger builds merged records. Construct with New.
type Merger struct {
	now func() time.Time
}

// New creates a Merger reading the wall clock.
func New() *Merger {
	return &Merger{now: time.Now}
}

// WithNow fixes the clock for testing.
func (m *Merger) WithNow(t time.Time) *Merger {
	m.now = func() time.Time { return t }
	return m
}

// Merge resolves each output field independently: the first slot in priority
// order holding a non-empty value wins, so phone and email may come from
// different sources. CompanyName always echoes query regardless of what any
// source reported as the company's name. Status is completed when at least
// one field was filled, partial otherwise.
func (m *Merger) Merge(query string, slots []Slot) model.Record {
	rec := model.Record{
		CompanyName:  query,
		ResearchDate: m.now().UTC().Format(time.RFC3339),
		Status:       model.StatusPartial,
	}

	filled := 0
	assign := func(dst **string, get func(*model.Partial) *string) {
		if v := first(slots, get); v != nil {
			*dst = v
			filled++
		}
	}

	assign(&rec.Name, func(p *model.Partial) *string { return p.Name })
	assign(&rec.Description, func(p *model.Partial) *string { return p.Description })
	assign(&rec.Address, func(p *model.Partial) *string { return p.Address })
	assign(&rec.State, func(p *model.Partial) *string { return p.State })
	assign(&rec.PostalCode, func(p *model.Partial) *string { return p.PostalCode })
	assign(&rec.Phone, func(p *model.Partial) *string { return p.Phone })
	assign(&rec.Country, func(p *model.Partial) *string { return p.Country })
	assign(&rec.Email, func(p *model.Partial) *string { return p.Email })
	assign(&rec.Employees, func(p *model.Partial) *string { return p.Employees })
	assign(&rec.Website, func(p *model.Partial) *string { return p.Website })
	assign(&rec.IndustryType, func(p *model.Partial) *string { return p.IndustryType })

	if filled > 0 {
		rec.Status = model.StatusCompleted
	}
	return rec
}

// Failed builds the failed-status record the boundary returns when every
// source errored. The merger itself never produces this status.
func (m *Merger) Failed(query string) model.Record {
	return model.Record{
		CompanyName:  query,
		ResearchDate: m.now().UTC().Format(time.RFC3339),
		Status:       model.StatusFailed,
	}
}

// first scans the slots in priority order for a usable value.
func first(slots []Slot, get func(*model.Partial) *string) *string {
	for _, s := range slots {
		if s.Record == nil {
			continue
		}
		if v := get(s.Record); v != nil && strings.TrimSpace(*v) != "" {
			return v
		}
	}
	return nil
}
