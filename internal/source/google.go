package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/company-research/internal/model"
	"github.com/sells-group/company-research/pkg/gsearch"
)

// googleQueries are the query expansions issued per company, mirroring the
// lookups a human researcher would run.
var googleQueries = []string{
	"%s official website",
	"%s company",
	"%s about",
	"%s contact",
	"%s profile",
}

var (
	reDomain   = regexp.MustCompile(`https?://(?:www\.)?([^/]+)`)
	reAddress  = regexp.MustCompile(`(?i)\d+[\w ,.\-]{5,80}\b(Street|Avenue|Ave|Drive|Dr|Road|Rd|Boulevard|Blvd|Lane|Ln|Way|Court|Place|Circle|Terrace|St)\b`)
	reState    = regexp.MustCompile(`\b(AL|AK|AZ|AR|CA|CO|CT|DE|FL|GA|HI|ID|IL|IN|IA|KS|KY|LA|ME|MD|MA|MI|MN|MS|MO|MT|NE|NV|NH|NJ|NM|NY|NC|ND|OH|OK|OR|PA|RI|SC|SD|TN|TX|UT|VT|VA|WA|WV|WI|WY|DC)\b`)
	rePostal   = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)
	rePhone    = regexp.MustCompile(`(\+?\d{1,2}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	reEmail    = regexp.MustCompile(`[\w.\-]+@[\w.\-]+\.[a-zA-Z]{2,}`)
	reEmployee = regexp.MustCompile(`(?i)(\d{1,5})\s+(?:employees|staff|team|people)`)
)

// emailSkipPrefixes disqualify system mailboxes and obvious junk.
var emailSkipPrefixes = []string{
	"core@", "admin@", "root@", "noreply@", "no-reply@", "donotreply@",
	"system@", "webmaster@", "postmaster@", "hostmaster@", "abuse@",
	"@localhost", "@127.", "@192.168.", "@10.", "@172.",
	"@example.com", "@test.com", "@sample.com",
}

// emailPreferPrefixes rank public contact mailboxes first.
var emailPreferPrefixes = []string{
	"info@", "contact@", "hello@", "support@", "sales@", "marketing@",
	"hr@", "jobs@", "careers@", "media@", "press@", "pr@",
}

// maxPageBytes caps how much of a company website we read for extraction.
const maxPageBytes = 1 << 20

// googleSource researches a company through Google Custom Search: it expands
// the name into several queries, picks the result whose domain matches the
// company name, and regex-extracts contact details from that page with the
// combined result snippets as fallback.
type googleSource struct {
	client gsearch.Client
	http   *http.Client
	num    int
}

// NewGoogle creates the search-engine source. num is the result count
// requested per query.
func NewGoogle(client gsearch.Client, num int) Source {
	return &googleSource{
		client: client,
		num:    num,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (s *googleSource) Name() string {
	return NameGoogle
}

func (s *googleSource) Fetch(ctx context.Context, companyName string) (*model.Partial, error) {
	log := zap.L().With(zap.String("source", NameGoogle), zap.String("company", companyName))

	items, err := s.search(ctx, companyName)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		log.Debug("google: no search results")
		return nil, nil
	}

	p := &model.Partial{}

	website := bestWebsite(companyName, items)
	p.Website = cleanWebsite(website)

	if p.Website != nil {
		html, fetchErr := s.fetchPage(ctx, *p.Website)
		if fetchErr != nil {
			log.Debug("google: website fetch failed", zap.String("url", *p.Website), zap.Error(fetchErr))
		} else {
			extractInto(p, html)
		}
	}

	var snippets []string
	for _, it := range items {
		if it.Snippet != "" {
			snippets = append(snippets, it.Snippet)
		}
	}
	combined := strings.Join(snippets, " ")
	p.Description = cleanText(combined)

	// Snippets backfill whatever the website did not yield.
	extractInto(p, combined)

	return partialOrNil(p), nil
}

// search fans the query expansions out sequentially and dedupes results by
// link. Individual query failures are tolerated; if every query fails the
// whole lookup is reported as failed (typically auth or quota).
func (s *googleSource) search(ctx context.Context, companyName string) ([]gsearch.Item, error) {
	var (
		items   []gsearch.Item
		lastErr error
		failed  int
	)
	seen := make(map[string]bool)

	for _, q := range googleQueries {
		resp, err := s.client.Search(ctx, fmt.Sprintf(q, companyName), s.num)
		if err != nil {
			failed++
			lastErr = err
			continue
		}
		for _, it := range resp.Items {
			if it.Link == "" || seen[it.Link] {
				continue
			}
			seen[it.Link] = true
			items = append(items, it)
		}
	}

	if failed == len(googleQueries) {
		return nil, eris.Wrap(lastErr, "google: all search queries failed")
	}
	return items, nil
}

// bestWebsite returns the first result whose domain matches the normalized
// company name, falling back to the first result link.
func bestWebsite(companyName string, items []gsearch.Item) string {
	nameKey := normalized(companyName)
	for _, it := range items {
		m := reDomain.FindStringSubmatch(it.Link)
		if len(m) < 2 {
			continue
		}
		if nameKey != "" && strings.Contains(normalized(m[1]), nameKey) {
			return it.Link
		}
	}
	for _, it := range items {
		if it.Link != "" {
			return it.Link
		}
	}
	return ""
}

func (s *googleSource) fetchPage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "google: create page request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "google: fetch page")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("google: page status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", eris.Wrap(err, "google: read page")
	}
	return string(body), nil
}

// extractInto regex-extracts contact fields from text, filling only fields
// that are still absent so page content outranks snippet fallback.
func extractInto(p *model.Partial, text string) {
	if p.Address == nil {
		if m := reAddress.FindString(text); m != "" {
			p.Address = cleanText(m)
		}
	}
	if p.State == nil {
		if m := reState.FindString(text); m != "" {
			p.State = clean(m)
		}
	}
	if p.PostalCode == nil {
		if m := rePostal.FindString(text); m != "" {
			p.PostalCode = clean(m)
		}
	}
	if p.Phone == nil {
		if m := rePhone.FindString(text); m != "" {
			p.Phone = cleanPhone(m)
		}
	}
	if p.Email == nil {
		p.Email = cleanEmail(pickEmail(text))
	}
	if p.Employees == nil {
		if n := maxEmployeeCount(text); n > 0 {
			p.Employees = model.Str(strconv.Itoa(n))
		}
	}
}

// pickEmail returns the best email address found in text: system mailboxes
// are skipped and public contact mailboxes outrank personal ones.
func pickEmail(text string) string {
	var preferred, other []string
	for _, raw := range reEmail.FindAllString(text, -1) {
		email := strings.ToLower(strings.TrimSpace(raw))
		if skipEmail(email) {
			continue
		}
		if hasAnyPrefix(email, emailPreferPrefixes) {
			preferred = append(preferred, email)
		} else {
			other = append(other, email)
		}
	}
	if len(preferred) > 0 {
		return preferred[0]
	}
	if len(other) > 0 {
		return other[0]
	}
	return ""
}

func skipEmail(email string) bool {
	if hasAnyPrefix(email, emailSkipPrefixes) {
		return true
	}
	at := strings.Index(email, "@")
	if at < 0 {
		return true
	}
	domain := email[at+1:]
	if len(domain) < 4 {
		return true
	}
	if bare := strings.ReplaceAll(domain, ".", ""); bare != "" {
		allDigits := true
		for _, r := range bare {
			if r < '0' || r > '9' {
				allDigits = false
				break
			}
		}
		if allDigits {
			return true
		}
	}
	return false
}

func hasAnyPrefix(email string, patterns []string) bool {
	for _, pat := range patterns {
		if strings.Contains(email, pat) {
			return true
		}
	}
	return false
}

// maxEmployeeCount returns the largest employee count mentioned in text,
// or 0 when none is found.
func maxEmployeeCount(text string) int {
	best := 0
	for _, m := range reEmployee.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > best {
			best = n
		}
	}
	return best
}
