package source

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/sells-group/company-research/internal/model"
)

// missingPhrases are the placeholder values upstream providers emit in place
// of real data. Any value containing one of them is treated as absent.
var missingPhrases = []string{
	"N/A",
	"NOT FOUND",
	"NO INFORMATION FOUND",
	"UNKNOWN",
	"NOT AVAILABLE",
}

var (
	reTag      = regexp.MustCompile(`<[^>]+>`)
	reEntity   = regexp.MustCompile(`&[a-zA-Z]+;`)
	reCSSRule  = regexp.MustCompile(`\.\w+[^{}]*\{[^}]*\}`)
	reSpace    = regexp.MustCompile(`\s+`)
	reHasDigit = regexp.MustCompile(`\d`)
)

// clean trims v and returns a pointer to it, or nil when the value is empty
// or a missing-data placeholder.
func clean(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	upper := strings.ToUpper(v)
	for _, phrase := range missingPhrases {
		if strings.Contains(upper, phrase) {
			return nil
		}
	}
	return &v
}

// cleanText strips HTML tags, entities, inline CSS rules, and collapses
// whitespace before applying clean.
func cleanText(v string) *string {
	v = reTag.ReplaceAllString(v, "")
	v = reEntity.ReplaceAllString(v, "")
	v = reCSSRule.ReplaceAllString(v, "")
	v = reSpace.ReplaceAllString(v, " ")
	return clean(v)
}

// cleanEmail accepts values that look like email addresses.
func cleanEmail(v string) *string {
	p := clean(v)
	if p == nil {
		return nil
	}
	if !strings.Contains(*p, "@") || !strings.Contains(*p, ".") {
		return nil
	}
	return p
}

// cleanPhone validates with libphonenumber and reformats to international
// notation. Values that do not parse are kept verbatim as long as they carry
// at least one digit, since directory sources sometimes return extensions or
// multiple numbers in one string.
func cleanPhone(v string) *string {
	p := clean(v)
	if p == nil {
		return nil
	}
	if num, err := phonenumbers.Parse(*p, "US"); err == nil && phonenumbers.IsValidNumber(num) {
		formatted := phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
		return &formatted
	}
	if !reHasDigit.MatchString(*p) {
		return nil
	}
	return p
}

// cleanWebsite accepts http(s) URLs with a dot in them.
func cleanWebsite(v string) *string {
	p := clean(v)
	if p == nil {
		return nil
	}
	if !strings.HasPrefix(*p, "http") || !strings.Contains(*p, ".") {
		return nil
	}
	return p
}

// normalized lowercases and strips everything but letters and digits; used
// for matching company names against domains.
func normalized(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// partialOrNil returns nil when the sanitized partial carries no values,
// so an empty provider response degrades to an absent slot.
func partialOrNil(p *model.Partial) *model.Partial {
	if p.Empty() {
		return nil
	}
	return p
}
