package receipt

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/antoninaarc/finanzapp/internal/models"
)

// ParsedReceipt is the structured guess extracted from one scan. It is
// ephemeral: it only pre-fills a transaction draft and is never stored.
// Date is never zero; it falls back to the scan time. A nil VATRate
// means "undetected", which is distinct from a confirmed 0% rate.
type ParsedReceipt struct {
	Amount            *decimal.Decimal
	Date              time.Time
	Merchant          string
	VATRate           *decimal.Decimal
	SuggestedCategory string
	Lines             []string
}

// IsEmpty reports whether nothing usable was extracted.
func (r *ParsedReceipt) IsEmpty() bool {
	return r.Amount == nil && r.Merchant == "" && r.VATRate == nil
}

// headerLines is how many lines from the top are considered the
// receipt header when looking for the merchant name.
const headerLines = 5

// Fallback amount plausibility bounds for lines without a total keyword.
var (
	minPlausibleAmount = decimal.NewFromFloat(0.01)
	maxPlausibleAmount = decimal.NewFromInt(10000)
)

// Parser runs the extraction heuristics with a keyword table.
type Parser struct {
	kw Keywords
}

// NewParser returns a parser using the given keyword tables.
func NewParser(kw Keywords) *Parser {
	return &Parser{kw: kw}
}

// Parse extracts a ParsedReceipt from recognized text lines using the
// default keyword tables. now supplies the fallback date.
func Parse(lines []string, now time.Time) ParsedReceipt {
	return NewParser(DefaultKeywords()).Parse(lines, now)
}

// Parse extracts amount, date, merchant, VAT rate and a category
// suggestion from the recognized lines.
func (p *Parser) Parse(lines []string, now time.Time) ParsedReceipt {
	return ParsedReceipt{
		Amount:            p.extractAmount(lines),
		Date:              extractDate(lines, now),
		Merchant:          p.extractMerchant(lines),
		VATRate:           detectVATRate(lines),
		SuggestedCategory: p.suggestCategory(lines),
		Lines:             lines,
	}
}

// extractAmount runs the priority tiers over the lines, scanning bottom
// up since totals sit near the end of a receipt. The first tier that
// yields a number wins; with no keyword hit at all, the largest
// plausible number anywhere on the receipt is taken.
func (p *Parser) extractAmount(lines []string) *decimal.Decimal {
	for _, tier := range p.kw.AmountTiers {
		for i := len(lines) - 1; i >= 0; i-- {
			compact := strings.ToLower(strings.ReplaceAll(lines[i], " ", ""))
			if !containsAny(compact, tier.Keywords) || containsAny(compact, tier.Exclude) {
				continue
			}
			if amount := ParseNumber(lines[i]); amount != nil {
				return amount
			}
		}
	}

	var best *decimal.Decimal
	for _, line := range lines {
		amount := ParseNumber(line)
		if amount == nil || amount.LessThan(minPlausibleAmount) || amount.GreaterThan(maxPlausibleAmount) {
			continue
		}
		if best == nil || amount.GreaterThan(*best) {
			best = amount
		}
	}
	return best
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// numberPattern matches an amount with up to two decimals after
// normalization.
var numberPattern = regexp.MustCompile(`\d+(?:\.\d{1,2})?`)

// ParseNumber pulls an amount out of a single line. Currency symbols are
// stripped and European notation normalized: a lone comma is the decimal
// separator, and when both comma and dot appear the dot is a thousands
// separator. With several numbers on a line the last one wins, since
// amounts trail their labels. Returns nil when the line holds no number.
func ParseNumber(line string) *decimal.Decimal {
	cleaned := line
	for _, sym := range []string{"€", "EUR", "eur", "$"} {
		cleaned = strings.ReplaceAll(cleaned, sym, "")
	}
	cleaned = strings.TrimSpace(cleaned)

	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")
	switch {
	case hasComma && hasDot:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case hasComma:
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	matches := numberPattern.FindAllString(cleaned, -1)
	if len(matches) == 0 {
		return nil
	}
	amount, err := decimal.NewFromString(matches[len(matches)-1])
	if err != nil {
		return nil
	}
	return &amount
}

// extractMerchant looks at the header lines only. A known merchant name
// beats the generic rule; otherwise the first reasonably long line
// without digits is taken.
func (p *Parser) extractMerchant(lines []string) string {
	header := lines
	if len(header) > headerLines {
		header = header[:headerLines]
	}

	for _, line := range header {
		lower := strings.ToLower(line)
		for _, merchant := range p.kw.Merchants {
			if strings.Contains(lower, strings.ToLower(merchant)) {
				return merchant
			}
		}
	}

	for _, line := range header {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) > 3 && !strings.ContainsAny(trimmed, "0123456789") {
			return trimmed
		}
	}
	return ""
}

// suggestCategory maps keyword hits anywhere in the text to a category
// name. Empty when nothing matches; the caller decides the fallback.
func (p *Parser) suggestCategory(lines []string) string {
	allText := strings.ToLower(strings.Join(lines, " "))
	for _, name := range sortedCategoryNames(p.kw.Categories) {
		if containsAny(allText, p.kw.Categories[name]) {
			return name
		}
	}
	return ""
}

func sortedCategoryNames(categories map[string][]string) []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	// Deterministic iteration so equal-strength matches do not flap.
	sort.Strings(names)
	return names
}

// datePattern matches day-month-year with '-' or '/' separators.
var datePattern = regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{2,4}`)

// dateLayouts are tried in order against each date-like token.
var dateLayouts = []string{
	"2-1-2006",
	"2/1/2006",
	"2-1-06",
	"2/1/06",
}

// extractDate returns the first parseable date on the receipt, or now
// when nothing parses. Downstream transaction creation always needs a
// date, so the result is never zero.
func extractDate(lines []string, now time.Time) time.Time {
	for _, line := range lines {
		token := datePattern.FindString(line)
		if token == "" {
			continue
		}
		for _, layout := range dateLayouts {
			parsed, err := time.ParseInLocation(layout, token, now.Location())
			if err != nil {
				continue
			}
			if parsed.Year() >= 2000 && parsed.Year() <= 2100 {
				return parsed
			}
		}
	}
	return now
}

// bMarker matches the standalone "B" Dutch receipts print next to
// reduced-rate items.
var bMarker = regexp.MustCompile(`(?:^|\s)B(?:\s|$)`)

// detectVATRate guesses the receipt's BTW rate. Two or more "B" item
// markers imply the reduced 9% rate; otherwise an explicit "21%" or "9%"
// anywhere in the text decides. Nil means undetected, not zero-rate.
func detectVATRate(lines []string) *decimal.Decimal {
	markers := 0
	for _, line := range lines {
		if bMarker.MatchString(strings.TrimSpace(line)) {
			markers++
		}
	}
	if markers >= 2 {
		rate := models.VATRateReduced
		return &rate
	}

	allText := strings.Join(lines, " ")
	switch {
	case strings.Contains(allText, "21%"):
		rate := models.VATRateStandard
		return &rate
	case strings.Contains(allText, "9%"):
		rate := models.VATRateReduced
		return &rate
	}
	return nil
}
