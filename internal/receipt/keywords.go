// Package receipt extracts a structured guess (amount, date, merchant,
// VAT rate, category) from the raw text lines an OCR collaborator
// recognized on a scanned receipt. Every extractor is best-effort:
// failures yield absent fields, never errors.
package receipt

// AmountTier is one priority level of the total-amount search. A line
// matches when it contains any keyword and none of the exclusions
// (compared lowercase with spaces stripped).
type AmountTier struct {
	Keywords []string
	Exclude  []string
}

// Keywords holds the locale tables driving the heuristics. Callers can
// supply their own to extend locales without touching the parsing logic.
type Keywords struct {
	// AmountTiers are tried in order; the first tier that yields a
	// number on any line wins.
	AmountTiers []AmountTier
	// Merchants are known merchant names, matched case-insensitively
	// against the receipt header lines.
	Merchants []string
	// Categories maps a category name to the substrings suggesting it.
	Categories map[string][]string
}

// DefaultKeywords returns the built-in Dutch/Spanish/English tables.
func DefaultKeywords() Keywords {
	return Keywords{
		AmountTiers: []AmountTier{
			// "te betalen" / "a pagar" mark the amount actually due.
			{Keywords: []string{"tebetalen", "apagar"}},
			{Keywords: []string{"totaal"}, Exclude: []string{"subtotaal"}},
			{Keywords: []string{"total"}, Exclude: []string{"subtotal"}},
		},
		Merchants: []string{
			"Albert Heijn",
			"Jumbo",
			"Lidl",
			"Aldi",
			"Plus",
			"Hema",
			"Kruidvat",
			"Etos",
		},
		Categories: map[string][]string{
			"Groceries":     {"albert heijn", "jumbo", "lidl", "aldi", "plus", "supermarkt", "grocery"},
			"Transport":     {"ns", "train", "taxi", "uber", "ov", "benzine", "shell", "parking"},
			"Healthcare":    {"apotheek", "pharmacy", "dokter", "hospital", "ziekenhuis", "tandarts"},
			"Entertainment": {"cinema", "bioscoop", "netflix", "spotify", "museum"},
			"Clothing":      {"h&m", "zara", "fashion", "kleding"},
			"Travel":        {"hotel", "booking", "airbnb", "airline", "vliegtuig"},
		},
	}
}
