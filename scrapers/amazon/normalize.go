package amazon

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// repairRule is one entry of the text-corruption repair table. The page
// renders many labels as runs of inline spans; concatenating their text
// nodes splits words with stray internal spaces ("Ite m Weight",
// "Manufactu re r"). Each rule detects one known word tolerant of
// inserted whitespace and rewrites it to the canonical form.
type repairRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// repairRules is applied in order; later rules clean up residue left by
// earlier ones, so the order must not change. Every rule is idempotent:
// fragment patterns are word-boundary anchored so they never re-match
// their own replacement.
var repairRules = []repairRule{
	// Compound fixes first, before the single-word rules eat their parts.
	{regexp.MustCompile(`(?i)\bIte\s+Di\s+Di\s+ensions\b`), "Item Dimensions"},
	{regexp.MustCompile(`(?i)\bDi\s+Di\s+ensions\b`), "Dimensions"},
	{regexp.MustCompile(`(?i)\bIte\s+Mode\s+nNu\s+be\b`), "Item Model Number"},
	{regexp.MustCompile(`(?i)\bIte\s+Weight\b`), "Item Weight"},

	// Word-level fixes.
	{regexp.MustCompile(`(?i)\bP\s*o\s*duct\b`), "Product"},
	{regexp.MustCompile(`(?i)\bDi\s*m?\s*ensions\b`), "Dimensions"},
	{regexp.MustCompile(`(?i)\bDate\s+Fi\s*r?\s*st\b`), "Date First"},
	{regexp.MustCompile(`(?i)\bAvai\s*l?\s*ab\s*l?\s*e\b`), "Available"},
	{regexp.MustCompile(`(?i)\bManufactu\s*r?\s*e\b`), "Manufacturer"},
	{regexp.MustCompile(`(?i)\bMode\s*l?\s*nNu\s*m?\s*be\s*r?\b`), "Model Number"},
	{regexp.MustCompile(`(?i)\bIte\s*m\b`), "Item"},
	{regexp.MustCompile(`(?i)\bIte\b`), "Item"},
	{regexp.MustCompile(`(?i)\bMode\s*l\b`), "Model"},
	{regexp.MustCompile(`(?i)\bMode\b`), "Model"},
	{regexp.MustCompile(`(?i)\bNu\s*m?\s*be\s*r?\b`), "Number"},
	{regexp.MustCompile(`(?i)\bDepa\s*r?\s*t\s*m?\s*ent\b`), "Department"},
	{regexp.MustCompile(`(?i)\bPacke\s*r\b`), "Packer"},
	{regexp.MustCompile(`(?i)\bPacke\b`), "Packer"},
	{regexp.MustCompile(`(?i)\bI\s*m?\s*po\s*r?\s*te\s*r?\b`), "Importer"},
	{regexp.MustCompile(`(?i)\bGene\s*r?\s*ic\s+Na\s*m?\s*e\b`), "Generic Name"},
	{regexp.MustCompile(`(?i)\bBest\s+Se\s*l?\s*l?\s*e\s*r?\s*s\s+Rank\b`), "Best Sellers Rank"},
	{regexp.MustCompile(`(?i)\bCusto\s*m?\s*e\s*r?\s+Reviews\b`), "Customer Reviews"},
	{regexp.MustCompile(`(?i)\bSe\s*l?\s*l?\s*e\s*r?\s*s\b`), "Sellers"},
	{regexp.MustCompile(`(?i)\bens\b`), "Mens"},
	{regexp.MustCompile(`(?i)\bW\s*e?\s*ight\b`), "Weight"},
	{regexp.MustCompile(`(?i)\bNam\s*e\b`), "Name"},
	{regexp.MustCompile(`(?i)\bNam\b`), "Name"},
	{regexp.MustCompile(`(?i)\bR\s*a?\s*nk\b`), "Rank"},

	// Partial-word residue, anchored so repaired words don't re-match.
	{regexp.MustCompile(`(?i)\bodel\s+nu`), "Model Nu"},
	{regexp.MustCompile(`(?i)\bensions\b`), "Dimensions"},
	{regexp.MustCompile(`(?i)\bepartm`), "Departm"},
	{regexp.MustCompile(`(?i)\bmport`), "Import"},
	{regexp.MustCompile(`(?i)\banufact`), "Manufact"},
}

// formatChars matches Unicode format characters: directionality marks,
// embedding controls, zero-width joiners and friends. The page sprinkles
// LRM/RLM marks around detail labels.
var (
	formatChars    = regexp.MustCompile(`\p{Cf}`)
	entityMarks    = strings.NewReplacer("&lrm;", "", "&rlm;", "")
	leadingColons  = regexp.MustCompile(`^[:\s]+`)
	trailingColons = regexp.MustCompile(`[:\s]+$`)
)

// fixTextCorruption applies the repair table and collapses whitespace.
func fixTextCorruption(text string) string {
	if text == "" {
		return text
	}
	for _, rule := range repairRules {
		text = rule.pattern.ReplaceAllString(text, rule.replacement)
	}
	return strings.Join(strings.Fields(text), " ")
}

// cleanKey normalizes a detail label: corruption repair, directionality
// mark removal, trailing colon trim, whitespace collapse.
func cleanKey(key string) string {
	if key == "" {
		return key
	}
	key = fixTextCorruption(key)
	key = entityMarks.Replace(key)
	key = formatChars.ReplaceAllString(key, "")
	key = trailingColons.ReplaceAllString(key, "")
	return strings.Join(strings.Fields(key), " ")
}

// cleanValue normalizes a detail value. Values keep internal colons but
// lose leading/trailing colon-and-whitespace runs.
func cleanValue(value string) string {
	if value == "" {
		return value
	}
	value = fixTextCorruption(value)
	value = entityMarks.Replace(value)
	value = formatChars.ReplaceAllString(value, "")
	value = leadingColons.ReplaceAllString(value, "")
	value = trailingColons.ReplaceAllString(value, "")
	return strings.Join(strings.Fields(value), " ")
}

// safeExtract returns the cleaned text of a selection, or "N/A" when the
// selection is empty or yields no usable text.
func safeExtract(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return "N/A"
	}
	text := fixTextCorruption(strings.TrimSpace(sel.Text()))
	if text == "" {
		return "N/A"
	}
	return text
}
