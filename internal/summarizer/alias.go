package summarizer

import (
	"regexp"
	"strings"
)

// AliasEntry pairs a raw alias with the canonical short name it resolves
// to. The alias table is matched top to bottom, so entries whose keys are
// substrings of other keys must be listed in the intended priority order.
type AliasEntry struct {
	Alias string
	Short string
}

var aliasTable = []AliasEntry{
	{"AKZO NOBEL", "AKZO NOBEL"},
	{"AKZO NOBEL INDIA LTD", "AKZO NOBEL"},
	{"ASIAN PAINTS", "ASIAN"},
	{"ESDEE PAINTS", "ESDEE"},
	{"INDIGO PAINTS", "INDIGO"},
	{"SIMPSON & CO", "SIMPSON"},
	{"APC-DIVISION", "SIMPSON"},
	{"VEENA PAINTS", "VEENA"},
	{"T.A.L.C.ANNAMALAI NADAR", "T.A.L.C"},
	{"UTTAM ELECTRONICS", "UTTAM"},
	{"GEETHA PAINTS", "GEETHA PAINTS"},
	{"BALAJI INDUSTRIES", "BALAJI IND"},
	{"T.A.L.C.A.SATCHITHANANTHAM", "T.A.L.C.A.SA"},
	{"SPECTRUM SURFACE SOLUTIONS", "SPECTRUM"},
	{"GLOBAL PAINTS", "GLOBAL PAINTS"},
	{"JPJ AGENCIES", "JPJ AGENCIES"},
	{"SRI VELAVAN TRADERS", "SRI VELAVAN"},
	{"ASCKANIA CHEMICALS", "ASCKANIA"},
	{"SRI MARUTI EXPORTS", "SRI MARUTI"},
	{"SREE VALAMPURI AGENCIES", "SREE VALAMPURI"},
	{"SENTHIL CORPORATION", "SENTHIL CORP"},
	{"SENTHI AGENCY", "SENTHI AGENCY"},
	{"SRI ANDAL SALES CORPORATION", "SRI ANDAL"},
	{"JOTHI TRADERS", "JOTHI TRADERS"},
	{"GANESH ENTERPRISES", "GANESH EP"},
	{"NIVIN BRUSH", "NIVIN BRUSH"},
}

// normalized alias keys, computed once; same order as aliasTable.
var aliasKeys = func() []string {
	keys := make([]string, len(aliasTable))
	for i, e := range aliasTable {
		keys[i] = NormalizeKey(e.Alias)
	}
	return keys
}()

var (
	parenRe = regexp.MustCompile(`\(.*?\)`)
	// Suffix alternatives keep the declared order; earlier alternatives win
	// at the same position, mirroring the alias table's priority rule.
	suffixRe = regexp.MustCompile(`(?i)\b(?:INDIA|LTD|LIMITED|PVT|PRIVATE|COMPANY|CO|PVT\.|LTD\.|PVT LTD|DIVISION|APC|APC-DIVISION)\b`)
	multiRe  = regexp.MustCompile(`\s{2,}`)
)

// ResolveShortName maps a raw party name onto its canonical short form.
// The alias table is scanned first: the first entry whose normalized key
// is a substring of the normalized input wins. Names with no alias fall
// back to heuristic shortening.
func ResolveShortName(name string) string {
	norm := NormalizeKey(name)
	for i, key := range aliasKeys {
		if key != "" && strings.Contains(norm, key) {
			return strings.ToUpper(aliasTable[i].Short)
		}
	}
	return shortenFallback(name)
}

// shortenFallback derives a short name for parties absent from the alias
// table: parenthesized spans go first, then everything after the first
// hyphen or slash, then legal suffix words, then redundant spaces. A name
// that strips down to nothing keeps its original trimmed form.
func shortenFallback(name string) string {
	s := strings.TrimSpace(name)
	if s == "" {
		return ""
	}
	s = parenRe.ReplaceAllString(s, "")
	if i := strings.Index(s, "-"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if i := strings.Index(s, "/"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	s = strings.TrimSpace(suffixRe.ReplaceAllString(s, ""))
	s = strings.TrimSpace(multiRe.ReplaceAllString(s, " "))
	if s == "" {
		return strings.ToUpper(strings.TrimSpace(name))
	}
	return strings.ToUpper(s)
}
