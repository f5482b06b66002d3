package ner

import (
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/poiesic/keywordx/core"
)

// The month May only matches capitalized so the modal verb stays plain text.
const (
	months   = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|(?-i:May)|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`
	weekdays = `monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon|tue|tues|wed|thu|thur|thurs|fri|sat|sun`
	ordinal  = `\d{1,2}(?:st|nd|rd|th)?`
	number   = `\d+(?:,\d{3})*(?:\.\d+)?`
)

// rule is one detection pattern. Rules run in order and the first rule to
// claim a piece of text owns it.
type rule struct {
	entityType core.EntityType
	pattern    *regexp.Regexp
}

var dateRules = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),
	regexp.MustCompile(`(?i)\b(?:the\s+)?day\s+(?:after\s+tomorrow|before\s+yesterday)\b`),
	regexp.MustCompile(`(?i)\b(?:today|tomorrow|yesterday)\b`),
	regexp.MustCompile(`(?i)\b(?:this|next|last|past)\s+(?:week\s+)?(?:` + weekdays + `)\b`),
	regexp.MustCompile(`(?i)\b(?:this|next|last|past)\s+(?:week|month|year|weekend)\b`),
	regexp.MustCompile(`(?i)\b(?:` + months + `)\.?\s+` + ordinal + `(?:,?\s+\d{4})?\b`),
	regexp.MustCompile(`(?i)\b` + ordinal + `\s+(?:of\s+)?(?:` + months + `)(?:,?\s+\d{4})?\b`),
	regexp.MustCompile(`(?i)\b(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
}

var timeRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b\d{1,2}(?::\d{2})?\s*(?:a\.m\.|p\.m\.|am\b|pm\b)`),
	regexp.MustCompile(`\b(?:[01]?\d|2[0-3]):[0-5]\d\b`),
	regexp.MustCompile(`(?i)\b(?:noon|midday|midnight|tonight)\b`),
	regexp.MustCompile(`(?i)\b(?:this|tomorrow|yesterday)\s+(?:morning|afternoon|evening|night)\b`),
}

var moneyRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)[$€£₹¥]\s?` + number + `(?:\s?(?:k|m|bn|thousand|million|billion)\b)?`),
	regexp.MustCompile(`(?i)\b` + number + `\s?(?:thousand\s+|million\s+|billion\s+)?(?:dollars?|usd|euros?|eur|pounds?|gbp|rupees?|inr|yen|jpy|bucks)\b`),
}

var cardinalRules = []*regexp.Regexp{
	regexp.MustCompile(`\b` + number + `\b`),
	regexp.MustCompile(`(?i)\b(?:one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|thirteen|fourteen|fifteen|sixteen|seventeen|eighteen|nineteen|twenty|thirty|forty|fifty|sixty|seventy|eighty|ninety|hundred|thousand|dozen)\b`),
}

// DefaultGPE returns the countries, states and cities recognized as GPE.
// The returned slice is a copy.
func DefaultGPE() []string {
	return slices.Clone(defaultGPE)
}

// DefaultLOC returns the non-political locations recognized as LOC.
// The returned slice is a copy.
func DefaultLOC() []string {
	return slices.Clone(defaultLOC)
}

var defaultGPE = []string{
	"Afghanistan", "Argentina", "Australia", "Austria", "Bangladesh", "Belgium", "Brazil",
	"Canada", "Chile", "China", "Colombia", "Denmark", "Egypt", "England", "Finland",
	"France", "Germany", "Greece", "India", "Indonesia", "Iran", "Iraq", "Ireland",
	"Israel", "Italy", "Japan", "Kenya", "Malaysia", "Mexico", "Nepal", "Netherlands",
	"New Zealand", "Nigeria", "Norway", "Pakistan", "Peru", "Philippines", "Poland",
	"Portugal", "Russia", "Saudi Arabia", "Scotland", "Singapore", "South Africa",
	"South Korea", "Spain", "Sri Lanka", "Sweden", "Switzerland", "Thailand", "Turkey",
	"UK", "USA", "US", "Ukraine", "United Kingdom", "United States", "Vietnam", "Wales",
	"California", "Texas", "Florida", "New York", "Karnataka", "Maharashtra", "Kerala",
	"Tamil Nadu", "Bavaria", "Ontario", "Quebec",
	"Amsterdam", "Athens", "Bangalore", "Bengaluru", "Bangkok", "Barcelona", "Beijing",
	"Berlin", "Boston", "Brussels", "Buenos Aires", "Cairo", "Chennai", "Chicago",
	"Copenhagen", "Delhi", "Dubai", "Dublin", "Edinburgh", "Hong Kong", "Hyderabad",
	"Istanbul", "Jakarta", "Kolkata", "Lagos", "Lisbon", "London", "Los Angeles",
	"Madrid", "Manila", "Melbourne", "Mexico City", "Miami", "Milan", "Montreal",
	"Moscow", "Mumbai", "Munich", "Nairobi", "New Delhi", "Oslo", "Paris", "Prague",
	"Pune", "Rome", "San Francisco", "Seattle", "Seoul", "Shanghai", "Stockholm",
	"Sydney", "Tokyo", "Toronto", "Vancouver", "Vienna", "Warsaw", "Washington", "Zurich",
}

var defaultLOC = []string{
	"Africa", "Antarctica", "Asia", "Europe", "North America", "South America",
	"Oceania", "Middle East", "Scandinavia", "Balkans", "Caribbean", "Siberia",
	"Alps", "Andes", "Himalayas", "Rockies", "Mount Everest", "Mount Fuji",
	"Sahara", "Amazon", "Nile", "Ganges", "Danube", "Rhine", "Thames", "Mississippi",
	"Atlantic", "Pacific", "Indian Ocean", "Arctic", "Mediterranean", "Baltic",
	"Silicon Valley", "Lake Tahoe", "Lake Geneva",
}

// gazetteerPattern builds a case-sensitive whole-word alternation, longest
// names first so "New York" wins over "York".
func gazetteerPattern(names []string) *regexp.Regexp {
	if len(names) == 0 {
		return nil
	}
	sorted := append([]string(nil), names...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})
	quoted := make([]string, len(sorted))
	for i, n := range sorted {
		quoted[i] = regexp.QuoteMeta(n)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

func buildRules(gpe, loc []string) []rule {
	var rules []rule
	add := func(t core.EntityType, patterns ...*regexp.Regexp) {
		for _, p := range patterns {
			if p != nil {
				rules = append(rules, rule{entityType: t, pattern: p})
			}
		}
	}
	add(core.EntityTypeDate, dateRules...)
	add(core.EntityTypeTime, timeRules...)
	add(core.EntityTypeMoney, moneyRules...)
	add(core.EntityTypeLocation, gazetteerPattern(loc))
	add(core.EntityTypeGPE, gazetteerPattern(gpe))
	add(core.EntityTypeCardinal, cardinalRules...)
	return rules
}
