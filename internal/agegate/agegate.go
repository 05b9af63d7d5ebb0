// Package agegate checks whether a parenting question says how old the
// child is. Tips for a 6-month-old and a 5-year-old look nothing alike,
// so generation is gated on some age or life-stage signal being present.
package agegate

import "regexp"

var (
	// "3 years old", "18 months", "2yo", "4 yrs", "3-year-old"
	digitAge = regexp.MustCompile(`(?i)\b\d+[\s-]*(months?|years?|yo|yrs?)\b([\s-]*old)?`)

	// "two years old", "eleven months"
	wordAge = regexp.MustCompile(`(?i)\b(one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve)[\s-]+(months?|years?)\b([\s-]*old)?`)

	// bare life-stage nouns carry the age signal on their own
	lifeStage = regexp.MustCompile(`(?i)\b(toddler|infant|baby|preschooler|kindergartner)\b`)
)

// HasAgeReference reports whether the prompt contains an age or
// life-stage indication. Matching is case-insensitive and positional
// anywhere in the string; no side effects.
func HasAgeReference(prompt string) bool {
	return digitAge.MatchString(prompt) ||
		wordAge.MatchString(prompt) ||
		lifeStage.MatchString(prompt)
}
