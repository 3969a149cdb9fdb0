// Package screening triages intake answers by keyword.
//
// Matching is case-insensitive substring containment, not word matching:
// "hallucinations" hits "hallucination", and so does any unrelated word that
// happens to contain a keyword.
package screening

import (
	"strings"

	"counseling-booking-api/internal/model"
)

// Keywords are checked in slice order; the first hit decides the result.
var (
	severeKeywords = []string{
		"suicide", "kill myself", "end my life", "don't want to live",
		"harm myself", "self-harm", "cutting myself",
		"hallucination", "hearing voices", "seeing things",
		"paranoid", "everyone is watching me", "government tracking",
	}
	moderateKeywords = []string{
		"depressed", "anxious", "panic attack", "can't sleep",
		"no energy", "hopeless", "worthless", "trauma",
		"abuse", "violent", "alcohol", "drugs", "addiction",
	}
)

const (
	BlockNote = "Based on your responses, we recommend seeking immediate professional help. " +
		"Please contact a mental health professional or emergency services."
	ReferNote = "Based on your responses, we recommend consulting with a professional counselor. " +
		"You can still use our platform, but professional guidance is advised."
	PassNote = "Thank you for completing the screening. You can now use our platform to connect with counselors."
)

// Classify returns the screening outcome and its advisory note.
func Classify(answers []string) (model.ScreeningResult, string) {
	lower := make([]string, len(answers))
	for i, a := range answers {
		lower[i] = strings.ToLower(a)
	}

	if matchAny(severeKeywords, lower) {
		return model.ScreeningBlock, BlockNote
	}
	if matchAny(moderateKeywords, lower) {
		return model.ScreeningRefer, ReferNote
	}
	return model.ScreeningPass, PassNote
}

func matchAny(keywords, answers []string) bool {
	for _, kw := range keywords {
		for _, a := range answers {
			if strings.Contains(a, kw) {
				return true
			}
		}
	}
	return false
}
