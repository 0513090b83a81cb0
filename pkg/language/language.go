// Package language tags quote text with its detected language.
package language

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// DefaultLanguages bounds detection to the languages quote sites commonly carry.
var DefaultLanguages = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Italian,
	lingua.Portuguese,
}

// Result is a detected language as an ISO-639-1 code.
type Result struct {
	Code       string  `json:"code" yaml:"code"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector builds a detector over languages, or DefaultLanguages when
// fewer than two are given.
func NewDetector(languages ...lingua.Language) *Detector {
	if len(languages) < 2 {
		languages = DefaultLanguages
	}
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build(),
	}
}

// Detect returns the most likely language of text.
// The boolean is false for blank text or when no language is reliable.
func (d *Detector) Detect(text string) (Result, bool) {
	if strings.TrimSpace(text) == "" {
		return Result{}, false
	}

	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return Result{}, false
	}

	return Result{
		Code:       strings.ToLower(lang.IsoCode639_1().String()),
		Confidence: d.detector.ComputeLanguageConfidence(text, lang),
	}, true
}
