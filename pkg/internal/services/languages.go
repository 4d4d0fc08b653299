package services

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

var (
	languageDetector     lingua.LanguageDetector
	languageDetectorOnce sync.Once
)

func DetectLanguage(content string) string {
	if len(strings.TrimSpace(content)) == 0 {
		return ""
	}

	languageDetectorOnce.Do(func() {
		languageDetector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			WithLowAccuracyMode().
			Build()
	})

	if lang, ok := languageDetector.DetectLanguageOf(content); ok {
		return strings.ToLower(lang.IsoCode639_1().String())
	}
	return "unknown"
}
