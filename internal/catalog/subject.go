package catalog

import "strings"

// Subject is a school subject taught on the lesson path.
type Subject string

const (
	SubjectMath    Subject = "Math"
	SubjectEnglish Subject = "English"
	SubjectTamil   Subject = "Tamil"
	SubjectHindi   Subject = "Hindi"
)

// AllSubjects returns all subjects in display order.
func AllSubjects() []Subject {
	return []Subject{SubjectMath, SubjectEnglish, SubjectTamil, SubjectHindi}
}

// ParseSubject resolves a subject name case-insensitively.
func ParseSubject(s string) (Subject, bool) {
	for _, sub := range AllSubjects() {
		if strings.EqualFold(string(sub), s) {
			return sub, true
		}
	}
	return "", false
}

// Icon returns the display icon for a subject.
func (s Subject) Icon() string {
	switch s {
	case SubjectMath:
		return "🧮"
	case SubjectEnglish:
		return "📖"
	case SubjectTamil:
		return "அ"
	case SubjectHindi:
		return "अ"
	default:
		return "?"
	}
}

// Language is the lesson language mode.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageTamil   Language = "ta"
	LanguageHindi   Language = "hi"
)

// AllLanguages returns the supported languages in toggle order.
func AllLanguages() []Language {
	return []Language{LanguageEnglish, LanguageTamil, LanguageHindi}
}

// ParseLanguage resolves a language code. The empty string maps to English.
func ParseLanguage(s string) (Language, bool) {
	if s == "" {
		return LanguageEnglish, true
	}
	for _, l := range AllLanguages() {
		if strings.EqualFold(string(l), s) {
			return l, true
		}
	}
	return "", false
}

// Next returns the language that follows l in toggle order (en → ta → hi → en).
func (l Language) Next() Language {
	switch l {
	case LanguageEnglish:
		return LanguageTamil
	case LanguageTamil:
		return LanguageHindi
	default:
		return LanguageEnglish
	}
}

// Label returns the toggle label shown to the learner.
func (l Language) Label() string {
	switch l {
	case LanguageTamil:
		return "தமிழ்"
	case LanguageHindi:
		return "हिंदी"
	default:
		return "ENG"
	}
}

// DisplayName returns the English name of the language.
func (l Language) DisplayName() string {
	switch l {
	case LanguageTamil:
		return "Tamil"
	case LanguageHindi:
		return "Hindi"
	default:
		return "English"
	}
}

// Transliterated reports whether replies in l carry an English
// transliteration alongside the native script.
func (l Language) Transliterated() bool {
	return l == LanguageTamil || l == LanguageHindi
}
