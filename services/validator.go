package services

import (
	"strings"
	"unicode"
)

// Rejection messages, kept word for word from the original UI.
const (
	MsgEmptyQuestion    = "Por favor, escribe una pregunta."
	MsgEmojisNotAllowed = "No se permiten emojis en la pregunta."
	MsgOnlyLatinText    = "Solo se permite ingresar texto en alfabeto latino."
	MsgMustHaveLetters  = "La pregunta debe contener letras."
	MsgMinThreeWords    = "La pregunta debe contener al menos 3 palabras."
)

// ValidationResult is the outcome of validating a raw question. When Valid is
// true, Text holds the trimmed question; otherwise Reason holds the rejection
// message.
type ValidationResult struct {
	Valid  bool
	Text   string
	Reason string
}

// emojiRanges covers emoticons, pictographs, transport symbols, flags,
// supplemental symbols, dingbats and miscellaneous symbols.
var emojiRanges = []struct{ lo, hi rune }{
	{0x1F600, 0x1F64F},
	{0x1F300, 0x1F5FF},
	{0x1F680, 0x1F6FF},
	{0x1F1E0, 0x1F1FF},
	{0x2600, 0x26FF},
	{0x2700, 0x27BF},
	{0x1F900, 0x1F9FF},
}

// accentedLetters is the exact set of non-ASCII characters accepted in
// questions. It is intentionally narrow (no à, è, ê...); the original product
// only targets Spanish input.
const accentedLetters = "áéíóúÁÉÍÓÚñÑüÜçÇ"

// allowedPunctuation holds the permitted non-ASCII punctuation; ASCII
// punctuation is already covered by the ASCII range check.
const allowedPunctuation = "¿¡"

// letterClass is the character class used by the "must contain letters" rule.
// Note it does not include ç, matching the original behaviour.
const letterClass = "áéíóúÁÉÍÓÚñÑüÜ"

// ValidateQuestion applies the guard rules to a raw question, in order, first
// match wins. No external work happens here; a rejected question never
// reaches the embedding or generation services.
func ValidateQuestion(raw string) ValidationResult {
	texto := strings.TrimSpace(raw)

	if texto == "" {
		return ValidationResult{Reason: MsgEmptyQuestion}
	}

	for _, r := range texto {
		if isEmoji(r) {
			return ValidationResult{Reason: MsgEmojisNotAllowed}
		}
	}

	for _, r := range texto {
		if !isAllowedRune(r) {
			return ValidationResult{Reason: MsgOnlyLatinText}
		}
	}

	if !containsLetter(texto) {
		return ValidationResult{Reason: MsgMustHaveLetters}
	}

	if len(strings.Fields(texto)) < 3 {
		return ValidationResult{Reason: MsgMinThreeWords}
	}

	return ValidationResult{Valid: true, Text: texto}
}

func isEmoji(r rune) bool {
	for _, rng := range emojiRanges {
		if r >= rng.lo && r <= rng.hi {
			return true
		}
	}
	return false
}

func isAllowedRune(r rune) bool {
	if r <= unicode.MaxASCII {
		return true
	}
	if unicode.IsSpace(r) {
		return true
	}
	return strings.ContainsRune(accentedLetters, r) || strings.ContainsRune(allowedPunctuation, r)
}

func containsLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
		if strings.ContainsRune(letterClass, r) {
			return true
		}
	}
	return false
}
