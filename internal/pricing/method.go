package pricing

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Canonical payment methods.
const (
	MethodPix           = "pix"
	MethodDinheiro      = "dinheiro"
	MethodDebito        = "debito"
	MethodCreditoAvista = "credito_avista"
	MethodParcelado     = "parcelado"
)

var brandAliases = [][]string{
	{"visa"},
	{"master", "mastercard"},
	{"elo"},
	{"amex", "americanexpress"},
}

var nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9]+`)

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	result, _, _ := transform.String(t, s)
	return result
}

// NormalizeBrand lower-cases, strips diacritics and removes everything
// that is not a letter or digit, so "Máster Card" and "MASTERCARD"
// compare equal.
func NormalizeBrand(s string) string {
	s = strings.ToLower(stripAccents(strings.TrimSpace(s)))
	return nonAlphanumericRegex.ReplaceAllString(s, "")
}

// NormalizeMethod maps free-form payment text to a canonical method.
// Unknown non-empty text is passed through lower-cased so the caller
// can decide what to do with it; empty text stays empty.
func NormalizeMethod(raw string, installments int) string {
	s := strings.ToLower(stripAccents(strings.TrimSpace(raw)))

	switch {
	case strings.Contains(s, "pix"):
		return MethodPix
	case strings.Contains(s, "dinheiro"), strings.Contains(s, "especie"):
		return MethodDinheiro
	case strings.Contains(s, "debito"):
		return MethodDebito
	case strings.Contains(s, "parcelado"):
		return MethodParcelado
	case strings.Contains(s, "credito"), strings.Contains(s, "cartao"),
		s == "avista", s == "a_vista", s == "a vista":
		if installments <= 1 {
			return MethodCreditoAvista
		}
		return MethodParcelado
	}

	if installments > 1 {
		return MethodParcelado
	}
	return s
}

// brandGroup returns the alias-group index for a normalized brand, or
// -1 when it belongs to none.
func brandGroup(s string) int {
	if s == "" {
		return -1
	}
	for i, group := range brandAliases {
		for _, alias := range group {
			if strings.Contains(s, alias) || strings.Contains(alias, s) {
				return i
			}
		}
	}
	return -1
}

// brandsMatch compares two normalized brand strings through the alias
// groups, falling back to a loose substring test for brands outside
// every group.
func brandsMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	ga, gb := brandGroup(a), brandGroup(b)
	if ga >= 0 || gb >= 0 {
		return ga == gb
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
