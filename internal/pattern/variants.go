package pattern

import (
	"strings"
	"unicode"

	"github.com/pazarlink/pazarlink/internal/model"
)

// Fixed variant vocabularies. Multilingual because marketplace feeds mix
// English and Turkish suffixes in the same catalog.
var (
	colorTokens = map[string]struct{}{
		// English
		"black": {}, "white": {}, "red": {}, "blue": {}, "green": {},
		"yellow": {}, "orange": {}, "purple": {}, "pink": {}, "grey": {},
		"gray": {}, "brown": {}, "beige": {}, "navy": {}, "gold": {},
		"silver": {}, "cream": {}, "khaki": {},
		// Turkish
		"siyah": {}, "beyaz": {}, "kirmizi": {}, "mavi": {}, "yesil": {},
		"sari": {}, "turuncu": {}, "mor": {}, "pembe": {}, "gri": {},
		"kahverengi": {}, "bej": {}, "lacivert": {}, "altin": {}, "gumus": {},
		"krem": {}, "haki": {}, "bordo": {}, "antrasit": {},
		// Common abbreviations on variant suffixes
		"blk": {}, "wht": {}, "nvy": {}, "grn": {}, "syh": {}, "byz": {},
	}

	sizeTokens = map[string]struct{}{
		"xxs": {}, "xs": {}, "s": {}, "m": {}, "l": {}, "xl": {}, "xxl": {},
		"3xl": {}, "4xl": {}, "5xl": {},
		"small": {}, "medium": {}, "large": {},
		"kucuk": {}, "orta": {}, "buyuk": {},
		"std": {}, "standart": {}, "single": {}, "double": {},
		"mini": {}, "midi": {}, "maxi": {},
	}

	versionTokens = map[string]struct{}{
		"v1": {}, "v2": {}, "v3": {}, "v4": {}, "v5": {},
		"mk1": {}, "mk2": {}, "mk3": {},
		"rev1": {}, "rev2": {},
		"pro": {}, "plus": {}, "lite": {}, "max": {},
		"yeni": {}, "new": {},
	}
)

func isPureDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// classifySuffix assigns one variant suffix to a vocabulary category.
func classifySuffix(suffix string) model.VariantType {
	token := strings.ToLower(strings.TrimSpace(suffix))

	switch {
	case isPureDigits(token):
		return model.VariantTypeNumeric
	case contains(colorTokens, token):
		return model.VariantTypeColor
	case contains(sizeTokens, token):
		return model.VariantTypeSize
	case contains(versionTokens, token):
		return model.VariantTypeVersion
	}

	// Rows like "A2" or "R3" read as versioned variants.
	if len(token) >= 2 && len(token) <= 3 && unicode.IsLetter(rune(token[0])) && isPureDigits(token[1:]) {
		return model.VariantTypeVersion
	}

	return model.VariantTypeGeneric
}

func contains(vocab map[string]struct{}, token string) bool {
	_, ok := vocab[token]
	return ok
}

// detectVariantType labels a group by the category covering at least half of
// its distinct suffixes. Mixed groups fall back to generic.
func detectVariantType(suffixes []string) model.VariantType {
	if len(suffixes) == 0 {
		return model.VariantTypeGeneric
	}

	counts := make(map[model.VariantType]int)
	for _, s := range suffixes {
		counts[classifySuffix(s)]++
	}

	threshold := (len(suffixes) + 1) / 2
	best := model.VariantTypeGeneric
	bestCount := 0
	for _, vt := range []model.VariantType{
		model.VariantTypeColor,
		model.VariantTypeSize,
		model.VariantTypeVersion,
		model.VariantTypeNumeric,
	} {
		if counts[vt] >= threshold && counts[vt] > bestCount {
			best = vt
			bestCount = counts[vt]
		}
	}

	return best
}
