package sequel

import (
	"strconv"
	"strings"
)

// kanjiNumerals covers 一..十 only.
var kanjiNumerals = map[string]int{
	"一": 1,
	"二": 2,
	"三": 3,
	"四": 4,
	"五": 5,
	"六": 6,
	"七": 7,
	"八": 8,
	"九": 9,
	"十": 10,
}

// NormalizeNumeral parses a volume marker. Full-width digits are folded to
// ASCII, a string that is exactly one kanji numeral maps through the fixed
// table, and anything else must start with a base-10 integer. The boolean is
// false when no integer can be read.
func NormalizeNumeral(text string) (VolumeInfo, bool) {
	info := VolumeInfo{OriginalText: text}
	folded := foldDigits(text)

	if v, ok := kanjiNumerals[folded]; ok {
		info.Value = v
		info.NormalizedText = strconv.Itoa(v)
		return info, true
	}

	digits := leadingDigits(strings.TrimSpace(folded))
	if digits == "" {
		return info, false
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return info, false
	}
	info.Value = v
	info.NormalizedText = strconv.Itoa(v)
	return info, true
}

// foldDigits maps U+FF10..U+FF19 onto '0'..'9'.
func foldDigits(text string) string {
	return strings.Map(func(r rune) rune {
		if r >= '０' && r <= '９' {
			return r - '０' + '0'
		}
		return r
	}, text)
}

func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}
