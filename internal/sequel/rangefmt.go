package sequel

import (
	"strconv"
	"strings"
)

// rangeTemplate wraps either "min-max" or "v1,v2,..." for one marker kind.
type rangeTemplate struct {
	prefix string
	suffix string
}

var rangeTemplates = map[Kind]rangeTemplate{
	KindNumbered:          {"(", ")"},
	KindChapter:           {"【第", "話】"},
	KindCollection:        {"第", "集"},
	KindPrefixCollection:  {"(", ")集"},
	KindVolumeKan:         {"(", ")巻"},
	KindSpaceNumber:       {"(", ")"},
	KindTitleEndingNumber: {"(", ")"},
}

var defaultTemplate = rangeTemplate{"(", ")"}

const upperLowerBoth = "(上・下)"

// FormatRange renders the compact volume notation for volumes, which must
// already be sorted ascending by Volume. More than two consecutive volumes
// collapse to "min-max"; anything else is listed with each entry's own
// VolumeText. The upper/lower kind ignores ordering and renders 上, 下, or
// (上・下).
func FormatRange(volumes []VolumeEntry, kind Kind) string {
	if len(volumes) == 0 {
		return ""
	}
	if len(volumes) == 1 {
		return volumes[0].VolumeText
	}

	if kind == KindUpperLower {
		return formatUpperLower(volumes)
	}

	tmpl, ok := rangeTemplates[kind]
	if !ok {
		tmpl = defaultTemplate
	}

	if len(volumes) > 2 && consecutive(volumes) {
		lo, hi := volumes[0].Volume, volumes[0].Volume
		for _, v := range volumes[1:] {
			lo = min(lo, v.Volume)
			hi = max(hi, v.Volume)
		}
		return tmpl.prefix + strconv.Itoa(lo) + "-" + strconv.Itoa(hi) + tmpl.suffix
	}

	texts := make([]string, len(volumes))
	for i, v := range volumes {
		texts[i] = v.VolumeText
	}
	return tmpl.prefix + strings.Join(texts, ",") + tmpl.suffix
}

func formatUpperLower(volumes []VolumeEntry) string {
	var upper, lower bool
	for _, v := range volumes {
		switch v.Volume {
		case 1:
			upper = true
		case 2:
			lower = true
		}
	}
	switch {
	case upper && lower:
		return upperLowerBoth
	case upper:
		return "上"
	default:
		return "下"
	}
}

func consecutive(volumes []VolumeEntry) bool {
	for i := 1; i < len(volumes); i++ {
		if volumes[i].Volume != volumes[i-1].Volume+1 {
			return false
		}
	}
	return true
}
