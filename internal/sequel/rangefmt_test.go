package sequel

import "testing"

func volumesOf(texts ...string) []VolumeEntry {
	out := make([]VolumeEntry, 0, len(texts))
	for _, text := range texts {
		info, ok := NormalizeNumeral(text)
		if !ok {
			panic("bad volume text " + text)
		}
		out = append(out, VolumeEntry{Volume: info.Value, VolumeText: text})
	}
	return out
}

func TestFormatRange(t *testing.T) {
	cases := []struct {
		name    string
		volumes []VolumeEntry
		kind    Kind
		want    string
	}{
		{name: "empty", volumes: nil, kind: KindNumbered, want: ""},
		{name: "single", volumes: volumesOf("7"), kind: KindNumbered, want: "7"},
		{name: "consecutive run", volumes: volumesOf("1", "2", "3", "4"), kind: KindNumbered, want: "(1-4)"},
		{name: "gap", volumes: volumesOf("1", "2", "3", "21"), kind: KindNumbered, want: "(1,2,3,21)"},
		{name: "pair stays listed", volumes: volumesOf("9", "10"), kind: KindNumbered, want: "(9,10)"},
		{name: "duplicates are listed", volumes: volumesOf("1", "1", "2"), kind: KindNumbered, want: "(1,1,2)"},
		{name: "chapter run", volumes: volumesOf("1", "2", "3", "4", "5"), kind: KindChapter, want: "【第1-5話】"},
		{name: "chapter gap", volumes: volumesOf("1", "3"), kind: KindChapter, want: "【第1,3話】"},
		{name: "collection run", volumes: volumesOf("一", "2", "三"), kind: KindCollection, want: "第1-3集"},
		{name: "collection keeps kanji", volumes: volumesOf("一", "三"), kind: KindCollection, want: "第一,三集"},
		{name: "prefix collection", volumes: volumesOf("1", "2", "3"), kind: KindPrefixCollection, want: "(1-3)集"},
		{name: "volume kan list", volumes: volumesOf("8", "9", "13", "23", "24", "25", "29", "33"), kind: KindVolumeKan, want: "(8,9,13,23,24,25,29,33)巻"},
		{name: "volume kan run", volumes: volumesOf("23", "24", "25"), kind: KindVolumeKan, want: "(23-25)巻"},
		{name: "space number", volumes: volumesOf("1", "2", "3"), kind: KindSpaceNumber, want: "(1-3)"},
		{name: "title ending number", volumes: volumesOf("4", "6"), kind: KindTitleEndingNumber, want: "(4,6)"},
		{name: "unknown kind", volumes: volumesOf("1", "2", "3"), kind: Kind("other"), want: "(1-3)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatRange(tc.volumes, tc.kind); got != tc.want {
				t.Fatalf("FormatRange = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatRangeUpperLower(t *testing.T) {
	upper := VolumeEntry{Volume: 1, VolumeText: "上"}
	lower := VolumeEntry{Volume: 2, VolumeText: "下"}
	cases := []struct {
		name    string
		volumes []VolumeEntry
		want    string
	}{
		{name: "both", volumes: []VolumeEntry{upper, lower}, want: "(上・下)"},
		{name: "both reversed", volumes: []VolumeEntry{lower, upper}, want: "(上・下)"},
		{name: "upper twice", volumes: []VolumeEntry{upper, upper}, want: "上"},
		{name: "lower twice", volumes: []VolumeEntry{lower, lower}, want: "下"},
		{name: "single upper", volumes: []VolumeEntry{upper}, want: "上"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatRange(tc.volumes, KindUpperLower); got != tc.want {
				t.Fatalf("FormatRange = %q, want %q", got, tc.want)
			}
		})
	}
}
