package sequel

import "kindleshelf/internal/book"

// SampleRecords returns a fresh copy of a representative storefront listing:
// consecutive and gapped numbered series, upper/lower halves, chapter
// installments, prefixed collections, mixed-width 巻 markers and one
// standalone title.
func SampleRecords() []book.Record {
	const (
		kadokawa = " (角川コミックス・エース)"
		fujo     = "不浄を拭うひと（分冊版） "
		fujoTail = " (本当にあった笑える話)"
		getBack  = "Get Backers 奪還屋【極！単行本シリーズ】"
		hetero   = "ヘテロゲニア　リンギスティコ　～異種族言語学入門～　"
		material = "マテリアル・パズル～神無き世界の魔法使い～"
	)
	raw := [][2]string{
		{"プランダラ(1)" + kadokawa, "水無月 すう"},
		{"プランダラ(2)" + kadokawa, "水無月 すう"},
		{"プランダラ(3)" + kadokawa, "水無月 すう"},
		{"プランダラ(21)" + kadokawa, "水無月 すう"},
		{"NEXUS 情報の人類史 上　人間のネットワーク", "ユヴァル・ノア・ハラリ"},
		{"NEXUS 情報の人類史 下　AI革命", "ユヴァル・ノア・ハラリ"},
		{"あずまんが大王(1)", "あずまきよひこ"},
		{"あずまんが大王(2)", "あずまきよひこ"},
		{"あずまんが大王(3)", "あずまきよひこ"},
		{"あずまんが大王(4)", "あずまきよひこ"},
		{fujo + "【第1話】" + fujoTail, "沖田×華"},
		{fujo + "【第2話】" + fujoTail, "沖田×華"},
		{fujo + "【第3話】" + fujoTail, "沖田×華"},
		{"第一集: 「いなげやの話 他」 川尻こだまのただれた生活", "川尻こだま"},
		{"第2集: 「町中華の話 他」 川尻こだまのただれた生活", "川尻こだま"},
		{"第三集: 『仮眠ライフハックの話 他』 川尻こだまのただれた生活", "川尻こだま"},
		{"単独の本", "テスト作者"},
		{getBack + "9巻", "青樹佑夜， 綾峰欄人"},
		{getBack + "13巻", "青樹佑夜， 綾峰欄人"},
		{getBack + "29巻", "青樹佑夜， 綾峰欄人"},
		{getBack + "8巻", "青樹佑夜， 綾峰欄人"},
		{getBack + "33巻", "青樹佑夜， 綾峰欄人"},
		{getBack + "23巻", "青樹佑夜， 綾峰欄人"},
		{hetero + "（６）" + kadokawa, "瀬野 反人"},
		{hetero + "（５）" + kadokawa, "瀬野 反人"},
		{hetero + "（４）" + kadokawa, "瀬野 反人"},
		{material + "（１０） (モーニングコミックス)", "土塚理弘"},
		{material + "（９） (モーニングコミックス)", "土塚理弘"},
		{"テスト巻（１２）", "フルワイドテスト"},
		{"テスト巻（１３）", "フルワイドテスト"},
		{fujo + "【第４話】" + fujoTail, "沖田×華"},
		{fujo + "【第５話】" + fujoTail, "沖田×華"},
		{"第４集: 『フルワイドテスト』 川尻こだまのただれた生活", "川尻こだま"},
		{getBack + "２４巻", "青樹佑夜， 綾峰欄人"},
		{getBack + "２５巻", "青樹佑夜， 綾峰欄人"},
	}
	records := make([]book.Record, len(raw))
	for i, r := range raw {
		records[i] = book.Record{Title: r[0], Author: r[1], Format: book.DefaultFormat}
	}
	return records
}
