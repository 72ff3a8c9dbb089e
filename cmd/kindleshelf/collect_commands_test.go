package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"kindleshelf/internal/testsupport"
)

const savedPage = `<html><body><table>
<tr class="ListItem-module_row__x1"><td>
  <div role="heading" aria-level="4">あずまんが大王(1)</div>
  <div id="content-author-A1">あずまきよひこ</div></td></tr>
<tr class="ListItem-module_row__x1"><td>
  <div role="heading" aria-level="4">あずまんが大王(2)</div>
  <div id="content-author-A2">あずまきよひこ</div></td></tr>
<tr class="ListItem-module_row__x1"><td>
  <div role="heading" aria-level="4">あずまんが大王(3)</div>
  <div id="content-author-A3">あずまきよひこ</div></td></tr>
<tr class="ListItem-module_row__x1"><td>
  <div role="heading" aria-level="4">単独の本</div>
  <div id="content-author-A4">著者X</div></td></tr>
</table>
<ul><li class="page-item active" id="page-1">1</li><li class="page-item" id="page-2">2</li></ul>
</body></html>`

func orderMail(subject, body string) string {
	return "From: Amazon.co.jp <no-reply@amazon.co.jp>\r\n" +
		"To: reader@example.com\r\n" +
		"Subject: " + subject + "\r\n" +
		"Date: Mon, 06 Jan 2025 10:00:00 +0900\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body
}

func listBooks(t *testing.T, env *cliTestEnv) []listedBook {
	t.Helper()
	out := env.run(t, "list", "--json")
	var books []listedBook
	if err := json.Unmarshal([]byte(out), &books); err != nil {
		t.Fatalf("decode list output %q: %v", out, err)
	}
	return books
}

func TestCollectPageAddsRowsInOrder(t *testing.T) {
	env := setupCLITestEnv(t)
	page := testsupport.WriteFixture(t, env.baseDir, "library-page-1.html", savedPage)

	out := env.run(t, "collect", "page", page)
	requireContains(t, out, "4 books (page 1, next: yes)")
	requireContains(t, out, "Added 4 books from 1 page")
	requireContains(t, out, "Page 1 links to page 2")

	books := listBooks(t, env)
	if len(books) != 4 {
		t.Fatalf("expected 4 books, got %d", len(books))
	}
	if books[0].Title != "あずまんが大王(1)" || books[3].Title != "単独の本" {
		t.Fatalf("unexpected order: %+v", books)
	}
	for _, b := range books {
		if b.Source != "page" || b.Format != "Kindle" {
			t.Fatalf("unexpected bookkeeping: %+v", b)
		}
	}

	out = env.run(t, "collect", "page", "--unique", page)
	requireContains(t, out, "Added 0 books from 1 page (4 already in library)")
}

func TestCollectMailDedupesAcrossRuns(t *testing.T) {
	env := setupCLITestEnv(t)
	body := "Amazon.co.jp ご注文の確認\r\n" +
		"My alt (https://example.com/a.jpg)\r\n\r\nNEXUS(1)\r\n\r\n" +
		"My alt (https://example.com/b.jpg)\r\n\r\n販売者: Amazon\r\n\r\n" +
		"My alt (https://example.com/c.jpg)\r\n\r\nnexus(1)\r\n"
	mail := testsupport.WriteFixture(t, env.baseDir, "order.eml", orderMail("ご注文の確認", body))
	spam := testsupport.WriteFixture(t, env.baseDir, "spam.eml", orderMail("セールのお知らせ", body))

	out := env.run(t, "collect", "mail", mail, spam)
	requireContains(t, out, "Messages: 2 seen, 1 matched")
	requireContains(t, out, "Added 1 book from 2 files")

	books := listBooks(t, env)
	if len(books) != 1 {
		t.Fatalf("expected 1 book, got %+v", books)
	}
	if books[0].Title != "NEXUS(1)" || books[0].Author != "To be update" || books[0].Source != "mail" {
		t.Fatalf("unexpected book: %+v", books[0])
	}

	out = env.run(t, "collect", "mail", mail)
	requireContains(t, out, "(1 already in library)")
	if got := len(listBooks(t, env)); got != 1 {
		t.Fatalf("expected mail rerun to add nothing, have %d books", got)
	}
}

func TestCollectMailAuthorsRequireAPIKey(t *testing.T) {
	env := setupCLITestEnv(t)
	mail := testsupport.WriteFixture(t, env.baseDir, "order.eml", orderMail("ご注文", "My alt (x)\n\n本\n"))

	_, _, err := runCLI(t, []string{"collect", "mail", "--authors", mail}, env.configPath)
	if err == nil {
		t.Fatal("expected error without api key")
	}
	requireContains(t, err.Error(), "api_key")
}

func TestCollectCSVRejectsInvalidRows(t *testing.T) {
	env := setupCLITestEnv(t)
	long := strings.Repeat("x", 2000)
	csvPath := testsupport.WriteFixture(t, env.baseDir, "bad.csv",
		fmt.Sprintf("Title,Author,Format\n\"ok\",\"a\",\"Kindle\"\n\"%s\",\"b\",\"Kindle\"\n", long))

	if _, _, err := runCLI(t, []string{"collect", "csv", csvPath}, env.configPath); err == nil {
		t.Fatal("expected invalid row error")
	}
	if got := len(listBooks(t, env)); got != 0 {
		t.Fatalf("expected no books after rejected import, got %d", got)
	}
}

func TestCollectMailLooksUpAuthors(t *testing.T) {
	env := setupCLITestEnv(t)
	server := chatServer(t, "あずまきよひこ[1]")
	env.cfg.Authors.Fetch = true
	env.cfg.LLM.APIKey = "test-key"
	env.cfg.LLM.BaseURL = server.URL
	writeTestConfig(t, env.configPath, env.cfg)

	mail := testsupport.WriteFixture(t, env.baseDir, "order.eml",
		orderMail("ご注文の確認", "My alt (x)\n\nあずまんが大王(1)\n"))
	env.run(t, "collect", "mail", mail)

	books := listBooks(t, env)
	if len(books) != 1 || books[0].Author != "あずまきよひこ" {
		t.Fatalf("expected looked-up author, got %+v", books)
	}
}

func TestListPlainOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	page := testsupport.WriteFixture(t, env.baseDir, "library-page-1.html", savedPage)
	env.run(t, "collect", "page", page)

	out := env.run(t, "list")
	requireContains(t, out, "ID\tTitle\tAuthor\tFormat\tSource\n")
	requireContains(t, out, "1\tあずまんが大王(1)\tあずまきよひこ\tKindle\tpage\n")
	requireContains(t, out, "4\t単独の本\t著者X\tKindle\tpage\n")
	requireContains(t, out, "Total: 4 books")
}
