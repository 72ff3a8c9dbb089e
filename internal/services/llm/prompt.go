package llm

import "strings"

const bookTitlePlaceholder = "<booktitle></booktitle>"

// AuthorPrompt asks for the authors of the title wrapped in booktitle tags.
const AuthorPrompt = bookTitlePlaceholder + "の書籍の著者名を、カンマ区切りで列挙してください。\n出力形式: 著者名1, 著者名2, 著者名3"

// AuthorSystemPrompt keeps the model from wrapping the list in prose.
const AuthorSystemPrompt = "Answer with the author names only, on one line, separated by commas. Do not add explanations."

func authorPrompt(title string) string {
	return strings.Replace(AuthorPrompt, bookTitlePlaceholder, "<booktitle>"+title+"</booktitle>", 1)
}
