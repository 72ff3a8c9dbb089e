package mailbox

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/text/encoding/htmlindex"
)

// maxPartDepth bounds multipart nesting.
const maxPartDepth = 8

// Message is a decoded mail message.
type Message struct {
	Subject string
	From    string
	Date    time.Time
	Body    string
}

type part struct {
	mediaType string
	text      string
}

var amazonMarkers = []string{"Amazon", "Kindle", "注文", "My alt"}

var wordDecoder = &mime.WordDecoder{CharsetReader: charsetReader}

// ParseMessage reads one RFC 5322 message and picks its body.
func ParseMessage(r io.Reader) (Message, error) {
	msg, err := mail.ReadMessage(r)
	if err != nil {
		return Message{}, fmt.Errorf("read message: %w", err)
	}

	out := Message{Subject: decodeHeader(msg.Header.Get("Subject"))}
	if from := msg.Header.Get("From"); from != "" {
		if addr, err := mail.ParseAddress(decodeHeader(from)); err == nil {
			out.From = strings.ToLower(addr.Address)
		} else {
			out.From = strings.ToLower(strings.TrimSpace(from))
		}
	}
	if date, err := msg.Header.Date(); err == nil {
		out.Date = date
	}

	parts, err := collectParts(textproto.MIMEHeader(msg.Header), msg.Body, 0)
	if err != nil {
		return Message{}, err
	}
	out.Body = chooseBody(parts)
	return out, nil
}

func decodeHeader(value string) string {
	decoded, err := wordDecoder.DecodeHeader(value)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(decoded)
}

func collectParts(header textproto.MIMEHeader, body io.Reader, depth int) ([]part, error) {
	mediaType, params, err := mime.ParseMediaType(header.Get("Content-Type"))
	if err != nil {
		mediaType, params = "text/plain", map[string]string{}
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		if depth >= maxPartDepth {
			return nil, nil
		}
		boundary := params["boundary"]
		if boundary == "" {
			return nil, errors.New("multipart message without boundary")
		}
		reader := multipart.NewReader(body, boundary)
		var parts []part
		for {
			p, err := reader.NextRawPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("read multipart: %w", err)
			}
			nested, err := collectParts(p.Header, p, depth+1)
			if err != nil {
				return nil, err
			}
			parts = append(parts, nested...)
		}
		return parts, nil
	}

	if !strings.HasPrefix(mediaType, "text/") {
		return nil, nil
	}
	text, err := decodePart(body, header.Get("Content-Transfer-Encoding"), params["charset"])
	if err != nil {
		return nil, err
	}
	return []part{{mediaType: mediaType, text: text}}, nil
}

func decodePart(body io.Reader, transferEncoding, charset string) (string, error) {
	var reader io.Reader = body
	switch strings.ToLower(strings.TrimSpace(transferEncoding)) {
	case "base64":
		reader = base64.NewDecoder(base64.StdEncoding, body)
	case "quoted-printable":
		reader = quotedprintable.NewReader(body)
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("decode %s body: %w", transferEncoding, err)
	}

	decoded, err := charsetReader(charset, bytes.NewReader(raw))
	if err != nil {
		return strings.ToValidUTF8(string(raw), ""), nil
	}
	text, err := io.ReadAll(decoded)
	if err != nil {
		return strings.ToValidUTF8(string(raw), ""), nil
	}
	return strings.ReplaceAll(string(text), "\r\n", "\n"), nil
}

// charsetReader converts legacy charsets such as ISO-2022-JP and Shift_JIS
// to UTF-8.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	charset = strings.ToLower(strings.TrimSpace(charset))
	switch charset {
	case "", "utf-8", "utf8", "us-ascii":
		return input, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", charset, err)
	}
	return enc.NewDecoder().Reader(input), nil
}

// chooseBody prefers the first non-empty text/plain part, then any part that
// mentions the order markers, then the HTML part rendered as Markdown.
func chooseBody(parts []part) string {
	for _, p := range parts {
		if p.mediaType == "text/plain" && strings.TrimSpace(p.text) != "" {
			return p.text
		}
	}
	for _, p := range parts {
		if p.mediaType != "text/html" && mentionsOrder(p.text) {
			return p.text
		}
	}
	for _, p := range parts {
		if p.mediaType == "text/html" {
			return htmlToText(p.text)
		}
	}
	return ""
}

func mentionsOrder(text string) bool {
	for _, marker := range amazonMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

func htmlToText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	markdown, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		return s
	}
	return strings.TrimSpace(markdown)
}
