package mailbox

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
)

const mboxSeparator = "From "

var escapedFrom = regexp.MustCompile(`^>+From `)

// ReadMbox splits an mbox stream into raw messages. A "From " line at the
// start of the stream or after a blank line begins a new message; ">From "
// quoting is undone one level.
func ReadMbox(r io.Reader) ([][]byte, error) {
	reader := bufio.NewReader(r)
	var (
		messages  [][]byte
		current   *bytes.Buffer
		prevBlank = true
	)
	flush := func() {
		if current != nil && len(bytes.TrimSpace(current.Bytes())) > 0 {
			messages = append(messages, current.Bytes())
		}
		current = nil
	}

	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			trimmed := bytes.TrimRight(line, "\r\n")
			switch {
			case prevBlank && bytes.HasPrefix(line, []byte(mboxSeparator)):
				flush()
				current = &bytes.Buffer{}
			case current == nil:
				if len(bytes.TrimSpace(line)) > 0 {
					return nil, errors.New("mbox: data before first From line")
				}
			default:
				if escapedFrom.Match(line) {
					line = line[1:]
				}
				current.Write(line)
			}
			prevBlank = len(trimmed) == 0
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read mbox: %w", err)
		}
	}
	flush()
	return messages, nil
}

// looksLikeMbox reports whether data starts with an mbox separator line.
func looksLikeMbox(data []byte) bool {
	return bytes.HasPrefix(data, []byte(mboxSeparator))
}
