package mailbox

import (
	"strings"
	"time"

	"kindleshelf/internal/config"
)

// Filter selects order mail worth parsing.
type Filter struct {
	// Senders is an allow-list of lowercase addresses. Empty accepts any sender.
	Senders []string
	// SubjectKeywords must match at least one subject substring. Empty
	// accepts any subject.
	SubjectKeywords []string
	// Since drops messages dated before it. Zero disables the check.
	Since time.Time
	// MaxMessages caps the matched messages. Zero means no cap.
	MaxMessages int
}

// NewFilter builds a Filter from mailbox configuration relative to now.
func NewFilter(cfg *config.Config, now time.Time) Filter {
	f := Filter{
		Senders:         append([]string(nil), cfg.Mailbox.Senders...),
		SubjectKeywords: append([]string(nil), cfg.Mailbox.SubjectKeywords...),
		MaxMessages:     cfg.Mailbox.MaxMessages,
	}
	if window := cfg.MailboxWindow(); window > 0 {
		f.Since = now.Add(-window)
	}
	return f
}

// Match reports whether msg passes the sender, subject and date checks.
// Messages without a parseable date are kept.
func (f Filter) Match(msg Message) bool {
	return f.senderAllowed(msg.From) && f.subjectAllowed(msg.Subject) && f.dateAllowed(msg.Date)
}

func (f Filter) senderAllowed(from string) bool {
	if len(f.Senders) == 0 {
		return true
	}
	from = strings.ToLower(strings.TrimSpace(from))
	for _, sender := range f.Senders {
		if from == strings.ToLower(sender) {
			return true
		}
	}
	return false
}

func (f Filter) subjectAllowed(subject string) bool {
	if len(f.SubjectKeywords) == 0 {
		return true
	}
	folded := strings.ToLower(subject)
	for _, keyword := range f.SubjectKeywords {
		if strings.Contains(folded, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

func (f Filter) dateAllowed(date time.Time) bool {
	if f.Since.IsZero() || date.IsZero() {
		return true
	}
	return !date.Before(f.Since)
}
