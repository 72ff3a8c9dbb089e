// Package mailbox extracts Kindle purchases from Amazon order confirmation
// mail.
//
// Messages are read from .eml files or mbox archives. Each message is
// decoded (multipart, base64, quoted-printable, legacy Japanese charsets),
// the best text body is chosen, and book titles are pulled from the lines
// that follow each "My alt (" product image marker. Filter narrows the
// input to order mail from known senders within a date window.
package mailbox
