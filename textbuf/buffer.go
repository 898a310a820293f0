package textbuf

import "strings"

// defaultLogSeparator joins diagnostic messages unless the caller picks
// another separator.
const defaultLogSeparator = "\n"

// Buffer accumulates extracted text and diagnostic messages.
// The zero value is ready to use. A Buffer maintains single-owner state
// and must not be copied after first use; share it by pointer.
// It is not safe for concurrent use.
type Buffer struct {
	runes     []rune
	messages  []string
	logSep    string
	logSepSet bool
}

// Allocate discards any existing content and reserves capacity for n runes.
// It begins a fresh extraction session: content from a previous session is
// never carried over. The diagnostic log is left untouched.
func (b *Buffer) Allocate(n int) {
	if n <= cap(b.runes) {
		b.runes = b.runes[:0]
		return
	}
	b.runes = make([]rune, 0, n)
}

// AddRune appends a single rune to the buffer.
func (b *Buffer) AddRune(r rune) {
	b.runes = append(b.runes, r)
}

// AddRunes appends a span of runes to the buffer.
func (b *Buffer) AddRunes(rs []rune) {
	b.runes = append(b.runes, rs...)
}

// AddString appends the runes of s to the buffer.
func (b *Buffer) AddString(s string) {
	for _, r := range s {
		b.runes = append(b.runes, r)
	}
}

// Fill appends n copies of r to the buffer.
func (b *Buffer) Fill(n int, r rune) {
	for i := 0; i < n; i++ {
		b.runes = append(b.runes, r)
	}
}

// Trim removes trailing spaces, tabs, newlines, and carriage returns.
// Other trailing characters, including form feeds, are kept.
func (b *Buffer) Trim() {
	end := len(b.runes)
	for end > 0 {
		switch b.runes[end-1] {
		case ' ', '\t', '\n', '\r':
			end--
		default:
			b.runes = b.runes[:end]
			return
		}
	}
	b.runes = b.runes[:0]
}

// Clear resets the text content while retaining capacity.
// The diagnostic log is left untouched.
func (b *Buffer) Clear() {
	b.runes = b.runes[:0]
}

// String returns the accumulated text. It returns "" when nothing has
// been written.
func (b *Buffer) String() string {
	return string(b.runes)
}

// Len returns the number of runes accumulated so far.
func (b *Buffer) Len() int {
	return len(b.runes)
}

// LastRune returns the most recently appended rune. The second return
// value is false when the buffer is empty.
func (b *Buffer) LastRune() (rune, bool) {
	if len(b.runes) == 0 {
		return 0, false
	}
	return b.runes[len(b.runes)-1], true
}

// SetLogSeparator sets the string inserted between diagnostic messages.
// Passing "" joins messages with nothing between them.
func (b *Buffer) SetLogSeparator(sep string) {
	b.logSep = sep
	b.logSepSet = true
}

// LogMessage appends a diagnostic message to the log. Messages are kept
// in arrival order.
func (b *Buffer) LogMessage(msg string) {
	b.messages = append(b.messages, msg)
}

// Log returns the diagnostic messages joined by the configured separator.
// The separator appears only between messages, never at the end, and
// reading the log does not modify it.
func (b *Buffer) Log() string {
	sep := b.logSep
	if !b.logSepSet {
		sep = defaultLogSeparator
	}
	return strings.Join(b.messages, sep)
}

// Messages returns a copy of the diagnostic messages in arrival order.
func (b *Buffer) Messages() []string {
	if len(b.messages) == 0 {
		return nil
	}
	out := make([]string, len(b.messages))
	copy(out, b.messages)
	return out
}

// ClearLog discards all diagnostic messages. The text content is left
// untouched.
func (b *Buffer) ClearLog() {
	b.messages = b.messages[:0]
}
