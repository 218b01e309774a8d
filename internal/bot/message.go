package bot

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// maxMessageLength is the Telegram limit for a text message, in UTF-16 code units
const maxMessageLength = 4096

// tailReserve is kept free for the closing "…and N more" line
const tailReserve = 64

// textLength measures s the way Telegram does
func textLength(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// shorten cuts s to at most max runes and marks the cut; max <= 0 keeps s whole
func shorten(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max-1]) + "…"
}

// lineBuffer joins lines without passing the message limit
type lineBuffer struct {
	sb     strings.Builder
	length int
}

// write appends line unless that would leave less than tailReserve free
func (l *lineBuffer) write(line string) bool {
	n := textLength(line) + 1
	if l.length+n > maxMessageLength-tailReserve {
		return false
	}
	l.sb.WriteString(line)
	l.sb.WriteByte('\n')
	l.length += n
	return true
}

// tail appends the closing line into the reserved space
func (l *lineBuffer) tail(line string) {
	line = shorten(line, tailReserve-1)
	l.sb.WriteString(line)
	l.length += textLength(line)
}

func (l *lineBuffer) String() string {
	return strings.TrimRight(l.sb.String(), "\n")
}
