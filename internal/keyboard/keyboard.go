// Package keyboard provides the Hindi character catalogue used to type card fronts.
package keyboard

// Group is a titled row of keys
type Group struct {
	Name  string
	Title string
	Keys  []string
}

// Control keys, applied by Apply in addition to the glyph keys
const (
	Backspace = "BACKSPACE"
	Space     = "SPACE"
)

var groups = []Group{
	{
		Name:  "vowels",
		Title: "Vowels (स्वर)",
		Keys: []string{
			"अ", "आ", "इ", "ई", "उ",
			"ऊ", "ए", "ऐ", "ओ", "औ",
			"अं", "अः",
		},
	},
	{
		Name:  "matras",
		Title: "Vowel Signs (मात्रा)",
		Keys: []string{
			"ा", "ि", "ी", "ु", "ू",
			"े", "ै", "ो", "ौ", "ं", "ः",
			"्",
		},
	},
	{
		Name:  "consonants",
		Title: "Consonants (व्यंजन)",
		Keys: []string{
			"क", "ख", "ग", "घ", "ङ",
			"च", "छ", "ज", "झ", "ञ",
			"ट", "ठ", "ड", "ढ", "ण",
			"त", "थ", "द", "ध", "न",
			"प", "फ", "ब", "भ", "म",
			"य", "र", "ल", "व", "श",
			"ष", "स", "ह",
		},
	},
	{
		Name:  "numerals",
		Title: "Numerals",
		Keys: []string{
			"०", "१", "२", "३", "४",
			"५", "६", "७", "८", "९",
		},
	},
	{
		Name:  "punctuation",
		Title: "Special",
		Keys: []string{
			"।", "॥", ",", ".", "?", "!",
			"-", "(", ")", " ",
		},
	},
}

// Groups returns the catalogue in display order. The result must not be modified.
func Groups() []Group {
	return groups
}

// Key returns the glyph at position index of group, if both exist
func Key(group, index int) (string, bool) {
	if group < 0 || group >= len(groups) {
		return "", false
	}
	keys := groups[group].Keys
	if index < 0 || index >= len(keys) {
		return "", false
	}
	return keys[index], true
}

// Apply returns text after pressing key. Backspace drops the last character,
// Space appends a blank, anything else is appended verbatim.
func Apply(text, key string) string {
	switch key {
	case Backspace:
		runes := []rune(text)
		if len(runes) == 0 {
			return text
		}
		return string(runes[:len(runes)-1])
	case Space:
		return text + " "
	default:
		return text + key
	}
}
