// Package vocabulary holds the cards a new deck starts with.
package vocabulary

import "github.com/example/hindicards/pkg/models"

// Pair is a Hindi word or phrase and its English meaning
type Pair struct {
	Front string
	Back  string
}

var preloaded = []Pair{
	{"नमस्ते", "hello"},
	{"धन्यवाद", "thank you"},
	{"कृपया", "please"},
	{"हाँ", "yes"},
	{"नहीं", "no"},
	{"घर", "house"},
	{"पानी", "water"},
	{"खाना", "food"},
	{"दोस्त", "friend"},
	{"परिवार", "family"},
	{"माँ", "mother"},
	{"पिता", "father"},
	{"भाई", "brother"},
	{"बहन", "sister"},
	{"किताब", "book"},
	{"स्कूल", "school"},
	{"शहर", "city"},
	{"गाँव", "village"},
	{"सड़क", "road"},
	{"दिन", "day"},
	{"रात", "night"},
	{"सुबह", "morning"},
	{"शाम", "evening"},
	{"आज", "today"},
	{"कल", "yesterday / tomorrow"},
	{"समय", "time"},
	{"प्यार", "love"},
	{"खुश", "happy"},
	{"बड़ा", "big"},
	{"छोटा", "small"},
	{"अच्छा", "good"},
	{"बुरा", "bad"},
	{"नया", "new"},
	{"पुराना", "old"},
	{"लाल", "red"},
	{"नीला", "blue"},
	{"हरा", "green"},
	{"एक", "one"},
	{"दो", "two"},
	{"तीन", "three"},
	{"आप कैसे हैं?", "how are you?"},
	{"मेरा नाम ... है", "my name is ..."},
	{"मुझे समझ नहीं आया", "I did not understand"},
	{"कितने का है?", "how much is it?"},
	{"फिर मिलेंगे", "see you again"},
}

// Preloaded returns the built-in deck with ids assigned from 1
func Preloaded() []models.Flashcard {
	return FromPairs(preloaded)
}

// FromPairs turns pairs into fresh cards numbered from 1
func FromPairs(pairs []Pair) []models.Flashcard {
	cards := make([]models.Flashcard, 0, len(pairs))
	for i, p := range pairs {
		cards = append(cards, models.Flashcard{
			ID:    i + 1,
			Front: p.Front,
			Back:  p.Back,
		})
	}
	return cards
}
