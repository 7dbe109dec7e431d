package internal

import (
	"slices"
)

// Vocabulary limits
const (
	TopWordsLimit      = 500
	TopEmojisLimit     = 20
	RareEmojisLimit    = 10
	PersonWordsLimit   = 5
	UniqueWordsLimit   = 5
	UniqueWordMinCount = 3
)

// Vocabulary holds the ranked word and emoji views of a transcript
type Vocabulary struct {
	TopWords            []WordCount
	TopEmojis           []EmojiCount
	RareEmojis          []EmojiCount
	WordsByPerson       map[string][]WordCount
	UniqueWordsByPerson map[string][]string
}

// AnalyzeVocabulary ranks the frequency maps accumulated during the fold.
// words is the global token counter, bySender holds one counter per sender.
func AnalyzeVocabulary(words *Counter[string], bySender map[string]*Counter[string], emojis *Counter[string], stopwords Stopwords) Vocabulary {
	v := Vocabulary{
		TopWords:            toWordCounts(words.Top(TopWordsLimit)),
		TopEmojis:           toEmojiCounts(emojis.Top(TopEmojisLimit)),
		RareEmojis:          toEmojiCounts(emojis.Bottom(RareEmojisLimit)),
		WordsByPerson:       make(map[string][]WordCount, len(bySender)),
		UniqueWordsByPerson: make(map[string][]string, len(bySender)),
	}

	owners := make(map[string]int)
	for _, c := range bySender {
		for w := range c.counts {
			owners[w]++
		}
	}

	senders := make([]string, 0, len(bySender))
	for s := range bySender {
		senders = append(senders, s)
	}
	slices.Sort(senders)

	for _, sender := range senders {
		c := bySender[sender]
		v.WordsByPerson[sender] = toWordCounts(c.Top(PersonWordsLimit))

		unique := []string{}
		for _, e := range c.Top(0) {
			if len(unique) == UniqueWordsLimit || e.Count < UniqueWordMinCount {
				break
			}
			if owners[e.Key] == 1 && !stopwords.Contains(e.Key) {
				unique = append(unique, e.Key)
			}
		}
		v.UniqueWordsByPerson[sender] = unique
	}
	return v
}

func toWordCounts(entries []Entry[string]) []WordCount {
	out := make([]WordCount, 0, len(entries))
	for _, e := range entries {
		out = append(out, WordCount{Word: e.Key, Count: e.Count})
	}
	return out
}

func toEmojiCounts(entries []Entry[string]) []EmojiCount {
	out := make([]EmojiCount, 0, len(entries))
	for _, e := range entries {
		out = append(out, EmojiCount{Emoji: e.Key, Count: e.Count})
	}
	return out
}
