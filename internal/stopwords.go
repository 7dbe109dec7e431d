package internal

// defaultStopwords is the single stopword list used for vocabulary analysis:
// Spanish function words, chat filler, and the markers WhatsApp inserts for
// attachments and deletions.
var defaultStopwords = []string{
	"de", "la", "que", "el", "en", "y", "a", "los", "del", "se", "las", "por",
	"un", "para", "con", "no", "una", "su", "al", "es", "lo", "como", "más",
	"pero", "sus", "le", "ya", "o", "fue", "este", "ha", "sí", "porque", "esta",
	"son", "entre", "cuando", "muy", "sin", "sobre", "ser", "tiene", "también",
	"me", "hasta", "hay", "donde", "han", "quien", "están", "estado", "desde",
	"todo", "nos", "durante", "estados", "todos", "uno", "les", "ni", "contra",
	"otros", "fueron", "ese", "eso", "había", "ante", "ellos", "e", "esto",
	"mí", "antes", "algunos", "qué", "unos", "yo", "otro", "otras", "otra",
	"él", "tanto", "esa", "estos", "mucho", "quienes", "nada", "muchos", "cual",
	"sea", "poco", "ella", "estar", "haber", "estas", "estaba", "estamos",
	"algunas", "algo", "nosotros", "mi", "tu", "te", "ti", "si", "asi", "así",
	"q", "omitted", "media", "https", "http", "www", "com", "jaja", "jajaja",
	"jajajaja", "jajajajaja", "jeje", "jejeje", "hola", "bien", "bueno",
	"ok", "ah", "oh", "eh", "uh", "mm", "mmm", "va", "voy", "vamos",
	"this", "message", "was", "deleted", "attached", "file", "you", "edited",
	"image", "video", "audio", "sticker", "document", "gif",
}

// Stopwords is a set of tokens excluded from vocabulary analysis
type Stopwords map[string]struct{}

// DefaultStopwords returns a fresh copy of the built-in list
func DefaultStopwords() Stopwords {
	return NewStopwords(defaultStopwords)
}

// NewStopwords builds a set from words, normalizing them like tokens
func NewStopwords(words []string) Stopwords {
	s := make(Stopwords, len(words))
	for _, w := range words {
		s[normalizeToken(w)] = struct{}{}
	}
	return s
}

// Contains reports whether word is a stopword
func (s Stopwords) Contains(word string) bool {
	_, ok := s[word]
	return ok
}
