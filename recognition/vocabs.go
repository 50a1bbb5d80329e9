package recognition

// Character sets available to recognition profiles. Compound sets build
// on the base sets, so "french" is a strict superset of "english".
const (
	vocabDigits       = "0123456789"
	vocabASCIILetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	vocabPunctuation  = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	vocabCurrency     = "£€¥¢฿"
)

// Vocabs maps vocabulary names to their character sets.
var Vocabs = map[string]string{
	"digits":        vocabDigits,
	"ascii_letters": vocabASCIILetters,
	"punctuation":   vocabPunctuation,
	"currency":      vocabCurrency,
	"latin":         vocabDigits + vocabASCIILetters + vocabPunctuation,
	"english":       vocabDigits + vocabASCIILetters + vocabPunctuation + "°" + vocabCurrency,
	"french": vocabDigits + vocabASCIILetters + vocabPunctuation + "°" + vocabCurrency +
		"àâéèêëîïôùûüçÀÂÉÈÊËÎÏÔÙÛÜÇ",
}

// filterVocab strips runes outside the given character set. An empty set
// passes everything through.
func filterVocab(s, vocab string) string {
	if vocab == "" {
		return s
	}
	allowed := make(map[rune]bool, len(vocab))
	for _, r := range vocab {
		allowed[r] = true
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if allowed[r] || r == ' ' {
			out = append(out, r)
		}
	}
	return string(out)
}
