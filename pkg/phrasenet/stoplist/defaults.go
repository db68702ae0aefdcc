package stoplist

// Portuguese function words followed by the English list. Duplicates across
// the two vocabularies ("a", "me", "nos", ...) collapse in the set.
var defaultTerms = []string{
	// pt
	"a", "à", "ao", "aos", "as", "o", "os", "e", "é", "em", "um", "uma", "uns", "umas",
	"de", "do", "da", "dos", "das", "que", "por", "para", "com", "como", "se", "na", "no",
	"nas", "nos", "pelos", "pelo", "pela", "pelas", "suas", "seu", "eu", "tu", "ele", "ela",
	"eles", "elas", "nós", "vós", "me", "te", "lhe", "vos", "lhes", "sim", "não", "mais",
	"também",
	// en
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you", "your", "yours",
	"yourself", "yourselves", "he", "him", "his", "himself", "she", "her", "hers", "herself",
	"it", "its", "itself", "they", "them", "their", "theirs", "themselves", "what", "which",
	"who", "whom", "this", "that", "these", "those", "am", "is", "are", "was", "were", "be",
	"been", "being", "have", "has", "had", "having", "do", "does", "did", "doing", "a", "an",
	"the", "and", "but", "if", "or", "because", "as", "until", "while", "of", "at", "by",
	"for", "with", "about", "against", "between", "into", "through", "during", "before",
	"after", "above", "below", "to", "from", "up", "down", "in", "out", "on", "off", "over",
	"under", "again", "further", "then", "once", "here", "there", "when", "where", "why",
	"how", "all", "any", "both", "each", "few", "more", "most", "other", "some", "such", "no",
	"nor", "not", "only", "own", "same", "so", "than", "too", "very", "s", "t", "can", "will",
	"just", "don", "should", "now",
}

var defaultManager = NewManager(defaultTerms)

// DefaultTerms returns a copy of the built-in stopword list.
func DefaultTerms() []string {
	out := make([]string, len(defaultTerms))
	copy(out, defaultTerms)
	return out
}
