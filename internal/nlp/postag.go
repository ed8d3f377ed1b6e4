package nlp

// pennToUniversal maps Penn Treebank tags to Universal Dependencies POS tags,
// following the table spaCy uses for its English models.
var pennToUniversal = map[string]string{
	"NN":    "NOUN",
	"NNS":   "NOUN",
	"NNP":   "PROPN",
	"NNPS":  "PROPN",
	"PRP":   "PRON",
	"PRP$":  "PRON",
	"WP":    "PRON",
	"WP$":   "PRON",
	"EX":    "PRON",
	"VB":    "VERB",
	"VBD":   "VERB",
	"VBG":   "VERB",
	"VBN":   "VERB",
	"VBP":   "VERB",
	"VBZ":   "VERB",
	"MD":    "AUX",
	"JJ":    "ADJ",
	"JJR":   "ADJ",
	"JJS":   "ADJ",
	"AFX":   "ADJ",
	"RB":    "ADV",
	"RBR":   "ADV",
	"RBS":   "ADV",
	"WRB":   "ADV",
	"DT":    "DET",
	"PDT":   "DET",
	"WDT":   "DET",
	"IN":    "ADP",
	"RP":    "ADP",
	"CC":    "CCONJ",
	"CD":    "NUM",
	"POS":   "PART",
	"TO":    "PART",
	"UH":    "INTJ",
	"FW":    "X",
	"LS":    "X",
	"SYM":   "SYM",
	"#":     "SYM",
	"$":     "SYM",
	".":     "PUNCT",
	",":     "PUNCT",
	":":     "PUNCT",
	"``":    "PUNCT",
	"''":    "PUNCT",
	"(":     "PUNCT",
	")":     "PUNCT",
	"-LRB-": "PUNCT",
	"-RRB-": "PUNCT",
	"HYPH":  "PUNCT",
	"NFP":   "PUNCT",
}

// UniversalPOS returns the Universal POS tag for a Penn Treebank tag, or "X"
// when the tag is unknown.
func UniversalPOS(tag string) string {
	if pos, ok := pennToUniversal[tag]; ok {
		return pos
	}
	return "X"
}
