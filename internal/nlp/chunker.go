package nlp

// nounChunks groups Penn-tagged tokens into base noun phrases:
//
//	(DT|PDT|PRP$)? (JJ|JJR|JJS|CD|VBN)* (NN|NNS|NNP|NNPS)+ (POS (JJ...)* (NN...)+)*
//
// Personal pronouns form single-token chunks. Chunks never overlap and are
// returned in order of appearance.
func nounChunks(src string, toks []Token) []Span {
	var out []Span
	i := 0
	for i < len(toks) {
		if toks[i].Tag == "PRP" {
			out = append(out, chunkSpan(src, toks[i:i+1]))
			i++
			continue
		}
		j := i
		if isChunkDeterminer(toks[j].Tag) {
			j++
		}
		end := nominalEnd(toks, j)
		if end == j {
			i++
			continue
		}
		// Possessive continuation: "Apple 's new CEO".
		for end < len(toks) && toks[end].Tag == "POS" {
			next := nominalEnd(toks, end+1)
			if next == end+1 {
				break
			}
			end = next
		}
		out = append(out, chunkSpan(src, toks[i:end]))
		i = end
	}
	return out
}

// nominalEnd consumes modifiers then a run of nouns starting at from. It
// returns from when no noun follows the modifiers.
func nominalEnd(toks []Token, from int) int {
	j := from
	for j < len(toks) && isChunkModifier(toks[j].Tag) {
		j++
	}
	k := j
	for k < len(toks) && isNounTag(toks[k].Tag) {
		k++
	}
	if k == j {
		return from
	}
	return k
}

func chunkSpan(src string, toks []Token) Span {
	text, start, end := spanText(src, toks)
	return Span{Text: text, Start: start, End: end}
}

func isChunkDeterminer(tag string) bool {
	switch tag {
	case "DT", "PDT", "PRP$", "WDT", "WP$":
		return true
	}
	return false
}

func isChunkModifier(tag string) bool {
	switch tag {
	case "JJ", "JJR", "JJS", "CD", "VBN", "HYPH":
		return true
	}
	return false
}

func isNounTag(tag string) bool {
	switch tag {
	case "NN", "NNS", "NNP", "NNPS":
		return true
	}
	return false
}
