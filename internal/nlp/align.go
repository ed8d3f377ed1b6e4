package nlp

import "strings"

// locate finds each piece in src, scanning left to right from the end of the
// previous match. Pieces that cannot be found get offsets (-1, -1) and do not
// advance the cursor.
func locate(src string, pieces []string) [][2]int {
	out := make([][2]int, len(pieces))
	cursor := 0
	for i, p := range pieces {
		if p == "" {
			out[i] = [2]int{-1, -1}
			continue
		}
		idx := strings.Index(src[cursor:], p)
		if idx < 0 {
			out[i] = [2]int{-1, -1}
			continue
		}
		start := cursor + idx
		out[i] = [2]int{start, start + len(p)}
		cursor = start + len(p)
	}
	return out
}

// spanText returns the exact input substring covered by toks, or the token
// texts joined by single spaces when any offset is unknown.
func spanText(src string, toks []Token) (string, int, int) {
	first, last := toks[0], toks[len(toks)-1]
	located := first.Start >= 0 && last.End >= first.Start
	for _, t := range toks {
		if t.Start < 0 {
			located = false
			break
		}
	}
	if located {
		return src[first.Start:last.End], first.Start, last.End
	}
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.Text
	}
	return strings.Join(parts, " "), -1, -1
}
