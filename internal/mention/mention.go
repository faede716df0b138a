// Package mention splits comment text into literal and @username
// segments. It is a display-time transform: no lookup is made to check
// that a mentioned username exists.
package mention

import "regexp"

var mentionRe = regexp.MustCompile(`@\w+`)

type Segment struct {
	Text     string
	Username string // set (without the @) when the segment is a mention
}

func (s Segment) IsMention() bool { return s.Username != "" }

// Tokenize splits content into alternating literal and mention segments.
// Concatenating the Text of all segments reproduces the input exactly.
// Content without an @ token comes back as a single literal segment.
func Tokenize(content string) []Segment {
	locs := mentionRe.FindAllStringIndex(content, -1)
	if len(locs) == 0 {
		return []Segment{{Text: content}}
	}

	segs := make([]Segment, 0, 2*len(locs)+1)
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			segs = append(segs, Segment{Text: content[prev:loc[0]]})
		}
		tok := content[loc[0]:loc[1]]
		segs = append(segs, Segment{Text: tok, Username: tok[1:]})
		prev = loc[1]
	}
	if prev < len(content) {
		segs = append(segs, Segment{Text: content[prev:]})
	}
	return segs
}

// Usernames returns the mentioned usernames in order of appearance,
// without the leading @.
func Usernames(content string) []string {
	var names []string
	for _, s := range Tokenize(content) {
		if s.IsMention() {
			names = append(names, s.Username)
		}
	}
	return names
}
