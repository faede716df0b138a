package mention

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	segs := Tokenize("great shot @jdoe nice!")

	assert.Len(t, segs, 3)
	assert.Equal(t, "great shot ", segs[0].Text)
	assert.False(t, segs[0].IsMention())
	assert.Equal(t, "@jdoe", segs[1].Text)
	assert.Equal(t, "jdoe", segs[1].Username)
	assert.Equal(t, " nice!", segs[2].Text)
	assert.False(t, segs[2].IsMention())
}

func TestTokenizeNoMention(t *testing.T) {
	segs := Tokenize("no mentions here")
	assert.Len(t, segs, 1)
	assert.Equal(t, "no mentions here", segs[0].Text)
	assert.False(t, segs[0].IsMention())
}

func TestTokenizeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"@lead off",
		"trailing @end",
		"@a@b back to back",
		"email-ish not@aword still matches the word part",
	}
	for _, in := range inputs {
		var sb strings.Builder
		for _, s := range Tokenize(in) {
			sb.WriteString(s.Text)
		}
		assert.Equal(t, in, sb.String())
	}
}

func TestUsernames(t *testing.T) {
	assert.Equal(t, []string{"jdoe", "kia_23"}, Usernames("cc @jdoe and @kia_23"))
	assert.Nil(t, Usernames("nobody tagged"))
}
