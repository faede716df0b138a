package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "jdoe_99", NormalizeUsername("JDoe_99"))
	assert.Equal(t, "jdoe_99", NormalizeUsername("  jdoe_99  "))
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("JDoe_99"))
	assert.NoError(t, ValidateUsername("abc"))

	assert.Error(t, ValidateUsername("ab"), "too short")
	assert.Error(t, ValidateUsername("thisusernameiswaytoolong"), "too long")
	assert.Error(t, ValidateUsername("no spaces"))
	assert.Error(t, ValidateUsername("bad-dash"))
	assert.Error(t, ValidateUsername(""))
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" NBA ", "nba", "Draft", "", "draft", "trades"})
	assert.Equal(t, []string{"nba", "draft", "trades"}, got)
}

func TestLinkMentions(t *testing.T) {
	assert.Equal(t, "great shot [@jdoe](/u/jdoe) nice!", LinkMentions("great shot @jdoe nice!"))
	assert.Equal(t, "plain text", LinkMentions("plain text"))
}

func TestRenderMarkdownMention(t *testing.T) {
	out := RenderMarkdown("great shot @jdoe nice!")
	assert.Contains(t, out, `href="/u/jdoe"`)
	assert.Contains(t, out, "@jdoe")
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	out := RenderMarkdown(`hello <script>alert("x")</script>`)
	assert.NotContains(t, out, "<script>")
}

func TestGetCacheSingleton(t *testing.T) {
	caches := make([]*GlobalCache, 8)
	var wg sync.WaitGroup
	for i := range caches {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			caches[i] = GetCache()
		}(i)
	}
	wg.Wait()

	for _, c := range caches[1:] {
		assert.Same(t, caches[0], c)
	}
}
