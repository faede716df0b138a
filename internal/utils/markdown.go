package utils

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"hoopboard/internal/mention"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	policy = bluemonday.UGCPolicy()
)

func init() {
	policy.AllowImages()
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)
}

// RenderMarkdown converts markdown to sanitized HTML. @username tokens
// are turned into profile links before conversion; whether the username
// exists is not checked.
func RenderMarkdown(source string) string {
	linked := LinkMentions(source)

	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(linked), &buf); err != nil {
		return policy.Sanitize(source) // fallback: plain sanitized text
	}
	return string(policy.SanitizeBytes(buf.Bytes()))
}

// LinkMentions rewrites each @username token as a markdown profile link.
func LinkMentions(source string) string {
	segs := mention.Tokenize(source)

	var sb strings.Builder
	for _, s := range segs {
		if s.IsMention() {
			sb.WriteString("[" + s.Text + "](/u/" + s.Username + ")")
		} else {
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}
