package clipboard

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
)

// MarkdownFromHTML renders an HTML snippet as Markdown. The snippet is
// returned unchanged if it cannot be converted.
func MarkdownFromHTML(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)

	markdown, err := conv.ConvertString(html)
	if err != nil {
		return html
	}
	return strings.TrimSpace(markdown)
}
