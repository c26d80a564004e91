package extract

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// newMarkdownConverter creates a reusable, goroutine-safe Converter for
// description markup:
//
//   - base plugin: strips script, style, iframe, noscript and HTML comments
//     that product descriptions occasionally drag along.
//   - commonmark plugin: standard Markdown rendering.
//   - table plugin: bol.com descriptions embed spec tables; minimal cell
//     padding keeps them readable in the edit form.
func newMarkdownConverter() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(
				table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
			),
		),
	)
}

// descriptionMarkdown walks the description selector list in chain order and
// converts the first matched container's markup to Markdown. It shares the
// chain's precedence data, so the markdown and plain-text renderings always
// come from the same container. Returns "" when no container matches or the
// conversion fails — the caller falls back to the plain-text chain result.
func (e *Extractor) descriptionMarkdown(d *Document) string {
	for _, spec := range e.cfg.Description {
		sel := d.Find(spec.Sel).First()
		if sel.Length() == 0 {
			continue
		}
		htmlContent, err := sel.Html()
		if err != nil || strings.TrimSpace(htmlContent) == "" {
			continue
		}
		md, err := e.md.ConvertString(htmlContent, converter.WithDomain(d.SourceURL()))
		if err != nil {
			return ""
		}
		return strings.TrimSpace(md)
	}
	return ""
}
