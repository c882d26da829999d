package publish

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Raw HTML in titles or notes is escaped: html.WithUnsafe is not set.
var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// RenderHTML converts a rendered trip document into a standalone HTML page.
func RenderHTML(title, markdown string) (string, error) {
	var body bytes.Buffer
	if err := markdownRenderer.Convert([]byte(strings.TrimSpace(markdown)), &body); err != nil {
		return "", err
	}
	var page bytes.Buffer
	err := pageTmpl.Execute(&page, struct {
		Title string
		Body  template.HTML
	}{
		Title: strings.TrimSpace(title),
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return "", err
	}
	return page.String(), nil
}
