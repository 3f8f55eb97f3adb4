package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed report.css
var styleCSS string

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderHTML converts the document to a standalone HTML page suitable for
// the browser or for printing to PDF.
func RenderHTML(doc Document) ([]byte, error) {
	var content bytes.Buffer
	if err := md.Convert([]byte(doc.Markdown()), &content); err != nil {
		return nil, fmt.Errorf("markdown convert: %w", err)
	}

	var out bytes.Buffer
	out.WriteString("<!doctype html><html><head><meta charset='utf-8'>")
	out.WriteString("<title>" + html.EscapeString(pageTitle(doc)) + "</title>")
	out.WriteString("<style>" + styleCSS + "</style></head><body>")
	out.WriteString("<article class='report'>")
	out.Write(applyLayoutHooks(content.Bytes()))
	out.WriteString("</article></body></html>")
	return out.Bytes(), nil
}

func pageTitle(doc Document) string {
	if doc.BusinessName == "" {
		return title
	}
	return title + " | " + doc.BusinessName
}

var aiHeading = regexp.MustCompile(`<h3>With 24/7 AI Voice Coverage</h3>`)

// applyLayoutHooks tags the AI scenario heading so its figures print in the
// recovered-revenue palette.
func applyLayoutHooks(content []byte) []byte {
	return aiHeading.ReplaceAll(content, []byte(`<h3 class="ai">With 24/7 AI Voice Coverage</h3>`))
}
