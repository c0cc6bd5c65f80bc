// Package guide produces the post-scaffold next-steps text and can
// render it as GitHub-style HTML in the default browser.
package guide

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"text/template"

	"github.com/pkg/browser"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type (
	// Data fills the next-steps markdown.
	Data struct {
		ProjectName string
		ProjectPath string
		RepoURL     string
		Python      bool
	}
)

var (
	//go:embed next-steps.md.tmplt
	nextStepsMarkdown string

	//go:embed page.html.tmplt
	pageTemplate string
)

// Markdown renders the next-steps guidance as markdown text.
func Markdown(data Data) (string, error) {
	tmplt, err := template.New("next-steps").Parse(nextStepsMarkdown)
	if err != nil {
		return "", fmt.Errorf("failed to parse next-steps template: %w", err)
	}

	var b bytes.Buffer

	err = tmplt.Execute(&b, data)
	if err != nil {
		return "", fmt.Errorf("failed to render next-steps guidance: %w", err)
	}

	return b.String(), nil
}

// Print writes the guidance markdown verbatim.
func Print(w io.Writer, md string) {
	fmt.Fprint(w, md)
}

// Open converts the guidance to HTML and displays it in the default
// browser.
func Open(md string) error {
	converter := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var html bytes.Buffer

	err := converter.Convert([]byte(md), &html)
	if err != nil {
		return fmt.Errorf("failed to convert guidance to HTML: %w", err)
	}

	tmplt, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse HTML page template: %w", err)
	}

	var page bytes.Buffer

	err = tmplt.Execute(&page, html.String())
	if err != nil {
		return fmt.Errorf("failed to assemble HTML page: %w", err)
	}

	err = browser.OpenReader(&page)
	if err != nil {
		return fmt.Errorf("failed to open guidance in default browser: %w", err)
	}

	return nil
}
