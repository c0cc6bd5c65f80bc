package guide

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownPython(t *testing.T) {
	md, err := Markdown(Data{
		ProjectName: "demo",
		ProjectPath: "/projects/demo",
		RepoURL:     "https://github.com/someone/demo",
		Python:      true,
	})

	require.NoError(t, err)
	assert.Contains(t, md, "# demo is ready")
	assert.Contains(t, md, "/projects/demo")
	assert.Contains(t, md, "https://github.com/someone/demo")
	assert.Contains(t, md, "source .venv/bin/activate")
	assert.NotContains(t, md, "go test")
}

func TestMarkdownGo(t *testing.T) {
	md, err := Markdown(Data{
		ProjectName: "demo",
		ProjectPath: "/projects/demo",
		Python:      false,
	})

	require.NoError(t, err)
	assert.Contains(t, md, "go test ./...")
	assert.NotContains(t, md, "Remote repository:", "no URL line without a URL")
}

func TestPrint(t *testing.T) {
	var b bytes.Buffer

	Print(&b, "# hello\n")

	assert.Equal(t, "# hello\n", b.String())
}
