package scaffold

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mod/modfile"
)

type (
	Step struct {
		With map[string]string `yaml:"with"`
		Name string            `yaml:"name"`
		Uses string            `yaml:"uses"`
		Run  string            `yaml:"run"`
	}

	Job struct {
		RunsOn string `yaml:"runs-on"`
		Steps  []Step
	}

	Workflow struct {
		Jobs map[string]Job `yaml:"jobs"`
	}
)

func TestWritePython(t *testing.T) {
	tempDir := t.TempDir()

	data := &PythonData{
		ProjectName:    "fs-walk",
		Description:    "walks filesystems",
		RequiresPython: ">=3.11",
		Deps: []Dependency{
			{Name: "pytest"},
			{Name: "ruff"},
		},
	}

	require.NoError(t, data.Deps[0].Version.UnmarshalText([]byte("8.0.0")))

	err := WritePython(tempDir, data)
	require.NoError(t, err)

	readme, err := os.ReadFile(filepath.Join(tempDir, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(readme), "# fs-walk")
	assert.Contains(t, string(readme), "walks filesystems")
	assert.Contains(t, string(readme), "src/fs_walk/")

	pyproject, err := os.ReadFile(filepath.Join(tempDir, "pyproject.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(pyproject), `name = "fs_walk"`)
	assert.Contains(t, string(pyproject), `requires-python = ">=3.11"`)
	assert.Contains(t, string(pyproject), `"pytest==8.0.0"`)
	assert.Contains(t, string(pyproject), `"ruff"`, "unpinned deps keep a bare specifier")

	contents, err := os.ReadFile(filepath.Join(tempDir, ".github/workflows", "test-and-lint.yaml"))
	require.NoError(t, err)

	var workflow Workflow

	require.NoError(t, yaml.Unmarshal(contents, &workflow))
	assert.Equal(t, "ubuntu-latest", workflow.Jobs["test-and-lint"].RunsOn)
	assert.Equal(t, "pytest", workflow.Jobs["test-and-lint"].Steps[len(workflow.Jobs["test-and-lint"].Steps)-1].Run)

	for _, name := range []string{
		".gitignore",
		"config/settings.toml",
		"tests/__init__.py",
		"tests/test_sanity.py",
		filepath.Join("src", "fs_walk", "__init__.py"),
		filepath.Join("src", "fs_walk", "py.typed"),
	} {
		assert.FileExists(t, filepath.Join(tempDir, name))
	}
}

func TestWriteGo(t *testing.T) {
	tempDir := t.TempDir()

	err := WriteGo(tempDir, &GoData{
		ProjectName: "demo",
		Description: "PLACEHOLDER",
		ModulePath:  "example.com/demo",
		GoVersion:   "1.24.5",
	})
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(tempDir, "go.mod"))
	require.NoError(t, err)

	parsed, err := modfile.Parse("go.mod", contents, nil)
	require.NoError(t, err)
	assert.Equal(t, "example.com/demo", parsed.Module.Mod.Path)
	assert.Equal(t, "1.24.5", parsed.Go.Version)

	workflowContents, err := os.ReadFile(filepath.Join(tempDir, ".github/workflows", "test-and-lint.yaml"))
	require.NoError(t, err)

	var workflow Workflow

	require.NoError(t, yaml.Unmarshal(workflowContents, &workflow))
	assert.Equal(t, "^1.24.5", workflow.Jobs["test-and-lint"].Steps[1].With["go-version"])
}

func TestDependencySpecifier(t *testing.T) {
	d := Dependency{Name: "mypy"}

	assert.Equal(t, "mypy", d.Specifier())

	require.NoError(t, d.Version.SetFromString("v1.10"))
	assert.Equal(t, "mypy==1.10.0", d.Specifier())
}

func TestSemVerUnmarshalText(t *testing.T) {
	var sv SemVer

	require.NoError(t, sv.UnmarshalText([]byte("LATEST")))
	assert.False(t, sv.Set())

	require.NoError(t, sv.UnmarshalText([]byte("1.2.3")))
	assert.True(t, sv.Set())
	assert.Equal(t, "1.2.3", sv.String())

	require.Error(t, sv.UnmarshalText([]byte("nonsense")))
}

func TestPinVersions(t *testing.T) {
	var (
		mux       sync.Mutex
		requested []string
	)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.Lock()
		requested = append(requested, r.URL.Path)
		mux.Unlock()

		if r.URL.Path == "/broken/json" {
			w.WriteHeader(500)

			return
		}

		fmt.Fprint(w, `{"info": {"version": "7.4.1"}}`)
	}))

	defer ts.Close()

	original := pypiURLPrefix
	pypiURLPrefix = ts.URL

	defer func() { pypiURLPrefix = original }()

	deps := []Dependency{{Name: "pytest"}, {Name: "broken"}}

	err := PinVersions(context.Background(), deps)

	require.Error(t, err, "the lookup failure is reported")
	assert.Equal(t, "pytest==7.4.1", deps[0].Specifier())
	assert.Equal(t, "broken", deps[1].Specifier(), "failed lookups fall back to unpinned")
	assert.Contains(t, requested, "/pytest/json")
}
