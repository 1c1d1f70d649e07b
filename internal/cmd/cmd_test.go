package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mvvmgen/internal/config"
)

const manifest = `
types:
  - namespace: App
    name: PersonViewModel
    fields:
      - name: _firstName
        type: string
        annotations:
          - kind: observable-property
    methods:
      - name: Save
        annotations: [{kind: relay-command}]
      - name: SaveAsync
        returnType: Task
        annotations: [{kind: relay-command}]
  - namespace: App
    name: Empty
`

func writeManifest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o644))
	return path
}

func newRunner(in *Input) (*runner, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &runner{
		cfg:    config.New(),
		logger: zap.NewNop(),
		runID:  "run-test",
		in:     in,
		stdout: &stdout,
		stderr: &stderr,
	}, &stdout, &stderr
}

func TestRunWritesFiles(t *testing.T) {
	out := filepath.Join(t.TempDir(), "Generated")
	reportPath := filepath.Join(t.TempDir(), "report.json")
	r, stdout, stderr := newRunner(&Input{
		Manifests:   []string{writeManifest(t)},
		Output:      out,
		Diagnostics: "text",
		Report:      reportPath,
	})

	report, err := r.run(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Errors)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "warning MVVM0001: App.PersonViewModel.SaveCommand:")
	assert.Contains(t, stderr.String(), "1 warning(s)")

	src, err := os.ReadFile(filepath.Join(out, "App.PersonViewModel.g.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "public partial class PersonViewModel")
	_, err = os.Stat(filepath.Join(out, "App.Empty.g.cs"))
	assert.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var decoded struct {
		RunID     string `json:"runId"`
		Platform  string `json:"platform"`
		Manifests []struct {
			Types []struct {
				Type      string `json:"type"`
				Generated bool   `json:"generated"`
			} `json:"types"`
		} `json:"manifests"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "run-test", decoded.RunID)
	assert.Equal(t, "wpf", decoded.Platform)
	require.Len(t, decoded.Manifests, 1)
	require.Len(t, decoded.Manifests[0].Types, 2)
	assert.True(t, decoded.Manifests[0].Types[0].Generated)
	assert.False(t, decoded.Manifests[0].Types[1].Generated)

	// a second pass over unchanged input leaves identical files
	_, err = r.run(context.Background())
	require.NoError(t, err)
	again, err := os.ReadFile(filepath.Join(out, "App.PersonViewModel.g.cs"))
	require.NoError(t, err)
	assert.Equal(t, src, again)
}

func TestRunStdoutAndJSONDiagnostics(t *testing.T) {
	r, stdout, stderr := newRunner(&Input{Manifests: []string{writeManifest(t)}, Diagnostics: "json"})
	_, err := r.run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "// <auto-generated>")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(stderr.Bytes(), &decoded))
	assert.Equal(t, "run-test", decoded["runId"])
	assert.Equal(t, "1 warning(s)", decoded["summary"])
}

func TestRunStrictReportsErrors(t *testing.T) {
	r, _, _ := newRunner(&Input{Manifests: []string{writeManifest(t)}, Diagnostics: "text"})
	r.cfg.Options.Strict = true
	report, err := r.run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Errors)
}

func TestRunMissingManifest(t *testing.T) {
	r, _, _ := newRunner(&Input{Manifests: []string{filepath.Join(t.TempDir(), "nope.yaml")}})
	_, err := r.run(context.Background())
	assert.Error(t, err)
}

func TestInputApply(t *testing.T) {
	cfg := config.New()
	in := &Input{Types: []string{"A"}, Exclude: []string{"B"}, Parallelism: 8}
	in.apply(cfg)
	assert.Equal(t, []string{"A"}, cfg.Options.IncludeTypes)
	assert.Equal(t, []string{"B"}, cfg.Options.ExcludeTypes)
	assert.Equal(t, 8, cfg.Options.Parallelism)

	(&Input{}).apply(cfg)
	assert.Equal(t, 8, cfg.Options.Parallelism)
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	for _, format := range []string{"yaml", "json"} {
		t.Run(format, func(t *testing.T) {
			dest := filepath.Join(dir, "mvvmgen."+format)
			require.NoError(t, (&ConfigInit{Format: format, Output: dest}).Run(zap.NewNop()))

			cfg := config.New()
			require.NoError(t, cfg.LoadFile(dest))
			assert.Equal(t, config.PlatformWPF, cfg.Options.Platform)
			assert.Equal(t, "RaisePropertyChanged", cfg.Options.NotifyMethod)

			err := (&ConfigInit{Format: format, Output: dest}).Run(zap.NewNop())
			assert.Error(t, err, "existing files need --force")
			assert.NoError(t, (&ConfigInit{Format: format, Output: dest, Force: true}).Run(zap.NewNop()))
		})
	}

	dest := filepath.Join(dir, "nested", "mvvmgen.toml")
	require.NoError(t, (&ConfigInit{Format: "toml", Output: dest}).Run(zap.NewNop()))
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), `platform = "wpf"`)

	assert.Error(t, (&ConfigInit{Format: "ini", Output: filepath.Join(dir, "x.ini")}).Run(zap.NewNop()))
}

func TestLoadConfig(t *testing.T) {
	cli := &CLI{Platform: "Avalonia", Strict: true}
	cfg, err := cli.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.PlatformAvalonia, cfg.Options.Platform)
	assert.True(t, cfg.Options.Strict)

	_, err = (&CLI{Platform: "gtk"}).LoadConfig()
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "mvvmgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\noptions:\n  platform: winui\n  usings: [App.Mvvm]\n"), 0o644))
	cfg, err = (&CLI{Config: path}).LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.PlatformWinUI, cfg.Options.Platform)
	assert.Equal(t, []string{"App.Mvvm"}, cfg.Options.Usings)
}

func TestConfigCandidatePaths(t *testing.T) {
	j, y, tm := ConfigCandidatePaths("custom.toml")
	assert.Equal(t, []string{"mvvmgen.json"}, j)
	assert.Equal(t, []string{"mvvmgen.yaml", "mvvmgen.yml"}, y)
	assert.Equal(t, []string{"custom.toml", "mvvmgen.toml"}, tm)
}
