package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/ukaji3/chartly-go/pkg/chartly"
)

type cliEnv struct {
	settingsFile string
	baseDir      string
}

func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	level := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(level) })
	dir := t.TempDir()
	return cliEnv{
		settingsFile: filepath.Join(dir, "settings.toml"),
		baseDir:      filepath.Join(dir, "home"),
	}
}

func (e cliEnv) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{
		"--log.level", "none",
		"--settings_file", e.settingsFile,
		"--export.base_dir", e.baseDir,
	}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestOnboardingShownOnce(t *testing.T) {
	env := newCLIEnv(t)

	_, stderr, err := env.run(t, "", "kinds")
	require.NoError(t, err)
	require.Contains(t, stderr, "Welcome to Chartly")
	require.FileExists(t, env.settingsFile)

	_, stderr, err = env.run(t, "", "kinds")
	require.NoError(t, err)
	require.NotContains(t, stderr, "Welcome to Chartly")
}

func TestKinds(t *testing.T) {
	env := newCLIEnv(t)

	stdout, _, err := env.run(t, "", "kinds")
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimSpace(stdout), "\n"), 11)
	require.Contains(t, stdout, "bar_line        label,bar,line")

	stdout, _, err = env.run(t, "", "kinds", "--json")
	require.NoError(t, err)
	require.Equal(t, "candlestick", gjson.Get(stdout, "9.kind").String())
}

func TestRenderToStdout(t *testing.T) {
	env := newCLIEnv(t)

	tests := []struct {
		format string
		check  func(t *testing.T, out string)
	}{
		{"png", func(t *testing.T, out string) { require.True(t, strings.HasPrefix(out, "\x89PNG")) }},
		{"html", func(t *testing.T, out string) { require.Contains(t, out, "echarts") }},
		{"json", func(t *testing.T, out string) {
			require.Equal(t, "Sales", gjson.Get(out, "title").String())
			require.Len(t, gjson.Get(out, "labels").Array(), 2)
		}},
		{"csv", func(t *testing.T, out string) { require.Equal(t, "Mon,3\nTue,x\nWed,5\n", out) }},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			stdout, _, err := env.run(t, "Mon,3\nTue,x\nWed,5\n", "render", "--kind", "bar", "--format", tt.format, "--title", "Sales")
			require.NoError(t, err)
			tt.check(t, stdout)
		})
	}
}

func TestRenderExport(t *testing.T) {
	env := newCLIEnv(t)
	input := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(input, []byte("A,1\nB,2\nC,3\n"), 0o644))

	out := t.TempDir()
	stdout, _, err := env.run(t, "", "render", "--kind", "radar", "--input", input, "--out", out)
	require.NoError(t, err)
	path := strings.TrimSpace(stdout)
	require.Equal(t, filepath.Join(out, "Pictures", "Chartly"), filepath.Dir(path))
	require.FileExists(t, path)

	stdout, _, err = env.run(t, "", "render", "--kind", "radar", "--input", input, "--format", "csv", "--save")
	require.NoError(t, err)
	path = strings.TrimSpace(stdout)
	require.Equal(t, filepath.Join(env.baseDir, "Documents", "Chartly"), filepath.Dir(path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "A,1\nB,2\nC,3\n", string(raw))
}

func TestRenderExportKeepsPipeInLabel(t *testing.T) {
	env := newCLIEnv(t)

	stdout, _, err := env.run(t, "Q1|2024,5\nQ2,7\n", "render", "--kind", "bar", "--format", "csv", "--save")
	require.NoError(t, err)
	raw, err := os.ReadFile(strings.TrimSpace(stdout))
	require.NoError(t, err)
	require.Equal(t, "Q1|2024,5\nQ2,7\n", string(raw))

	stdout, _, err = env.run(t, "Q1|2024,5\n", "render", "--kind", "bar", "--format", "json", "--save")
	require.NoError(t, err)
	raw, err = os.ReadFile(strings.TrimSpace(stdout))
	require.NoError(t, err)
	require.Equal(t, "Q1|2024", gjson.GetBytes(raw, "labels.0").String())
}

func TestRenderErrors(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run(t, "", "render", "--kind", "area")
	require.ErrorContains(t, err, "unknown chart kind")

	_, _, err = env.run(t, "", "render", "--kind", "bar", "--input", filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, chartly.ErrFileNotFound)

	_, _, err = env.run(t, "only\n", "render", "--kind", "bar")
	require.ErrorIs(t, err, chartly.ErrNoValidData)

	_, _, err = env.run(t, "Mon,x\n", "render", "--kind", "bar", "--out", t.TempDir())
	require.Error(t, err)

	_, _, err = env.run(t, "Mon,3\n", "render", "--kind", "bar", "--format", "gif")
	require.ErrorContains(t, err, "invalid format")
}

func TestConvert(t *testing.T) {
	env := newCLIEnv(t)

	stdout, _, err := env.run(t, "Mon,3\nTue,5\n", "convert", "--from", "bar", "--to", "radar")
	require.NoError(t, err)
	require.Equal(t, "Mon,3\nTue,5\n", stdout)

	stdout, _, err = env.run(t, "Mon,3\n", "convert", "--from", "bar", "--to", "scatter")
	require.NoError(t, err)
	require.Empty(t, stdout)

	_, _, err = env.run(t, "bad\n", "convert", "--from", "bar", "--to", "line")
	require.ErrorIs(t, err, chartly.ErrNoValidData)
}

func TestSampleIsSeeded(t *testing.T) {
	env := newCLIEnv(t)

	first, _, err := env.run(t, "", "sample", "--kind", "bar", "--format", "json", "--seed", "7")
	require.NoError(t, err)
	second, _, err := env.run(t, "", "sample", "--kind", "bar", "--format", "json", "--seed", "7")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Len(t, gjson.Get(first, "datasets.0.entries").Array(), 7)
}

func TestXLSXRoundTrip(t *testing.T) {
	env := newCLIEnv(t)
	out := t.TempDir()

	stdout, _, err := env.run(t, "Mon,3\nTue,5\n", "xlsx", "export", "--kind", "bar", "--out", out, "--title", "Week")
	require.NoError(t, err)
	book := strings.TrimSpace(stdout)
	require.Equal(t, ".xlsx", filepath.Ext(book))

	stdout, _, err = env.run(t, "", "xlsx", "import", book, "--csv")
	require.NoError(t, err)
	require.Equal(t, "Mon,3\nTue,5\n", stdout)

	stdout, _, err = env.run(t, "", "xlsx", "import", book)
	require.NoError(t, err)
	require.Equal(t, "bar", gjson.Get(stdout, "kind").String())
	require.Equal(t, "Week", gjson.Get(stdout, "title").String())
}

func TestConfigDump(t *testing.T) {
	env := newCLIEnv(t)
	t.Setenv("CHARTLY_HTTP_SERVER_PORT", "9090")

	stdout, _, err := env.run(t, "", "config", "--render.width", "1024")
	require.NoError(t, err)
	require.Contains(t, stdout, "port = 9090")
	require.Contains(t, stdout, "width = 1024")
}
