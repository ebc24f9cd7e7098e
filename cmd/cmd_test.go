package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsphweid/scof/document"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags puts every flag back to its default between runs of the shared
// command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	err := Run(args, &out)
	return out.String(), err
}

func newMovementFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movement.yaml")
	require.NoError(t, document.SaveMovement(path, document.DefaultMovement()))
	return path
}

func notes(t *testing.T, path string, measure int) []string {
	t.Helper()
	m, err := document.LoadMovement(path)
	require.NoError(t, err)
	return m.Bar[measure].Chan[0].Notes
}

func TestDescribe(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, describe(&out, "3/8C#4>"))
	assert.Contains(t, out.String(), "3/8C#4>")
	assert.Contains(t, out.String(), "pitch: C#4")
	assert.Contains(t, out.String(), "duration: 3/8")
	assert.Contains(t, out.String(), "articulation: >")

	out.Reset()
	assert.Error(t, describe(&out, "4C"))
	// caret under the missing octave
	lines := strings.Split(out.String(), "\n")
	assert.Equal(t, "4C", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  ^"))
}

func TestParseCommand(t *testing.T) {
	out, err := run(t, "parse", "4R", "1/4R")
	assert.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "rest"))

	_, err = run(t, "parse", "4R", "Q")
	assert.EqualError(t, err, "1 of 2 markings did not parse")
}

func TestEditCommands(t *testing.T) {
	assert := assert.New(t)
	path := newMovementFile(t)

	_, err := run(t, "edit", "insert", path, "4C4")
	require.NoError(t, err)
	assert.Equal([]string{"1R", "4C4"}, notes(t, path, 0))

	_, err = run(t, "edit", "pitch", "-k", "1", path, "E4")
	require.NoError(t, err)
	assert.Equal([]string{"1R", "4E4"}, notes(t, path, 0))

	_, err = run(t, "edit", "step", "-k", "1", path, "down")
	require.NoError(t, err)
	assert.Equal([]string{"1R", "4D4"}, notes(t, path, 0))

	_, err = run(t, "edit", "duration", "-k", "1", path, "3/8")
	require.NoError(t, err)
	assert.Equal([]string{"1R", "3/8D4"}, notes(t, path, 0))

	_, err = run(t, "edit", "duration", "--index", "6", path)
	require.NoError(t, err)
	assert.Equal([]string{"2R", "3/8D4"}, notes(t, path, 0))

	out, err := run(t, "edit", "remove", path)
	require.NoError(t, err)
	assert.Equal("removed 3/8D4\n", out)
	assert.Equal([]string{"2R"}, notes(t, path, 0))

	_, err = run(t, "edit", "new-measure", path)
	require.NoError(t, err)
	assert.Equal([]string{"1R"}, notes(t, path, 1))
}

func TestEditErrorsKeepFile(t *testing.T) {
	path := newMovementFile(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = run(t, "edit", "remove", path)
	assert.Error(t, err)
	_, err = run(t, "edit", "insert", "-m", "3", path, "4C4")
	assert.Error(t, err)
	_, err = run(t, "edit", "pitch", path, "C")
	assert.Error(t, err)
	_, err = run(t, "edit", "duration", path)
	assert.Error(t, err)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCheckCommand(t *testing.T) {
	path := newMovementFile(t)
	out, err := run(t, "check", path)
	assert.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, "edit", "insert", path, "4C4")
	require.NoError(t, err)
	out, err = run(t, "check", path)
	assert.EqualError(t, err, "found 1 problems")
	assert.Contains(t, out, "measure 0 chan 0")
	assert.Contains(t, out, "length")
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movement.yaml")
	doc := `sig:
  - time: 4/4
bar:
  - sig: 0
    chan:
      - notes: [2C4, 2E4]
  - chan:
      - notes: [1G4]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	out, err := run(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "chan 0")
	assert.Contains(t, out, "0:0  2C4")
	assert.Contains(t, out, "0:1  2E4")
	assert.Contains(t, out, "1:0  1G4")
}

func TestInspectReportsEveryMalformedMarking(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movement.yaml")
	doc := `bar:
  - chan:
      - notes: ["4C4", "oops", "4E4", "4H4"]
  - chan:
      - notes: ["1G4"]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := run(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "0:0  4C4")
	assert.Regexp(t, `0:1  .*oops`, out)
	assert.Contains(t, out, "0:2  4E4")
	assert.Regexp(t, `0:3  .*4H4`, out)
	assert.Contains(t, out, "1:0  1G4")
}

func TestExportCommand(t *testing.T) {
	path := newMovementFile(t)
	out := filepath.Join(t.TempDir(), "out.mid")

	_, err := run(t, "export", "-o", out, path)
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "MThd", string(data[:4]))

	t.Setenv("SCOF_PATH", t.TempDir())
	_, err = run(t, "export", path)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(os.Getenv("SCOF_PATH"), "movement.mid"))
	assert.NoError(t, err)
}

func TestInspectChords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movement.yaml")
	doc := `sig:
  - time: 4/4
bar:
  - sig: 0
    chan:
      - notes: [2C4, 2D4]
      - notes: [1E4]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	out, err := run(t, "inspect", "--chords", path)
	require.NoError(t, err)
	assert.Equal(t, "    0.00  60-64\n    2.00  62-64\n", out)
}

func TestCheckManyFiles(t *testing.T) {
	clean := newMovementFile(t)
	var broken []string
	for i := 0; i < 3; i++ {
		path := newMovementFile(t)
		// a lone quarter rest leaves the bar short
		_, err := run(t, "edit", "duration", "--index", "5", path)
		require.NoError(t, err)
		broken = append(broken, path)
	}

	var out bytes.Buffer
	total, err := checkFiles(&out, append([]string{broken[2], clean}, broken[:2]...))
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], broken[2]+": "))
	assert.True(t, strings.HasPrefix(lines[1], broken[0]+": "))
	assert.True(t, strings.HasPrefix(lines[2], broken[1]+": "))

	_, err = checkFiles(&out, []string{clean, filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestEditDurationLetters(t *testing.T) {
	assert := assert.New(t)
	path := newMovementFile(t)

	_, err := run(t, "edit", "duration", path, "Q.")
	require.NoError(t, err)
	assert.Equal([]string{"3/8R"}, notes(t, path, 0))

	_, err = run(t, "edit", "dot", path, "add")
	require.NoError(t, err)
	assert.Equal([]string{"7/16R"}, notes(t, path, 0))

	_, err = run(t, "edit", "dot", path, "remove")
	require.NoError(t, err)
	_, err = run(t, "edit", "dot", path, "remove")
	require.NoError(t, err)
	assert.Equal([]string{"4R"}, notes(t, path, 0))

	_, err = run(t, "edit", "duration", path, "L")
	require.NoError(t, err)
	assert.Equal([]string{"4/1R"}, notes(t, path, 0))

	// a 128th takes no dots
	_, err = run(t, "edit", "duration", path, "O.")
	assert.Error(err)
	_, err = run(t, "edit", "duration", path, "Z")
	assert.Error(err)
	_, err = run(t, "edit", "dot", path, "twice")
	assert.Error(err)
	assert.Equal([]string{"4/1R"}, notes(t, path, 0))
}
