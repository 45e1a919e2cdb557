package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/radiolex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const testJSONL = `{"timestamp":"2024-03-01T09:00:00Z","body":"координаты цели пеленг","area":"Север","frequency":146.5,"call_signs":["Сокол"]}
{"timestamp":"2024-03-01T09:05:00Z","body":"вижу технику на позиции","area":"Север","frequency":146.5,"call_signs":["Береза"]}

{"timestamp":"2024-03-02T10:00:00Z","body":"координаты пеленг подтверждаю","area":"Юг","frequency":150,"call_signs":["Сокол"]}
`

// run executes the CLI against dbPath and returns its standard output.
func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	full := append([]string{"radiolex", "--db", dbPath, "--log-level", "error"}, args...)
	err := app.Run(full)
	return out.String(), err
}

func importTestData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "messages.jsonl")
	require.NoError(t, os.WriteFile(src, []byte(testJSONL), 0644))

	dbPath := filepath.Join(dir, "db")
	out, err := run(t, dbPath, "import", src)
	require.NoError(t, err)
	assert.Contains(t, out, "Read 3 messages, added 3, skipped 0")
	return dbPath
}

func TestGlobalFlags(t *testing.T) {
	app := newApp()

	flagByName := func(name string) cli.Flag {
		for _, flag := range app.Flags {
			if slicesContains(flag.Names(), name) {
				return flag
			}
		}
		return nil
	}

	t.Run("classifier defaults to rules", func(t *testing.T) {
		f, ok := flagByName("classifier").(*cli.StringFlag)
		require.True(t, ok)
		assert.Equal(t, "rules", f.Value)
	})

	t.Run("classifier-host has default value", func(t *testing.T) {
		f, ok := flagByName("classifier-host").(*cli.StringFlag)
		require.True(t, ok)
		assert.Equal(t, "http://localhost:11434/v1", f.Value)
		assert.Empty(t, f.EnvVars)
	})

	t.Run("db has short alias", func(t *testing.T) {
		f := flagByName("d")
		require.NotNil(t, f)
	})

	t.Run("invalid log level", func(t *testing.T) {
		_, err := run(t, t.TempDir(), "--log-level", "loud", "categories")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := run(t, t.TempDir(), "--format", "xml", "categories")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})

	t.Run("unknown classifier backend", func(t *testing.T) {
		_, err := run(t, t.TempDir(), "--classifier", "oracle", "categories")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid classifier configuration")
	})
}

func slicesContains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func TestImportAndQuery(t *testing.T) {
	dbPath := importTestData(t)

	t.Run("import is idempotent", func(t *testing.T) {
		src := filepath.Join(t.TempDir(), "again.jsonl")
		require.NoError(t, os.WriteFile(src, []byte(testJSONL), 0644))
		out, err := run(t, dbPath, "import", src)
		require.NoError(t, err)
		assert.Contains(t, out, "added 0")
	})

	t.Run("search", func(t *testing.T) {
		out, err := run(t, dbPath, "search", "координаты", "пеленг")
		require.NoError(t, err)
		assert.Contains(t, out, "Found 2 hits")
		assert.Contains(t, out, "matched: координаты, пеленг")
	})

	t.Run("search with filters", func(t *testing.T) {
		out, err := run(t, dbPath, "search", "--area", "Юг", "--to", "2024-03-02", "координаты")
		require.NoError(t, err)
		assert.Contains(t, out, "Found 1 hits")

		out, err = run(t, dbPath, "search", "--frequency", "146.5", "--category", "coordinates", "пеленг")
		require.NoError(t, err)
		assert.Contains(t, out, "Found 1 hits")
	})

	t.Run("search json", func(t *testing.T) {
		out, err := run(t, dbPath, "--format", "json", "search", "координаты пеленг")
		require.NoError(t, err)
		var views []resultView
		require.NoError(t, json.Unmarshal([]byte(out), &views))
		require.Len(t, views, 2)
		assert.InDelta(t, views[0].Score, views[0].Contributions["координаты"]+views[0].Contributions["пеленг"], 1e-9)
	})

	t.Run("search requires a query", func(t *testing.T) {
		_, err := run(t, dbPath, "search")
		assert.Error(t, err)
	})

	t.Run("similar", func(t *testing.T) {
		out, err := run(t, dbPath, "similar", "1")
		require.NoError(t, err)
		assert.Contains(t, out, "Found 1 hits")

		out, err = run(t, dbPath, "similar", "999")
		require.NoError(t, err)
		assert.Contains(t, out, "Found 0 hits")

		_, err = run(t, dbPath, "similar", "abc")
		assert.Error(t, err)
	})

	t.Run("example", func(t *testing.T) {
		out, err := run(t, dbPath, "example", "--opposite", "пеленг")
		require.NoError(t, err)
		assert.Contains(t, out, "Found 2 hits")
	})

	t.Run("keywords", func(t *testing.T) {
		out, err := run(t, dbPath, "keywords", "--from", "2024-03-02")
		require.NoError(t, err)
		assert.Contains(t, out, "подтверждаю")
		assert.NotContains(t, out, "технику")
	})

	t.Run("categories", func(t *testing.T) {
		out, err := run(t, dbPath, "categories")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "coordinates (2)"))
		assert.Contains(t, out, "equipment (1)")
	})

	t.Run("phrases", func(t *testing.T) {
		out, err := run(t, dbPath, "phrases", "--top", "1", "coordinates")
		require.NoError(t, err)
		assert.Contains(t, out, "координаты")
	})

	t.Run("clusters", func(t *testing.T) {
		out, err := run(t, dbPath, "clusters")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("term", func(t *testing.T) {
		out, err := run(t, dbPath, "term", "пеленг")
		require.NoError(t, err)
		assert.Contains(t, out, `"пеленг": 2 messages over 2 days (1.00 per day)`)
		assert.Contains(t, out, "Peak call-sign: Сокол (2)")
	})

	t.Run("reclassify", func(t *testing.T) {
		_, err := run(t, dbPath, "reclassify", "--force", "--batch-size", "2")
		require.NoError(t, err)

		_, err = run(t, dbPath, "reclassify", "--batch-size", "0")
		assert.Error(t, err)
	})
}

func TestImportInvalidLines(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.jsonl")
	data := testJSONL + "not json\n" + `{"timestamp":"2024-03-01T09:00:00Z","body":"x","frequency":-1}` + "\n"
	require.NoError(t, os.WriteFile(src, []byte(data), 0644))

	_, err := run(t, filepath.Join(dir, "strict"), "import", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 5")

	out, err := run(t, filepath.Join(dir, "lenient"), "import", "--skip-invalid", src)
	require.NoError(t, err)
	assert.Contains(t, out, "Read 5 messages, added 3, skipped 2")
}

func TestSeedCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "db")
	out, err := run(t, dbPath, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "added 15")

	out, err = run(t, dbPath, "search", "координаты")
	require.NoError(t, err)
	assert.NotContains(t, out, "Found 0 hits")
}

func TestDecodeMessages(t *testing.T) {
	var msgs []*core.Message
	for msg, err := range decodeMessages(strings.NewReader(testJSONL), false) {
		require.NoError(t, err)
		msgs = append(msgs, msg)
	}
	require.Len(t, msgs, 3)
	assert.Equal(t, "Север", msgs[0].Area)
	assert.Equal(t, []string{"Сокол"}, msgs[0].CallSigns)
	assert.Equal(t, time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC), msgs[2].Timestamp.UTC())
}

func TestParseTime(t *testing.T) {
	zero, err := parseTime("", false)
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	start, err := parseTime("2024-03-01", false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), start)

	end, err := parseTime("2024-03-01", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 23, 59, 59, 999999999, time.UTC), end)

	exact, err := parseTime("2024-03-01T09:30:00Z", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), exact)

	_, err = parseTime("yesterday", false)
	assert.Error(t, err)
}
