package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"promptloom/src/graph"
	"promptloom/src/interview"
)

func newTestREPL(t *testing.T) (*repl, *bytes.Buffer) {
	t.Helper()
	g, err := graph.LoadDefault()
	require.NoError(t, err)
	var out bytes.Buffer
	return &repl{e: interview.New(g), out: &out}, &out
}

func TestREPLBuildsPrompt(t *testing.T) {
	r, out := newTestREPL(t)
	input := strings.Join([]string{
		"j character-hair-root",
		"3",
		"w curl_intensity 1.18",
		"c",
		"+ film grain",
		"- watermark",
		"p",
		"q",
	}, "\n")

	require.NoError(t, r.run(context.Background(), strings.NewReader(input)))

	got := out.String()
	assert.Contains(t, got, "[character-hair-root] What is the hair texture?")
	assert.Contains(t, got, "prompt:   curly hair texture, (curly hair curl intensity:1.18), film grain")
	assert.Contains(t, got, "watermark")
}

func TestREPLReportsBadInput(t *testing.T) {
	r, out := newTestREPL(t)

	require.NoError(t, r.run(context.Background(), strings.NewReader("9\nfrobnicate\nw curl\nn\nsave\n")))

	got := out.String()
	assert.Contains(t, got, "error: no answer 9")
	assert.Contains(t, got, `unknown command "frobnicate"`)
	assert.Contains(t, got, "usage: w <id> <value>")
	assert.Contains(t, got, "nothing to do", "next without a selection")
	assert.Contains(t, got, "no session store configured")
}

func TestREPLSave(t *testing.T) {
	r, out := newTestREPL(t)
	var saved []string
	r.save = func(_ context.Context, name string) error {
		saved = append(saved, name)
		return nil
	}

	require.NoError(t, r.run(context.Background(), strings.NewReader("1\nc\nsave mine\nsave\n")))
	assert.Equal(t, []string{"mine", "mine"}, saved)
	assert.Contains(t, out.String(), "saved mine")
}

func TestREPLIntensityAfterCommit(t *testing.T) {
	r, _ := newTestREPL(t)

	for _, line := range []string{"j effects-rim-lighting", "1", "i 0.8", "c", "i 1.4"} {
		_, err := r.exec(context.Background(), line)
		require.NoError(t, err, line)
	}
	assert.Equal(t, "subtle lighting effect, (rim lighting:1.40)", r.e.PreviewPrompt().Prompt)
}

func TestWriteRecords(t *testing.T) {
	records := []graph.Node{{
		ID:       "root",
		Question: "What are you imagining?",
		Answers:  []graph.Answer{{ID: "a", Label: "A character", Next: "b"}},
	}}

	var buf bytes.Buffer
	require.NoError(t, writeRecords(&buf, "json", records))
	var fromJSON []graph.Node
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fromJSON))
	assert.Equal(t, records, fromJSON)

	buf.Reset()
	require.NoError(t, writeRecords(&buf, "yaml", records))
	var fromYAML []graph.Node
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	assert.Equal(t, records, fromYAML)

	buf.Reset()
	require.NoError(t, writeRecords(&buf, "toml", records))
	fromTOML, err := graph.DecodeFile("bank.toml", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, records, fromTOML)

	assert.Error(t, writeRecords(&buf, "xml", records))
}

func TestFlattenMap(t *testing.T) {
	got := flattenMap("", map[string]interface{}{
		"log":   map[string]interface{}{"level": "debug"},
		"graph": map[string]interface{}{"bank_paths": []interface{}{"a", "b"}},
	})
	assert.Equal(t, map[string]interface{}{
		"log.level":        "debug",
		"graph.bank_paths": "a, b",
	}, got)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
