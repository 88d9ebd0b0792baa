package cli_test

import (
	"bytes"
	"testing"

	"github.com/katalvlaran/qmlkit/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := cli.NewRenderer(&buf, " MD ", 0)
	require.NoError(t, err)
	assert.Equal(t, cli.FormatMarkdown, r.Format())

	r, err = cli.NewRenderer(&buf, "", 3)
	require.NoError(t, err)
	assert.Equal(t, cli.FormatTable, r.Format())
	assert.Equal(t, "3.14", r.Float(3.14159))

	_, err = cli.NewRenderer(&buf, "xml", 0)
	assert.Error(t, err)
}

func TestRenderer_GridJSONFallsBackToRows(t *testing.T) {
	var buf bytes.Buffer
	r, err := cli.NewRenderer(&buf, cli.FormatJSON, 0)
	require.NoError(t, err)
	require.NoError(t, r.Render(cli.Grid{Rows: [][]float64{{1, 2}, {3, 4}}}))
	assert.JSONEq(t, "[[1,2],[3,4]]", buf.String())
}

func TestRenderer_CSV(t *testing.T) {
	var buf bytes.Buffer
	r, err := cli.NewRenderer(&buf, cli.FormatCSV, 4)
	require.NoError(t, err)
	require.NoError(t, r.Render(cli.Grid{
		Title:  "ignored in csv",
		Labels: []string{"a", "b"},
		Rows:   [][]float64{{1.23456, 2}, {3, 4}},
	}))
	assert.Contains(t, buf.String(), "a,1.235,2")
	assert.Contains(t, buf.String(), "b,3,4")
	assert.NotContains(t, buf.String(), "ignored")
}
