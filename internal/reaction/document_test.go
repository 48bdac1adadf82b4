package reaction

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
npcs:
  - id: litterer
    displayName: Litterer
    violationType: littering
    reactions:
      report_success:
        probability: 0.5
        like_range: [30, 10]
        backlash_probability: 0.2
        messages: ["Trash on the street."]
      excessive_justice:
        probability: 0.5
        like_range: [1]
global_settings:
  time_limit_seconds: 90
  combo_multiplier: 2
`

func TestParseYAMLRepairsEntries(t *testing.T) {
	table, err := Parse([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)

	def, ok := table.Lookup("litterer")
	require.True(t, ok)
	assert.Equal(t, "littering", def.ViolationType)
	assert.Equal(t, []int{10, 30}, def.Reactions[ReportSuccess].LikeRange)
	_, kept := def.Reactions[ExcessiveJustice]
	assert.False(t, kept)
	require.Len(t, table.Warnings(), 1)
	assert.Contains(t, table.Warnings()[0], "litterer.excessive_justice")

	assert.Equal(t, 90, table.Global().TimeLimitSeconds)
	assert.Equal(t, 2.0, table.Global().ComboMultiplier)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("{not json"), FormatJSON)
	assert.Error(t, err)

	_, err = Parse([]byte("{}"), Format("toml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestBuiltinTable(t *testing.T) {
	table := Builtin()
	assert.Equal(t, []string{"cyclist_student", "delivery_driver", "pigeon_feeder", "street_smoker", "stroller_mother"}, table.IDs())
	assert.Empty(t, table.Warnings())
	assert.Equal(t, 180, table.Global().TimeLimitSeconds)
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "npcs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	_, err = Load(filepath.Join(dir, "npcs.txt"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	assert.Equal(t, 5, LoadOrDefault("", logger).Len())

	table := LoadOrDefault(filepath.Join(t.TempDir(), "missing.json"), logger)
	require.NotNil(t, table)
	assert.Equal(t, 0, table.Len())
	assert.Contains(t, buf.String(), "using default reactions")
}
