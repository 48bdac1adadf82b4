package reaction

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type Category string

const (
	ReportSuccess    Category = "report_success"
	ReportFailure    Category = "report_failure"
	ExcessiveJustice Category = "excessive_justice"
	Sympathy         Category = "sympathy"
	ReverseBacklash  Category = "reverse_backlash"
	Indifference     Category = "indifference"
	LightBacklash    Category = "light_backlash"
)

// Reaction is one category entry of an NPC's reaction table.
type Reaction struct {
	Probability         float64  `json:"probability" yaml:"probability"`
	LikeRange           []int    `json:"like_range" yaml:"like_range"`
	RetweetProbability  float64  `json:"retweet_probability" yaml:"retweet_probability"`
	BacklashProbability float64  `json:"backlash_probability" yaml:"backlash_probability"`
	SuspensionRisk      float64  `json:"suspension_risk" yaml:"suspension_risk"`
	Messages            []string `json:"messages" yaml:"messages"`
}

type Definition struct {
	ID            string                `json:"id" yaml:"id"`
	DisplayName   string                `json:"displayName" yaml:"displayName"`
	ViolationType string                `json:"violationType" yaml:"violationType"`
	Description   string                `json:"description" yaml:"description"`
	Reactions     map[Category]Reaction `json:"reactions" yaml:"reactions"`
}

type GlobalSettings struct {
	BaseFollowerGain    int     `json:"base_follower_gain" yaml:"base_follower_gain"`
	FlameGaugeThreshold float64 `json:"flame_gauge_threshold" yaml:"flame_gauge_threshold"`
	SuspensionThreshold float64 `json:"suspension_threshold" yaml:"suspension_threshold"`
	ComboMultiplier     float64 `json:"combo_multiplier" yaml:"combo_multiplier"`
	TimeLimitSeconds    int     `json:"time_limit_seconds" yaml:"time_limit_seconds"`
}

// Document is the on-disk NPC data file.
type Document struct {
	NPCs           []Definition   `json:"npcs" yaml:"npcs"`
	GlobalSettings GlobalSettings `json:"global_settings" yaml:"global_settings"`
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var ErrUnknownFormat = errors.New("unknown npc data format")

// FormatFromPath picks the decoder by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yml", ".yaml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Table is the read-only lookup built from a Document.
type Table struct {
	byID     map[string]Definition
	global   GlobalSettings
	warnings []string
}

// EmptyTable has no NPC entries; every lookup falls back to the default reaction.
func EmptyTable() *Table {
	return &Table{byID: map[string]Definition{}}
}

// NewTable indexes doc by NPC id. Inverted like ranges are swapped; entries
// whose like range does not hold exactly two values are dropped and noted
// in Warnings.
func NewTable(doc Document) *Table {
	t := &Table{byID: make(map[string]Definition, len(doc.NPCs)), global: doc.GlobalSettings}
	for _, def := range doc.NPCs {
		if def.ID == "" {
			t.warnings = append(t.warnings, "npc entry without id skipped")
			continue
		}
		clean := make(map[Category]Reaction, len(def.Reactions))
		for cat, r := range def.Reactions {
			if len(r.LikeRange) != 2 {
				t.warnings = append(t.warnings, fmt.Sprintf("%s.%s: like_range needs 2 values, got %d", def.ID, cat, len(r.LikeRange)))
				continue
			}
			lr := []int{r.LikeRange[0], r.LikeRange[1]}
			if lr[0] > lr[1] {
				lr[0], lr[1] = lr[1], lr[0]
			}
			r.LikeRange = lr
			r.Messages = append([]string(nil), r.Messages...)
			clean[cat] = r
		}
		def.Reactions = clean
		if _, dup := t.byID[def.ID]; dup {
			t.warnings = append(t.warnings, fmt.Sprintf("duplicate npc id %s, first entry kept", def.ID))
			continue
		}
		t.byID[def.ID] = def
	}
	sort.Strings(t.warnings)
	return t
}

// Lookup returns the definition for npcID.
func (t *Table) Lookup(npcID string) (Definition, bool) {
	if t == nil {
		return Definition{}, false
	}
	def, ok := t.byID[npcID]
	return def, ok
}

func (t *Table) Global() GlobalSettings {
	if t == nil {
		return GlobalSettings{}
	}
	return t.global
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byID)
}

// IDs returns every NPC id in sorted order.
func (t *Table) IDs() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.byID))
	for id := range t.byID {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Warnings lists entries that were repaired or dropped while building the table.
func (t *Table) Warnings() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.warnings...)
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (*Table, error) {
	var doc Document
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return NewTable(doc), nil
}

// Load reads an NPC data file, choosing the decoder from its extension.
func Load(path string) (*Table, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read npc data: %w", err)
	}
	t, err := Parse(b, format)
	if err != nil {
		return nil, fmt.Errorf("parse npc data %s: %w", path, err)
	}
	return t, nil
}

// LoadOrDefault never fails. An empty path yields the built-in table; a
// file that cannot be read or parsed yields an empty table, so every
// reaction falls back to the default.
func LoadOrDefault(path string, logger *log.Logger) *Table {
	if logger == nil {
		logger = log.Default()
	}
	if path == "" {
		return Builtin()
	}
	t, err := Load(path)
	if err != nil {
		logger.Printf("[reaction] %v; using default reactions", err)
		return EmptyTable()
	}
	for _, w := range t.Warnings() {
		logger.Printf("[reaction] %s: %s", path, w)
	}
	logger.Printf("[reaction] loaded %d npc definitions from %s", t.Len(), path)
	return t
}

//go:embed builtin.json
var builtinData []byte

// Builtin returns the table shipped with the binary.
func Builtin() *Table {
	t, err := Parse(builtinData, FormatJSON)
	if err != nil {
		return EmptyTable()
	}
	return t
}
