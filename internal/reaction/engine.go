package reaction

import (
	"justicemango/internal/random"
)

const (
	BasePhotoScore = 100

	backlashFlame      = 10.0
	successFlame       = -5.0
	falseReportFlame   = 15.0
	maxFollowerGain    = 10
	defaultMessage     = "reported"
	emptyListMessage   = "reported a violation"
	falseReportMessage = "false report"
)

// ReactionData is the entry chosen for one report.
type ReactionData struct {
	Category            Category `json:"category,omitempty"`
	LikeMin             int      `json:"like_min"`
	LikeMax             int      `json:"like_max"`
	RetweetProbability  float64  `json:"retweet_probability"`
	BacklashProbability float64  `json:"backlash_probability"`
	Message             string   `json:"message"`
}

// DefaultReaction is used whenever no table entry applies.
func DefaultReaction() ReactionData {
	return ReactionData{
		LikeMin:             5,
		LikeMax:             15,
		RetweetProbability:  0.3,
		BacklashProbability: 0.1,
		Message:             defaultMessage,
	}
}

// Outcome is the stat change produced by one resolved capture.
type Outcome struct {
	NPCID            string       `json:"npc_id"`
	Valid            bool         `json:"valid"`
	LikesGained      int          `json:"likes_gained"`
	FollowersGained  int          `json:"followers_gained"`
	FlameGaugeChange float64      `json:"flame_gauge_change"`
	IsBacklash       bool         `json:"is_backlash"`
	Message          string       `json:"message"`
	Reaction         ReactionData `json:"reaction"`
}

// ScoreDelta is what the session adds to the score. It may be negative.
func (o Outcome) ScoreDelta() int { return BasePhotoScore + o.LikesGained }

// Engine resolves reports against a reaction table.
type Engine struct {
	table *Table
	rng   random.Source
}

func NewEngine(table *Table, rng random.Source) *Engine {
	if table == nil {
		table = EmptyTable()
	}
	return &Engine{table: table, rng: rng}
}

func (e *Engine) Table() *Table { return e.table }

// ReactionFor picks the reaction entry for npcID. A roll below the
// report_success probability selects report_success; otherwise
// excessive_justice is used when the NPC defines it, else the default.
func (e *Engine) ReactionFor(npcID string) ReactionData {
	def, ok := e.table.Lookup(npcID)
	if !ok {
		return DefaultReaction()
	}

	roll := e.rng.Float64()
	if r, ok := def.Reactions[ReportSuccess]; ok && roll < r.Probability {
		return e.fromEntry(ReportSuccess, r)
	}
	if r, ok := def.Reactions[ExcessiveJustice]; ok {
		return e.fromEntry(ExcessiveJustice, r)
	}
	return DefaultReaction()
}

func (e *Engine) fromEntry(cat Category, r Reaction) ReactionData {
	msg := emptyListMessage
	if len(r.Messages) > 0 {
		msg = r.Messages[e.rng.Intn(len(r.Messages))]
	}
	return ReactionData{
		Category:            cat,
		LikeMin:             r.LikeRange[0],
		LikeMax:             r.LikeRange[1],
		RetweetProbability:  r.RetweetProbability,
		BacklashProbability: r.BacklashProbability,
		Message:             msg,
	}
}

// Resolve computes the outcome of a report on npcID.
func (e *Engine) Resolve(npcID string, valid bool) Outcome {
	if !valid {
		return Outcome{
			NPCID:            npcID,
			LikesGained:      -e.rng.IntRange(10, 30),
			FollowersGained:  -e.rng.IntRange(10, 20),
			FlameGaugeChange: falseReportFlame,
			IsBacklash:       true,
			Message:          falseReportMessage,
		}
	}

	data := e.ReactionFor(npcID)
	out := Outcome{
		NPCID:       npcID,
		Valid:       true,
		LikesGained: e.rng.IntRange(data.LikeMin, data.LikeMax),
		Message:     data.Message,
		Reaction:    data,
	}
	if e.rng.Float64() < data.BacklashProbability {
		out.IsBacklash = true
		out.FlameGaugeChange = backlashFlame
		out.FollowersGained = -e.rng.IntRange(5, 15)
	} else {
		out.FlameGaugeChange = successFlame
		out.FollowersGained = e.rng.IntRange(5, maxFollowerGain)
	}
	return out
}
