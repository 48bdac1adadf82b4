package reaction

import (
	"justicemango/internal/capture"
	"justicemango/internal/npc"
)

// UnknownNPC is the reaction key used when a forced report has no violator.
const UnknownNPC = "unknown"

type Violation struct {
	NPCID         string   `json:"npc_id"`
	ViolationType string   `json:"violation_type"`
	InstanceID    string   `json:"instance_id"`
	NPC           *npc.NPC `json:"-"`
}

type Detection struct {
	IsValidReport bool        `json:"is_valid_report"`
	Violations    []Violation `json:"violations"`
}

// IsFalseReport reports a capture that hit nothing currently violating.
func (d Detection) IsFalseReport() bool {
	return !d.IsValidReport && len(d.Violations) == 0
}

// PrimaryNPCID returns the id of the first detected violator. A capture of
// several violators is scored once, against this NPC.
func (d Detection) PrimaryNPCID() string {
	if len(d.Violations) == 0 {
		return UnknownNPC
	}
	return d.Violations[0].NPCID
}

// Detect keeps the captured targets that are violating at capture time.
func Detect(res capture.Result) Detection {
	var d Detection
	if !res.Success || len(res.Targets) == 0 {
		return d
	}
	for _, n := range res.Targets {
		if n == nil || n.Controller == nil || !n.Controller.CanBeCaptured() {
			continue
		}
		d.Violations = append(d.Violations, Violation{
			NPCID:         n.NPCID(),
			ViolationType: n.ViolationType(),
			InstanceID:    n.InstanceID,
			NPC:           n,
		})
	}
	d.IsValidReport = len(d.Violations) > 0
	return d
}
