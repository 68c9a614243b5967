// internal/scoring/matrix.go
package scoring

// Phase is the coarse readiness band used for labeling and the hint matrix.
type Phase string

const (
	PhaseSeedling Phase = "seedling"
	PhaseBuilding Phase = "building"
	PhaseScaling  Phase = "scaling"
)

// AdoptionStage buckets the adoption axis with the same thresholds as Phase.
type AdoptionStage string

const (
	StageNone     AdoptionStage = "none"
	StagePartial  AdoptionStage = "partial"
	StageEmbedded AdoptionStage = "embedded"
)

// PhaseFor maps a ready score to its band. Bands are inclusive on both ends:
// 0-39 seedling, 40-69 building, 70-100 scaling.
func PhaseFor(ready int) Phase {
	switch {
	case ready >= 70:
		return PhaseScaling
	case ready >= 40:
		return PhaseBuilding
	default:
		return PhaseSeedling
	}
}

// StageFor maps an adoption level to its band using the identical split.
func StageFor(adoption int) AdoptionStage {
	switch {
	case adoption >= 70:
		return StageEmbedded
	case adoption >= 40:
		return StagePartial
	default:
		return StageNone
	}
}

type matrixKey struct {
	phase Phase
	stage AdoptionStage
}

// The nine recommendations are fixed content keyed by (readiness band,
// adoption band), never computed.
var matrixHints = map[matrixKey]string{
	{PhaseSeedling, StageNone}:     "Lay the groundwork and start with a small pilot.",
	{PhaseSeedling, StagePartial}:  "Share early wins and set up the structure for a full rollout.",
	{PhaseSeedling, StageEmbedded}: "Put governance in place so existing usage stays safe and consistent.",
	{PhaseBuilding, StageNone}:     "Introduce AI into approachable work like daily reports first.",
	{PhaseBuilding, StagePartial}:  "Build shared templates and measure impact to widen adoption.",
	{PhaseBuilding, StageEmbedded}: "Standardize operations and run recurring training to raise the floor.",
	{PhaseScaling, StageNone}:      "Roll out decisively in the departments with the highest expected impact.",
	{PhaseScaling, StagePartial}:   "Optimize across the whole company and manage ROI.",
	{PhaseScaling, StageEmbedded}:  "Step into automation and advanced applications to create new value.",
}

// MatrixHint returns the recommendation for the given readiness and adoption
// scores.
func MatrixHint(ready, adoption int) string {
	return matrixHints[matrixKey{PhaseFor(ready), StageFor(adoption)}]
}
