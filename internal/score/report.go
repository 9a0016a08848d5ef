// Package score implements the rules-based health scoring engine: a
// pure function from a raw scan blob, a sensor snapshot and a collector
// error list to a fully auditable 0-100 health report with an
// independent confidence model.
package score

import "time"

// Section identifiers, in fixed priority order.
const (
	SectionCPU       = "CPU"
	SectionGPU       = "GPU"
	SectionRAM       = "RAM"
	SectionStorage   = "StorageSystem"
	SectionOS        = "OS"
	SectionSecurity  = "Security"
	SectionStability = "Stability"
	SectionDrivers   = "Drivers"
	SectionNetwork   = "Network"
	SectionDevices   = "Devices"
	SectionUpdates   = "Updates"
)

// SectionOrder is the canonical evaluation and report order.
var SectionOrder = []string{
	SectionCPU, SectionGPU, SectionRAM, SectionStorage, SectionOS,
	SectionSecurity, SectionStability, SectionDrivers, SectionNetwork,
	SectionDevices, SectionUpdates,
}

// Status is the per-section health status.
type Status string

const (
	StatusUnknown  Status = "Unknown"
	StatusOK       Status = "OK"
	StatusWarning  Status = "Warning"
	StatusDegraded Status = "Degraded"
	StatusCritical Status = "Critical"
)

// statusRank orders statuses by severity for forced-status resolution.
func statusRank(s Status) int {
	switch s {
	case StatusOK:
		return 1
	case StatusWarning:
		return 2
	case StatusDegraded:
		return 3
	case StatusCritical:
		return 4
	default:
		return 0
	}
}

// AppliedRule is the immutable audit record of one fired rule.
type AppliedRule struct {
	RuleID      string `json:"ruleId"`
	Description string `json:"description"`
	Impact      int    `json:"impact"`
}

// RawInput is one key/value pair of evidence a section consumed, in
// evaluation order.
type RawInput struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SectionScore is the scored result of one health domain.
type SectionScore struct {
	SectionName        string        `json:"sectionName"`
	Weight             float64       `json:"weight"`
	Score              int           `json:"score"`
	Status             Status        `json:"status"`
	RawInputs          []RawInput    `json:"rawInputs"`
	AppliedRules       []AppliedRule `json:"appliedRules"`
	RecommendedActions []string      `json:"recommendedActions"`
}

// ConfidenceModel describes how trustworthy the collected data is,
// independently of how healthy the machine scored.
type ConfidenceModel struct {
	BaseScore        int      `json:"baseScore"`
	ConfidenceScore  int      `json:"confidenceScore"`
	ConfidenceLevel  string   `json:"confidenceLevel"`
	MissingSignals   []string `json:"missingSignals"`
	CollectorErrors  []string `json:"collectorErrors"`
	CollectionFailed bool     `json:"collectionFailed"`
}

// Confidence levels.
const (
	ConfidenceReliable = "Fiable"
	ConfidenceMedium   = "Moyen"
	ConfidenceLow      = "Faible"
)

// Report is the complete scoring output, the stable contract consumed
// by the presentation layer.
type Report struct {
	ComputedAt              time.Time          `json:"computedAt"`
	GlobalHealthScore       int                `json:"globalHealthScore"`
	GlobalHealthGrade       string             `json:"globalHealthGrade"`
	GlobalHealthLabel       string             `json:"globalHealthLabel"`
	HardCapApplied          *string            `json:"hardCapApplied"`
	Weights                 map[string]float64 `json:"weights"`
	Sections                []SectionScore     `json:"sections"`
	CriticalPenalties       []AppliedRule      `json:"criticalPenalties"`
	Confidence              ConfidenceModel    `json:"confidence"`
	CollectionComplete      bool               `json:"collectionComplete"`
	CollectionFailureReason *string            `json:"collectionFailureReason"`
}

// Grade maps a health score to its letter grade.
func Grade(score int) string {
	switch {
	case score >= 95:
		return "A+"
	case score >= 90:
		return "A"
	case score >= 80:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}

// Label maps a health score to its human-readable label.
func Label(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 70:
		return "Bon"
	case score >= 50:
		return "À surveiller"
	case score >= 30:
		return "Dégradé"
	default:
		return "Critique"
	}
}

// statusForScore is the section-status ladder.
func statusForScore(score int) Status {
	switch {
	case score >= 90:
		return StatusOK
	case score >= 70:
		return StatusWarning
	case score >= 50:
		return StatusDegraded
	default:
		return StatusCritical
	}
}
