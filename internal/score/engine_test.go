package score_test

import (
	"encoding/json"
	"testing"
	"time"

	"codeberg.org/mutker/syshealth/internal/metric"
	"codeberg.org/mutker/syshealth/internal/scan"
	"codeberg.org/mutker/syshealth/internal/score"
	"codeberg.org/mutker/syshealth/internal/sensors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nominalBlob models a healthy machine with every raw section present.
func nominalBlob() *scan.Blob {
	return &scan.Blob{Sections: map[string]scan.Section{
		scan.SectionCPU: {Status: scan.StatusOK, Data: map[string]any{
			"usagePercent": 12.0,
		}},
		scan.SectionMemory: {Status: scan.StatusOK, Data: map[string]any{
			"totalGB":      32.0,
			"usagePercent": 40.0,
		}},
		scan.SectionStorage: {Status: scan.StatusOK, Data: map[string]any{
			"systemVolume": map[string]any{"freePercent": 25.0, "freeGB": 240.0},
			"disks":        []any{map[string]any{"tempC": 38.0}},
		}},
		scan.SectionSecurity: {Status: scan.StatusOK, Data: map[string]any{
			"defenderEnabled":     true,
			"thirdPartyAntivirus": false,
			"threats":             []any{},
		}},
		scan.SectionEventLogs: {Status: scan.StatusOK, Data: map[string]any{
			"systemErrors7d":      0,
			"applicationErrors7d": 0,
			"bsodCount30d":        0,
		}},
		scan.SectionSmartDetails: {Status: scan.StatusOK, Data: map[string]any{
			"pendingSectors":     0,
			"reallocatedSectors": 0,
		}},
		scan.SectionPerformanceCounters: {Status: scan.StatusOK, Data: map[string]any{
			"sampled": true,
		}},
		scan.SectionDevicesDrivers: {Status: scan.StatusOK, Data: map[string]any{
			"errorDeviceCount":        0,
			"criticalDeviceErrors":    0,
			"nonCriticalDeviceErrors": 0,
		}},
		scan.SectionReliabilityHistory: {Status: scan.StatusOK, Data: map[string]any{
			"crashCount": 0,
		}},
		scan.SectionWindowsUpdate: {Status: scan.StatusOK, Data: map[string]any{
			"pendingCount": 0,
		}},
		scan.SectionOS: {Status: scan.StatusOK, Data: map[string]any{
			"name":    "Windows 11 Pro",
			"version": "23H2",
		}},
		scan.SectionNetwork: {Status: scan.StatusOK, Data: map[string]any{
			"activeAdapter": "Ethernet",
			"linkSpeedMbps": 1000.0,
		}},
	}}
}

func coolSnapshot() sensors.Snapshot {
	return sensors.Snapshot{
		CPU: sensors.CPUSensors{
			TempC:       metric.Some(48.0),
			LoadPercent: metric.Some(12.0),
		},
		GPU: sensors.GPUSensors{
			Name:        metric.None[string]("no dedicated GPU detected"),
			TempC:       metric.None[float64]("no dedicated GPU detected"),
			LoadPercent: metric.None[float64]("no dedicated GPU detected"),
			VRAMTotalMB: metric.None[float64]("no dedicated GPU detected"),
			VRAMUsedMB:  metric.None[float64]("no dedicated GPU detected"),
		},
	}
}

func sectionByName(t *testing.T, r score.Report, name string) score.SectionScore {
	t.Helper()
	for _, s := range r.Sections {
		if s.SectionName == name {
			return s
		}
	}
	t.Fatalf("section %s missing from report", name)

	return score.SectionScore{}
}

func TestWeightsSumTo100(t *testing.T) {
	weights := score.Weights()
	require.Len(t, weights, len(score.SectionOrder))

	total := 0.0
	for _, w := range weights {
		total += w
	}
	assert.InDelta(t, 100.0, total, 0.0001)

	// Decreasing priority order, CPU heaviest.
	prev := weights[score.SectionOrder[0]]
	for _, name := range score.SectionOrder[1:] {
		assert.LessOrEqual(t, weights[name], prev)
		prev = weights[name]
	}
}

func TestHealthyMachineScoresHigh(t *testing.T) {
	report := score.ComputeScore(nominalBlob(), coolSnapshot(), nil)

	assert.Equal(t, 100, report.GlobalHealthScore)
	assert.Equal(t, "A+", report.GlobalHealthGrade)
	assert.Equal(t, "Excellent", report.GlobalHealthLabel)
	assert.Nil(t, report.HardCapApplied)
	assert.True(t, report.CollectionComplete)
	assert.Nil(t, report.CollectionFailureReason)
	assert.Equal(t, score.ConfidenceReliable, report.Confidence.ConfidenceLevel)

	for _, s := range report.Sections {
		assert.NotEqual(t, score.StatusUnknown, s.Status, s.SectionName)
	}
}

func TestHotLoadedCPUScenario(t *testing.T) {
	snapshot := coolSnapshot()
	snapshot.CPU.TempC = metric.Some(92.0)
	snapshot.CPU.LoadPercent = metric.Some(98.0)

	report := score.ComputeScore(nominalBlob(), snapshot, nil)

	cpu := sectionByName(t, report, score.SectionCPU)
	assert.Equal(t, 45, cpu.Score)
	assert.Equal(t, score.StatusCritical, cpu.Status)

	gpu := sectionByName(t, report, score.SectionGPU)
	assert.Equal(t, 100, gpu.Score)
	assert.Equal(t, score.StatusOK, gpu.Status)

	// CPU raw weight 20 of 114: (45*20 + 100*94) / 114 rounds to 90.
	assert.Equal(t, 90, report.GlobalHealthScore)
	assert.Nil(t, report.HardCapApplied)
}

func TestBSODCapsScoreAtExactly50(t *testing.T) {
	blob := nominalBlob()
	blob.Sections[scan.SectionEventLogs] = scan.Section{Status: scan.StatusOK, Data: map[string]any{
		"systemErrors7d":      0,
		"applicationErrors7d": 0,
		"bsodCount30d":        1,
	}}

	report := score.ComputeScore(blob, coolSnapshot(), nil)

	stability := sectionByName(t, report, score.SectionStability)
	assert.Equal(t, 60, stability.Score)
	assert.Equal(t, score.StatusCritical, stability.Status)

	assert.Equal(t, 50, report.GlobalHealthScore)
	require.NotNil(t, report.HardCapApplied)
	assert.Contains(t, *report.HardCapApplied, "BSOD")
}

func TestDefenderOffCapsScoreAt40(t *testing.T) {
	blob := nominalBlob()
	blob.Sections[scan.SectionSecurity] = scan.Section{Status: scan.StatusOK, Data: map[string]any{
		"defenderEnabled":     false,
		"thirdPartyAntivirus": false,
		"threats":             []any{},
	}}

	report := score.ComputeScore(blob, coolSnapshot(), nil)

	security := sectionByName(t, report, score.SectionSecurity)
	assert.Equal(t, 50, security.Score)
	assert.Equal(t, score.StatusCritical, security.Status)

	assert.Equal(t, 40, report.GlobalHealthScore)
	require.NotNil(t, report.HardCapApplied)
}

func TestLowestHardCapWins(t *testing.T) {
	blob := nominalBlob()
	blob.Sections[scan.SectionSecurity] = scan.Section{Status: scan.StatusOK, Data: map[string]any{
		"defenderEnabled":     false,
		"thirdPartyAntivirus": false,
	}}
	blob.Sections[scan.SectionSmartDetails] = scan.Section{Status: scan.StatusOK, Data: map[string]any{
		"pendingSectors":     0,
		"reallocatedSectors": 12,
	}}

	report := score.ComputeScore(blob, coolSnapshot(), nil)

	assert.Equal(t, 35, report.GlobalHealthScore)
	require.NotNil(t, report.HardCapApplied)
	assert.Contains(t, *report.HardCapApplied, "SMART")
}

func TestZeroInputsDegradeConfidenceNotHealth(t *testing.T) {
	report := score.ComputeScore(nil, sensors.Snapshot{}, []string{"cpuThrottle: counter sampling failed"})

	for _, s := range report.Sections {
		if s.SectionName == score.SectionGPU {
			// No GPU detected is a finding, not a gap.
			assert.Equal(t, score.StatusOK, s.Status)
			continue
		}
		assert.Equal(t, score.StatusUnknown, s.Status, s.SectionName)
	}

	// Health stays near 100: zero evidence is not zero health.
	assert.Equal(t, 100, report.GlobalHealthScore)

	// Confidence carries the doubt: -10 CPU temp, -30 counters, -5 error.
	assert.Equal(t, 55, report.Confidence.ConfidenceScore)
	assert.Equal(t, score.ConfidenceLow, report.Confidence.ConfidenceLevel)
	assert.True(t, report.Confidence.CollectionFailed)

	assert.False(t, report.CollectionComplete)
	require.NotNil(t, report.CollectionFailureReason)
	assert.Contains(t, *report.CollectionFailureReason, "performance-counter")
	assert.Contains(t, *report.CollectionFailureReason, "cpuThrottle")
}

func TestLowFreeGBAloneDegradesStorage(t *testing.T) {
	blob := nominalBlob()
	blob.Sections[scan.SectionStorage] = scan.Section{Status: scan.StatusOK, Data: map[string]any{
		// Some volumes only report absolute free space.
		"systemVolume": map[string]any{"freeGB": 10.0},
	}}

	report := score.ComputeScore(blob, coolSnapshot(), nil)

	storage := sectionByName(t, report, score.SectionStorage)
	assert.Equal(t, 75, storage.Score)
	assert.Equal(t, score.StatusDegraded, storage.Status)

	require.Len(t, storage.AppliedRules, 1)
	assert.Equal(t, score.RuleStorageFreeDegraded, storage.AppliedRules[0].RuleID)
}

func TestUnknownSectionExcludedFromAverage(t *testing.T) {
	blob := nominalBlob()
	delete(blob.Sections, scan.SectionMemory)

	report := score.ComputeScore(blob, coolSnapshot(), nil)

	ram := sectionByName(t, report, score.SectionRAM)
	assert.Equal(t, score.StatusUnknown, ram.Status)

	// All scoreable sections at 100: an Unknown section must not drag
	// the average down.
	assert.Equal(t, 100, report.GlobalHealthScore)
}

func TestSectionScoreInvariant(t *testing.T) {
	snapshot := coolSnapshot()
	snapshot.CPU.TempC = metric.Some(92.0)
	snapshot.CPU.LoadPercent = metric.Some(98.0)

	blob := nominalBlob()
	blob.Sections[scan.SectionSmartDetails] = scan.Section{Status: scan.StatusOK, Data: map[string]any{
		"pendingSectors":     8,
		"reallocatedSectors": 12,
	}}

	report := score.ComputeScore(blob, snapshot, nil)

	for _, s := range report.Sections {
		assert.GreaterOrEqual(t, s.Score, 0, s.SectionName)
		assert.LessOrEqual(t, s.Score, 100, s.SectionName)

		total := 0
		for _, r := range s.AppliedRules {
			total += r.Impact
		}
		if total < 0 {
			total = 0
		}
		if total > 100 {
			total = 100
		}
		assert.Equal(t, 100-total, s.Score, s.SectionName)
	}
}

func TestIdempotentExceptComputedAt(t *testing.T) {
	blob := nominalBlob()
	snapshot := coolSnapshot()

	first := score.ComputeScore(blob, snapshot, []string{"netQuality: gateway unreachable"})
	second := score.ComputeScore(blob, snapshot, []string{"netQuality: gateway unreachable"})

	first.ComputedAt = time.Time{}
	second.ComputedAt = time.Time{}

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestGradeAndLabelLadders(t *testing.T) {
	cases := []struct {
		score int
		grade string
		label string
	}{
		{100, "A+", "Excellent"},
		{95, "A+", "Excellent"},
		{90, "A", "Excellent"},
		{80, "B+", "Bon"},
		{70, "B", "Bon"},
		{60, "C", "À surveiller"},
		{50, "D", "À surveiller"},
		{40, "F", "Dégradé"},
		{10, "F", "Critique"},
	}

	for _, c := range cases {
		assert.Equal(t, c.grade, score.Grade(c.score), "score %d", c.score)
		assert.Equal(t, c.label, score.Label(c.score), "score %d", c.score)
	}
}
