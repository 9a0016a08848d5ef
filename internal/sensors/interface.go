package sensors

import "codeberg.org/mutker/syshealth/internal/metric"

// Snapshot aggregates directly-measured sensor values. Every leaf is a
// metric.Value so a dead sensor is never mistaken for a zero reading.
type Snapshot struct {
	GPU   GPUSensors    `json:"gpu"`
	CPU   CPUSensors    `json:"cpu"`
	Disks []DiskSensors `json:"disks"`
}

// GPUSensors holds readings for the dedicated GPU, if one exists.
type GPUSensors struct {
	Name        metric.Value[string]  `json:"name"`
	VRAMTotalMB metric.Value[float64] `json:"vramTotalMB"`
	VRAMUsedMB  metric.Value[float64] `json:"vramUsedMB"`
	LoadPercent metric.Value[float64] `json:"gpuLoadPercent"`
	TempC       metric.Value[float64] `json:"gpuTempC"`
}

// CPUSensors holds package-level CPU readings.
type CPUSensors struct {
	TempC       metric.Value[float64] `json:"cpuTempC"`
	LoadPercent metric.Value[float64] `json:"cpuLoadPercent"`
}

// DiskSensors holds per-disk readings.
type DiskSensors struct {
	Name  metric.Value[string]  `json:"name"`
	TempC metric.Value[float64] `json:"tempC"`
}

// Provider produces a sensor snapshot. Implementations must never fail
// outright; unreadable sensors surface as unavailable leaves.
type Provider interface {
	Snapshot() Snapshot
}

// HasDedicatedGPU reports whether a dedicated GPU was detected. The
// scoring engine forces the GPU section healthy when none exists.
func (s Snapshot) HasDedicatedGPU() bool {
	name, ok := s.GPU.Name.Get()
	return ok && name != ""
}
