// Package scan models the raw OS scan blob produced by the external
// collection script. The blob is a loosely-typed tree queried path by
// path; a missing path is an unavailable metric, never an error.
package scan

import (
	"encoding/json"
	"os"

	"codeberg.org/mutker/syshealth/internal/errors"
)

// Section statuses reported by the raw collector.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
	StatusEmpty  = "empty"
)

// Well-known section names in the raw blob.
const (
	SectionCPU                 = "CPU"
	SectionMemory              = "Memory"
	SectionStorage             = "Storage"
	SectionSecurity            = "Security"
	SectionEventLogs           = "EventLogs"
	SectionSmartDetails        = "SmartDetails"
	SectionPerformanceCounters = "PerformanceCounters"
	SectionDevicesDrivers      = "DevicesDrivers"
	SectionReliabilityHistory  = "ReliabilityHistory"
	SectionWindowsUpdate       = "WindowsUpdate"
	SectionOS                  = "OS"
	SectionNetwork             = "Network"
)

// Blob is the raw scan tree. A nil Blob is valid and behaves as a blob
// with no sections.
type Blob struct {
	Sections map[string]Section `json:"sections"`
}

// Section is one domain subtree of the raw blob.
type Section struct {
	Status string         `json:"status"`
	Data   map[string]any `json:"data"`
}

// Parse decodes a raw scan blob from JSON.
func Parse(data []byte) (*Blob, error) {
	errFactory := errors.New()

	var b Blob
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, errFactory.Wrap(errors.ErrParseScan, err)
	}

	return &b, nil
}

// Load reads and decodes a raw scan blob from a file.
func Load(path string) (*Blob, error) {
	errFactory := errors.New()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrReadScan, err)
	}

	return Parse(data)
}

// Section returns a probe rooted at the named section's data tree.
func (b *Blob) Section(name string) Probe {
	if b == nil || b.Sections == nil {
		return Probe{}
	}

	s, ok := b.Sections[name]
	if !ok || s.Data == nil {
		return Probe{}
	}

	return Probe{v: s.Data, ok: true}
}

// SectionStatus returns the reported status of a section, or StatusEmpty
// when the section is absent.
func (b *Blob) SectionStatus(name string) string {
	if b == nil || b.Sections == nil {
		return StatusEmpty
	}

	s, ok := b.Sections[name]
	if !ok {
		return StatusEmpty
	}
	if s.Status == "" {
		if len(s.Data) == 0 {
			return StatusEmpty
		}
		return StatusOK
	}

	return s.Status
}

// SectionUsable reports whether a section is present with usable data.
func (b *Blob) SectionUsable(name string) bool {
	status := b.SectionStatus(name)
	return status != StatusEmpty && status != StatusFailed && b.Section(name).Exists()
}
