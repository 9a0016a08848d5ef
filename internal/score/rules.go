package score

// Hand-authored business constants: thresholds and penalties per
// domain. These are fixed contracts, grouped so each table can be
// unit-tested independently of the evaluation flow.

// CPU section.
const (
	CPUTempCriticalC   = 90.0
	CPUTempDegradedC   = 85.0
	CPUTempWarningC    = 70.0
	CPULoadCriticalPct = 95.0
	CPULoadHighPct     = 80.0

	CPUTempCriticalPenalty = 40
	CPUTempDegradedPenalty = 25
	CPUTempWarningPenalty  = 10
	CPULoadCriticalPenalty = 15
	CPULoadHighPenalty     = 5
)

// GPU section.
const (
	GPUTempCriticalC    = 95.0
	GPUTempDegradedC    = 85.0
	GPUTempWarningC     = 75.0
	GPULoadSustainedPct = 95.0
	GPUVRAMCriticalPct  = 95.0
	GPUVRAMHighPct      = 85.0

	GPUTempCriticalPenalty = 40
	GPUTempDegradedPenalty = 20
	GPUTempWarningPenalty  = 5
	GPULoadPenalty         = 10
	GPUVRAMCriticalPenalty = 15
	GPUVRAMHighPenalty     = 5
)

// RAM section.
const (
	RAMSaturationPct = 95.0
	RAMDegradedPct   = 85.0
	RAMWarningPct    = 70.0

	RAMSaturationPenalty = 40
	RAMDegradedPenalty   = 20
	RAMWarningPenalty    = 5
)

// StorageSystem section.
const (
	StorageFreeCriticalPct = 10.0
	StorageFreeDegradedPct = 15.0
	StorageFreeDegradedGB  = 15.0
	StorageFreeWarningPct  = 20.0
	DiskTempCriticalC      = 70.0
	DiskTempWarningC       = 60.0
	SMARTPendingCritical   = 5
	SMARTReallocCritical   = 10

	StorageFreeCriticalPenalty  = 40
	StorageFreeDegradedPenalty  = 25
	StorageFreeWarningPenalty   = 10
	DiskTempCriticalPenalty     = 25
	DiskTempWarningPenalty      = 10
	SMARTPendingCriticalPenalty = 50
	SMARTPendingPenalty         = 20
	SMARTReallocCriticalPenalty = 70
	SMARTReallocPenalty         = 30
)

// Security section.
const (
	MalwareSeverityThreshold = 3

	DefenderOffPenalty      = 50
	MalwareThreatPenalty    = 50
	VulnerableDriverPenalty = 25
	PUAPenalty              = 5
)

// Stability section.
const (
	ErrorCountCritical = 50
	ErrorCountDegraded = 20
	ErrorCountWarning  = 5
	CrashCountCritical = 10
	CrashCountDegraded = 5
	CrashCountWarning  = 2

	ErrorCountCriticalPenalty = 30
	ErrorCountDegradedPenalty = 15
	ErrorCountWarningPenalty  = 5
	BSODPenalty               = 40
	CrashCountCriticalPenalty = 25
	CrashCountDegradedPenalty = 15
	CrashCountWarningPenalty  = 5
)

// Drivers and Devices sections.
const (
	DriverErrorUnitPenalty  = 5
	DriverErrorPenaltyCap   = 25
	DriverDegradedThreshold = 3

	CriticalDevicePenalty        = 50
	NonCriticalDeviceHigh        = 3
	NonCriticalDeviceHighPenalty = 20
	NonCriticalDevicePenalty     = 5
)

// Updates section.
const PendingUpdatePenalty = 5

// Hard caps: catastrophic findings override the weighted average. Only
// a cap strictly below the current score is applied; evaluation order
// Security, Stability, Storage makes the lowest applicable cap win.
const (
	SecurityHardCap = 40
	BSODHardCap     = 50
	SMARTHardCap    = 35
)

// Confidence penalties.
const (
	MissingCPUTempPenalty   = 10
	MissingGPUTempPenalty   = 8
	MissingVRAMPenalty      = 5
	CountersFailedPenalty   = 30
	CollectorErrorPenalty   = 5
	ConfidenceReliableFloor = 90
	ConfidenceMediumFloor   = 70
)

// Stable rule identifiers, referenced by downstream UI lookups and
// automated tests.
const (
	RuleCPUTempCritical = "CPU_TEMP_CRITICAL"
	RuleCPUTempDegraded = "CPU_TEMP_DEGRADED"
	RuleCPUTempWarning  = "CPU_TEMP_WARNING"
	RuleCPULoadCritical = "CPU_LOAD_CRITICAL"
	RuleCPULoadHigh     = "CPU_LOAD_HIGH"

	RuleGPUNone         = "GPU_NONE"
	RuleGPUTempCritical = "GPU_TEMP_CRITICAL"
	RuleGPUTempDegraded = "GPU_TEMP_DEGRADED"
	RuleGPUTempWarning  = "GPU_TEMP_WARNING"
	RuleGPULoadHigh     = "GPU_LOAD_HIGH"
	RuleGPUVRAMCritical = "GPU_VRAM_CRITICAL"
	RuleGPUVRAMHigh     = "GPU_VRAM_HIGH"

	RuleRAMSaturation = "RAM_SATURATION"
	RuleRAMDegraded   = "RAM_DEGRADED"
	RuleRAMWarning    = "RAM_WARNING"

	RuleStorageFreeCritical  = "STOR_FREE_CRITICAL"
	RuleStorageFreeDegraded  = "STOR_FREE_DEGRADED"
	RuleStorageFreeWarning   = "STOR_FREE_WARNING"
	RuleDiskTempCritical     = "STOR_TEMP_CRITICAL"
	RuleDiskTempWarning      = "STOR_TEMP_WARNING"
	RuleSMARTPendingCritical = "STOR_SMART_PENDING_CRITICAL"
	RuleSMARTPending         = "STOR_SMART_PENDING"
	RuleSMARTReallocCritical = "STOR_SMART_REALLOC_CRITICAL"
	RuleSMARTRealloc         = "STOR_SMART_REALLOC"

	RuleDefenderOff      = "SEC_DEFENDER_OFF"
	RuleMalwareThreat    = "SEC_MALWARE_THREAT"
	RuleVulnerableDriver = "SEC_VULNERABLE_DRIVER"
	RulePUA              = "SEC_PUA"

	RuleErrorsCritical = "STAB_ERRORS_CRITICAL"
	RuleErrorsDegraded = "STAB_ERRORS_DEGRADED"
	RuleErrorsWarning  = "STAB_ERRORS_WARNING"
	RuleBSOD           = "STAB_BSOD"
	RuleCrashCritical  = "STAB_CRASH_CRITICAL"
	RuleCrashDegraded  = "STAB_CRASH_DEGRADED"
	RuleCrashWarning   = "STAB_CRASH_WARNING"

	RuleDriverErrors = "DRV_ERROR_DEVICES"

	RuleCriticalDevice    = "DEV_CRITICAL_ERROR"
	RuleNonCriticalHigh   = "DEV_NONCRITICAL_HIGH"
	RuleNonCriticalErrors = "DEV_NONCRITICAL_ERRORS"

	RulePendingUpdates = "UPD_PENDING"

	RuleOSInfo      = "OS_INFO"
	RuleNetworkInfo = "NET_INFO"
)
