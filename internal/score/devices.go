package score

import (
	"fmt"

	"codeberg.org/mutker/syshealth/internal/scan"
)

// evalDrivers scores the count of devices reporting driver errors.
func evalDrivers(ctx evalContext, b *sectionBuilder) {
	count, ok := b.inputInt("errorDeviceCount", ctx.blob.Section(scan.SectionDevicesDrivers).Field("errorDeviceCount").Int())
	if !ok || count <= 0 {
		return
	}

	penalty := min(count*DriverErrorUnitPenalty, DriverErrorPenaltyCap)
	b.apply(RuleDriverErrors, fmt.Sprintf("%d device(s) reporting driver errors", count), penalty)
	if count >= DriverDegradedThreshold {
		b.force(StatusDegraded)
	}
	b.recommend("Update or reinstall the drivers for the failing devices")
}

// evalDevices scores device-level hardware errors, split into critical
// and non-critical classes.
func evalDevices(ctx evalContext, b *sectionBuilder) {
	devs := ctx.blob.Section(scan.SectionDevicesDrivers)

	if critical, ok := b.inputInt("criticalDeviceErrors", devs.Field("criticalDeviceErrors").Int()); ok && critical > 0 {
		b.apply(RuleCriticalDevice, fmt.Sprintf("%d critical device error(s)", critical), CriticalDevicePenalty)
		b.force(StatusCritical)
		b.recommend("Inspect Device Manager for devices in an error state")
	}

	if nonCritical, ok := b.inputInt("nonCriticalDeviceErrors", devs.Field("nonCriticalDeviceErrors").Int()); ok && nonCritical > 0 {
		if nonCritical > NonCriticalDeviceHigh {
			b.apply(RuleNonCriticalHigh, fmt.Sprintf("%d non-critical device error(s)", nonCritical), NonCriticalDeviceHighPenalty)
		} else {
			b.apply(RuleNonCriticalErrors, fmt.Sprintf("%d non-critical device error(s)", nonCritical), NonCriticalDevicePenalty)
		}
	}
}

// evalUpdates scores pending OS updates. Informational severity only.
func evalUpdates(ctx evalContext, b *sectionBuilder) {
	pending, ok := b.inputInt("pendingCount", ctx.blob.Section(scan.SectionWindowsUpdate).Field("pendingCount").Int())
	if ok && pending > 0 {
		b.apply(RulePendingUpdates, fmt.Sprintf("%d pending update(s)", pending), PendingUpdatePenalty)
		b.recommend("Install pending OS updates at the next opportunity")
	}
}
