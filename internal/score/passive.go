package score

import "codeberg.org/mutker/syshealth/internal/scan"

// evalOS is informational only: it surfaces identity facts without
// penalty rules. An absent section stays Unknown.
func evalOS(ctx evalContext, b *sectionBuilder) {
	if !ctx.blob.SectionUsable(scan.SectionOS) {
		return
	}

	os := ctx.blob.Section(scan.SectionOS)
	if name, ok := os.Field("name").Str().Get(); ok {
		b.input("osName", name)
	}
	if version, ok := os.Field("version").Str().Get(); ok {
		b.input("osVersion", version)
	}
	if build, ok := os.Field("build").Str().Get(); ok {
		b.input("osBuild", build)
	}
	if !b.hasData {
		b.input("os", "section present without identity fields")
	}

	b.apply(RuleOSInfo, "OS facts recorded, no scored rules for this section", 0)
	b.force(StatusOK)
}

// evalNetwork is informational only, like evalOS.
func evalNetwork(ctx evalContext, b *sectionBuilder) {
	if !ctx.blob.SectionUsable(scan.SectionNetwork) {
		return
	}

	net := ctx.blob.Section(scan.SectionNetwork)
	if adapter, ok := net.Field("activeAdapter").Str().Get(); ok {
		b.input("activeAdapter", adapter)
	}
	if net.Field("linkSpeedMbps").Exists() {
		b.inputFloat("linkSpeedMbps", net.Field("linkSpeedMbps").Float(), "%.0f")
	}
	if !b.hasData {
		b.input("network", "section present without adapter fields")
	}

	b.apply(RuleNetworkInfo, "Network facts recorded, no scored rules for this section", 0)
	b.force(StatusOK)
}
