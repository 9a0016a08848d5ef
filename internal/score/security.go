package score

import (
	"fmt"
	"strings"

	"codeberg.org/mutker/syshealth/internal/scan"
)

// Threat categories that are reported but not scored as confirmed
// malware.
const (
	categoryVulnerableDriver = "vulnerabledriver"
	categoryPUA              = "pua"
)

// evalSecurity scores antivirus posture and detected threats from the
// raw scan's Security section.
func evalSecurity(ctx evalContext, b *sectionBuilder) {
	sec := ctx.blob.Section(scan.SectionSecurity)

	defenderOn, defOK := sec.Field("defenderEnabled").Bool().Get()
	thirdParty, tpOK := sec.Field("thirdPartyAntivirus").Bool().Get()
	if defOK {
		b.input("defenderEnabled", fmt.Sprintf("%t", defenderOn))
	}
	if tpOK {
		b.input("thirdPartyAntivirus", fmt.Sprintf("%t", thirdParty))
	}

	if defOK && !defenderOn && !(tpOK && thirdParty) {
		b.apply(RuleDefenderOff, "Defender disabled with no recognized third-party antivirus", DefenderOffPenalty)
		b.force(StatusCritical)
		b.recommend("Re-enable Windows Defender or install a recognized antivirus")
	}

	for i, t := range sec.Field("threats").Each() {
		name := t.Field("name").Str().OrElse("unnamed threat")
		severity := t.Field("severity").Int().OrElse(0)
		category := strings.ToLower(t.Field("category").Str().OrElse(""))
		b.input(fmt.Sprintf("threat[%d]", i), fmt.Sprintf("%s severity=%d category=%s", name, severity, category))

		switch {
		case strings.Contains(category, categoryVulnerableDriver):
			b.apply(RuleVulnerableDriver, "Vulnerable driver flagged: "+name, VulnerableDriverPenalty)
			b.recommend("Update or remove the flagged driver: " + name)
		case strings.Contains(category, categoryPUA):
			b.apply(RulePUA, "Potentially unwanted application: "+name, PUAPenalty)
		case severity >= MalwareSeverityThreshold:
			b.apply(RuleMalwareThreat, "Active malware threat: "+name, MalwareThreatPenalty)
			b.force(StatusCritical)
			b.recommend("Run a full antivirus scan and quarantine: " + name)
		}
	}
}
