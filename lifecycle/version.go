package lifecycle

import (
	"regexp"
	"strings"

	"github.com/aquasecurity/device-eol-report/utils"
)

// major.minor.build, e.g. 10.0.26100 out of 10.0.26100.1000
var windowsBuildPattern = regexp.MustCompile(`^(\d+\.\d+\.\d+)`)

// CycleKey returns the major version of the first token,
// e.g. "17" for "17.4.1 (21E236)". Whether the key is known is up to the catalog.
func (genericPlatform) CycleKey(version string) (string, bool) {
	fields := strings.Fields(version)
	if len(fields) == 0 {
		return "", false
	}
	major := utils.Major(fields[0])
	if major == "" {
		return "", false
	}
	return major, true
}

// CycleKey returns the major.minor.build prefix of a Windows version.
func (windowsPlatform) CycleKey(version string) (string, bool) {
	m := windowsBuildPattern.FindStringSubmatch(strings.TrimSpace(version))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// isBuild reports whether cycle is exactly a major.minor.build Windows build.
func (p windowsPlatform) isBuild(cycle string) bool {
	key, ok := p.CycleKey(cycle)
	return ok && key == cycle
}

func (otherPlatform) CycleKey(string) (string, bool) {
	return "", false
}
