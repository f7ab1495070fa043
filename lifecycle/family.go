// Package lifecycle classifies devices against published OS lifecycle data.
package lifecycle

import (
	"strings"
)

// Family is an operating system family with its own lifecycle dataset.
type Family string

const (
	Android Family = "Android"
	IOS     Family = "iOS"
	IPadOS  Family = "iPadOS"
	MacOS   Family = "macOS"
	Windows Family = "Windows"
	Other   Family = "Other"
)

// Families lists every family a lifecycle dataset can be fetched for.
var Families = []Family{Android, IOS, IPadOS, MacOS, Windows}

// endoflife.date product names
var products = map[Family]string{
	Android: "android",
	IOS:     "ios",
	IPadOS:  "ipados",
	MacOS:   "macos",
	Windows: "windows",
}

// ParseFamily resolves a free-form operating system name such as "Windows 11"
// or "AndroidForWork" to its family. Unrecognized names resolve to Other.
func ParseFamily(name string) Family {
	s := strings.ToLower(strings.TrimSpace(name))
	switch {
	case strings.HasPrefix(s, "windows"):
		return Windows
	case s == "ipados":
		return IPadOS
	case s == "ios":
		return IOS
	case strings.HasPrefix(s, "macos"), strings.HasPrefix(s, "mac os"), s == "macmdm":
		return MacOS
	case strings.HasPrefix(s, "android"):
		return Android
	}
	return Other
}

func (f Family) IsValid() bool {
	_, ok := products[f]
	return ok
}

// Product returns the endoflife.date product name of the family.
func (f Family) Product() string {
	return products[f]
}

// Platform returns the lookup strategy used for the family.
func (f Family) Platform() Platform {
	switch f {
	case Windows:
		return windowsPlatform{}
	case Android, IOS, IPadOS, MacOS:
		return genericPlatform{}
	}
	return otherPlatform{}
}

// Platform derives cycle keys, builds catalogs and classifies devices for a
// kind of family. The set of platforms is closed.
type Platform interface {
	CycleKey(version string) (string, bool)
	NewCatalog(releases []Release) *Catalog
	classify(c Classifier, cat *Catalog, r *Result)
}

// genericPlatform covers families whose cycles are plain major versions.
type genericPlatform struct{}

// windowsPlatform covers Windows, where cycles are identified by build number.
type windowsPlatform struct{}

// otherPlatform is used for families without lifecycle data.
type otherPlatform struct{}
