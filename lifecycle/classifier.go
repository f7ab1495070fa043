package lifecycle

import (
	"time"

	version "github.com/hashicorp/go-version"
)

// DefaultNearingWindow bounds the NearingEOL phase: a supported cycle whose
// EOL is fewer than this many days away is nearing its end of life.
const DefaultNearingWindow = 180

// Classifier resolves the support status of devices as of a fixed date.
type Classifier struct {
	today  time.Time
	window int
}

// NewClassifier returns a classifier for the calendar date of now.
// A non-positive window falls back to DefaultNearingWindow.
func NewClassifier(now time.Time, window int) Classifier {
	if window <= 0 {
		window = DefaultNearingWindow
	}
	return Classifier{
		today:  civil(now),
		window: window,
	}
}

// Today returns the date classifications are computed against.
func (c Classifier) Today() time.Time {
	return c.today
}

// Classify classifies d against the catalog of its family. A nil catalog is
// treated as an empty one.
func (c Classifier) Classify(d Device, cat *Catalog) Result {
	family := ParseFamily(d.OS)
	r := Result{
		Family:          family,
		OS:              d.OS,
		Model:           d.Model,
		Device:          d.Name,
		User:            d.User,
		Version:         d.Version,
		Status:          StatusUnknown,
		Phase:           PhaseUnknown,
		LowestSupported: NoSummary,
		NewestAvailable: NoSummary,
	}

	p := family.Platform()
	if cat == nil {
		cat = p.NewCatalog(nil)
	}
	p.classify(c, cat, &r)
	return r
}

func (p genericPlatform) classify(c Classifier, cat *Catalog, r *Result) {
	r.LowestSupported = cat.LowestSupported
	r.NewestAvailable = cat.NewestAvailable

	key, ok := p.CycleKey(r.Version)
	if !ok {
		return
	}
	r.Cycle = key

	e, ok := cat.Lookup(key)
	if !ok {
		return
	}
	c.apply(e, r)
}

func (p windowsPlatform) classify(c Classifier, cat *Catalog, r *Result) {
	r.LowestSupported = cat.LowestSupported
	r.NewestAvailable = cat.NewestAvailable
	r.Phase = PhaseUnmapped

	key, ok := p.CycleKey(r.Version)
	if !ok {
		return
	}
	r.Cycle = key

	if e, ok := cat.Lookup(key); ok {
		if e.Label != "" {
			r.Cycle = e.Label
		}
		c.apply(e, r)
		return
	}

	// Builds newer than anything published are insider or preview builds.
	if cat.HighestKnownBuild == nil {
		return
	}
	build, err := version.NewVersion(key)
	if err != nil {
		return
	}
	if build.GreaterThan(cat.HighestKnownBuild) {
		r.Phase = PhasePreview
	}
}

func (otherPlatform) classify(Classifier, *Catalog, *Result) {}

// apply sets status, phase and EOL fields from a matched catalog entry.
func (c Classifier) apply(e Entry, r *Result) {
	if e.EOL != nil {
		eol := *e.EOL
		days := daysBetween(c.today, eol)
		r.EOL = &eol
		r.DaysToEOL = &days
	}

	if !e.Supported {
		r.Status, r.Phase = StatusEndOfLife, PhaseEOL
		return
	}

	switch {
	case r.DaysToEOL == nil || *r.DaysToEOL >= c.window:
		r.Status, r.Phase = StatusSupported, PhaseSupported
	case *r.DaysToEOL > 0:
		r.Status, r.Phase = StatusSupported, PhaseNearingEOL
	default:
		r.Status, r.Phase = StatusEndOfLife, PhaseEOL
	}
}

// daysBetween counts whole calendar days from one date to another.
func daysBetween(from, to time.Time) int {
	return int(civil(to).Sub(civil(from)).Hours() / 24)
}
