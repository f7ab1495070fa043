package report

import (
	"cmp"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/aquasecurity/device-eol-report/lifecycle"
)

type Options struct {
	// OnlyEOL keeps only devices that reached end of life.
	OnlyEOL bool
	// Families restricts the report to the given families. Empty means all devices.
	Families []lifecycle.Family
}

type Report struct {
	Date    time.Time                `json:"date" yaml:"date"`
	Results []lifecycle.Result       `json:"results" yaml:"results"`
	Counts  map[lifecycle.Status]int `json:"counts" yaml:"counts"`
}

// Build classifies every device with a reported OS version against the
// catalog of its family and returns the ordered report.
func Build(devices []lifecycle.Device, catalogs map[lifecycle.Family]*lifecycle.Catalog,
	c lifecycle.Classifier, opts Options) Report {
	eligible := lo.Filter(devices, func(d lifecycle.Device, _ int) bool {
		if strings.TrimSpace(d.Version) == "" {
			return false
		}
		return len(opts.Families) == 0 || slices.Contains(opts.Families, lifecycle.ParseFamily(d.OS))
	})

	results := lo.Map(eligible, func(d lifecycle.Device, _ int) lifecycle.Result {
		return c.Classify(d, catalogs[lifecycle.ParseFamily(d.OS)])
	})

	if opts.OnlyEOL {
		results = lo.Filter(results, func(r lifecycle.Result, _ int) bool {
			return r.Status == lifecycle.StatusEndOfLife
		})
	}

	Sort(results)

	return Report{
		Date:    c.Today(),
		Results: results,
		Counts:  Counts(results),
	}
}

// Sort orders results by status (EndOfLife, Unknown, then the rest), OS, cycle and device name.
func Sort(results []lifecycle.Result) {
	slices.SortStableFunc(results, func(a, b lifecycle.Result) int {
		if n := cmp.Compare(statusRank(a.Status), statusRank(b.Status)); n != 0 {
			return n
		}
		if n := cmp.Compare(a.OS, b.OS); n != 0 {
			return n
		}
		if n := cmp.Compare(a.Cycle, b.Cycle); n != 0 {
			return n
		}
		return cmp.Compare(a.Device, b.Device)
	})
}

// Counts returns the number of results per status.
func Counts(results []lifecycle.Result) map[lifecycle.Status]int {
	return lo.CountValuesBy(results, func(r lifecycle.Result) lifecycle.Status {
		return r.Status
	})
}

func statusRank(s lifecycle.Status) int {
	switch s {
	case lifecycle.StatusEndOfLife:
		return 0
	case lifecycle.StatusUnknown:
		return 1
	}
	return 2
}
