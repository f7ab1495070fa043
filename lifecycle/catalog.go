package lifecycle

import (
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	version "github.com/hashicorp/go-version"
	"github.com/samber/lo"
)

// Entry is the catalog view of a single release.
type Entry struct {
	Label       string
	EOL         *time.Time
	ReleaseDate *time.Time
	Supported   bool
	Maintained  bool
}

// Catalog indexes the releases of one family by cycle key.
// It is read-only once built and safe for concurrent use.
type Catalog struct {
	entries map[string]Entry

	// LowestSupported is the oldest cycle still supported, NoSummary if none.
	LowestSupported string
	// NewestAvailable is the most recent known cycle, NoSummary if none.
	NewestAvailable string
	// HighestKnownBuild is only set for Windows catalogs.
	HighestKnownBuild *version.Version
}

func newCatalog() *Catalog {
	return &Catalog{
		entries:         make(map[string]Entry),
		LowestSupported: NoSummary,
		NewestAvailable: NoSummary,
	}
}

// Lookup returns the entry stored for a cycle key.
func (c *Catalog) Lookup(key string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	e, ok := c.entries[key]
	return e, ok
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// add stores the release and reports whether it was new.
// The first release seen for a cycle wins.
func (c *Catalog) add(r Release) (Entry, bool) {
	if r.Cycle == "" {
		return Entry{}, false
	}
	if _, ok := c.entries[r.Cycle]; ok {
		return Entry{}, false
	}
	e := Entry{
		Label:       r.Label,
		EOL:         parseDate(r.EOLFrom),
		ReleaseDate: parseDate(r.ReleaseDate),
		Supported:   !r.IsEOL && r.IsMaintained,
		Maintained:  r.IsMaintained,
	}
	c.entries[r.Cycle] = e
	return e, true
}

func (genericPlatform) NewCatalog(releases []Release) *Catalog {
	c := newCatalog()

	var cycles, supported []int
	for _, r := range releases {
		e, ok := c.add(r)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(r.Cycle)
		if err != nil {
			continue
		}
		cycles = append(cycles, n)
		if e.Supported {
			supported = append(supported, n)
		}
	}

	if len(supported) > 0 {
		c.LowestSupported = strconv.Itoa(lo.Min(supported))
	}
	if len(cycles) > 0 {
		c.NewestAvailable = strconv.Itoa(lo.Max(cycles))
	}
	return c
}

func (p windowsPlatform) NewCatalog(releases []Release) *Catalog {
	c := newCatalog()

	var lowest, newest *Entry
	for _, r := range releases {
		e, ok := c.add(r)
		if !ok {
			continue
		}
		if e.Label == "" {
			e.Label = r.Cycle
		}

		// Releases announced without a build keep their release name as cycle
		// (e.g. "11-25h2-w") and must not count as a build.
		if p.isBuild(r.Cycle) {
			if v, err := version.NewVersion(r.Cycle); err == nil {
				if c.HighestKnownBuild == nil || v.GreaterThan(c.HighestKnownBuild) {
					c.HighestKnownBuild = v
				}
			}
		}

		if e.ReleaseDate == nil {
			continue
		}
		if e.Supported && (lowest == nil || e.ReleaseDate.Before(*lowest.ReleaseDate)) {
			lowest = &e
		}
		if e.Maintained && (newest == nil || e.ReleaseDate.After(*newest.ReleaseDate)) {
			newest = &e
		}
	}

	if lowest != nil {
		c.LowestSupported = lowest.Label
	}
	if newest != nil {
		c.NewestAvailable = newest.Label
	}
	return c
}

func (otherPlatform) NewCatalog([]Release) *Catalog {
	return newCatalog()
}

// parseDate returns the calendar date of s, or nil when s is empty or malformed.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return nil
	}
	d := civil(t)
	return &d
}

// civil drops the time of day and location of t, keeping its calendar date.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
