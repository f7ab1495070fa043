package lifecycle

import "time"

type Status string

const (
	StatusSupported Status = "Supported"
	StatusEndOfLife Status = "EndOfLife"
	StatusUnknown   Status = "Unknown"
)

type Phase string

const (
	PhaseSupported  Phase = "Supported"
	PhaseNearingEOL Phase = "NearingEOL"
	PhaseEOL        Phase = "EOL"
	PhaseUnknown    Phase = "Unknown"
	PhasePreview    Phase = "Preview/Beta"
	PhaseUnmapped   Phase = "Unmapped"
)

// NoSummary is displayed when a catalog aggregate has no value.
const NoSummary = "-"

// Device is a single managed device as reported by the inventory.
type Device struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Model   string `json:"model"`
	OS      string `json:"os"`
	Version string `json:"version"`
	User    string `json:"user"`
}

// Release is one lifecycle entry of an OS family.
// Cycle is a major version ("17") for most families and a build ("10.0.26100") for Windows.
type Release struct {
	Cycle        string `json:"cycle" yaml:"cycle"`
	Label        string `json:"label,omitempty" yaml:"label,omitempty"`
	ReleaseDate  string `json:"releaseDate,omitempty" yaml:"releaseDate,omitempty"`
	EOLFrom      string `json:"eolFrom,omitempty" yaml:"eolFrom,omitempty"`
	IsEOL        bool   `json:"isEol" yaml:"isEol"`
	IsMaintained bool   `json:"isMaintained" yaml:"isMaintained"`
}

// Result is the classification of one device.
type Result struct {
	Family          Family     `json:"family" yaml:"family"`
	OS              string     `json:"os" yaml:"os"`
	Model           string     `json:"model" yaml:"model"`
	Device          string     `json:"device" yaml:"device"`
	User            string     `json:"user" yaml:"user"`
	Version         string     `json:"version" yaml:"version"`
	Cycle           string     `json:"cycle,omitempty" yaml:"cycle,omitempty"`
	Status          Status     `json:"status" yaml:"status"`
	Phase           Phase      `json:"phase" yaml:"phase"`
	EOL             *time.Time `json:"eol,omitempty" yaml:"eol,omitempty"`
	DaysToEOL       *int       `json:"daysToEol,omitempty" yaml:"daysToEol,omitempty"`
	LowestSupported string     `json:"lowestSupported" yaml:"lowestSupported"`
	NewestAvailable string     `json:"newestAvailable" yaml:"newestAvailable"`
}
