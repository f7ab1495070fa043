package eoldates

type EOLData struct {
	Results []Result `json:"result"`
}

// Result matches the top-level objects in the endoflife.date API.
type Result struct {
	Name     string    `json:"name"`
	Releases []Release `json:"releases"`
}

// Release holds one release cycle of a product.
// cf. https://endoflife.date/docs/api/v1/
type Release struct {
	Name         string  `json:"name"`
	Label        string  `json:"label"`
	ReleaseDate  *string `json:"releaseDate"`
	IsEOL        bool    `json:"isEol"`
	EOLFrom      *string `json:"eolFrom"`
	IsEOES       bool    `json:"isEoes"` // extended support, not taken into account
	IsMaintained bool    `json:"isMaintained"`
	Latest       *Latest `json:"latest"`
}

// Latest is the newest version published within a release cycle.
// For Windows it holds the build number, e.g. "10.0.26100".
type Latest struct {
	Name string  `json:"name"`
	Date *string `json:"date"`
}
