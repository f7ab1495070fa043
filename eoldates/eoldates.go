package eoldates

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
	"golang.org/x/xerrors"

	"github.com/aquasecurity/device-eol-report/lifecycle"
	"github.com/aquasecurity/device-eol-report/utils"
)

const (
	fullEOLDatesURL = "https://endoflife.date/api/v1/products/full"
	windowsProduct  = "windows"
	retry           = 3

	EditionWorkstation = "w"
	EditionEnterprise  = "e"
)

var (
	defaultProducts = lo.Map(lifecycle.Families, func(f lifecycle.Family, _ int) string {
		return f.Product()
	})

	// Windows editions that follow their own servicing channel
	skippedWindowsChannels = []string{"-iot", "-lts"}
)

type Config struct {
	url            string
	retry          int
	products       []string
	missedReleases map[string][]lifecycle.Release
	windowsEdition string
}

type Option func(*Config)

// WithURL sets the dataset source. Anything other than http(s) is fetched with go-getter,
// e.g. a local file path or an s3:: URL.
func WithURL(url string) Option {
	return func(c *Config) {
		c.url = url
	}
}

func WithRetry(retry int) Option {
	return func(c *Config) {
		c.retry = retry
	}
}

func WithProducts(products []string) Option {
	return func(c *Config) {
		c.products = products
	}
}

func WithMissedReleases(releases map[string][]lifecycle.Release) Option {
	return func(c *Config) {
		c.missedReleases = releases
	}
}

func WithWindowsEdition(edition string) Option {
	return func(c *Config) {
		c.windowsEdition = edition
	}
}

func NewConfig(opts ...Option) *Config {
	c := &Config{
		url:            fullEOLDatesURL,
		retry:          retry,
		products:       defaultProducts,
		windowsEdition: EditionWorkstation,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fetch returns the lifecycle releases of every configured product, keyed by product name.
func (c Config) Fetch(ctx context.Context) (map[string][]lifecycle.Release, error) {
	eolData, err := c.fetchEOLData(ctx)
	if err != nil {
		return nil, xerrors.Errorf("failed to fetch EOL data: %w", err)
	}

	releases := c.productReleases(eolData)

	// Fill missed products
	missed := lo.PickBy(c.missedReleases, func(product string, _ []lifecycle.Release) bool {
		return slices.Contains(c.products, product)
	})
	releases = lo.Assign(missed, releases)

	for product, rs := range releases {
		log.Printf("%s: %d releases", product, len(rs))
	}
	return releases, nil
}

func (c Config) fetchEOLData(ctx context.Context) (EOLData, error) {
	log.Printf("Fetching EOL data from %s", c.url)

	var body []byte
	var err error
	if strings.HasPrefix(c.url, "http://") || strings.HasPrefix(c.url, "https://") {
		body, err = utils.FetchURL(c.url, "", c.retry)
		if err != nil {
			return EOLData{}, xerrors.Errorf("unable to get full EOL dates: %w", err)
		}
	} else {
		body, err = download(ctx, c.url)
		if err != nil {
			return EOLData{}, xerrors.Errorf("unable to get full EOL dates: %w", err)
		}
	}

	var eolData EOLData
	if err = json.Unmarshal(body, &eolData); err != nil {
		return EOLData{}, xerrors.Errorf("unable to parse JSON: %w", err)
	}
	return eolData, nil
}

func download(ctx context.Context, src string) ([]byte, error) {
	filePath, err := utils.DownloadToTempFile(ctx, src)
	if err != nil {
		return nil, err
	}
	defer os.Remove(filePath)

	b, err := os.ReadFile(filePath)
	if err != nil {
		return nil, xerrors.Errorf("unable to read %s: %w", filePath, err)
	}
	return b, nil
}

func (c Config) productReleases(eolData EOLData) map[string][]lifecycle.Release {
	productReleases := make(map[string][]lifecycle.Release)
	for _, result := range eolData.Results {
		if !slices.Contains(c.products, result.Name) {
			continue
		}
		var releases []lifecycle.Release
		for _, r := range result.Releases {
			if result.Name == windowsProduct {
				if !c.windowsRelease(r) {
					continue
				}
				releases = append(releases, windowsLifecycleRelease(r))
				continue
			}
			releases = append(releases, lifecycleRelease(r))
		}
		productReleases[result.Name] = releases
	}
	return productReleases
}

// windowsRelease reports whether r belongs to the configured edition.
// Release names look like "11-24h2-w", "11-24h2-e" or "11-24h2-iot-lts".
func (c Config) windowsRelease(r Release) bool {
	for _, channel := range skippedWindowsChannels {
		if strings.Contains(r.Name, channel) {
			return false
		}
	}
	i := strings.LastIndex(r.Name, "-")
	if i == -1 {
		return true
	}
	switch suffix := r.Name[i+1:]; suffix {
	case EditionWorkstation, EditionEnterprise:
		return suffix == c.windowsEdition
	}
	return true
}

func lifecycleRelease(r Release) lifecycle.Release {
	return lifecycle.Release{
		Cycle:        r.Name,
		Label:        r.Label,
		ReleaseDate:  lo.FromPtr(r.ReleaseDate),
		EOLFrom:      lo.FromPtr(r.EOLFrom),
		IsEOL:        r.IsEOL,
		IsMaintained: r.IsMaintained,
	}
}

// windowsLifecycleRelease keys the release by the major.minor.build of its latest version.
func windowsLifecycleRelease(r Release) lifecycle.Release {
	lr := lifecycleRelease(r)
	if r.Latest == nil {
		return lr
	}
	if build, ok := lifecycle.Windows.Platform().CycleKey(r.Latest.Name); ok {
		lr.Cycle = build
	}
	return lr
}
