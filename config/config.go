// Package config loads the report settings from a YAML file with
// environment overrides for the Microsoft Graph credentials.
package config

import (
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"golang.org/x/exp/slices"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"

	"github.com/aquasecurity/device-eol-report/eoldates"
	"github.com/aquasecurity/device-eol-report/lifecycle"
	"github.com/aquasecurity/device-eol-report/utils"
)

const (
	envTenantID     = "EOLREPORT_TENANT_ID"
	envClientID     = "EOLREPORT_CLIENT_ID"
	envClientSecret = "EOLREPORT_CLIENT_SECRET"
)

type Config struct {
	TenantID     string `yaml:"tenantId"`
	ClientID     string `yaml:"clientId"`
	ClientSecret string `yaml:"clientSecret"`
	GraphBaseURL string `yaml:"graphBaseUrl"`

	// Families selects the families to report on. Empty means every device.
	Families []string `yaml:"families"`
	// OnlyEOL is a pointer so that an unset value can still be prompted for.
	OnlyEOL        *bool  `yaml:"onlyEol"`
	NearingEOLDays int    `yaml:"nearingEolDays"`
	WindowsEdition string `yaml:"windowsEdition"`
	ReleasesSource string `yaml:"releasesSource"`
	DevicesFile    string `yaml:"devicesFile"`
	Output         string `yaml:"output"`
	NoColor        bool   `yaml:"noColor"`

	// MissedReleases fills products endoflife.date does not publish, keyed by product name.
	MissedReleases map[string][]lifecycle.Release `yaml:"missedReleases"`
}

func Default() Config {
	return Config{
		NearingEOLDays: lifecycle.DefaultNearingWindow,
		WindowsEdition: eoldates.EditionWorkstation,
	}
}

// Load reads the config file at filePath on top of the defaults and applies
// environment overrides. An empty path only applies the defaults and the environment.
func Load(fs afero.Fs, filePath string) (Config, error) {
	cfg := Default()
	if filePath != "" {
		b, err := afero.ReadFile(fs, filePath)
		if err != nil {
			return Config{}, xerrors.Errorf("unable to read config %s: %w", filePath, err)
		}
		if err = yaml.UnmarshalStrict(b, &cfg); err != nil {
			return Config{}, xerrors.Errorf("unable to parse config %s: %w", filePath, err)
		}
	}

	cfg.TenantID = utils.LookupEnv(envTenantID, cfg.TenantID)
	cfg.ClientID = utils.LookupEnv(envClientID, cfg.ClientID)
	cfg.ClientSecret = utils.LookupEnv(envClientSecret, cfg.ClientSecret)

	return cfg, nil
}

func (c Config) Validate() error {
	for _, name := range c.Families {
		if !lifecycle.ParseFamily(name).IsValid() {
			return xerrors.Errorf("unknown family: %s", name)
		}
	}
	if c.NearingEOLDays < 0 {
		return xerrors.Errorf("nearingEolDays must not be negative: %d", c.NearingEOLDays)
	}
	if !slices.Contains([]string{eoldates.EditionWorkstation, eoldates.EditionEnterprise}, c.WindowsEdition) {
		return xerrors.Errorf("unknown windows edition: %q (want %q or %q)",
			c.WindowsEdition, eoldates.EditionWorkstation, eoldates.EditionEnterprise)
	}
	if c.DevicesFile == "" && (c.TenantID == "" || c.ClientID == "" || c.ClientSecret == "") {
		return xerrors.New("either devicesFile or tenantId, clientId and clientSecret must be set")
	}
	return nil
}

// SelectedFamilies returns the configured families without duplicates.
func (c Config) SelectedFamilies() []lifecycle.Family {
	if len(c.Families) == 0 {
		return nil
	}
	return lo.Uniq(lo.Map(c.Families, func(name string, _ int) lifecycle.Family {
		return lifecycle.ParseFamily(name)
	}))
}

// Products returns the endoflife.date products to fetch: the selected
// families, or every known family when none are selected.
func (c Config) Products() []string {
	families := c.SelectedFamilies()
	if len(families) == 0 {
		families = lifecycle.Families
	}
	return lo.Map(families, func(f lifecycle.Family, _ int) string {
		return f.Product()
	})
}
