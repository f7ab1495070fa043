package config_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquasecurity/device-eol-report/config"
	"github.com/aquasecurity/device-eol-report/lifecycle"
)

func TestLoad(t *testing.T) {
	onlyEOL := true
	tests := []struct {
		name     string
		filePath string
		env      map[string]string
		want     config.Config
		wantErr  string
	}{
		{
			name:     "happy path",
			filePath: "testdata/config.yaml",
			want: config.Config{
				TenantID:       "00000000-0000-0000-0000-000000000001",
				ClientID:       "00000000-0000-0000-0000-000000000002",
				ClientSecret:   "file-secret",
				Families:       []string{"iOS", "windows"},
				OnlyEOL:        &onlyEOL,
				NearingEOLDays: 90,
				WindowsEdition: "e",
				Output:         "out/report.yaml",
				MissedReleases: map[string][]lifecycle.Release{
					"ipados": {
						{Cycle: "18", Label: "18", ReleaseDate: "2024-09-16", IsMaintained: true},
					},
				},
			},
		},
		{
			name:     "environment overrides the file",
			filePath: "testdata/config.yaml",
			env: map[string]string{
				"EOLREPORT_CLIENT_SECRET": "env-secret",
			},
			want: config.Config{
				TenantID:       "00000000-0000-0000-0000-000000000001",
				ClientID:       "00000000-0000-0000-0000-000000000002",
				ClientSecret:   "env-secret",
				Families:       []string{"iOS", "windows"},
				OnlyEOL:        &onlyEOL,
				NearingEOLDays: 90,
				WindowsEdition: "e",
				Output:         "out/report.yaml",
				MissedReleases: map[string][]lifecycle.Release{
					"ipados": {
						{Cycle: "18", Label: "18", ReleaseDate: "2024-09-16", IsMaintained: true},
					},
				},
			},
		},
		{
			name: "no file",
			env: map[string]string{
				"EOLREPORT_TENANT_ID": "tenant",
			},
			want: config.Config{
				TenantID:       "tenant",
				NearingEOLDays: 180,
				WindowsEdition: "w",
			},
		},
		{
			name:     "sad path - missing file",
			filePath: "testdata/missing.yaml",
			wantErr:  "unable to read config testdata/missing.yaml",
		},
		{
			name:     "sad path - unknown field",
			filePath: "testdata/unknown_field.yaml",
			wantErr:  "unable to parse config testdata/unknown_field.yaml",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := config.Load(afero.NewOsFs(), tt.filePath)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_MemMapFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/eol.yaml", []byte("devicesFile: devices.json\nnoColor: true\n"), 0644))

	got, err := config.Load(fs, "/etc/eol.yaml")
	require.NoError(t, err)
	assert.Equal(t, "devices.json", got.DevicesFile)
	assert.True(t, got.NoColor)
	assert.Nil(t, got.OnlyEOL)
	assert.Equal(t, 180, got.NearingEOLDays)
}

func TestConfig_Validate(t *testing.T) {
	valid := config.Config{
		TenantID:       "tenant",
		ClientID:       "client",
		ClientSecret:   "secret",
		Families:       []string{"Windows", "android"},
		NearingEOLDays: 180,
		WindowsEdition: "w",
	}

	tests := []struct {
		name    string
		modify  func(c *config.Config)
		wantErr string
	}{
		{
			name:   "happy path",
			modify: func(c *config.Config) {},
		},
		{
			name: "devices file without credentials",
			modify: func(c *config.Config) {
				c.TenantID, c.ClientID, c.ClientSecret = "", "", ""
				c.DevicesFile = "devices.json"
			},
		},
		{
			name: "unknown family",
			modify: func(c *config.Config) {
				c.Families = append(c.Families, "BlackBerry")
			},
			wantErr: "unknown family: BlackBerry",
		},
		{
			name: "negative window",
			modify: func(c *config.Config) {
				c.NearingEOLDays = -1
			},
			wantErr: "nearingEolDays must not be negative",
		},
		{
			name: "unknown edition",
			modify: func(c *config.Config) {
				c.WindowsEdition = "iot"
			},
			wantErr: `unknown windows edition: "iot"`,
		},
		{
			name: "missing credentials",
			modify: func(c *config.Config) {
				c.ClientSecret = ""
			},
			wantErr: "either devicesFile or tenantId, clientId and clientSecret must be set",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			c.Families = append([]string(nil), valid.Families...)
			tt.modify(&c)

			err := c.Validate()
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestConfig_Products(t *testing.T) {
	tests := []struct {
		name         string
		families     []string
		wantFamilies []lifecycle.Family
		wantProducts []string
	}{
		{
			name:         "all families",
			wantProducts: []string{"android", "ios", "ipados", "macos", "windows"},
		},
		{
			name:         "selection with aliases",
			families:     []string{"Windows 11", "iOS", "windows"},
			wantFamilies: []lifecycle.Family{lifecycle.Windows, lifecycle.IOS},
			wantProducts: []string{"windows", "ios"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := config.Config{Families: tt.families}
			assert.Equal(t, tt.wantFamilies, c.SelectedFamilies())
			assert.Equal(t, tt.wantProducts, c.Products())
		})
	}
}
