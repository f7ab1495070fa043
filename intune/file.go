package intune

import (
	"bytes"
	"encoding/json"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"

	"github.com/aquasecurity/device-eol-report/lifecycle"
)

// LoadDevices reads a managed device export, either a Graph collection page
// ({"value": [...]}) or a bare JSON array of managed devices.
func LoadDevices(fs afero.Fs, filePath string) ([]lifecycle.Device, error) {
	b, err := afero.ReadFile(fs, filePath)
	if err != nil {
		return nil, xerrors.Errorf("unable to read %s: %w", filePath, err)
	}

	var devices []ManagedDevice
	if b = bytes.TrimSpace(b); bytes.HasPrefix(b, []byte("[")) {
		err = json.Unmarshal(b, &devices)
	} else {
		var page Page
		err = json.Unmarshal(b, &page)
		devices = page.Value
	}
	if err != nil {
		return nil, xerrors.Errorf("unable to parse JSON: %w", err)
	}

	return lo.Map(devices, func(d ManagedDevice, _ int) lifecycle.Device {
		return d.Device()
	}), nil
}
