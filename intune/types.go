package intune

import (
	"github.com/aquasecurity/device-eol-report/lifecycle"
)

// ManagedDevice is the subset of the Microsoft Graph managedDevice resource used by the report.
// cf. https://learn.microsoft.com/en-us/graph/api/resources/intune-devices-manageddevice
type ManagedDevice struct {
	ID              string `json:"id"`
	DeviceName      string `json:"deviceName"`
	Model           string `json:"model"`
	OperatingSystem string `json:"operatingSystem"`
	OSVersion       string `json:"osVersion"`
	UserDisplayName string `json:"userDisplayName"`
}

func (d ManagedDevice) Device() lifecycle.Device {
	return lifecycle.Device{
		ID:      d.ID,
		Name:    d.DeviceName,
		Model:   d.Model,
		OS:      d.OperatingSystem,
		Version: d.OSVersion,
		User:    d.UserDisplayName,
	}
}

// Page is one page of a Graph collection response.
type Page struct {
	Value    []ManagedDevice `json:"value"`
	NextLink string          `json:"@odata.nextLink,omitempty"`
	Count    *int            `json:"@odata.count,omitempty"`
}
