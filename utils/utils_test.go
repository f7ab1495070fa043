package utils_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquasecurity/device-eol-report/utils"
)

func TestFetchURL(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		apikey     string
		want       string
		wantErr    string
	}{
		{
			name:       "happy path",
			statusCode: http.StatusOK,
			want:       `{"result":[]}`,
		},
		{
			name:       "with api key",
			statusCode: http.StatusOK,
			apikey:     "secret",
			want:       `{"result":[]}`,
		},
		{
			name:       "sad path",
			statusCode: http.StatusNotFound,
			wantErr:    "HTTP error. status code: 404",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.apikey != "" && r.Header.Get("api-key") != tt.apikey {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(`{"result":[]}`))
			}))
			defer ts.Close()

			got, err := utils.FetchURL(ts.URL, tt.apikey, 0)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMajor(t *testing.T) {
	assert.Equal(t, "17", utils.Major("17.4.1"))
	assert.Equal(t, "14", utils.Major("14"))
	assert.Equal(t, "", utils.Major(""))
}

func TestLookupEnv(t *testing.T) {
	t.Setenv("DEVICE_EOL_REPORT_TEST", "set")
	assert.Equal(t, "set", utils.LookupEnv("DEVICE_EOL_REPORT_TEST", "default"))
	assert.Equal(t, "default", utils.LookupEnv("DEVICE_EOL_REPORT_UNSET", "default"))
}

func TestTrimSpaceNewline(t *testing.T) {
	assert.Equal(t, "ios", utils.TrimSpaceNewline("  ios\r\n"))
}
