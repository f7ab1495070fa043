package prompt_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquasecurity/device-eol-report/lifecycle"
	"github.com/aquasecurity/device-eol-report/prompt"
)

func TestPrompter_Families(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []lifecycle.Family
		wantOut string
		wantErr error
	}{
		{
			name:  "empty answer selects all",
			input: "\n",
		},
		{
			name:  "all",
			input: "ALL\n",
		},
		{
			name:  "numbers",
			input: "5, 2\n",
			want:  []lifecycle.Family{lifecycle.Windows, lifecycle.IOS},
		},
		{
			name:  "names and duplicates",
			input: "android,Android, macOS\r\n",
			want:  []lifecycle.Family{lifecycle.Android, lifecycle.MacOS},
		},
		{
			name:    "invalid answer is asked again",
			input:   "9\nlinux\n1\n",
			want:    []lifecycle.Family{lifecycle.Android},
			wantOut: "invalid selection: 9",
		},
		{
			name:    "closed input",
			input:   "",
			wantErr: io.ErrUnexpectedEOF,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			p := prompt.New(strings.NewReader(tt.input), out)

			got, err := p.Families()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "  5) Windows")
			assert.Contains(t, out.String(), tt.wantOut)
		})
	}
}

func TestPrompter_OnlyEOL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    bool
		wantErr error
	}{
		{
			name:  "default",
			input: "\n",
		},
		{
			name:  "yes",
			input: "Y\n",
			want:  true,
		},
		{
			name:  "retry after invalid answer",
			input: "maybe\nyes\n",
			want:  true,
		},
		{
			name:    "closed input",
			wantErr: io.ErrUnexpectedEOF,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := prompt.New(strings.NewReader(tt.input), io.Discard)

			got, err := p.OnlyEOL()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
