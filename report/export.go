package report

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/xerrors"

	"github.com/aquasecurity/device-eol-report/utils"
)

// Export writes the report to filePath. The format follows the extension:
// .yaml/.yml for YAML, .zst for zstd-compressed JSON and JSON otherwise.
func Export(fs afero.Fs, filePath string, r Report) error {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return xerrors.Errorf("failed to mkdir: %w", err)
		}
	}

	out := utils.NewFs(fs)
	write := out.WriteJSON
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		write = out.WriteYAML
	case ".zst":
		write = out.WriteZstdJSON
	}

	if err := write(filePath, r); err != nil {
		return xerrors.Errorf("failed to export report: %w", err)
	}
	return nil
}
