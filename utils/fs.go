package utils

import (
	"encoding/json"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
)

type Fs struct {
	AppFs afero.Fs
}

func NewFs(appFs afero.Fs) Fs {
	return Fs{AppFs: appFs}
}

// WriteJSON writes data as indented JSON.
func (fs Fs) WriteJSON(filePath string, data interface{}) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return xerrors.Errorf("failed to marshal JSON: %w", err)
	}
	return fs.write(filePath, func(w io.Writer) error {
		_, err := w.Write(b)
		return err
	})
}

func (fs Fs) WriteYAML(filePath string, data interface{}) error {
	b, err := yaml.Marshal(data)
	if err != nil {
		return xerrors.Errorf("failed to marshal YAML: %w", err)
	}
	return fs.write(filePath, func(w io.Writer) error {
		_, err := w.Write(b)
		return err
	})
}

// WriteZstdJSON writes data as zstd-compressed indented JSON.
func (fs Fs) WriteZstdJSON(filePath string, data interface{}) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return xerrors.Errorf("failed to marshal JSON: %w", err)
	}
	return fs.write(filePath, func(w io.Writer) error {
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return xerrors.Errorf("failed to create zstd writer: %w", err)
		}
		if _, err = enc.Write(b); err != nil {
			enc.Close()
			return err
		}
		return enc.Close()
	})
}

func (fs Fs) write(filePath string, fn func(w io.Writer) error) error {
	f, err := fs.AppFs.Create(filePath)
	if err != nil {
		return xerrors.Errorf("unable to open a file: %w", err)
	}
	defer f.Close()

	if err = fn(f); err != nil {
		return xerrors.Errorf("failed to save a file: %w", err)
	}
	return nil
}
