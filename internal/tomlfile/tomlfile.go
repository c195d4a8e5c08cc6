// Package tomlfile reads and writes typed TOML documents.
package tomlfile

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	gotoml "github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"github.com/buildpacks/libcnb/internal/style"
)

// Read decodes the TOML file at path into v.
func Read(path string, v interface{}) error {
	if _, err := toml.DecodeFile(filepath.Clean(path), v); err != nil {
		return errors.Wrapf(err, "reading %s", style.Symbol(path))
	}
	return nil
}

// Write encodes v as TOML and replaces the file at path with it.
func Write(path string, v interface{}) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return errors.Wrapf(err, "creating %s", style.Symbol(path))
	}

	if err := toml.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		return errors.Wrapf(err, "encoding %s", style.Symbol(path))
	}

	return errors.Wrapf(f.Close(), "closing %s", style.Symbol(path))
}

// Render encodes v for display, keeping the field order of the Go type.
func Render(v interface{}) (string, error) {
	buf := &bytes.Buffer{}
	if err := gotoml.NewEncoder(buf).Order(gotoml.OrderPreserve).PromoteAnonymous(false).Encode(v); err != nil {
		return "", errors.Wrap(err, "rendering toml")
	}
	return buf.String(), nil
}
