package archive

import (
	"archive/tar"
	"io"

	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
)

// CompressionLevel is the xz preset used for archives written by this package.
const CompressionLevel = 6

// dictionary sizes of the xz presets 0 through 9
var presetDictCaps = [...]int{
	256 << 10,
	1 << 20,
	2 << 20,
	4 << 20,
	4 << 20,
	8 << 20,
	8 << 20,
	16 << 20,
	32 << 20,
	64 << 20,
}

// NewXzWriter returns a single stream xz writer using the dictionary size of the given preset level.
func NewXzWriter(w io.Writer, level int) (*xz.Writer, error) {
	if level < 0 || level >= len(presetDictCaps) {
		return nil, errors.Errorf("invalid compression level %d", level)
	}

	cfg := xz.WriterConfig{DictCap: presetDictCaps[level]}
	if err := cfg.Verify(); err != nil {
		return nil, errors.Wrap(err, "configuring xz writer")
	}
	return cfg.NewWriter(w)
}

// NewXzReader decodes exactly one xz stream from r.
func NewXzReader(r io.Reader) (*xz.Reader, error) {
	return xz.ReaderConfig{SingleStream: true}.NewReader(r)
}

// CompressDir writes srcDir as an xz compressed tar to w.
func CompressDir(srcDir string, w io.Writer, filter Filter) error {
	xw, err := NewXzWriter(w, CompressionLevel)
	if err != nil {
		return err
	}

	tw := tar.NewWriter(xw)
	if err := WriteDirToTar(tw, srcDir, 0, 0, filter); err != nil {
		return errors.Wrap(err, "writing tar")
	}

	if err := tw.Close(); err != nil {
		return errors.Wrap(err, "closing tar writer")
	}

	return errors.Wrap(xw.Close(), "closing xz writer")
}

// ExtractTarXz decodes an xz compressed tar from r and extracts it into dest.
func ExtractTarXz(r io.Reader, dest string, opts ...ExtractOption) error {
	xr, err := NewXzReader(r)
	if err != nil {
		return errors.Wrap(err, "creating xz reader")
	}

	return ExtractTar(xr, dest, opts...)
}
