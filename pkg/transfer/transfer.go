// Package transfer downloads and extracts xz compressed tar archives and uploads compressed
// directory trees over HTTP.
package transfer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	v1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/mitchellh/ioprogress"
	"github.com/pkg/errors"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/buildpacks/libcnb/internal/paths"
	"github.com/buildpacks/libcnb/internal/style"
	"github.com/buildpacks/libcnb/logging"
	"github.com/buildpacks/libcnb/pkg/archive"
)

// ArchiveFileName is the name of the temporary archive written by CompressAndPut.
const ArchiveFileName = "source.tar.xz"

type Client struct {
	logger     logging.Logger
	httpClient *http.Client
	tempDir    string
}

type ClientOption func(*Client)

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTempDir sets the parent of the scratch directories created by CompressAndPut.
func WithTempDir(dir string) ClientOption {
	return func(c *Client) {
		c.tempDir = dir
	}
}

func NewClient(logger logging.Logger, opts ...ClientOption) *Client {
	c := &Client{
		logger:     logger,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the body of uri as text.
func (c *Client) Get(ctx context.Context, uri string) (string, error) {
	content, err := c.fetch(ctx, uri)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// GetAndExtract downloads the xz compressed tar at uri and extracts it into dst, returning the hex
// encoded sha256 of the downloaded bytes. The hash is returned with extraction errors as well. A
// non-empty prefix is stripped from every entry.
func (c *Client) GetAndExtract(ctx context.Context, uri, dst, prefix string) (string, error) {
	content, err := c.fetch(ctx, uri)
	if err != nil {
		return "", err
	}

	hash, _, err := v1.SHA256(bytes.NewReader(content))
	if err != nil {
		return "", errors.Wrap(err, "computing sha256")
	}
	c.logger.Debugf("Downloaded %s from %s (sha256:%s)", humanize.Bytes(uint64(len(content))), style.Symbol(uri), hash.Hex)

	err = archive.ExtractTarXz(
		bytes.NewReader(content),
		dst,
		archive.WithStripPrefix(prefix),
		archive.WithSkipHandler(func(name string, reason error) {
			c.logger.Debugf("Skipping entry %s: %s", style.Symbol(name), reason)
		}),
	)
	if err != nil {
		return hash.Hex, errors.Wrapf(err, "extracting %s into %s", style.Symbol(uri), style.Symbol(dst))
	}

	return hash.Hex, nil
}

// Put sends the file at filePath as the body of a PUT request. The response status is not
// interpreted; the caller must close the response body.
func (c *Client) Put(ctx context.Context, filePath, uri string) (*http.Response, error) {
	f, err := os.Open(filepath.Clean(filePath))
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", style.Symbol(filePath))
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "reading %s", style.Symbol(filePath))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uri, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	req.ContentLength = fi.Size()

	c.logger.Debugf("Uploading %s to %s", humanize.Bytes(uint64(fi.Size())), style.Symbol(redact(uri)))
	return c.httpClient.Do(req)
}

type uploadSettings struct {
	exclusions []string
}

type UploadOption func(*uploadSettings)

// WithExclusions leaves paths matching any of the gitignore style patterns out of the archive.
func WithExclusions(patterns ...string) UploadOption {
	return func(s *uploadSettings) {
		s.exclusions = append(s.exclusions, patterns...)
	}
}

// CompressAndPut archives srcDir as an xz compressed tar in a scratch directory and uploads it with
// Put. The scratch directory is removed before returning. Responses outside of the 2xx range are
// logged, not returned as errors.
func (c *Client) CompressAndPut(ctx context.Context, srcDir, uri string, opts ...UploadOption) error {
	settings := &uploadSettings{}
	for _, opt := range opts {
		opt(settings)
	}

	filter := exclusionFilter(settings.exclusions)

	tmpDir, err := os.MkdirTemp(c.tempDir, "libcnb-upload-")
	if err != nil {
		return errors.Wrap(err, "creating temp dir")
	}
	defer os.RemoveAll(tmpDir)

	archivePath := filepath.Join(tmpDir, ArchiveFileName)
	if err := compressToFile(srcDir, archivePath, filter); err != nil {
		return errors.Wrapf(err, "compressing %s", style.Symbol(srcDir))
	}

	resp, err := c.Put(ctx, archivePath, uri)
	if err != nil {
		return errors.Wrapf(err, "uploading %s", style.Symbol(srcDir))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn(style.Warn("Upload of %s returned http status %s", style.Symbol(srcDir), style.SymbolF("%d", resp.StatusCode)))
	}

	return nil
}

func compressToFile(srcDir, archivePath string, filter archive.Filter) error {
	fh, err := os.Create(archivePath)
	if err != nil {
		return err
	}

	if err := archive.CompressDir(srcDir, fh, filter); err != nil {
		fh.Close()
		return err
	}

	return fh.Close()
}

func exclusionFilter(patterns []string) archive.Filter {
	if len(patterns) == 0 {
		return nil
	}

	excludes := ignore.CompileIgnoreLines(patterns...)
	return func(relPath string, fi os.FileInfo) bool {
		if fi.IsDir() {
			return excludes.MatchesPath(relPath) || excludes.MatchesPath(relPath+"/")
		}
		return excludes.MatchesPath(relPath)
	}
}

func (c *Client) fetch(ctx context.Context, uri string) ([]byte, error) {
	parsedURL, err := url.Parse(uri)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing uri %s", style.Symbol(uri))
	}

	switch parsedURL.Scheme {
	case "file":
		path, err := paths.URIToFilePath(uri)
		if err != nil {
			return nil, err
		}
		return os.ReadFile(filepath.Clean(path))
	case "http", "https":
		return c.download(ctx, uri)
	default:
		return nil, fmt.Errorf("unsupported protocol %s in URI %s", style.Symbol(parsedURL.Scheme), style.Symbol(uri))
	}
}

func (c *Client) download(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf(
			"could not download from %s, code http status %s",
			style.Symbol(uri), style.SymbolF("%d", resp.StatusCode),
		)
	}

	c.logger.Debugf("Downloading from %s", style.Symbol(uri))
	return io.ReadAll(withProgress(logging.GetWriterForLevel(c.logger, log.DebugLevel), resp.Body, resp.ContentLength))
}

func withProgress(writer io.Writer, r io.Reader, length int64) io.Reader {
	if writer == io.Discard {
		return r
	}
	return &ioprogress.Reader{
		Reader:   r,
		Size:     length,
		DrawFunc: ioprogress.DrawTerminalf(writer, ioprogress.DrawTextFormatBytes),
	}
}

// redact drops credentials and the query string from uri.
func redact(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil {
		return uri
	}
	parsed.User = nil
	parsed.RawQuery = ""
	return parsed.String()
}
