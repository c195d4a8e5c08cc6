package transfer

import (
	"context"
	"net/http"
	"os"

	"github.com/buildpacks/libcnb/logging"
)

var defaultClient = NewClient(logging.New(os.Stdout))

// Get fetches uri with a client logging to stdout.
func Get(ctx context.Context, uri string) (string, error) {
	return defaultClient.Get(ctx, uri)
}

// GetAndExtract fetches and extracts uri with a client logging to stdout.
func GetAndExtract(ctx context.Context, uri, dst, prefix string) (string, error) {
	return defaultClient.GetAndExtract(ctx, uri, dst, prefix)
}

// Put uploads filePath with a client logging to stdout.
func Put(ctx context.Context, filePath, uri string) (*http.Response, error) {
	return defaultClient.Put(ctx, filePath, uri)
}

// CompressAndPut archives and uploads srcDir with a client logging to stdout.
func CompressAndPut(ctx context.Context, srcDir, uri string, opts ...UploadOption) error {
	return defaultClient.CompressAndPut(ctx, srcDir, uri, opts...)
}
