package fakes

import (
	"context"

	"github.com/buildpacks/libcnb/pkg/transfer"
)

type FakeTransferClient struct {
	SHA               string
	ErrorForFetch     error
	ErrorForUpload    error
	ReceivedURI       string
	ReceivedDir       string
	ReceivedPrefix    string
	ReceivedUploadOps int
}

func (c *FakeTransferClient) GetAndExtract(_ context.Context, uri, dst, prefix string) (string, error) {
	c.ReceivedURI = uri
	c.ReceivedDir = dst
	c.ReceivedPrefix = prefix
	return c.SHA, c.ErrorForFetch
}

func (c *FakeTransferClient) CompressAndPut(_ context.Context, srcDir, uri string, opts ...transfer.UploadOption) error {
	c.ReceivedURI = uri
	c.ReceivedDir = srcDir
	c.ReceivedUploadOps = len(opts)
	return c.ErrorForUpload
}
