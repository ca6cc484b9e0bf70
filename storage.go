package instadb

import (
	"context"
	"io"

	"github.com/autom8ter/instadb/errors"
	"github.com/autom8ter/instadb/model"
	"github.com/autom8ter/instadb/util"
	"golang.org/x/sync/errgroup"
)

// HeaderFilePath carries the destination path of an uploaded file
const HeaderFilePath = "X-Instant-File-Path"

// bulkDeleteConcurrency bounds the fan-out of DeleteFiles
const bulkDeleteConcurrency = 8

// UploadOption configures a file upload
type UploadOption func(*uploadOptions)

type uploadOptions struct {
	contentType string
}

// WithContentType sets the uploaded file's content type
func WithContentType(contentType string) UploadOption {
	return func(o *uploadOptions) {
		o.contentType = contentType
	}
}

// UploadFile streams opaque bytes to the given storage path and returns the
// stored file's metadata
func (c *Client) UploadFile(ctx context.Context, path string, r io.Reader, opts ...UploadOption) (*model.FileInfo, error) {
	if path == "" {
		return nil, errors.New(errors.Validation, "storage: empty file path")
	}
	if r == nil {
		return nil, errors.New(errors.Validation, "storage: nil file reader")
	}
	options := &uploadOptions{contentType: "application/octet-stream"}
	for _, opt := range opts {
		opt(options)
	}
	doc, err := c.dispatch(ctx, request{
		kind: KindStorageUpload,
		headers: map[string]string{
			HeaderFilePath: path,
			"Content-Type": options.contentType,
		},
		stream: r,
	})
	if err != nil {
		return nil, err
	}
	info := &model.FileInfo{Path: path}
	if data := doc.Get("data"); data != nil {
		if err := util.Decode(data, info); err != nil {
			return nil, errors.Wrap(err, errors.Unknown, "storage: unexpected response shape")
		}
	}
	return info, nil
}

// DeleteFile removes the file at the given storage path
func (c *Client) DeleteFile(ctx context.Context, path string) error {
	if path == "" {
		return errors.New(errors.Validation, "storage: empty file path")
	}
	_, err := c.dispatch(ctx, request{
		kind:   KindStorageDelete,
		params: map[string]string{"filename": path},
	})
	return err
}

// DeleteFiles removes many files as independent dispatches with bounded
// concurrency. The batch is not atomic - callers needing atomicity must use a
// single transaction. The first error cancels outstanding deletes.
func (c *Client) DeleteFiles(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return errors.New(errors.Validation, "storage: empty path list")
	}
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(bulkDeleteConcurrency)
	for _, path := range paths {
		path := path
		group.Go(func() error {
			return c.DeleteFile(ctx, path)
		})
	}
	return group.Wait()
}

// ListFiles returns metadata for every file in the app's storage
func (c *Client) ListFiles(ctx context.Context) ([]model.FileInfo, error) {
	doc, err := c.dispatch(ctx, request{kind: KindStorageList})
	if err != nil {
		return nil, err
	}
	var files []model.FileInfo
	if err := util.Decode(doc.Get("data"), &files); err != nil {
		return nil, errors.Wrap(err, errors.Unknown, "storage: unexpected response shape")
	}
	return files, nil
}
