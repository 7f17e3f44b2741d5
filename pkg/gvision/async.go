package gvision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	storage "google.golang.org/api/storage/v1"
	vision "google.golang.org/api/vision/v1"
)

const stagingPrefix = "fp-ocr"

// RecognizeFileAsync stages data in bucket, runs asynchronous batch
// annotation over every page and collects the JSON results. Staged objects are
// deleted before returning, including on failure.
func (c *Client) RecognizeFileAsync(ctx context.Context, data []byte, mimeType, bucket string, languages []string) ([]Page, error) {
	if bucket == "" {
		return nil, ErrBucketRequired
	}

	prefix := path.Join(stagingPrefix, uuid.NewString())
	inputName := prefix + "/input" + extensionFor(mimeType)
	outputPrefix := prefix + "/output/"
	defer c.cleanup(context.WithoutCancel(ctx), bucket, prefix+"/")

	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	obj := &storage.Object{Name: inputName, ContentType: mimeType}
	if _, err := c.storage.Objects.Insert(bucket, obj).Media(bytes.NewReader(data)).Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("failed to upload %s to bucket %s: %w", inputName, bucket, err)
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	req := &vision.AsyncBatchAnnotateFilesRequest{
		Requests: []*vision.AsyncAnnotateFileRequest{{
			InputConfig: &vision.InputConfig{
				GcsSource: &vision.GcsSource{Uri: gcsURI(bucket, inputName)},
				MimeType:  mimeType,
			},
			Features:     features(),
			ImageContext: imageContext(languages),
			OutputConfig: &vision.OutputConfig{
				GcsDestination: &vision.GcsDestination{Uri: gcsURI(bucket, outputPrefix)},
				BatchSize:      asyncBatchSize,
			},
		}},
	}
	op, err := c.vision.Files.AsyncBatchAnnotate(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to start batch annotation: %w", err)
	}
	if err := c.waitOperation(ctx, op); err != nil {
		return nil, err
	}
	return c.readResults(ctx, bucket, outputPrefix)
}

func (c *Client) waitOperation(ctx context.Context, op *vision.Operation) error {
	deadline := time.Now().Add(c.opts.OperationTimeout)
	ticker := time.NewTicker(c.opts.PollInterval)
	defer ticker.Stop()

	for !op.Done {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %s", ErrOperationTimeout, op.Name)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := c.wait(ctx); err != nil {
			return err
		}
		next, err := c.vision.Operations.Get(op.Name).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to poll operation %s: %w", op.Name, err)
		}
		op = next
	}
	if op.Error != nil {
		return fmt.Errorf("%w: %s: code %d: %s", ErrOperationFailed, op.Name, op.Error.Code, op.Error.Message)
	}
	return nil
}

func (c *Client) readResults(ctx context.Context, bucket, prefix string) ([]Page, error) {
	var names []string
	err := c.storage.Objects.List(bucket).Prefix(prefix).Pages(ctx, func(objs *storage.Objects) error {
		for _, o := range objs.Items {
			if strings.HasSuffix(o.Name, ".json") {
				names = append(names, o.Name)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list results under %s: %w", prefix, err)
	}

	var pages []Page
	for _, name := range names {
		if err := c.wait(ctx); err != nil {
			return nil, err
		}
		shard, err := c.readShard(ctx, bucket, name)
		if err != nil {
			return nil, err
		}
		p, err := pagesOf(shard)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		pages = append(pages, p...)
	}
	sortPages(pages)
	return pages, nil
}

func (c *Client) readShard(ctx context.Context, bucket, name string) (*vision.AnnotateFileResponse, error) {
	resp, err := c.storage.Objects.Get(bucket, name).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	var shard vision.AnnotateFileResponse
	if err := json.Unmarshal(body, &shard); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return &shard, nil
}

// cleanup deletes every object under prefix. Failures are ignored.
func (c *Client) cleanup(ctx context.Context, bucket, prefix string) {
	_ = c.storage.Objects.List(bucket).Prefix(prefix).Pages(ctx, func(objs *storage.Objects) error {
		for _, o := range objs.Items {
			_ = c.storage.Objects.Delete(bucket, o.Name).Context(ctx).Do()
		}
		return nil
	})
}

func gcsURI(bucket, name string) string {
	return "gs://" + bucket + "/" + name
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case MimeTypePDF:
		return ".pdf"
	case MimeTypeTIFF:
		return ".tif"
	case MimeTypeGIF:
		return ".gif"
	}
	return ""
}
