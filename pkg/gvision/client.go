package gvision

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	storage "google.golang.org/api/storage/v1"
	vision "google.golang.org/api/vision/v1"
)

// Client wraps the Cloud Vision and Cloud Storage services used for OCR.
// It is safe for concurrent use; every API call waits on a shared limiter.
type Client struct {
	vision  *vision.Service
	storage *storage.Service
	limiter *rate.Limiter
	opts    Options
}

// NewClientFromCredentialsFile creates a client from a Service Account JSON file path.
func NewClientFromCredentialsFile(ctx context.Context, credentialsPath string, opts Options) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return NewClientFromCredentialsJSON(ctx, data, opts)
}

// NewClientFromCredentialsJSON creates a client from raw Service Account JSON bytes.
func NewClientFromCredentialsJSON(ctx context.Context, credentialsJSON []byte, opts Options) (*Client, error) {
	config, err := google.JWTConfigFromJSON(credentialsJSON, vision.CloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}
	// The client outlives the request that built it.
	ts := config.TokenSource(context.WithoutCancel(ctx))
	return newClient(ctx, opts, option.WithTokenSource(ts))
}

// NewDefaultClient creates a client from Application Default Credentials.
func NewDefaultClient(ctx context.Context, opts Options) (*Client, error) {
	return newClient(ctx, opts, option.WithScopes(vision.CloudPlatformScope))
}

// NewClientFromHTTP creates a client from a pre-configured HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client, opts Options) (*Client, error) {
	return newClient(ctx, opts, option.WithHTTPClient(httpClient))
}

func newClient(ctx context.Context, opts Options, clientOpts ...option.ClientOption) (*Client, error) {
	opts.setDefaults()

	visionSvc, err := vision.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision service: %w", err)
	}
	storageSvc, err := storage.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage service: %w", err)
	}

	perSecond := rate.Limit(float64(opts.RequestsPerMinute) / 60)
	burst := max(1, opts.RequestsPerMinute/60)
	return &Client{
		vision:  visionSvc,
		storage: storageSvc,
		limiter: rate.NewLimiter(perSecond, burst),
		opts:    opts,
	}, nil
}

func (c *Client) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}
