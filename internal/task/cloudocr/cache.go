package cloudocr

import (
	"context"
	"sync"

	"file-processing-tasks/pkg/gvision"
)

// Recognizer is the subset of gvision.Client the task drives.
type Recognizer interface {
	RecognizeImage(ctx context.Context, image []byte, languages []string) (gvision.Page, error)
	RecognizeFile(ctx context.Context, data []byte, mimeType string, languages []string) ([]gvision.Page, error)
	RecognizeFileAsync(ctx context.Context, data []byte, mimeType, bucket string, languages []string) ([]gvision.Page, error)
}

// ClientKey identifies one cached client.
type ClientKey struct {
	CredentialsFile string
	Bucket          string
}

// ClientFactory builds the client for key. requestsPerMinute applies to the
// client for its whole lifetime.
type ClientFactory func(ctx context.Context, key ClientKey, requestsPerMinute int) (Recognizer, error)

// ClientCache hands out one client per key, built on first use. It is shared
// by every cloud OCR task in the process.
type ClientCache struct {
	mu      sync.RWMutex
	clients map[ClientKey]Recognizer
	factory ClientFactory
}

func NewClientCache(factory ClientFactory) *ClientCache {
	return &ClientCache{clients: make(map[ClientKey]Recognizer), factory: factory}
}

// Get returns the cached client for key or builds it. The read-locked lookup
// serves the common case; the check is repeated under the write lock so
// concurrent callers never build the same client twice.
func (c *ClientCache) Get(ctx context.Context, key ClientKey, requestsPerMinute int) (Recognizer, error) {
	c.mu.RLock()
	client, ok := c.clients[key]
	c.mu.RUnlock()
	if ok {
		return client, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if client, ok := c.clients[key]; ok {
		return client, nil
	}
	client, err := c.factory(ctx, key, requestsPerMinute)
	if err != nil {
		return nil, err
	}
	c.clients[key] = client
	return client, nil
}

// Len reports how many clients have been built.
func (c *ClientCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.clients)
}

// GVisionFactory builds real Cloud Vision clients. An empty credentials file
// selects Application Default Credentials.
func GVisionFactory(opts gvision.Options) ClientFactory {
	return func(ctx context.Context, key ClientKey, requestsPerMinute int) (Recognizer, error) {
		o := opts
		o.RequestsPerMinute = requestsPerMinute
		if key.CredentialsFile == "" {
			return gvision.NewDefaultClient(ctx, o)
		}
		return gvision.NewClientFromCredentialsFile(ctx, key.CredentialsFile, o)
	}
}
