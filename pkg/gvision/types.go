package gvision

import (
	"errors"
	"time"
)

const (
	MimeTypePDF  = "application/pdf"
	MimeTypeTIFF = "image/tiff"
	MimeTypeGIF  = "image/gif"

	DefaultRequestsPerMinute = 600
	DefaultPollInterval      = 2 * time.Second
	DefaultOperationTimeout  = 10 * time.Minute

	featureDocumentText = "DOCUMENT_TEXT_DETECTION"
	asyncBatchSize      = 20
)

var (
	ErrAnnotation       = errors.New("vision annotation failed")
	ErrOperationFailed  = errors.New("vision operation failed")
	ErrOperationTimeout = errors.New("vision operation did not finish in time")
	ErrBucketRequired   = errors.New("a bucket is required for asynchronous annotation")
)

// Options tunes a Client.
type Options struct {
	RequestsPerMinute int
	PollInterval      time.Duration
	OperationTimeout  time.Duration
}

func (o *Options) setDefaults() {
	if o.RequestsPerMinute <= 0 {
		o.RequestsPerMinute = DefaultRequestsPerMinute
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.OperationTimeout <= 0 {
		o.OperationTimeout = DefaultOperationTimeout
	}
}

// Page is the recognized text of one page. Number is 1-based.
type Page struct {
	Number int    `json:"page"`
	Text   string `json:"text"`
}
