package memory

import (
	"sync"

	"file-processing-tasks/internal/fam"
	"file-processing-tasks/internal/fam/tags"
	"file-processing-tasks/internal/model"
)

// QueuedFile is a pending entry created by AddFile.
type QueuedFile struct {
	FileID   int
	Action   string
	Priority model.Priority
}

// Options configures the in-memory host.
type Options struct {
	Expander           fam.TagExpander
	DisabledComponents []string
}

type implHost struct {
	mu       sync.Mutex
	nextID   int
	files    map[int]model.FileRecord
	byName   map[string]int
	statuses map[int]map[string]model.ActionStatus
	queue    []QueuedFile
	counters map[string]int64
	metadata map[int]map[string]string

	expander fam.TagExpander
	disabled map[string]bool
}

// Host is the in-memory host. It is safe for concurrent use.
type Host interface {
	fam.Host
	fam.MetadataLister
	Queue() []QueuedFile
}

// New creates an empty in-memory host.
func New(opts Options) Host {
	if opts.Expander == nil {
		opts.Expander = tags.New(tags.Options{})
	}
	disabled := make(map[string]bool, len(opts.DisabledComponents))
	for _, c := range opts.DisabledComponents {
		disabled[c] = true
	}
	return &implHost{
		nextID:   1,
		files:    make(map[int]model.FileRecord),
		byName:   make(map[string]int),
		statuses: make(map[int]map[string]model.ActionStatus),
		counters: make(map[string]int64),
		metadata: make(map[int]map[string]string),
		expander: opts.Expander,
		disabled: disabled,
	}
}
