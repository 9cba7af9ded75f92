package index

// Snapshot describes a local copy of a remote index written by WriteSnapshot.
type Snapshot struct {
	Path     string
	Pages    int
	TextHash string
	Changed  bool
}

// DefaultPath is where a site serves its search index.
const DefaultPath = "/search-index.json"
