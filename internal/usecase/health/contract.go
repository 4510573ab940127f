package health

import "context"

// Catalog reports the number of loaded catalog rows.
type Catalog interface {
	Len() int
}

// Index reports whether the similarity index holds documents.
type Index interface {
	Ready() bool
}

// CachePinger checks recommendation cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
