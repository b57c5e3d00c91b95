package entity

import "time"

// ComponentRef names one component in the catalog.
type ComponentRef struct {
	Domain   string `json:"domain"`
	Platform string `json:"platform"`
}

// Key is the cache key for the component's schema.
func (c ComponentRef) Key() string {
	return c.Domain + ":" + c.Platform
}

// CoreEntry is one core section in the tree listing.
type CoreEntry struct {
	Key     string
	Present bool
}

// DisabledComponent is a component block parked as a comment.
type DisabledComponent struct {
	Key      string
	Domain   string
	Platform string
	Hash     string
}

// ComponentItem is a live component shown in the tree listing.
type ComponentItem struct {
	Domain   string
	Index    int
	Platform string
}

// Tree lists the document for navigation: core sections with presence, and
// every domain that has live or disabled components.
type Tree struct {
	Core     []CoreEntry
	Domains  []string
	Items    map[string][]ComponentItem
	Disabled map[string][]DisabledComponent
}

// SchemaSnapshot is the last good backend response for one schema
// endpoint, kept so forms still render while the backend is unreachable.
type SchemaSnapshot struct {
	Key       string
	Data      []byte
	FetchedAt time.Time
}
