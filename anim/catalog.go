package anim

// TrackID is a stable handle to a Track registered in a Catalog.
type TrackID int

// NoTrack is the handle of no track.
const NoTrack TrackID = -1

// Catalog is an insertion-ordered set of tracks with unique names. Tracks
// are never removed, so a TrackID stays valid for the life of the catalog.
type Catalog[V any] struct {
	tracks []*Track[V]
	byName map[string]TrackID
}

// NewCatalog creates an empty Catalog.
func NewCatalog[V any]() *Catalog[V] {
	c := new(Catalog[V])
	c.byName = make(map[string]TrackID)
	return c
}

// Add registers a track. Empty tracks and tracks whose name is already taken
// are ignored; the first track registered under a name wins.
func (c *Catalog[V]) Add(t *Track[V]) (TrackID, bool) {
	if t == nil || t.Count() == 0 {
		return NoTrack, false
	}
	if _, found := c.byName[t.Name()]; found {
		return NoTrack, false
	}

	id := TrackID(len(c.tracks))
	c.tracks = append(c.tracks, t)
	c.byName[t.Name()] = id
	return id, true
}

// Find returns the handle of the track registered under name.
func (c *Catalog[V]) Find(name string) (TrackID, bool) {
	id, found := c.byName[name]
	return id, found
}

// Resolve returns the track for a handle, or nil for an unknown handle.
func (c *Catalog[V]) Resolve(id TrackID) *Track[V] {
	if id < 0 || int(id) >= len(c.tracks) {
		return nil
	}
	return c.tracks[id]
}

// Len returns the number of registered tracks.
func (c *Catalog[V]) Len() int {
	return len(c.tracks)
}

// Names returns the track names in registration order.
func (c *Catalog[V]) Names() []string {
	names := make([]string, 0, len(c.tracks))
	for _, t := range c.tracks {
		names = append(names, t.Name())
	}
	return names
}

// resolveOrAdd finds t by name, registering it when no track of that name is
// known yet.
func (c *Catalog[V]) resolveOrAdd(t *Track[V]) (TrackID, bool) {
	if t == nil || t.Count() == 0 {
		return NoTrack, false
	}
	if id, found := c.byName[t.Name()]; found {
		return id, true
	}
	return c.Add(t)
}
