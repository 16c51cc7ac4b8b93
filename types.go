package catalog

// ItemKind tags the concrete type of a ContentItem.
type ItemKind int

const (
	KindSong ItemKind = iota
	KindAlbum
	KindPlaylist
	KindArtist
)

// String returns the lowercase kind name, for logs and CLI output.
func (k ItemKind) String() string {
	switch k {
	case KindSong:
		return "song"
	case KindAlbum:
		return "album"
	case KindPlaylist:
		return "playlist"
	case KindArtist:
		return "artist"
	}
	return "unknown"
}

// ContentItem is the closed union of normalized catalog entities. Within one
// parse an item's identity is the catalog's own opaque id for that entity, so
// the same entity appearing in two sections compares equal by ItemID.
type ContentItem interface {
	// ItemID returns the catalog-opaque identifier of the entity.
	ItemID() string
	// Kind reports which concrete type this item is.
	Kind() ItemKind
}

// ArtistRef is a lightweight artist reference carried on songs and albums.
// ID may be empty when the source document names the artist without linking
// it.
type ArtistRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// AlbumRef is a lightweight album reference carried on songs.
type AlbumRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Song is a playable track. ID equals the track's video identifier.
type Song struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Artists     []ArtistRef `json:"artists,omitempty"`
	Album       *AlbumRef   `json:"album,omitempty"`
	DurationSec int         `json:"durationSec,omitempty"` // 0 when unknown
	Thumbnail   string      `json:"thumbnail,omitempty"`
}

func (s Song) ItemID() string { return s.ID }
func (s Song) Kind() ItemKind { return KindSong }

// Album is a browsable release.
type Album struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Artists    []ArtistRef `json:"artists,omitempty"`
	Year       int         `json:"year,omitempty"`
	TrackCount int         `json:"trackCount,omitempty"`
	Thumbnail  string      `json:"thumbnail,omitempty"`
}

func (a Album) ItemID() string { return a.ID }
func (a Album) Kind() ItemKind { return KindAlbum }

// Playlist is a browsable track collection. Category tiles on browse surfaces
// are also represented as playlists; for those, Description carries the
// tile's accent color as a #rrggbb string.
type Playlist struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
	TrackCount  int    `json:"trackCount,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

func (p Playlist) ItemID() string { return p.ID }
func (p Playlist) Kind() ItemKind { return KindPlaylist }

// Artist is a browsable artist or user channel.
type Artist struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

func (a Artist) ItemID() string { return a.ID }
func (a Artist) Kind() ItemKind { return KindArtist }

// Section is a titled, ordered group of catalog entities as presented on a
// browsing surface. ID is a pure function of (Title, first item's id) so that
// repeated parses of equivalent data key identically in consuming UIs.
type Section struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Items   []ContentItem `json:"items"`
	IsChart bool          `json:"isChart,omitempty"`
}

// Page is one fetched slice of a paginated listing. An empty Continuation
// means the listing is complete.
type Page[T any] struct {
	Items        []T    `json:"items"`
	Continuation string `json:"continuation,omitempty"`
}

// HasMore reports whether a further page can be requested.
func (p Page[T]) HasMore() bool { return p.Continuation != "" }
