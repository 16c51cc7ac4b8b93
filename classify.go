package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tunefeed/catalog/tree"
)

// Item classification. One item-level renderer node becomes at most one
// ContentItem. The decision chain is an explicit ordered rule list so the
// priority between heuristics stays auditable: a watch target always wins,
// then an explicit page-type tag, then the opaque-id prefix table. Nodes no
// rule recognizes are dropped by the caller.

type classifyRule struct {
	name  string
	apply func(node tree.Value, t navTarget) (ContentItem, bool)
}

var classifyRules = []classifyRule{
	{"watch", ruleWatch},
	{"page-type", rulePageType},
	{"id-prefix", ruleIDPrefix},
}

// ClassifyItem converts an unwrapped item renderer node into a ContentItem.
// Pure; returns false for nodes carrying no usable navigation target.
func ClassifyItem(node tree.Value) (ContentItem, bool) {
	t, ok := navigationTarget(node)
	if !ok {
		return nil, false
	}
	for _, r := range classifyRules {
		if item, ok := r.apply(node, t); ok {
			return item, true
		}
	}
	return nil, false
}

// ruleWatch: a non-empty video id makes the node a Song, even when a browse
// target is also present (real documents attach a fallback browse affordance
// to song tiles).
func ruleWatch(node tree.Value, t navTarget) (ContentItem, bool) {
	if t.videoID == "" {
		return nil, false
	}
	return songFromNode(node, t.videoID), true
}

// pageTypeKinds maps explicit browse page-type tags to entity kinds. A user
// channel browses like an artist.
var pageTypeKinds = map[string]ItemKind{
	"MUSIC_PAGE_TYPE_ALBUM":        KindAlbum,
	"MUSIC_PAGE_TYPE_PLAYLIST":     KindPlaylist,
	"MUSIC_PAGE_TYPE_ARTIST":       KindArtist,
	"MUSIC_PAGE_TYPE_USER_CHANNEL": KindArtist,
}

func rulePageType(node tree.Value, t navTarget) (ContentItem, bool) {
	if t.browseID == "" || t.pageType == "" {
		return nil, false
	}
	kind, ok := pageTypeKinds[t.pageType]
	if !ok {
		return nil, false
	}
	return browsableFromNode(node, t.browseID, kind), true
}

// idPrefixKinds classifies a bare browse id by its opaque prefix. Longer
// prefixes are listed before shorter ones sharing a head.
var idPrefixKinds = []struct {
	prefix string
	kind   ItemKind
}{
	{"MPRE", KindAlbum},
	{"OLAK", KindAlbum},
	{"VL", KindPlaylist},
	{"PL", KindPlaylist},
	{"RD", KindPlaylist},
	{"UC", KindArtist},
}

func ruleIDPrefix(node tree.Value, t navTarget) (ContentItem, bool) {
	if t.browseID == "" {
		return nil, false
	}
	for _, p := range idPrefixKinds {
		if strings.HasPrefix(t.browseID, p.prefix) {
			return browsableFromNode(node, t.browseID, p.kind), true
		}
	}
	return nil, false
}

// ---- entity builders ----

func songFromNode(node tree.Value, videoID string) Song {
	title, _ := itemTitle(node)
	s := Song{
		ID:          videoID,
		Title:       title,
		Artists:     itemArtists(node),
		Album:       albumRef(node),
		DurationSec: durationSec(node),
	}
	s.Thumbnail, _ = thumbnailURL(node)
	return s
}

func browsableFromNode(node tree.Value, browseID string, kind ItemKind) ContentItem {
	title, _ := itemTitle(node)
	thumb, _ := thumbnailURL(node)
	switch kind {
	case KindAlbum:
		return Album{
			ID:         browseID,
			Title:      title,
			Artists:    itemArtists(node),
			Year:       subtitleYear(node),
			TrackCount: subtitleTrackCount(node),
			Thumbnail:  thumb,
		}
	case KindArtist:
		return Artist{ID: browseID, Name: title, Thumbnail: thumb}
	default:
		p := Playlist{
			ID:         browseID,
			Title:      title,
			TrackCount: subtitleTrackCount(node),
			Thumbnail:  thumb,
		}
		p.Description, _ = runText(node.Key("description"))
		if refs := itemArtists(node); len(refs) > 0 {
			p.Author = refs[0].Name
		}
		return p
	}
}

// subtitleYear finds a plausible release year among the subtitle runs.
func subtitleYear(node tree.Value) int {
	for _, r := range node.At("subtitle", "runs").Array() {
		s, ok := r.Key("text").Str()
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err == nil && n >= 1900 && n <= 2100 {
			return n
		}
	}
	return 0
}

// subtitleTrackCount reads counts phrased as "12 songs" or "12 tracks".
func subtitleTrackCount(node tree.Value) int {
	for _, r := range node.At("subtitle", "runs").Array() {
		s, ok := r.Key("text").Str()
		if !ok {
			continue
		}
		fields := strings.Fields(s)
		if len(fields) != 2 {
			continue
		}
		switch strings.ToLower(fields[1]) {
		case "songs", "song", "tracks", "track":
			if n, err := strconv.Atoi(fields[0]); err == nil && n > 0 {
				return n
			}
		}
	}
	return 0
}

// ---- navigation button tiles ----

// navButtonItem converts a mood/genre category tile into a Playlist. Tiles
// reuse the same browse id across sections with differing params, so the id
// concatenates both to keep identities distinct. The tile's accent color,
// packed as 32-bit ARGB, is carried through Description with the alpha byte
// stripped.
func navButtonItem(node tree.Value) (ContentItem, bool) {
	title, ok := runText(node.Key("buttonText"))
	if !ok {
		return nil, false
	}
	browseID, ok := node.At("clickCommand", "browseEndpoint", "browseId").Str()
	if !ok || browseID == "" {
		return nil, false
	}
	params, _ := node.At("clickCommand", "browseEndpoint", "params").Str()
	p := Playlist{ID: browseID + params, Title: title}
	if argb, ok := node.At("solid", "leftStripeColor").Int(); ok {
		p.Description = fmt.Sprintf("#%06x", uint32(argb)&0xffffff)
	}
	return p, true
}
