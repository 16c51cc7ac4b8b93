package catalog

import (
	"strconv"
	"strings"

	"github.com/tunefeed/catalog/tree"
)

// Field extractors. Every logical field of an item-level renderer node can
// appear under several physical layouts; each extractor probes the known
// layouts in a fixed priority order and stops at the first success. Absence
// is never an error.

// runText reads a piece of display text that may be a bare string, a
// {"simpleText": ...} wrapper, or a {"runs": [{"text": ...}, ...]} list. Run
// fragments are concatenated.
func runText(v tree.Value) (string, bool) {
	if s, ok := v.Str(); ok {
		return s, true
	}
	if s, ok := v.Key("simpleText").Str(); ok {
		return s, true
	}
	runs := v.Key("runs").Array()
	if len(runs) == 0 {
		return "", false
	}
	var b strings.Builder
	for _, r := range runs {
		if s, ok := r.Key("text").Str(); ok {
			b.WriteString(s)
		}
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}

// flexColumn returns the text container of the i-th flex column of a
// list-item renderer.
func flexColumn(node tree.Value, i int) tree.Value {
	return node.At("flexColumns", i, "musicResponsiveListItemFlexColumnRenderer", "text")
}

// itemTitle locates an item's title: flat title field first, then the first
// flex column.
func itemTitle(node tree.Value) (string, bool) {
	if s, ok := runText(node.Key("title")); ok {
		return s, true
	}
	return runText(flexColumn(node, 0))
}

// thumbnailPaths are the known homes of a thumbnails array, in probe order.
var thumbnailPaths = [][]any{
	{"thumbnail", "musicThumbnailRenderer", "thumbnail", "thumbnails"},
	{"thumbnailRenderer", "musicThumbnailRenderer", "thumbnail", "thumbnails"},
	{"thumbnail", "thumbnails"},
	{"thumbnails"},
}

// thumbnailURL picks the highest-resolution thumbnail. The source orders the
// list by resolution, so the last entry wins.
func thumbnailURL(node tree.Value) (string, bool) {
	for _, p := range thumbnailPaths {
		arr := node.At(p...)
		if arr.Len() == 0 {
			continue
		}
		if u, ok := arr.Index(-1).Key("url").Str(); ok && u != "" {
			return u, true
		}
	}
	return "", false
}

// separatorRun reports whether a run is pure punctuation between entities
// (" • ", " & ", ", ").
func separatorRun(text string) bool {
	t := strings.TrimSpace(text)
	return t == "" || t == "•" || t == "&" || t == ","
}

// artistRefs collects artist name/id pairs out of a runs container. A run
// linked to a UC-prefixed browse target carries an artist id; unlinked runs
// contribute name-only references. Separator runs are skipped.
func artistRefs(text tree.Value) []ArtistRef {
	var out []ArtistRef
	for _, r := range text.Key("runs").Array() {
		name, ok := r.Key("text").Str()
		if !ok || separatorRun(name) {
			continue
		}
		// Duration fragments share the subtitle with artist names.
		if _, clock := parseClock(name); clock {
			continue
		}
		ref := ArtistRef{Name: name}
		if id, ok := r.At("navigationEndpoint", "browseEndpoint", "browseId").Str(); ok && strings.HasPrefix(id, "UC") {
			ref.ID = id
		}
		out = append(out, ref)
	}
	return out
}

// itemArtists probes the known artist layouts: the subtitle runs of a
// two-row item, then the second flex column of a list item.
func itemArtists(node tree.Value) []ArtistRef {
	if refs := artistRefs(node.Key("subtitle")); len(refs) > 0 {
		return refs
	}
	return artistRefs(flexColumn(node, 1))
}

// albumRef scans an item's flex columns for a run linked to an MPRE-prefixed
// browse target, which is how list items reference their album.
func albumRef(node tree.Value) *AlbumRef {
	for i := 1; i < node.Key("flexColumns").Len(); i++ {
		for _, r := range flexColumn(node, i).Key("runs").Array() {
			id, ok := r.At("navigationEndpoint", "browseEndpoint", "browseId").Str()
			if !ok || !strings.HasPrefix(id, "MPRE") {
				continue
			}
			name, _ := r.Key("text").Str()
			return &AlbumRef{ID: id, Name: name}
		}
	}
	return nil
}

// durationSec extracts a track duration in seconds. Numeric lengthSeconds is
// preferred; fixed-column and subtitle text fall back to "m:ss" / "h:mm:ss"
// clock strings.
func durationSec(node tree.Value) int {
	if n, ok := node.Key("lengthSeconds").Int(); ok && n > 0 {
		return int(n)
	}
	if s, ok := node.Key("lengthSeconds").Str(); ok {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	fixed := node.At("fixedColumns", 0, "musicResponsiveListItemFixedColumnRenderer", "text")
	if s, ok := runText(fixed); ok {
		if n, ok := parseClock(s); ok {
			return n
		}
	}
	for _, r := range node.At("subtitle", "runs").Array() {
		if s, ok := r.Key("text").Str(); ok {
			if n, ok := parseClock(s); ok {
				return n
			}
		}
	}
	return 0
}

// parseClock converts "m:ss" or "h:mm:ss" into seconds.
func parseClock(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, false
		}
		total = total*60 + n
	}
	return total, true
}

// navTarget is a navigation affordance attached to a renderer node: either a
// watch target carrying a video id, or a browse target carrying an opaque
// browse id plus optional page-type tag and query params. One node may carry
// both.
type navTarget struct {
	videoID  string
	browseID string
	pageType string
	params   string
}

// navEndpointPaths are the known homes of a navigation endpoint object, in
// probe order.
var navEndpointPaths = [][]any{
	{"navigationEndpoint"},
	{"title", "runs", 0, "navigationEndpoint"},
	{"flexColumns", 0, "musicResponsiveListItemFlexColumnRenderer", "text", "runs", 0, "navigationEndpoint"},
	{"onTap"},
	{"overlay", "musicItemThumbnailOverlayRenderer", "content", "musicPlayButtonRenderer", "playNavigationEndpoint"},
}

// navigationTarget extracts the navigation affordances of an item node. The
// first endpoint layout that yields either target kind wins; a watch id from
// playlistItemData supplements an endpoint that only carried a browse target.
func navigationTarget(node tree.Value) (navTarget, bool) {
	var t navTarget
	for _, p := range navEndpointPaths {
		ep := node.At(p...)
		if !ep.Exists() {
			continue
		}
		if id, ok := ep.At("watchEndpoint", "videoId").Str(); ok && id != "" {
			t.videoID = id
		}
		if id, ok := ep.At("browseEndpoint", "browseId").Str(); ok && id != "" {
			t.browseID = id
			t.pageType, _ = ep.At("browseEndpoint",
				"browseEndpointContextSupportedConfigs",
				"browseEndpointContextMusicConfig", "pageType").Str()
			t.params, _ = ep.At("browseEndpoint", "params").Str()
		}
		if t.videoID != "" || t.browseID != "" {
			break
		}
	}
	if t.videoID == "" {
		if id, ok := node.At("playlistItemData", "videoId").Str(); ok {
			t.videoID = id
		}
	}
	return t, t.videoID != "" || t.browseID != ""
}
