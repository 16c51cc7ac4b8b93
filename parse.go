package catalog

import (
	"log/slog"
	"strconv"

	"github.com/tunefeed/catalog/tree"
)

// Parser normalizes raw catalog-API documents into Sections. It holds no
// per-parse state; the same Parser may be used from any number of goroutines.
type Parser struct {
	log    *slog.Logger
	notice NoticeSink
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithLogger sets the logger used for skip diagnostics. Defaults to
// slog.Default().
func WithLogger(l *slog.Logger) ParserOption {
	return func(p *Parser) {
		if l != nil {
			p.log = l
		}
	}
}

// WithNoticeSink registers a callback receiving a Notice for every node the
// parser skips.
func WithNoticeSink(fn NoticeSink) ParserOption {
	return func(p *Parser) { p.notice = fn }
}

// NewParser creates a Parser with the given options.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{log: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) skip(n Notice) {
	p.log.Debug("catalog: skipped node", "code", n.Code, "path", n.Path, "key", n.Key)
	if p.notice != nil {
		p.notice(n)
	}
}

// sectionListPaths are the known homes of the section list in an initial
// browse/search document, in probe order.
var sectionListPaths = [][]any{
	{"contents", "singleColumnBrowseResultsRenderer", "tabs", 0, "tabRenderer", "content", "sectionListRenderer"},
	{"contents", "tabbedSearchResultsRenderer", "tabs", 0, "tabRenderer", "content", "sectionListRenderer"},
	{"contents", "sectionListRenderer"},
}

// continuationListPaths are the known homes of the section list in a
// continuation document.
var continuationListPaths = [][]any{
	{"continuationContents", "sectionListContinuation"},
	{"continuationContents", "musicShelfContinuation"},
}

// sectionList locates the section list container of an initial document.
func sectionList(doc tree.Value) (tree.Value, bool) {
	for _, path := range sectionListPaths {
		if v := doc.At(path...); v.Exists() {
			return v, true
		}
	}
	return tree.Value{}, false
}

// ParseInitial normalizes a top-level browse or search document. It is total:
// any input, however malformed, yields a (possibly empty) slice.
func (p *Parser) ParseInitial(doc tree.Value) []Section {
	list, ok := sectionList(doc)
	if !ok {
		p.skip(Notice{Path: "/", Code: NoticeUnrecognizedRoot})
		return nil
	}
	return p.sectionsOf(list.Key("contents"), "/contents")
}

// ParseContinuation normalizes a continuation document. Total, like
// ParseInitial.
func (p *Parser) ParseContinuation(doc tree.Value) []Section {
	for _, path := range continuationListPaths {
		list := doc.At(path...)
		if !list.Exists() {
			continue
		}
		return p.sectionsOf(list.Key("contents"), "/continuationContents")
	}
	// Newer documents append continuation items through response actions.
	for i, action := range doc.Key("onResponseReceivedActions").Array() {
		items := action.At("appendContinuationItemsAction", "continuationItems")
		if items.Exists() {
			return p.sectionsOf(items, "/onResponseReceivedActions/"+strconv.Itoa(i))
		}
	}
	p.skip(Notice{Path: "/", Code: NoticeUnrecognizedRoot})
	return nil
}

func (p *Parser) sectionsOf(contents tree.Value, path string) []Section {
	var out []Section
	for i, node := range contents.Array() {
		if sec, ok := p.buildSection(node, path+"/"+strconv.Itoa(i)); ok {
			out = append(out, sec)
		}
	}
	return out
}

// ParseInitialPage bundles ParseInitial with token extraction from the same
// document.
func (p *Parser) ParseInitialPage(doc tree.Value) Page[Section] {
	return Page[Section]{Items: p.ParseInitial(doc), Continuation: p.ExtractToken(doc)}
}

// ParseContinuationPage bundles ParseContinuation with token extraction.
func (p *Parser) ParseContinuationPage(doc tree.Value) Page[Section] {
	return Page[Section]{Items: p.ParseContinuation(doc), Continuation: p.ExtractContinuationToken(doc)}
}

// SongsPage normalizes a flat song listing (a single shelf) out of an initial
// document, as served by library and playlist endpoints.
func (p *Parser) SongsPage(doc tree.Value) Page[Song] {
	list, ok := sectionList(doc)
	if !ok {
		p.skip(Notice{Path: "/", Code: NoticeUnrecognizedRoot})
		return Page[Song]{}
	}
	for i, node := range list.Key("contents").Array() {
		shelf := node.Key("musicShelfRenderer")
		if !shelf.Exists() {
			continue
		}
		path := "/contents/" + strconv.Itoa(i) + "/musicShelfRenderer"
		return Page[Song]{
			Items:        p.songsOf(shelf.Key("contents"), path),
			Continuation: nextContinuation(shelf),
		}
	}
	p.skip(Notice{Path: "/contents", Code: NoticeUnrecognizedRoot})
	return Page[Song]{}
}

// SongsContinuationPage normalizes the continuation form of a flat song
// listing.
func (p *Parser) SongsContinuationPage(doc tree.Value) Page[Song] {
	shelf := doc.At("continuationContents", "musicShelfContinuation")
	if !shelf.Exists() {
		p.skip(Notice{Path: "/", Code: NoticeUnrecognizedRoot})
		return Page[Song]{}
	}
	return Page[Song]{
		Items:        p.songsOf(shelf.Key("contents"), "/continuationContents/musicShelfContinuation"),
		Continuation: nextContinuation(shelf),
	}
}

func (p *Parser) songsOf(contents tree.Value, path string) []Song {
	var out []Song
	for i, child := range contents.Array() {
		item, ok := p.classifyChild(child, path+"/"+strconv.Itoa(i))
		if !ok {
			continue
		}
		if song, ok := item.(Song); ok {
			out = append(out, song)
		}
	}
	return out
}

// ---- package-level convenience API over a default Parser ----

var defaultParser = NewParser()

// ParseInitial normalizes a top-level document using the default Parser.
func ParseInitial(doc tree.Value) []Section { return defaultParser.ParseInitial(doc) }

// ParseContinuation normalizes a continuation document using the default
// Parser.
func ParseContinuation(doc tree.Value) []Section { return defaultParser.ParseContinuation(doc) }

// ExtractToken extracts the next-page token of an initial document using the
// default Parser.
func ExtractToken(doc tree.Value) string { return defaultParser.ExtractToken(doc) }

// ExtractContinuationToken extracts the next-page token of a continuation
// document using the default Parser.
func ExtractContinuationToken(doc tree.Value) string {
	return defaultParser.ExtractContinuationToken(doc)
}
