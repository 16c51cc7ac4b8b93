package catalog

import "github.com/tunefeed/catalog/tree"

// Continuation token extraction. Initial and continuation documents nest
// their cursor differently, so both traversals exist and the caller picks the
// one matching the call it made. An empty string means the listing reported
// no further page.

// nextContinuation reads the classic continuations array attached to a shelf
// or section list container.
func nextContinuation(container tree.Value) string {
	tok, _ := container.At("continuations", 0, "nextContinuationData", "continuation").Str()
	return tok
}

// itemRendererToken scans an items array for a trailing continuation marker.
func itemRendererToken(contents tree.Value) string {
	for _, child := range contents.Array() {
		tok, ok := child.At("continuationItemRenderer", "continuationEndpoint",
			"continuationCommand", "token").Str()
		if ok && tok != "" {
			return tok
		}
	}
	return ""
}

// ExtractToken extracts the next-page token from an initial document. Empty
// when the document carries none.
func (p *Parser) ExtractToken(doc tree.Value) string {
	list, ok := sectionList(doc)
	if !ok {
		return ""
	}
	if tok := nextContinuation(list); tok != "" {
		return tok
	}
	// Shelves may carry their own continuations when the section list does not.
	for _, node := range list.Key("contents").Array() {
		if tok := nextContinuation(node.Key("musicShelfRenderer")); tok != "" {
			return tok
		}
	}
	return itemRendererToken(list.Key("contents"))
}

// ExtractContinuationToken extracts the next-page token from a continuation
// document. Empty when the document carries none.
func (p *Parser) ExtractContinuationToken(doc tree.Value) string {
	for _, path := range continuationListPaths {
		list := doc.At(path...)
		if !list.Exists() {
			continue
		}
		return nextContinuation(list)
	}
	for _, action := range doc.Key("onResponseReceivedActions").Array() {
		items := action.At("appendContinuationItemsAction", "continuationItems")
		if items.Exists() {
			return itemRendererToken(items)
		}
	}
	return ""
}
