package catalog

import (
	"strconv"
	"strings"

	"github.com/tunefeed/catalog/tree"
)

// Section building. A section-level renderer node is dispatched over a closed
// set of known shapes; each shape knows where its header text and items live.
// The probe order below is a fixed convention: when a node somehow matches
// more than one shape key, the first listed shape wins.

type sectionShape struct {
	key   string
	build func(*Parser, tree.Value, string) (Section, bool)
}

var sectionShapes []sectionShape

// Populated in init to break the initialization cycle between sectionShapes
// and wrappedSection (which dispatches back through buildSection).
func init() {
	sectionShapes = []sectionShape{
		{"musicCarouselShelfRenderer", (*Parser).carouselSection},
		{"musicShelfRenderer", (*Parser).shelfSection},
		{"musicCardShelfRenderer", (*Parser).cardShelfSection},
		{"musicImmersiveCarouselShelfRenderer", (*Parser).immersiveCarouselSection},
		{"gridRenderer", (*Parser).gridSection},
		{"itemSectionRenderer", (*Parser).wrappedSection},
	}
}

// chartLabels marks section titles that denote chart listings, matched
// case-insensitively. Orthogonal to the renderer shape.
var chartLabels = map[string]bool{
	"charts":           true,
	"top charts":       true,
	"trending":         true,
	"top songs":        true,
	"top music videos": true,
}

// buildSection converts one section-level node into a Section. Unknown
// shapes and shapes that yield no items produce nothing; both are surfaced
// through the notice sink and debug log only.
func (p *Parser) buildSection(node tree.Value, path string) (Section, bool) {
	for _, shape := range sectionShapes {
		inner := node.Key(shape.key)
		if !inner.Exists() {
			continue
		}
		return shape.build(p, inner, path+"/"+shape.key)
	}
	p.skip(Notice{Path: path, Code: NoticeUnknownSection, Key: strings.Join(node.Keys(), ",")})
	return Section{}, false
}

func (p *Parser) carouselSection(node tree.Value, path string) (Section, bool) {
	title, _ := runText(node.At("header", "musicCarouselShelfBasicHeaderRenderer", "title"))
	return p.finishSection(title, node.Key("contents"), path)
}

func (p *Parser) shelfSection(node tree.Value, path string) (Section, bool) {
	title, _ := runText(node.Key("title"))
	return p.finishSection(title, node.Key("contents"), path)
}

func (p *Parser) cardShelfSection(node tree.Value, path string) (Section, bool) {
	title, ok := runText(node.At("header", "musicCardShelfHeaderBasicRenderer", "title"))
	if !ok {
		title, _ = runText(node.Key("title"))
	}
	return p.finishSection(title, node.Key("contents"), path)
}

func (p *Parser) immersiveCarouselSection(node tree.Value, path string) (Section, bool) {
	title, ok := runText(node.At("header", "musicImmersiveCarouselShelfBasicHeaderRenderer", "title"))
	if !ok {
		title, _ = runText(node.At("header", "musicCarouselShelfBasicHeaderRenderer", "title"))
	}
	return p.finishSection(title, node.Key("contents"), path)
}

func (p *Parser) gridSection(node tree.Value, path string) (Section, bool) {
	title, _ := runText(node.At("header", "gridHeaderRenderer", "title"))
	return p.finishSection(title, node.Key("items"), path)
}

// wrappedSection recurses into an item-section wrapper and returns the first
// section any inner node yields.
func (p *Parser) wrappedSection(node tree.Value, path string) (Section, bool) {
	for i, child := range node.Key("contents").Array() {
		if sec, ok := p.buildSection(child, path+"/contents/"+strconv.Itoa(i)); ok {
			return sec, true
		}
	}
	return Section{}, false
}

// finishSection classifies every child of a shape's items array and assembles
// the Section. Empty sections are discarded rather than emitted as
// placeholders.
func (p *Parser) finishSection(title string, contents tree.Value, path string) (Section, bool) {
	items := p.collectItems(contents, path)
	if len(items) == 0 {
		p.skip(Notice{Path: path, Code: NoticeDiscardedSection})
		return Section{}, false
	}
	return Section{
		ID:      StableID(title, items[0].ItemID()),
		Title:   title,
		Items:   items,
		IsChart: chartLabels[strings.ToLower(strings.TrimSpace(title))],
	}, true
}

// itemWrappers are the known item-level renderer keys, in probe order.
var itemWrappers = []string{
	"musicResponsiveListItemRenderer",
	"musicTwoRowItemRenderer",
}

// collectItems classifies each child node of a section's items array,
// dropping anything unrecognized.
func (p *Parser) collectItems(contents tree.Value, path string) []ContentItem {
	var items []ContentItem
	for i, child := range contents.Array() {
		childPath := path + "/" + strconv.Itoa(i)
		item, ok := p.classifyChild(child, childPath)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items
}

func (p *Parser) classifyChild(child tree.Value, path string) (ContentItem, bool) {
	for _, key := range itemWrappers {
		inner := child.Key(key)
		if !inner.Exists() {
			continue
		}
		item, ok := ClassifyItem(inner)
		if !ok {
			p.skip(Notice{Path: path, Code: NoticeUnclassifiedItem, Key: key})
		}
		return item, ok
	}
	if inner := child.Key("musicNavigationButtonRenderer"); inner.Exists() {
		item, ok := navButtonItem(inner)
		if !ok {
			p.skip(Notice{Path: path, Code: NoticeUnclassifiedItem, Key: "musicNavigationButtonRenderer"})
		}
		return item, ok
	}
	// Continuation markers ride inside items arrays; they are not items.
	if !child.Key("continuationItemRenderer").Exists() {
		p.skip(Notice{Path: path, Code: NoticeUnknownItemShape, Key: strings.Join(child.Keys(), ",")})
	}
	return nil, false
}
