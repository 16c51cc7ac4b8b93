package catalog

// Notice codes. The normalizer has exactly two outcomes per node, a value or
// nothing, so notices exist purely for developer visibility; they never
// change control flow.
const (
	NoticeUnknownSection   = "unknown_section"
	NoticeUnclassifiedItem = "unclassified_item"
	NoticeDiscardedSection = "discarded_empty_section"
	NoticeUnknownItemShape = "unknown_item_shape"
	NoticeUnrecognizedRoot = "unrecognized_root"
)

// Notice records one node the normalizer skipped.
type Notice struct {
	Path string // slash path of the skipped node within the document
	Code string // one of the Notice* codes
	Key  string // offending renderer key, when one was identified
}

// NoticeSink receives skip notices during a parse. Sinks must be fast and
// must not retain the Notice beyond the call if they mutate it.
type NoticeSink func(Notice)
