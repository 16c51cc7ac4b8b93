package catalog

// Package catalog normalizes the deeply nested, weakly-typed JSON documents
// of an undocumented music-catalog API into a stable typed content model:
//
// - tree.Value quarantines the dynamic JSON behind optional-returning navigation
// - classification turns item renderer nodes into Song/Album/Playlist/Artist
// - section building groups items under stable, deterministic section ids
// - token extraction and the paginate package handle cursor-based continuations
//
// Design policy:
// - Any single node either produces a value or produces nothing; there is no
//   node-level error. Malformed shapes degrade to skips, surfaced through the
//   debug log and optional NoticeSink, never through control flow.
// - Parsing is synchronous, side-effect-free and allocation-owned by the
//   caller; the Parser keeps no state between calls.
// - Place pagination sessions under paginate/, the collaborator HTTP client
//   under httpapi/, and the CLI under cmd/catalogctl.
//
// Typical usage:
//
//	doc, err := tree.Decode(body)
//	sections := catalog.ParseInitial(doc)
//	token := catalog.ExtractToken(doc)
