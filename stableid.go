package catalog

import (
	"hash/fnv"
	"strconv"
)

// StableID derives a section identifier from its title and the id of its
// first item. It is a pure function of its arguments, with no process state
// and no randomness involved, so two parses of the same logical section
// always key identically, which consuming UIs rely on for list diffing.
func StableID(title, firstItemID string) string {
	h := fnv.New64a()
	h.Write([]byte(title))
	h.Write([]byte{0x1f})
	h.Write([]byte(firstItemID))
	return "sec_" + strconv.FormatUint(h.Sum64(), 16)
}
