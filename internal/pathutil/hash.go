package pathutil

import "hash/fnv"

// HashString returns a stable 32-bit FNV-1a hash of s. The state-file
// savers name their temp files with os.CreateTemp and do not call it.
func HashString(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
