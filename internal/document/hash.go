package document

import (
	"fmt"
	"hash/fnv"
)

// ContentHash returns the 32-bit FNV-1a digest of s as eight lowercase hex
// digits.
func ContentHash(s string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return fmt.Sprintf("%08x", h.Sum32())
}
