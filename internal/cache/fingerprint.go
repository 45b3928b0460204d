// ABOUTME: Canonical cache-key derivation from an operation and its parameters.
// ABOUTME: Identical parameter sets always collide; any difference never does.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// Fingerprint derives a deterministic cache key from an operation tag
// and its full parameter set. Callers must pass default-substituted
// values so an omitted parameter and its explicit default produce the
// same key. Parameter order does not matter. The canonical form is
// JSON, so free-text values can never smuggle delimiters that make two
// different parameter sets hash alike.
func Fingerprint(op string, params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([][2]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, [2]string{k, fmt.Sprintf("%v", params[k])})
	}
	canonical, err := json.Marshal(struct {
		Op     string      `json:"op"`
		Params [][2]string `json:"params"`
	}{op, pairs})
	if err != nil {
		// Unreachable for string pairs; hash the op tag alone rather
		// than panic.
		canonical = []byte(op)
	}

	sum := sha256.Sum256(canonical)
	return op + ":" + hex.EncodeToString(sum[:16])
}
