// Package cart computes the canonical fingerprint of a submitted cart.
// Identical carts always hash to the same value regardless of line order,
// which is what duplicate-submission detection keys on.
package cart

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"morishcart/internal/model"
)

// Fingerprint returns the hex SHA-256 digest of the canonical cart
// representation: each line formatted as "productId:quantity", sorted
// lexicographically and joined with "|".
func Fingerprint(items []model.CartItem) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%s:%d", item.ProductID, item.Quantity)
	}
	sort.Strings(lines)

	sum := sha256.Sum256([]byte(strings.Join(lines, "|")))
	return hex.EncodeToString(sum[:])
}

// DedupBucket maps a timestamp onto a coarse time bucket sized by the dedup
// window. Orders carry this value under a unique (cart_hash, dedup_bucket)
// constraint so concurrent identical submissions cannot both insert.
func DedupBucket(t time.Time, window time.Duration) int64 {
	return t.Unix() / int64(window.Seconds())
}
