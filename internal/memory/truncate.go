package memory

// TruncateToByteBudget returns the longest prefix of s, cut on a rune
// boundary, whose UTF-8 encoding is at most budget bytes. Embedding
// endpoints reject oversized inputs, so query text is clamped before
// the call.
func TruncateToByteBudget(s string, budget int) string {
	if budget <= 0 {
		return ""
	}
	if len(s) <= budget {
		return s
	}

	runes := []rune(s)
	lo, hi := 0, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if len(string(runes[:mid])) <= budget {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return string(runes[:lo])
}
