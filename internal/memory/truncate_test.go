package memory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateToByteBudgetShortInput(t *testing.T) {
	assert.Equal(t, "hello", TruncateToByteBudget("hello", 100))
	assert.Equal(t, "hello", TruncateToByteBudget("hello", 5))
}

func TestTruncateToByteBudgetCutsToBudget(t *testing.T) {
	s := strings.Repeat("a", 50)
	got := TruncateToByteBudget(s, 10)
	assert.Equal(t, strings.Repeat("a", 10), got)
}

func TestTruncateToByteBudgetRuneBoundary(t *testing.T) {
	// "héllo" = h(1) é(2) l(1) l(1) o(1); a 2-byte budget cannot split é.
	got := TruncateToByteBudget("héllo", 2)
	assert.Equal(t, "h", got)

	got = TruncateToByteBudget("héllo", 3)
	assert.Equal(t, "hé", got)
}

func TestTruncateToByteBudgetMultibyteOnly(t *testing.T) {
	s := strings.Repeat("日", 10) // 3 bytes each
	got := TruncateToByteBudget(s, 8)
	assert.Equal(t, strings.Repeat("日", 2), got)
	assert.LessOrEqual(t, len(got), 8)
}

func TestTruncateToByteBudgetZeroBudget(t *testing.T) {
	assert.Equal(t, "", TruncateToByteBudget("hello", 0))
	assert.Equal(t, "", TruncateToByteBudget("hello", -1))
}
