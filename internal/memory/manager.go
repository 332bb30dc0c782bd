package memory

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/barman-ayush/imitate.ai/internal/models"
)

const (
	// HistoryWindow bounds how many recent lines a prompt carries.
	HistoryWindow = 30

	// embedByteBudget clamps query text before embedding.
	embedByteBudget = 8000

	topK          = 3
	minSimilarity = 0.7
)

// HistoryStore is the sorted-set log behind a CompanionKey.
type HistoryStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	Append(ctx context.Context, key, member string, score float64) error
	// Latest returns up to n entries in chronological order.
	Latest(ctx context.Context, key string, n int64) ([]string, error)
}

// FragmentSearcher performs a KNN lookup in a companion's namespace.
type FragmentSearcher interface {
	Search(ctx context.Context, companionID string, embedding []float32, k int, minSim float64) ([]models.MemoryFragment, error)
}

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Manager owns the per-(companion, user) conversation log and the
// semantic recall path. One instance is constructed at startup and
// injected into the chat pipeline.
type Manager struct {
	history   HistoryStore
	fragments FragmentSearcher
	embedder  Embedder
	log       *logrus.Logger
}

func NewManager(history HistoryStore, fragments FragmentSearcher, embedder Embedder, log *logrus.Logger) *Manager {
	return &Manager{history: history, fragments: fragments, embedder: embedder, log: log}
}

// WriteToHistory appends text to the key's log, scored by current time.
// A partial key is refused: the call logs and returns "" without
// touching the store.
func (m *Manager) WriteToHistory(ctx context.Context, text string, key CompanionKey) string {
	const op = "Manager.WriteToHistory"

	if !key.Valid() {
		m.log.WithField("op", op).Warn("companion key incomplete, skipping history write")
		return ""
	}

	score := float64(time.Now().UnixMilli())
	if err := m.history.Append(ctx, key.String(), text, score); err != nil {
		m.log.WithField("op", op).WithError(err).Error("failed to append history")
		return ""
	}
	return text
}

// ReadLatestHistory returns the most recent window of the key's log,
// oldest first, joined with newlines. Same partial-key guard as writes.
func (m *Manager) ReadLatestHistory(ctx context.Context, key CompanionKey) string {
	const op = "Manager.ReadLatestHistory"

	if !key.Valid() {
		m.log.WithField("op", op).Warn("companion key incomplete, skipping history read")
		return ""
	}

	lines, err := m.history.Latest(ctx, key.String(), HistoryWindow)
	if err != nil {
		m.log.WithField("op", op).WithError(err).Error("failed to read history")
		return ""
	}
	return strings.Join(lines, "\n")
}

// SeedChatHistory bootstraps the key's log from a seed transcript. A
// key that already has entries is left untouched, so seeding is
// idempotent. Seed lines get strictly increasing sequence scores.
func (m *Manager) SeedChatHistory(ctx context.Context, seed, delimiter string, key CompanionKey) {
	const op = "Manager.SeedChatHistory"

	if !key.Valid() {
		m.log.WithField("op", op).Warn("companion key incomplete, skipping seed")
		return
	}

	exists, err := m.history.Exists(ctx, key.String())
	if err != nil {
		m.log.WithField("op", op).WithError(err).Error("failed to check history existence")
		return
	}
	if exists {
		m.log.WithField("op", op).Debug("history already seeded")
		return
	}

	seq := 0
	for _, line := range strings.Split(seed, delimiter) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := m.history.Append(ctx, key.String(), line, float64(seq)); err != nil {
			m.log.WithField("op", op).WithError(err).Error("failed to seed history line")
			return
		}
		seq++
	}
}

// VectorSearch embeds the query and looks up the nearest fragments in
// the companion's namespace. Failures degrade to no context: they are
// logged and an empty slice is returned, never an error.
func (m *Manager) VectorSearch(ctx context.Context, query, companionID string) []models.MemoryFragment {
	const op = "Manager.VectorSearch"

	embedding, err := m.embedder.Embed(ctx, TruncateToByteBudget(query, embedByteBudget))
	if err != nil {
		m.log.WithField("op", op).WithError(err).Error("failed to embed query")
		return nil
	}

	hits, err := m.fragments.Search(ctx, companionID, embedding, topK, minSimilarity)
	if err != nil {
		m.log.WithField("op", op).WithError(err).Error("vector search failed")
		return nil
	}
	return hits
}
