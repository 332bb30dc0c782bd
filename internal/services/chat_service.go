package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/barman-ayush/imitate.ai/internal/memory"
	"github.com/barman-ayush/imitate.ai/internal/models"
	"github.com/barman-ayush/imitate.ai/internal/prompt"
	"github.com/barman-ayush/imitate.ai/internal/providers/llm"
	pgrepo "github.com/barman-ayush/imitate.ai/internal/repositories/postgres"
	"github.com/barman-ayush/imitate.ai/internal/utils"
)

const (
	repetitionWindow = 30
	seedDelimiter    = "\n\n"

	genMaxTokens   = 256
	genTemperature = 0.75
	genTopP        = 0.9
	// genPresencePenalty only applies when the repetition signal fires.
	genPresencePenalty = 0.6
)

type ChatService interface {
	// Respond runs the full pipeline for one user message and returns
	// the companion's reply.
	Respond(ctx context.Context, userID, companionID, userPrompt string) (string, error)
}

// CompanionGetter is the slice of CompanionService the pipeline needs.
type CompanionGetter interface {
	Get(ctx context.Context, id string) (*models.Companion, error)
}

type chatService struct {
	companions CompanionGetter
	messages   pgrepo.MessageRepository
	memory     *memory.Manager
	llm        llm.Provider
	modelName  string
	log        *logrus.Logger
}

func NewChatService(companions CompanionGetter, messages pgrepo.MessageRepository, mgr *memory.Manager, provider llm.Provider, modelName string, log *logrus.Logger) ChatService {
	return &chatService{
		companions: companions,
		messages:   messages,
		memory:     mgr,
		llm:        provider,
		modelName:  modelName,
		log:        log,
	}
}

func (s *chatService) Respond(ctx context.Context, userID, companionID, userPrompt string) (string, error) {
	const op = "ChatService.Respond"

	if userID == "" || companionID == "" || strings.TrimSpace(userPrompt) == "" {
		return "", utils.E(utils.CodeInvalidArgument, op, "user id, companion id, and prompt are required", nil)
	}

	companion, err := s.companions.Get(ctx, companionID)
	if err != nil {
		return "", err
	}

	key := memory.CompanionKey{
		CompanionID: companion.ID,
		ModelName:   s.modelName,
		UserID:      userID,
	}

	if err := s.messages.Insert(ctx, &models.Message{
		ID:          uuid.NewString(),
		CompanionID: companion.ID,
		UserID:      userID,
		Role:        models.RoleUser,
		Content:     userPrompt,
		CreatedAt:   time.Now().UTC(),
	}); err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to persist user message", err)
	}

	signal, err := s.repetitionSignal(ctx, companion.ID, userID, userPrompt)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to load recent messages", err)
	}
	if signal.Repetitive {
		s.log.WithFields(logrus.Fields{
			"op":           op,
			"companion_id": companion.ID,
			"score":        signal.Score,
		}).Debug("repetition detected")
	}

	s.memory.SeedChatHistory(ctx, companion.Seed, seedDelimiter, key)
	s.memory.WriteToHistory(ctx, "User: "+userPrompt+"\n", key)

	// History read and vector search are independent; run them together.
	var recentDialogue string
	var fragments []models.MemoryFragment
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recentDialogue = s.memory.ReadLatestHistory(gctx, key)
		return nil
	})
	g.Go(func() error {
		fragments = s.memory.VectorSearch(gctx, userPrompt, companion.ID)
		return nil
	})
	_ = g.Wait()

	semantic := make([]string, 0, len(fragments))
	for _, f := range fragments {
		semantic = append(semantic, f.Content)
	}

	assembled := prompt.Assemble(prompt.Input{
		CompanionName:   companion.Name,
		Instructions:    companion.Instructions,
		UserName:        companion.UserName,
		RecentDialogue:  recentDialogue,
		SemanticContext: semantic,
		Prompt:          userPrompt,
		Repetitive:      signal.Repetitive,
		RepeatedLine:    signal.Match,
	})

	params := llm.GenerationParams{
		MaxTokens:   genMaxTokens,
		Temperature: genTemperature,
		TopP:        genTopP,
	}
	if signal.Repetitive {
		params.PresencePenalty = genPresencePenalty
	}

	raw, err := s.llm.Generate(ctx, assembled, params)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "model generation failed", err)
	}

	reply := firstLine(raw)
	if len([]rune(reply)) > 1 {
		if err := s.persistReply(ctx, companion.ID, userID, reply, key); err != nil {
			return "", utils.E(utils.CodeInternal, op, "failed to persist reply", err)
		}
	}
	return reply, nil
}

// repetitionSignal compares the prompt against the companion's recent
// replies for this user.
func (s *chatService) repetitionSignal(ctx context.Context, companionID, userID, userPrompt string) (memory.RepetitionSignal, error) {
	recent, err := s.messages.LatestN(ctx, companionID, userID, repetitionWindow)
	if err != nil {
		return memory.RepetitionSignal{}, err
	}

	candidates := make([]string, 0, len(recent))
	for _, m := range recent {
		if m.Role == models.RoleSystem {
			candidates = append(candidates, m.Content)
		}
	}
	return memory.DetectRepetition(userPrompt, candidates, memory.RepetitionThreshold), nil
}

// persistReply writes the reply to the key-value history and the
// relational log. The two writes are independent and run together.
func (s *chatService) persistReply(ctx context.Context, companionID, userID, reply string, key memory.CompanionKey) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.memory.WriteToHistory(gctx, reply, key)
		return nil
	})
	g.Go(func() error {
		return s.messages.Insert(gctx, &models.Message{
			ID:          uuid.NewString(),
			CompanionID: companionID,
			UserID:      userID,
			Role:        models.RoleSystem,
			Content:     reply,
			CreatedAt:   time.Now().UTC(),
		})
	})
	return g.Wait()
}

// firstLine strips commas from the raw output and keeps only the text
// before the first newline.
func firstLine(raw string) string {
	cleaned := strings.ReplaceAll(raw, ",", "")
	if i := strings.IndexByte(cleaned, '\n'); i >= 0 {
		cleaned = cleaned[:i]
	}
	return strings.TrimSpace(cleaned)
}
