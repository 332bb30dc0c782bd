package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/barman-ayush/imitate.ai/internal/cache"
	"github.com/barman-ayush/imitate.ai/internal/memory"
	"github.com/barman-ayush/imitate.ai/internal/models"
	pgrepo "github.com/barman-ayush/imitate.ai/internal/repositories/postgres"
	"github.com/barman-ayush/imitate.ai/internal/utils"
)

const companionCacheTTL = 5 * time.Minute

type CompanionInput struct {
	Name         string
	Description  string
	Instructions string
	Seed         string
	Src          string
	Tags         []string
}

type CompanionService interface {
	Create(ctx context.Context, ownerID, ownerName string, in CompanionInput) (*models.Companion, error)
	Get(ctx context.Context, id string) (*models.Companion, error)
	List(ctx context.Context, limit int) ([]models.Companion, error)
	Update(ctx context.Context, ownerID, id string, in CompanionInput) (*models.Companion, error)
	Delete(ctx context.Context, ownerID, id string) error
	// IngestMemory embeds a text chunk and stores it in the companion's
	// vector namespace.
	IngestMemory(ctx context.Context, ownerID, companionID, content string, metadata []byte) (*models.MemoryFragment, error)
}

type companionService struct {
	companions pgrepo.CompanionRepository
	fragments  pgrepo.FragmentRepository
	embedder   memory.Embedder
	cache      cache.Cache
	log        *logrus.Logger
}

func NewCompanionService(companions pgrepo.CompanionRepository, fragments pgrepo.FragmentRepository, embedder memory.Embedder, c cache.Cache, log *logrus.Logger) CompanionService {
	return &companionService{companions: companions, fragments: fragments, embedder: embedder, cache: c, log: log}
}

func (s *companionService) Create(ctx context.Context, ownerID, ownerName string, in CompanionInput) (*models.Companion, error) {
	const op = "CompanionService.Create"

	if ownerID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "owner id is required", nil)
	}
	if in.Name == "" || in.Instructions == "" || in.Seed == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "name, instructions, and seed are required", nil)
	}

	now := time.Now().UTC()
	c := &models.Companion{
		ID:           uuid.NewString(),
		UserID:       ownerID,
		UserName:     ownerName,
		Name:         in.Name,
		Description:  in.Description,
		Instructions: in.Instructions,
		Seed:         in.Seed,
		Src:          in.Src,
		Tags:         in.Tags,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.companions.Insert(ctx, c); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create companion", err)
	}
	return c, nil
}

func (s *companionService) Get(ctx context.Context, id string) (*models.Companion, error) {
	const op = "CompanionService.Get"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "companion id is required", nil)
	}

	var cached models.Companion
	if hit, err := s.cache.GetJSON(ctx, cache.CompanionKey(id), &cached); err != nil {
		s.log.WithField("op", op).WithError(err).Warn("companion cache read failed")
	} else if hit {
		return &cached, nil
	}

	c, err := s.companions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "companion not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get companion", err)
	}

	if err := s.cache.SetJSON(ctx, cache.CompanionKey(id), c, companionCacheTTL); err != nil {
		s.log.WithField("op", op).WithError(err).Warn("companion cache write failed")
	}
	return c, nil
}

func (s *companionService) List(ctx context.Context, limit int) ([]models.Companion, error) {
	const op = "CompanionService.List"

	rows, err := s.companions.List(ctx, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list companions", err)
	}
	return rows, nil
}

func (s *companionService) Update(ctx context.Context, ownerID, id string, in CompanionInput) (*models.Companion, error) {
	const op = "CompanionService.Update"

	c, err := s.authorized(ctx, op, ownerID, id)
	if err != nil {
		return nil, err
	}

	c.Name = in.Name
	c.Description = in.Description
	c.Instructions = in.Instructions
	c.Seed = in.Seed
	c.Src = in.Src
	c.Tags = in.Tags
	c.UpdatedAt = time.Now().UTC()

	if err := s.companions.Update(ctx, c); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update companion", err)
	}
	if err := s.cache.Del(ctx, cache.CompanionKey(id)); err != nil {
		s.log.WithField("op", op).WithError(err).Warn("companion cache invalidation failed")
	}
	return c, nil
}

func (s *companionService) Delete(ctx context.Context, ownerID, id string) error {
	const op = "CompanionService.Delete"

	if _, err := s.authorized(ctx, op, ownerID, id); err != nil {
		return err
	}
	if err := s.companions.Delete(ctx, id); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete companion", err)
	}
	if err := s.cache.Del(ctx, cache.CompanionKey(id)); err != nil {
		s.log.WithField("op", op).WithError(err).Warn("companion cache invalidation failed")
	}
	return nil
}

func (s *companionService) IngestMemory(ctx context.Context, ownerID, companionID, content string, metadata []byte) (*models.MemoryFragment, error) {
	const op = "CompanionService.IngestMemory"

	if content == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "content is required", nil)
	}
	if _, err := s.authorized(ctx, op, ownerID, companionID); err != nil {
		return nil, err
	}

	embedding, err := s.embedder.Embed(ctx, content)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to embed content", err)
	}

	f := &models.MemoryFragment{
		ID:          uuid.NewString(),
		CompanionID: companionID,
		Content:     content,
		Embedding:   pgvector.NewVector(embedding),
		Metadata:    datatypes.JSON(metadata),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.fragments.Insert(ctx, f); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to store memory fragment", err)
	}
	return f, nil
}

func (s *companionService) authorized(ctx context.Context, op, ownerID, id string) (*models.Companion, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != ownerID {
		return nil, utils.E(utils.CodeForbidden, op, "forbidden", nil)
	}
	return c, nil
}
