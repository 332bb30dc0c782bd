package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/barman-ayush/imitate.ai/internal/services"
	"github.com/barman-ayush/imitate.ai/internal/utils"
)

type CompanionHandler struct {
	companions services.CompanionService
	messages   services.MessageService
}

func NewCompanionHandler(companions services.CompanionService, messages services.MessageService) *CompanionHandler {
	return &CompanionHandler{companions: companions, messages: messages}
}

type CompanionRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Instructions string   `json:"instructions" binding:"required"`
	Seed         string   `json:"seed" binding:"required"`
	Src          string   `json:"src"`
	Tags         []string `json:"tags"`
	UserName     string   `json:"user_name"`
}

func (r CompanionRequest) input() services.CompanionInput {
	return services.CompanionInput{
		Name:         r.Name,
		Description:  r.Description,
		Instructions: r.Instructions,
		Seed:         r.Seed,
		Src:          r.Src,
		Tags:         r.Tags,
	}
}

func (h *CompanionHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CompanionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "CompanionHandler.Create", "invalid request body", err))
		return
	}

	companion, err := h.companions.Create(c.Request.Context(), userID, req.UserName, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, companion)
}

func (h *CompanionHandler) Get(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	companion, err := h.companions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, companion)
}

func (h *CompanionHandler) List(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	limit := 0
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}

	rows, err := h.companions.List(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companions": rows})
}

func (h *CompanionHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CompanionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "CompanionHandler.Update", "invalid request body", err))
		return
	}

	companion, err := h.companions.Update(c.Request.Context(), userID, c.Param("id"), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, companion)
}

func (h *CompanionHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.companions.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CompanionHandler) ListMessages(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	limit := 50
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	rows, err := h.messages.ListByCompanion(c.Request.Context(), userID, c.Param("id"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"companion_id": c.Param("id"),
		"messages":     rows,
	})
}

type IngestMemoryRequest struct {
	Content  string         `json:"content" binding:"required"`
	Metadata map[string]any `json:"metadata"`
}

func (h *CompanionHandler) IngestMemory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req IngestMemoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "CompanionHandler.IngestMemory", "invalid request body", err))
		return
	}

	var metadata []byte
	if req.Metadata != nil {
		b, err := json.Marshal(req.Metadata)
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, "CompanionHandler.IngestMemory", "invalid metadata", err))
			return
		}
		metadata = b
	}

	fragment, err := h.companions.IngestMemory(c.Request.Context(), userID, c.Param("id"), req.Content, metadata)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fragment)
}
