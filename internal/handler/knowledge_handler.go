package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nikalabs/walletchat/internal/knowledge"
	"github.com/nikalabs/walletchat/internal/pkg/response"
)

type KnowledgeHandler struct {
	store *knowledge.Store
}

func NewKnowledgeHandler(store *knowledge.Store) *KnowledgeHandler {
	return &KnowledgeHandler{store: store}
}

func (h *KnowledgeHandler) List(c *gin.Context) {
	response.Success(c, gin.H{"items": h.store.GetAll()})
}

func (h *KnowledgeHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.Error(c, http.StatusBadRequest, "invalid_request", "query required")
		return
	}
	response.Success(c, gin.H{"items": h.store.SearchKeyword(query)})
}

func (h *KnowledgeHandler) ByCategory(c *gin.Context) {
	response.Success(c, gin.H{"items": h.store.GetByCategory(c.Param("category"))})
}
