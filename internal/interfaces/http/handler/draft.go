package handler

import (
	appordering "github.com/fieldsales/backend/internal/application/ordering"
	"github.com/gin-gonic/gin"
)

// DraftHandler serves the owner's working draft order
type DraftHandler struct {
	BaseHandler
	draftService *appordering.DraftService
}

// NewDraftHandler creates a new DraftHandler
func NewDraftHandler(draftService *appordering.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// Get handles GET /orders/draft.
// Having no draft is a normal state: the response is a success with
// null data, not a 404.
func (h *DraftHandler) Get(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	draft, err := h.draftService.GetMyDraft(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, draft)
}

// Save handles PUT /orders/draft. The incoming draft wholly replaces
// whatever the owner had before.
func (h *DraftHandler) Save(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appordering.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	draft, err := h.draftService.SaveDraft(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, draft)
}

// Delete handles DELETE /orders/draft
func (h *DraftHandler) Delete(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.draftService.DeleteDraft(c.Request.Context(), ownerID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
