package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tradepost/backend/internal/domain"
)

func (h *Handler) initModerationRoutes(api *gin.RouterGroup) {
	listings := api.Group("/listings", h.userIdentityMiddleware)
	listings.POST("/moderation", h.submitListing)
	listings.GET("/:id/moderation", h.getListingModerationStatus)

	moderation := api.Group("/moderation", h.reviewerIdentityMiddleware)
	moderation.POST("/:id/approve", h.manualApprove)
	moderation.POST("/:id/reject", h.manualReject)
}

type submitListingInput struct {
	ListingID   uuid.UUID `json:"listing_id" binding:"required"`
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description" binding:"required"`
	Category    string    `json:"category"`
	Price       int64     `json:"price"`
}

type moderationDecisionResponse struct {
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
	Automated bool   `json:"automated"`
}

func (h *Handler) submitListing(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var input submitListingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	decision, err := h.services.Moderation.Submit(c.Request.Context(), domain.ListingSubmission{
		ListingID:   input.ListingID,
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
	})
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, moderationDecisionResponse{
		Status:    string(decision.Status),
		Reason:    decision.Reason,
		Automated: decision.Automated,
	})
}

type listingModerationStatusResponse struct {
	Status        string     `json:"status"`
	ReviewerNotes string     `json:"reviewer_notes,omitempty"`
	Automated     bool       `json:"automated"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (h *Handler) getListingModerationStatus(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, RecordNotFoundCode)
		return
	}

	rec, err := h.services.Moderation.GetStatus(c.Request.Context(), listingID)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, listingModerationStatusResponse{
		Status:        string(rec.Status),
		ReviewerNotes: rec.ReviewerNotes.String,
		Automated:     rec.AutomatedReview,
		ReviewedAt:    rec.ReviewedAt,
		CreatedAt:     rec.CreatedAt,
	})
}

type manualApproveInput struct {
	Notes string `json:"notes"`
}

func (h *Handler) manualApprove(c *gin.Context) {
	reviewerID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, RecordNotFoundCode)
		return
	}

	var input manualApproveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Moderation.ManualApprove(c.Request.Context(), listingID, reviewerID, input.Notes); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type manualRejectInput struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *Handler) manualReject(c *gin.Context) {
	reviewerID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, RecordNotFoundCode)
		return
	}

	var input manualRejectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Moderation.ManualReject(c.Request.Context(), listingID, reviewerID, input.Reason); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
