package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) initVerificationRoutes(api *gin.RouterGroup) {
	verification := api.Group("/verification", h.userIdentityMiddleware)

	verification.POST("/email/request", h.requestEmailVerification)
	verification.POST("/email/confirm", h.confirmEmail)
	verification.POST("/phone/request", h.requestPhoneVerification)
	verification.POST("/phone/confirm", h.confirmPhone)
	verification.POST("/id-document", h.submitIDDocument)
	verification.GET("/status", h.getVerificationStatus)

	admin := api.Group("/admin", h.reviewerIdentityMiddleware)
	admin.POST("/users/:id/id-review", h.markIDReviewed)
	admin.POST("/users/:id/promote", h.promoteTrusted)
}

type requestEmailVerificationInput struct {
	Email string `json:"email" binding:"required,email"`
}

type requestVerificationResponse struct {
	CodeID uuid.UUID `json:"code_id"`
}

func (h *Handler) requestEmailVerification(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var input requestEmailVerificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	codeID, err := h.services.Verification.RequestEmailVerification(c.Request.Context(), userID, input.Email)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusAccepted, requestVerificationResponse{CodeID: codeID})
}

type requestPhoneVerificationInput struct {
	Phone string `json:"phone" binding:"required,phonenumber"`
}

func (h *Handler) requestPhoneVerification(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var input requestPhoneVerificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	codeID, err := h.services.Verification.RequestPhoneVerification(c.Request.Context(), userID, input.Phone)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusAccepted, requestVerificationResponse{CodeID: codeID})
}

type confirmCodeInput struct {
	CodeID uuid.UUID `json:"code_id" binding:"required"`
	Code   string    `json:"code" binding:"required"`
}

func (h *Handler) confirmEmail(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var input confirmCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Verification.ConfirmEmail(c.Request.Context(), userID, input.CodeID, input.Code); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) confirmPhone(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var input confirmCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Verification.ConfirmPhone(c.Request.Context(), userID, input.CodeID, input.Code); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type submitIDDocumentInput struct {
	IDType   string `json:"id_type" binding:"required"`
	IDNumber string `json:"id_number" binding:"required"`
	ImageRef string `json:"image_ref" binding:"required"`
}

func (h *Handler) submitIDDocument(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var input submitIDDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Verification.SubmitIDDocument(c.Request.Context(), userID, input.IDType, input.IDNumber, input.ImageRef); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.Status(http.StatusAccepted)
}

type verificationStatusResponse struct {
	Level         string `json:"level"`
	EmailVerified bool   `json:"email_verified"`
	PhoneVerified bool   `json:"phone_verified"`
	IDStatus      string `json:"id_status,omitempty"`
}

func (h *Handler) getVerificationStatus(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	status, err := h.services.Verification.GetStatus(c.Request.Context(), userID)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, verificationStatusResponse{
		Level:         status.Level.String(),
		EmailVerified: status.EmailVerified,
		PhoneVerified: status.PhoneVerified,
		IDStatus:      string(status.IDStatus),
	})
}

type markIDReviewedInput struct {
	Verified *bool `json:"verified" binding:"required"`
}

func (h *Handler) markIDReviewed(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, RecordNotFoundCode)
		return
	}

	var input markIDReviewedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Verification.MarkIDReviewed(c.Request.Context(), targetID, *input.Verified); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) promoteTrusted(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, RecordNotFoundCode)
		return
	}

	if err := h.services.Verification.PromoteTrusted(c.Request.Context(), targetID); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
