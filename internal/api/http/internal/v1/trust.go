package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initTrustRoutes(api *gin.RouterGroup) {
	trust := api.Group("/trust", h.userIdentityMiddleware)

	trust.GET("/score", h.getTrustScore)
}

type trustScoreResponse struct {
	Score int    `json:"score"`
	Badge string `json:"badge"`
	Level string `json:"level"`
}

func (h *Handler) getTrustScore(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	result, err := h.services.Trust.ComputeTrustScore(c.Request.Context(), userID)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, trustScoreResponse{
		Score: result.Score,
		Badge: string(result.Badge),
		Level: result.Level.String(),
	})
}
