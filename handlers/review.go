package handlers

import (
	"net/http"

	"toolshare/models"
	"toolshare/resolvers"
	"toolshare/services/review"
	"toolshare/utils"

	"github.com/gin-gonic/gin"
)

// ReviewHandler serves /api/reviews.
type ReviewHandler struct {
	ReviewService review.ReviewService
	Resolver      *resolvers.Resolver
}

func NewReviewHandler(rs review.ReviewService, r *resolvers.Resolver) *ReviewHandler {
	return &ReviewHandler{ReviewService: rs, Resolver: r}
}

// CreateReviewHandler handles POST /api/reviews.
func (h *ReviewHandler) CreateReviewHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	rv, err := h.ReviewService.Create(c.Request.Context(), userID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, rv, "Review submitted")
}

// UserReviewsHandler handles GET /api/reviews/user/:userId.
func (h *ReviewHandler) UserReviewsHandler(c *gin.Context) {
	page, limit := pageParams(c)
	reviews, pagination, err := h.ReviewService.ListForUser(c.Request.Context(), c.Param("userId"), page, limit)
	h.respondPage(c, reviews, pagination, err)
}

// ToolReviewsHandler handles GET /api/reviews/tool/:toolId.
func (h *ReviewHandler) ToolReviewsHandler(c *gin.Context) {
	page, limit := pageParams(c)
	reviews, pagination, err := h.ReviewService.ListForTool(c.Request.Context(), c.Param("toolId"), page, limit)
	h.respondPage(c, reviews, pagination, err)
}

func (h *ReviewHandler) respondPage(c *gin.Context, reviews []models.Review, pagination models.Pagination, err error) {
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	views, err := h.Resolver.Reviews(c.Request.Context(), reviews)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, models.ReviewPage{Reviews: views, Pagination: pagination}, "")
}
