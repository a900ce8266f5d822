package handlers

import (
	"net/http"

	"toolshare/middleware"
	"toolshare/models"
	"toolshare/resolvers"
	"toolshare/services/user"
	"toolshare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves /api/auth.
type UserHandler struct {
	UserService user.UserService
	Resolver    *resolvers.Resolver
}

func NewUserHandler(us user.UserService, r *resolvers.Resolver) *UserHandler {
	return &UserHandler{UserService: us, Resolver: r}
}

// RegisterHandler handles POST /api/auth/register.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid registration request", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	resp, err := h.UserService.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, resp, "User registered")
}

// LoginHandler handles POST /api/auth/login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	resp, err := h.UserService.Login(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, resp, "Login successful")
}

// RefreshTokenHandler issues new tokens based on a valid refresh token.
func (h *UserHandler) RefreshTokenHandler(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Refresh token is required")
		return
	}

	resp, err := h.UserService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, resp, "Token refreshed")
}

// LogoutHandler revokes the access token used for this request.
func (h *UserHandler) LogoutHandler(c *gin.Context) {
	token := c.GetString(middleware.ContextAccessToken)
	if err := h.UserService.Logout(c.Request.Context(), token); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, nil, "Logged out")
}

// MeHandler handles GET /api/auth/me.
func (h *UserHandler) MeHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	usr, err := h.UserService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, usr, "")
}

// UpdateProfileHandler handles PUT /api/auth/profile.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	usr, err := h.UserService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	h.invalidate(c, userID)
	utils.Respond(c, http.StatusOK, usr, "Profile updated")
}

// UpdatePasswordHandler handles PUT /api/auth/password.
func (h *UserHandler) UpdatePasswordHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Current and new password are required")
		return
	}
	if err := h.UserService.UpdatePassword(c.Request.Context(), userID, req); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, nil, "Password updated")
}

// UploadAvatarHandler handles PUT /api/auth/profile-photo. The image arrives in the "avatar" form field.
func (h *UserHandler) UploadAvatarHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Image file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Could not read uploaded file")
		return
	}
	defer file.Close()

	usr, err := h.UserService.UpdateAvatar(c.Request.Context(), userID, file)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	h.invalidate(c, userID)
	utils.Respond(c, http.StatusOK, usr, "Profile photo updated")
}

func (h *UserHandler) invalidate(c *gin.Context, userID string) {
	if h.Resolver != nil {
		h.Resolver.InvalidateUser(c.Request.Context(), userID)
	}
}
