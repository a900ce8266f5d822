package handlers

import (
	"fmt"
	"io"
	"net/http"

	"toolshare/models"
	"toolshare/services/tool"
	"toolshare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ToolHandler serves /api/tools.
type ToolHandler struct {
	ToolService tool.ToolService
}

func NewToolHandler(ts tool.ToolService) *ToolHandler {
	return &ToolHandler{ToolService: ts}
}

// SearchToolsHandler handles GET /api/tools.
func (h *ToolHandler) SearchToolsHandler(c *gin.Context) {
	criteria := models.ToolSearchCriteria{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	criteria.Page, criteria.Limit = pageParams(c)

	for key, dst := range map[string]**float64{
		"minPrice": &criteria.MinPrice,
		"maxPrice": &criteria.MaxPrice,
		"lat":      &criteria.Lat,
		"lng":      &criteria.Lng,
	} {
		v, ok := optionalFloat(c, key)
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s", key))
			return
		}
		*dst = v
	}
	maxDistance, ok := optionalFloat(c, "maxDistance")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Invalid maxDistance")
		return
	}
	if maxDistance != nil {
		criteria.MaxDistanceKm = *maxDistance
	}

	page, err := h.ToolService.Search(c.Request.Context(), criteria)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, page, "")
}

// MyToolsHandler handles GET /api/tools/my.
func (h *ToolHandler) MyToolsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tools, err := h.ToolService.MyTools(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, tools, "")
}

// GetToolHandler handles GET /api/tools/:id.
func (h *ToolHandler) GetToolHandler(c *gin.Context) {
	t, err := h.ToolService.GetTool(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, t, "")
}

// AvailabilityHandler handles GET /api/tools/:id/availability?start=&end=.
func (h *ToolHandler) AvailabilityHandler(c *gin.Context) {
	result, err := h.ToolService.CheckAvailability(c.Request.Context(), c.Param("id"), c.Query("start"), c.Query("end"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, result, "")
}

// CreateToolHandler handles POST /api/tools. Accepts JSON or multipart with up to five "images".
func (h *ToolHandler) CreateToolHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var in models.ToolInput
	if err := c.ShouldBind(&in); err != nil {
		getLogger(c).Warn("Invalid tool payload", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	images, closeAll, ok := openImages(c)
	if !ok {
		return
	}
	defer closeAll()

	t, err := h.ToolService.CreateTool(c.Request.Context(), userID, in, images)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, t, "Tool created")
}

// UpdateToolHandler handles PUT /api/tools/:id. Uploaded images replace the existing set.
func (h *ToolHandler) UpdateToolHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var in models.ToolInput
	if err := c.ShouldBind(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	images, closeAll, ok := openImages(c)
	if !ok {
		return
	}
	defer closeAll()

	t, err := h.ToolService.UpdateTool(c.Request.Context(), c.Param("id"), userID, in, images)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, t, "Tool updated")
}

// DeleteToolHandler handles DELETE /api/tools/:id.
func (h *ToolHandler) DeleteToolHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.ToolService.DeleteTool(c.Request.Context(), c.Param("id"), userID); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, nil, "Tool removed")
}

// SetBlackoutsHandler handles PUT /api/tools/:id/blackouts.
func (h *ToolHandler) SetBlackoutsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.BlackoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	t, err := h.ToolService.SetBlackouts(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, t, "Availability updated")
}

// openImages opens the multipart "images" files, if any. The returned func closes them.
func openImages(c *gin.Context) ([]io.Reader, func(), bool) {
	noop := func() {}
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		// Not a multipart request.
		return nil, noop, true
	}
	headers := form.File["images"]
	if len(headers) > tool.MaxImages {
		utils.JSONError(c, http.StatusBadRequest, fmt.Sprintf("At most %d images are allowed", tool.MaxImages))
		return nil, noop, false
	}

	var (
		readers = make([]io.Reader, 0, len(headers))
		closers = make([]io.Closer, 0, len(headers))
	)
	closeAll := func() {
		for _, f := range closers {
			f.Close()
		}
	}
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			getLogger(c).Error("Failed to open uploaded image", zap.String("filename", fh.Filename), zap.Error(err))
			utils.JSONError(c, http.StatusBadRequest, "Could not read uploaded image")
			return nil, noop, false
		}
		readers = append(readers, f)
		closers = append(closers, f)
	}
	return readers, closeAll, true
}
