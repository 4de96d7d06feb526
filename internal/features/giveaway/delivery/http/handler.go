package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "atlas3-backend/internal/common/errors"
	"atlas3-backend/internal/common/middleware"
	"atlas3-backend/internal/features/giveaway/models/dto"
	giveawayservice "atlas3-backend/internal/features/giveaway/service"
	usermodels "atlas3-backend/internal/features/user/models"
)

type GiveawayHandler struct {
	service giveawayservice.GiveawayService
}

func NewGiveawayHandler(service giveawayservice.GiveawayService) *GiveawayHandler {
	return &GiveawayHandler{service: service}
}

// RegisterRoutes mounts the giveaway endpoints. auth guards the writes.
func (h *GiveawayHandler) RegisterRoutes(router *gin.RouterGroup, auth ...gin.HandlerFunc) {
	projects := router.Group("/projects/:slug/giveaways", auth...)
	{
		projects.PUT("", h.create)
		projects.POST("", h.update)
	}

	router.GET("/giveaways/:slug", h.getBySlug)
}

// @title Atlas3 Giveaway API
// @version 1.0
// @description Collab giveaway composer of the Atlas3 platform
// @BasePath /api/v1

// @securityDefinitions.apikey SessionToken
// @in header
// @name Authorization
// @description Bearer session token

// @Summary Create a giveaway
// @Description Creates a standalone giveaway, or one collab giveaway per target project (plus a private team giveaway when teamSpots > 0)
// @Tags giveaways
// @Accept json
// @Produce json
// @Security SessionToken
// @Param slug path string true "Project slug"
// @Param input body dto.GiveawayUpsertRequest true "Giveaway"
// @Success 200 {object} models.Giveaway "Created giveaway (the last one for multi-target collabs)"
// @Failure 400 {object} models.ErrorResponse "Validation failed"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 403 {object} models.ErrorResponse "Not allowed to manage giveaways"
// @Failure 404 {object} models.ErrorResponse "Project not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /projects/{slug}/giveaways [put]
func (h *GiveawayHandler) create(c *gin.Context) {
	session, req, ok := bindUpsert(c)
	if !ok {
		return
	}

	giveaway, err := h.service.Create(c.Request.Context(), session, c.Param("slug"), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, giveaway)
}

// @Summary Edit a giveaway
// @Description Updates the giveaway named by id. Rules contributed by the collab partner cannot be removed.
// @Tags giveaways
// @Accept json
// @Produce json
// @Security SessionToken
// @Param slug path string true "Project slug"
// @Param input body dto.GiveawayUpsertRequest true "Giveaway with id"
// @Success 200 {object} models.Giveaway "Updated giveaway"
// @Failure 400 {object} models.ErrorResponse "Validation failed or partner rule removed"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 403 {object} models.ErrorResponse "Not allowed to manage giveaways"
// @Failure 404 {object} models.ErrorResponse "Project or giveaway not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /projects/{slug}/giveaways [post]
func (h *GiveawayHandler) update(c *gin.Context) {
	session, req, ok := bindUpsert(c)
	if !ok {
		return
	}

	giveaway, err := h.service.Update(c.Request.Context(), session, c.Param("slug"), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, giveaway)
}

// @Summary Get a giveaway
// @Tags giveaways
// @Produce json
// @Param slug path string true "Giveaway slug"
// @Success 200 {object} models.Giveaway
// @Failure 404 {object} models.ErrorResponse "Giveaway not found"
// @Router /giveaways/{slug} [get]
func (h *GiveawayHandler) getBySlug(c *gin.Context) {
	giveaway, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, giveaway)
}

func bindUpsert(c *gin.Context) (session usermodels.Session, req *dto.GiveawayUpsertRequest, ok bool) {
	session, err := middleware.GetSession(c)
	if err != nil {
		_ = c.Error(err)
		return session, nil, false
	}

	req = &dto.GiveawayUpsertRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.ErrCodeValidation, "Invalid request body"))
		return session, nil, false
	}
	return session, req, true
}
