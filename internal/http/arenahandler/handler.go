package arenahandler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"squadbattlego/internal/services/arena"
	"squadbattlego/internal/services/squaddie"
)

type Handler struct {
	arenaSvc arena.IArenaService
	squadSvc squaddie.ISquaddieService
}

func New(arenaSvc arena.IArenaService, squadSvc squaddie.ISquaddieService) *Handler {
	return &Handler{arenaSvc: arenaSvc, squadSvc: squadSvc}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/rooms", h.listRooms)
	r.GET("/squaddies", h.listSquaddies)
	r.PATCH("/monsterXP", h.addXP)
	r.PATCH("/levelup", h.levelUp)
	r.PATCH("/squaddie", h.rename)
}

// @Summary		List open rooms
// @Description	Returns rooms still waiting for a guest, earliest-hosted first.
// @Tags			Arena
// @Success		200	{array}	arena.Descriptor
// @Router			/rooms [get]
func (h *Handler) listRooms(c *gin.Context) {
	c.JSON(http.StatusOK, h.arenaSvc.ListOpen())
}

// @Summary		List a user's squaddies
// @Description	Returns the user's monster roster with battle stats.
// @Tags			Squaddies
// @Param			userID	query		string	true	"User ID"
// @Success		200		{array}		squaddie.SquaddieDTO
// @Failure		400		{object}	ErrorResponse
// @Router			/squaddies [get]
func (h *Handler) listSquaddies(c *gin.Context) {
	var q ListSquaddiesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	out, err := h.squadSvc.ListUserSquaddies(c.Request.Context(), q.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary		Grant XP to a squaddie
// @Tags			Squaddies
// @Param			body	body	MonsterXPBody	true	"XP payload"
// @Success		204
// @Failure		404	{object}	ErrorResponse
// @Router			/monsterXP [patch]
func (h *Handler) addXP(c *gin.Context) {
	var body MonsterXPBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	h.mutateSquaddie(c, h.squadSvc.AddXP(c.Request.Context(), body.MonID, body.XP))
}

// @Summary		Level a squaddie up
// @Tags			Squaddies
// @Param			body	body	LevelUpBody	true	"Level-up payload"
// @Success		204
// @Failure		404	{object}	ErrorResponse
// @Router			/levelup [patch]
func (h *Handler) levelUp(c *gin.Context) {
	var body LevelUpBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	h.mutateSquaddie(c, h.squadSvc.LevelUp(c.Request.Context(), body.MonID))
}

// @Summary		Rename a squaddie
// @Tags			Squaddies
// @Param			body	body	RenameBody	true	"Rename payload"
// @Success		204
// @Failure		404	{object}	ErrorResponse
// @Router			/squaddie [patch]
func (h *Handler) rename(c *gin.Context) {
	var body RenameBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	h.mutateSquaddie(c, h.squadSvc.Rename(c.Request.Context(), body.MonID, body.Name))
}

func (h *Handler) mutateSquaddie(c *gin.Context, err error) {
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, squaddie.ErrSquaddieNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
