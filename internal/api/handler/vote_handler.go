package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/linkboard/linkboard-api/internal/api/metrics"
	"github.com/linkboard/linkboard-api/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
	metrics *metrics.Metrics
}

func NewVoteHandler(service ports.VoteService, m *metrics.Metrics) *VoteHandler {
	return &VoteHandler{service: service, metrics: m}
}

// Cast handles POST /api/posts/:id/vote. A second vote by the same user
// replaces the first.
//
// @Summary      Vote on a post
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Post id"
// @Param        body  body      voteRequest  true  "up or down"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/posts/{id}/vote [post]
func (h *VoteHandler) Cast(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req voteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err = h.service.CastVote(c.Request().Context(), ports.CastVoteInput{
		PostID:   c.Param("id"),
		VoterID:  userID,
		VoteType: req.VoteType,
	})
	if err != nil {
		return err
	}
	h.metrics.VotesCastTotal.WithLabelValues(req.VoteType).Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "Vote recorded"})
}
