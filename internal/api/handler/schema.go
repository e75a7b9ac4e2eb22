package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/linkboard/linkboard-api/internal/core/domain"
)

// --- Requests ---

type credentialsRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
}

// Content may be empty but not absent.
type postRequest struct {
	Title   string  `json:"title"   validate:"required,max=255"`
	Content *string `json:"content" validate:"required"`
}

type voteRequest struct {
	VoteType string `json:"voteType" validate:"required,oneof=up down"`
}

// --- Responses ---

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type postResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	UserID    string `json:"user_id"`
	CreatedAt string `json:"created_at"`
}

type postViewResponse struct {
	postResponse
	Username string `json:"username"`
	Votes    int64  `json:"votes"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username}
}

func toPostResponse(p *domain.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toPostViews(views []domain.PostView) []postViewResponse {
	out := make([]postViewResponse, 0, len(views))
	for i := range views {
		out = append(out, postViewResponse{
			postResponse: toPostResponse(&views[i].Post),
			Username:     views[i].Username,
			Votes:        views[i].Votes,
		})
	}
	return out
}

// bindAndValidate decodes the JSON body into req and runs the struct tags.
// Both failures are client errors.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}
