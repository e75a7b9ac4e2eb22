package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/linkboard/linkboard-api/internal/api/metrics"
	"github.com/linkboard/linkboard-api/internal/core/ports"
)

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	service ports.PostService
	metrics *metrics.Metrics
}

func NewPostHandler(service ports.PostService, m *metrics.Metrics) *PostHandler {
	return &PostHandler{service: service, metrics: m}
}

// List handles GET /api/posts.
//
// @Summary      List posts with author and score, newest first
// @Tags         posts
// @Produce      json
// @Success      200  {array}   postViewResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.service.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostViews(posts))
}

// Create handles POST /api/posts.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        body  body      postRequest  true  "Post title and content"
// @Success      200   {object}  postResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req postRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.service.CreatePost(c.Request().Context(), ports.CreatePostInput{
		Title:    req.Title,
		Content:  *req.Content,
		AuthorID: userID,
	})
	if err != nil {
		return err
	}
	h.metrics.PostsCreatedTotal.Inc()

	return c.JSON(http.StatusOK, toPostResponse(post))
}

// Update handles PUT /api/posts/:id.
//
// @Summary      Edit an owned post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Post id"
// @Param        body  body      postRequest  true  "New title and content"
// @Success      200   {object}  postResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req postRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.service.UpdatePost(c.Request().Context(), ports.UpdatePostInput{
		PostID:   c.Param("id"),
		Title:    req.Title,
		Content:  *req.Content,
		CallerID: userID,
	})
	if err != nil {
		return err
	}
	h.metrics.PostsChangedTotal.WithLabelValues("update").Inc()

	return c.JSON(http.StatusOK, toPostResponse(post))
}

// Delete handles DELETE /api/posts/:id.
//
// @Summary      Delete an owned post and its votes
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.DeletePost(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	h.metrics.PostsChangedTotal.WithLabelValues("delete").Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "Post deleted"})
}
