package server

import (
	"github.com/Jins0l/ai-board-project/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /posts
// @Summary Create a post
// @Description Create a post; the content is classified by the sentiment service
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{title=string,content=string} true "Post body"
// @Success 201 {object} object{message=string,postId=int,sentiment=string,confidence=number}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title == "" || req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title and content are required"))
	}
	if len(req.Title) > 200 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title must be at most 200 characters"))
	}

	// Classify first, then persist sentiment and post in a single insert.
	// Classify never fails; a classifier outage yields the neutral fallback.
	result := s.classifier.Classify(ctx, req.Content)

	post := &models.Post{
		Title:      req.Title,
		Content:    req.Content,
		UserID:     userID,
		Sentiment:  result.Label,
		Confidence: result.Confidence,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Post created successfully",
		"postId":     post.ID,
		"sentiment":  post.Sentiment,
		"confidence": post.Confidence,
	})
}

// GetPosts handles GET /posts
// @Summary List posts
// @Description List posts newest first with pagination metadata
// @Tags posts
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} object{posts=[]models.Post,pagination=models.Pagination}
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	page, limit := parsePagination(c)

	posts, total, err := s.postRepo.ListPaged(ctx, page, limit)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts": posts,
		"pagination": models.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages(total, limit),
		},
	})
}

// GetPost handles GET /posts/:id
// @Summary Get a post
// @Description Get a single post with its author
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(post)
}
