package server

import (
	"moodboard/internal/models"
	"moodboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/posts
// @Summary Ranked feed
// @Description Returns the board ranked by a strategy. Unknown strategies fall back to the default.
// @Tags feed
// @Produce json
// @Param sort query string false "Strategy name (trending, new, rising, top, best, hot, controversial)"
// @Param at query string false "Evaluation time (RFC 3339), defaults to now"
// @Param limit query int false "Maximum posts returned, all when omitted"
// @Param offset query int false "Posts skipped after ranking"
// @Success 200 {object} service.FeedResult
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	at, err := parseTime(c, "at")
	if err != nil {
		return respondError(c, err)
	}

	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)
	if limit < 0 || offset < 0 {
		return respondError(c, models.NewValidationError("limit and offset must not be negative"))
	}

	result, err := s.feedService.Feed(c.UserContext(), service.FeedInput{
		Strategy: c.Query("sort"),
		At:       at,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetStrategies handles GET /api/feed/strategies
// @Summary List ranking strategies
// @Tags feed
// @Produce json
// @Success 200 {object} service.StrategyList
// @Router /feed/strategies [get]
func (s *Server) GetStrategies(c *fiber.Ctx) error {
	return c.JSON(s.feedService.Strategies())
}

// GetFeatureFlags returns configured feature flags and their state for the caller.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"raw":       s.featureFlags.Raw(),
		"evaluated": s.featureFlags.Snapshot(c.IP()),
	})
}
