package controller

import (
	"errors"
	"strings"

	"ai-deepsearch-be/internal/dto"
	"ai-deepsearch-be/internal/service"
	"ai-deepsearch-be/pkg/agent"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	DeepSearch(ctx *fiber.Ctx) error
}

type searchController struct {
	searchService service.ISearchService
}

func NewSearchController(searchService service.ISearchService) ISearchController {
	return &searchController{
		searchService: searchService,
	}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/search/v1")
	h.Post("", c.DeepSearch)
}

// DeepSearch runs one full agent session synchronously. Clients that want
// per-step progress should use the websocket endpoint instead.
func (c *searchController) DeepSearch(ctx *fiber.Ctx) error {
	var req dto.DeepSearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if strings.TrimSpace(req.Query) == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "query is required"})
	}

	sessionID := uuid.NewString()
	result, err := c.searchService.Run(ctx.UserContext(), sessionID, req.Query)
	if err != nil {
		if errors.Is(err, agent.ErrBudgetExceeded) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return ctx.JSON(dto.ToDeepSearchResponse(result))
}
