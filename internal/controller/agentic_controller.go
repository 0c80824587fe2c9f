package controller

import (
	"eum-chatbot-be/internal/dto"
	"eum-chatbot-be/internal/pkg/serverutils"
	"eum-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAgenticController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	Classify(ctx *fiber.Ctx) error
}

type agenticController struct {
	agenticService service.IAgenticService
}

func NewAgenticController(agenticService service.IAgenticService) IAgenticController {
	return &agenticController{
		agenticService: agenticService,
	}
}

func (c *agenticController) RegisterRoutes(r fiber.Router) {
	r.Post("/agentic", c.Chat)
	r.Post("/classify/agentic", c.Classify)
}

func (c *agenticController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.agenticService.Chat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success handle agent turn", res))
}

func (c *agenticController) Classify(ctx *fiber.Ctx) error {
	var req dto.ClassifyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.agenticService.Classify(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success classify query", res))
}
