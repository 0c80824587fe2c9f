package controller

import (
	"eum-chatbot-be/internal/dto"
	"eum-chatbot-be/internal/pkg/serverutils"
	"eum-chatbot-be/internal/service"
	"eum-chatbot-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

type IPreprocessController interface {
	RegisterRoutes(r fiber.Router)
	Ping(ctx *fiber.Ctx) error
	Translate(ctx *fiber.Ctx) error
}

// preprocessController exposes the translate-in stage on its own, plus
// a ping that reports whether the LLM backend is reachable.
type preprocessController struct {
	chatbotService service.IChatbotService
	llmProvider    llm.LLMProvider
}

func NewPreprocessController(chatbotService service.IChatbotService, llmProvider llm.LLMProvider) IPreprocessController {
	return &preprocessController{
		chatbotService: chatbotService,
		llmProvider:    llmProvider,
	}
}

func (c *preprocessController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/preprocess")
	h.Get("/ping", c.Ping)
	h.Post("/translate", c.Translate)
}

func (c *preprocessController) Ping(ctx *fiber.Ctx) error {
	connected := c.llmProvider.CheckConnection(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("pong", fiber.Map{
		"llm_connected": connected,
	}))
}

func (c *preprocessController) Translate(ctx *fiber.Ctx) error {
	var req dto.TranslateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.Translate(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success translate query", res))
}
