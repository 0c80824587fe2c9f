package controller

import (
	"strconv"

	"eum-chatbot-be/internal/dto"
	"eum-chatbot-be/internal/pkg/serverutils"
	"eum-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetLogs(ctx *fiber.Ctx) error
	GetLogDetail(ctx *fiber.Ctx) error
	IngestDocument(ctx *fiber.Ctx) error
	ListDocuments(ctx *fiber.Ctx) error
	CountDocuments(ctx *fiber.Ctx) error
	DeleteSource(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService service.IAdminService
}

func NewAdminController(adminService service.IAdminService) IAdminController {
	return &adminController{
		adminService: adminService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/logs", c.GetLogs)
	h.Get("/logs/:id", c.GetLogDetail)
	h.Post("/documents", c.IngestDocument)
	h.Get("/documents", c.ListDocuments)
	h.Get("/documents/count", c.CountDocuments)
	h.Delete("/documents/:source", c.DeleteSource)
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "10"))
	level := ctx.Query("level", "")

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	logs, err := c.adminService.GetLogs(level, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("System logs", logs))
}

func (c *adminController) GetLogDetail(ctx *fiber.Ctx) error {
	logId := ctx.Params("id") // MD5 hash, not UUID

	entry, err := c.adminService.GetLogById(logId)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Log not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Log detail", entry))
}

func (c *adminController) IngestDocument(ctx *fiber.Ctx) error {
	var req dto.IngestDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.adminService.IngestDocument(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Document queued for ingestion", res))
}

func (c *adminController) ListDocuments(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "20"))
	domain := ctx.Query("domain", "")

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	res, err := c.adminService.ListDocuments(ctx.Context(), domain, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Document chunks", res))
}

func (c *adminController) CountDocuments(ctx *fiber.Ctx) error {
	domain := ctx.Query("domain", "")

	count, err := c.adminService.CountDocuments(ctx.Context(), domain)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Document count", fiber.Map{
		"domain": domain,
		"count":  count,
	}))
}

func (c *adminController) DeleteSource(ctx *fiber.Ctx) error {
	sourceName := ctx.Params("source")

	if err := c.adminService.DeleteSource(ctx.Context(), sourceName); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Source deleted", fiber.Map{
		"source_name": sourceName,
	}))
}
