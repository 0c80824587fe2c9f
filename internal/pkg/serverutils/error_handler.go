package serverutils

import (
	"errors"

	"eum-chatbot-be/internal/constant"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware is the last-resort net: anything that escapes
// a handler becomes a 500 with a Korean detail message. Validation
// errors are the one exception and answer 400 with the field list.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"detail": validationErr.Fields,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"detail": fiberErr.Message,
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": constant.MsgInternalError,
			"error":  err.Error(),
		})
	}
}
