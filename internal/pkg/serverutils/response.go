package serverutils

import "github.com/gofiber/fiber/v2"

// SuccessResponse is the uniform success envelope.
func SuccessResponse(message string, data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	}
}
