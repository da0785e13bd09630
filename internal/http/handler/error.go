package handler

import (
	"github.com/gofiber/fiber/v2"

	"legalapi/internal/action"
)

// writeFailure writes the bare {statusCode, body} failure shape. It is
// deliberately different from the success envelope; the orchestrator handles
// both.
func writeFailure(c *fiber.Ctx, status int, body string) error {
	return c.Status(status).JSON(action.Failure{
		StatusCode: status,
		Body:       body,
	})
}

// ErrorHandler returns a Fiber global error handler. Anything escaping a
// handler is converted to the failure shape; nothing crashes the process.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeFailure(c, status, "Error: bad request")
		case fiber.StatusNotFound:
			return writeFailure(c, status, "Error: resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeFailure(c, status, "Error: method not allowed")
		default:
			return writeFailure(c, status, "Internal Server Error")
		}
	}
}
