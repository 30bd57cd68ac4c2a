// common.go
//
// A joke delivery service backed by a relational database
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jokebook.
// jokebook is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jokebook is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jokebook.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/robsiuuu/jokebook/internal/middleware"
	"github.com/robsiuuu/jokebook/internal/types"
	"github.com/robsiuuu/jokebook/internal/utils"
	"go.uber.org/zap"
)

// respondError is the single place where error kinds become HTTP statuses.
// Anything that is not a validation or not-found error is a 500 with the
// route's generic message; the cause is logged, not returned to the client.
// The result is rendered by ErrorHandler.
func respondError(c *fiber.Ctx, err error, errorType, message string) error {
	var validation *types.ValidationError
	if errors.As(err, &validation) {
		return &types.CustomError{Code: fiber.StatusBadRequest, Message: validation.Message, Type: "validation"}
	}

	var notFound *types.NotFoundError
	if errors.As(err, &notFound) {
		return &types.CustomError{Code: fiber.StatusNotFound, Message: notFound.Error(), Type: "notFound"}
	}

	zap.L().Error("Error in "+c.Route().Path,
		zap.String("requestID", middleware.RequestID(c)),
		zap.String("method", c.Method()),
		zap.String("url", c.OriginalURL()),
		zap.Error(err))

	return &types.CustomError{Code: fiber.StatusInternalServerError, Message: message, Type: errorType}
}

// ErrorHandler is the application's global error handler
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var customErr *types.CustomError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &customErr):
		// Already logged by respondError
		return utils.ErrorResponse(c, customErr.Message, customErr.Code, customErr.Type)
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	if code >= fiber.StatusInternalServerError {
		zap.L().Error("Unhandled error",
			zap.String("requestID", middleware.RequestID(c)),
			zap.String("url", c.OriginalURL()),
			zap.Error(err))
	}

	return utils.ErrorResponse(c, message, code, errorType)
}

// pathParam returns a decoded route parameter, or the raw value if it is not
// valid percent-encoding.
func pathParam(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}
