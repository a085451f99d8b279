package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/labstack/echo/v4"
)

// ValidateRequest checks parameters and bodies against the OpenAPI contract
// before the generated wrappers bind them. Requests the router does not know
// pass through so echo can answer 404 or 405 itself. Authentication is left to
// Authenticate.
func ValidateRequest(router routers.Router) echo.MiddlewareFunc {
	options := &openapi3filter.Options{AuthenticationFunc: openapi3filter.NoopAuthenticationFunc}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(ctx)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return newBadRequest(validationMessage(err))
			}
			return next(ctx)
		}
	}
}

// validationMessage names the offending parameter or body field without
// echoing the whole schema back to the caller.
func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if !errors.As(err, &reqErr) {
		return "Invalid request"
	}

	var schemaErr *openapi3.SchemaError
	hasSchemaErr := errors.As(reqErr.Err, &schemaErr)

	switch {
	case reqErr.Parameter != nil:
		return fmt.Sprintf("Invalid parameter %s", reqErr.Parameter.Name)
	case hasSchemaErr && len(schemaErr.JSONPointer()) > 0:
		return fmt.Sprintf("Invalid request body: %s: %s", strings.Join(schemaErr.JSONPointer(), "."), schemaErr.Reason)
	case hasSchemaErr:
		return fmt.Sprintf("Invalid request body: %s", schemaErr.Reason)
	default:
		return "Invalid request body"
	}
}
