package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appinventory "github.com/shelfscan/backend/internal/application/inventory"
	apprequest "github.com/shelfscan/backend/internal/application/request"
	"github.com/shelfscan/backend/internal/domain/identity"
	"github.com/shelfscan/backend/internal/domain/shared"
	"github.com/shelfscan/backend/internal/infrastructure/logger"
	"github.com/shelfscan/backend/internal/interfaces/http/dto"
	"github.com/shelfscan/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// actor builds the acting identity from the JWT claims set by the auth
// middleware. Identity comes from the token only, never from the payload.
func actor(c *gin.Context) (appinventory.Actor, error) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		return appinventory.Actor{}, errors.New("claims not found in context")
	}

	companyID, err := claims.GetCompanyUUID()
	if err != nil {
		return appinventory.Actor{}, err
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return appinventory.Actor{}, err
	}
	role, err := identity.ParseRole(claims.Role)
	if err != nil {
		return appinventory.Actor{}, err
	}

	return appinventory.Actor{CompanyID: companyID, UserID: userID, Role: role}, nil
}

// requestActor is the same identity in the request application package's shape
func requestActor(c *gin.Context) (apprequest.Actor, error) {
	a, err := actor(c)
	if err != nil {
		return apprequest.Actor{}, err
	}
	return apprequest.Actor{CompanyID: a.CompanyID, UserID: a.UserID, Role: a.Role}, nil
}

// parseIDParam parses the :id path parameter as a UUID
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
			"INVALID_INPUT", "Invalid ID format", getRequestID(c)))
		return uuid.Nil, false
	}
	return id, true
}

// bindingDetails turns validator errors from gin binding into field-level
// details for the error envelope
func bindingDetails(err error) []dto.ValidationDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make([]dto.ValidationDetail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, dto.ValidationDetail{
			Field:   strings.ToLower(fe.Field()),
			Message: "failed on the '" + fe.Tag() + "' rule",
		})
	}
	return details
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
		"BAD_REQUEST", message, getRequestID(c)))
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
		"UNAUTHORIZED", message, getRequestID(c)))
}

// HandleError converts domain errors to HTTP responses, deriving the status
// code from the domain error code. Unknown error types render as 500 without
// leaking details.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	requestID := getRequestID(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		statusCode := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(statusCode, dto.NewErrorResponseWithRequestID(domainErr.Code, domainErr.Message, requestID))
		return
	}

	// The real error goes to the log only, never into the response
	logger.GetGinLogger(c).Error("unhandled error in handler", zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
		"INTERNAL_ERROR", "An unexpected error occurred", requestID))
}
