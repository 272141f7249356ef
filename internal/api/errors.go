package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pageza/calorix/backend/internal/challenge"
	"github.com/pageza/calorix/backend/internal/fasting"
	"github.com/pageza/calorix/backend/internal/middleware"
	"github.com/pageza/calorix/backend/internal/nutrition"
	"github.com/pageza/calorix/backend/internal/service"
)

func init() {
	// report validation failures by their JSON names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

type requestCode string

const (
	codeInvalidBody     requestCode = "invalid_body"
	codeInvalidField    requestCode = "invalid_field"
	codeInvalidDate     requestCode = "invalid_date"
	codeInvalidWindow   requestCode = "invalid_window"
	codeInvalidMonth    requestCode = "invalid_month"
	codeInvalidDuration requestCode = "invalid_duration"
	codeInvalidID       requestCode = "invalid_id"
)

var requestMessages = map[string]map[requestCode]string{
	"en": {
		codeInvalidBody:     "The request body is not valid JSON.",
		codeInvalidField:    "Please check the value of %s.",
		codeInvalidDate:     "Dates must use the YYYY-MM-DD format.",
		codeInvalidWindow:   "The summary window must be 7, 15 or 30 days.",
		codeInvalidMonth:    "Please choose a valid year and month.",
		codeInvalidDuration: "The fast must last more than zero and at most 168 hours.",
		codeInvalidID:       "The identifier is not valid.",
	},
	"pt-BR": {
		codeInvalidBody:     "O corpo da requisição não é um JSON válido.",
		codeInvalidField:    "Por favor, verifique o valor de %s.",
		codeInvalidDate:     "As datas devem usar o formato AAAA-MM-DD.",
		codeInvalidWindow:   "O período do resumo deve ser de 7, 15 ou 30 dias.",
		codeInvalidMonth:    "Por favor, escolha um ano e mês válidos.",
		codeInvalidDuration: "O jejum deve durar mais de zero e no máximo 168 horas.",
		codeInvalidID:       "O identificador não é válido.",
	},
}

func lang(c *gin.Context) string {
	return challenge.Language(c.GetHeader("Accept-Language"))
}

func requestMessage(c *gin.Context, code requestCode, args ...any) string {
	msg := requestMessages[lang(c)][code]
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

func badRequest(c *gin.Context, field string, code requestCode, args ...any) {
	c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorResponse{
		Error: requestMessage(c, code, args...),
		Field: field,
	})
}

// bindJSON decodes the body into req and answers 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0].Field()
		badRequest(c, field, codeInvalidField, field)
		return false
	}
	badRequest(c, "", codeInvalidBody)
	return false
}

// respondError maps a service error to its HTTP status.
func respondError(c *gin.Context, err error) {
	var verr *challenge.ValidationError
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorResponse{Error: verr.Message(lang(c)), Field: verr.Field})
	case errors.Is(err, service.ErrInvalidDate):
		badRequest(c, "date", codeInvalidDate)
	case errors.Is(err, nutrition.ErrInvalidWindow):
		badRequest(c, "window", codeInvalidWindow)
	case errors.Is(err, service.ErrInvalidMonth):
		badRequest(c, "month", codeInvalidMonth)
	case errors.Is(err, fasting.ErrInvalidDuration):
		badRequest(c, "hours", codeInvalidDuration)
	case errors.Is(err, service.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusUnauthorized, middleware.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrFoodNotFound),
		errors.Is(err, service.ErrNotificationNotFound),
		errors.Is(err, challenge.ErrChallengeNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, middleware.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrNotFasting),
		errors.Is(err, service.ErrNoActiveChallenge):
		c.AbortWithStatusJSON(http.StatusConflict, middleware.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrEstimatorDisabled):
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, middleware.ErrorResponse{Error: err.Error()})
	default:
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, middleware.ErrorResponse{Error: "internal server error"})
	}
}

// userID returns the authenticated user or answers 401.
func userID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, middleware.ErrorResponse{Error: "unauthorized"})
	}
	return id, ok
}
