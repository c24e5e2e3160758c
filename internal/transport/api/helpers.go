package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/transport/api/middlewares"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// getUserIDFromContext returns the id set by middlewares.AuthRequired or 0 when there is none.
func getUserIDFromContext(c *gin.Context) int64 {
	value, exist := c.Get(middlewares.CurrentUserIDKey)
	if !exist {
		return 0
	}
	userID, ok := value.(int64)
	if !ok {
		return 0
	}
	return userID
}

// idParam parses a positive int64 path parameter. On failure the request is aborted with 400.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		_ = c.AbortWithError(http.StatusBadRequest, errors.New("invalid "+name)).SetType(gin.ErrorTypePublic)
		return 0, false
	}
	return id, true
}

type pageQuery struct {
	Limit  uint `form:"limit"  binding:"omitempty,max=200"`
	Offset uint `form:"offset"`
}

func (p pageQuery) limit() uint {
	if p.Limit == 0 {
		return defaultPageLimit
	}
	return min(p.Limit, maxPageLimit)
}

// bindJSON binds the body and aborts the request on failure: 422 for validation errors, 400 for
// malformed bodies.
func bindJSON(c *gin.Context, obj any) bool {
	return handleBindErr(c, c.ShouldBindJSON(obj))
}

func bindQuery(c *gin.Context, obj any) bool {
	return handleBindErr(c, c.ShouldBindQuery(obj))
}

func handleBindErr(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}
	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) {
		fields := make(map[string]string, len(valErrs))
		for _, fe := range valErrs {
			fields[fe.Field()] = fe.Tag()
		}
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": fields})
		return false
	}
	_ = c.AbortWithError(http.StatusBadRequest, err).SetType(gin.ErrorTypeBind)
	return false
}

type errorMapping struct {
	target error
	status int
}

// serviceErrors is checked in order, the first match wins. ErrItemInactive wraps ErrItemNotFound,
// so both end up as 404.
var serviceErrors = []errorMapping{
	{domain.ErrStoreDisabled, http.StatusServiceUnavailable},
	{domain.ErrImageStorageMissing, http.StatusServiceUnavailable},
	{domain.ErrInsufficientFunds, http.StatusPaymentRequired},
	{domain.ErrInsufficientStock, http.StatusConflict},
	{domain.ErrItemNotFound, http.StatusNotFound},
	{domain.ErrOrderNotFound, http.StatusNotFound},
	{domain.ErrRecordNotFound, http.StatusNotFound},
	{domain.ErrAccountRestricted, http.StatusForbidden},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrInvalidIdentity, http.StatusUnprocessableEntity},
	{domain.ErrInvalidQuantity, http.StatusUnprocessableEntity},
	{domain.ErrInvalidAmount, http.StatusUnprocessableEntity},
	{domain.ErrInvalidItem, http.StatusUnprocessableEntity},
	{domain.ErrInvalidAttachments, http.StatusUnprocessableEntity},
	{domain.ErrInvalidDeliveryInput, http.StatusUnprocessableEntity},
	{domain.ErrOrderNotDeliverable, http.StatusConflict},
	{domain.ErrOrderNotCancellable, http.StatusConflict},
	{domain.ErrAlreadyCancelled, http.StatusConflict},
	{domain.ErrNothingToRetry, http.StatusConflict},
	{domain.ErrDeliveryInProgress, http.StatusConflict},
	{domain.ErrDuplicateKey, http.StatusConflict},
}

// abortWithServiceError maps a service error onto a status. Known domain errors are shown to the
// client by their own message, everything else becomes a private 500.
func abortWithServiceError(c *gin.Context, err error) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			_ = c.AbortWithError(m.status, m.target).SetType(gin.ErrorTypePublic)
			_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			return
		}
	}
	_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
}
