package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/service"
)

type AuthHandler struct {
	userService UserServicer
}

func NewAuthHandler(userService UserServicer) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

type UserRegisterParams struct {
	Username string `binding:"required,min=3,max=32"       json:"username"`
	Password string `binding:"required,min=6,max_bytes=72" json:"password"`
	SteamID  string `binding:"required,steamid"            json:"steam_id"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Register POST RouteGroup + RegisterRoute. Creates a player account bound to a steam id.
func (h *AuthHandler) Register(c *gin.Context) {
	var params UserRegisterParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, jwtToken, err := h.userService.Register(ctx, service.RegisterUserArgs{
		Username: params.Username,
		Password: params.Password,
		SteamID:  params.SteamID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			_ = c.AbortWithError(http.StatusConflict, errors.New("username or steam id already registered")).
				SetType(gin.ErrorTypePublic)
			return
		}
		abortWithServiceError(c, err)
		return
	}

	c.Header("Authorization", "Bearer "+jwtToken)
	c.JSON(http.StatusCreated, AuthResponse{Token: jwtToken, User: newUserResponse(user)})
}

type UserLoginParams struct {
	Username string `binding:"required,max=32"       json:"username"`
	Password string `binding:"required,max_bytes=72" json:"password"`
}

// Login POST RouteGroup + LoginRoute.
func (h *AuthHandler) Login(c *gin.Context) {
	var params UserLoginParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, token, err := h.userService.Login(ctx, service.LoginUserArgs{
		Username: params.Username,
		Password: params.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) || errors.Is(err, domain.ErrPasswordMissMatch) {
			_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		abortWithServiceError(c, err)
		return
	}

	c.Header("Authorization", "Bearer "+token)
	c.JSON(http.StatusOK, AuthResponse{Token: token, User: newUserResponse(user)})
}
