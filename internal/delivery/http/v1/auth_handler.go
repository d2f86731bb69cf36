package v1

import (
	"net/http"
	"strconv"

	"consultant-tracker-backend/internal/delivery/http/middleware"
	"consultant-tracker-backend/internal/delivery/http/response"
	"consultant-tracker-backend/internal/domain"
	"consultant-tracker-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	auth := public.Group("/auth")
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
	}

	authed := protected.Group("/auth")
	{
		authed.GET("/me", handler.Me)
		authed.POST("/refresh", handler.Refresh)
		authed.POST("/logout", handler.Logout)

		users := authed.Group("/users")
		users.Use(middleware.RequireRole(domain.RoleAdmin))
		{
			users.GET("", handler.ListUsers)
			users.POST("", handler.CreateUser)
			users.PUT("/:id", handler.UpdateUser)
			users.DELETE("/:id", handler.DeleteUser)
		}
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,valid_name,no_emoji"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Role     string  `json:"role" binding:"required"`
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

// Register godoc
// @Summary      Register a new account
// @Description  Create an account under one of the three roles
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        account  body      RegisterRequest  true  "Account JSON"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		c.Error(apperror.BadRequest("Role must be ADMIN, RECRUITER or CONSULTANT"))
		return
	}

	acc, err := h.authUC.Register(c.Request.Context(), domain.CreateUser{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     role,
		IsActive: true,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Account registered", acc)
}

// Login godoc
// @Summary      Log in
// @Description  Exchange email and password for a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      LoginRequest  true  "Credentials JSON"
// @Success      200          {object}  response.Response
// @Failure      401          {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	tok, acc, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"access_token": tok,
		"token_type":   "bearer",
		"user":         acc,
	})
}

// Me godoc
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	response.Success(c, http.StatusOK, "Current account", middleware.CurrentAccount(c))
}

// Refresh godoc
// @Summary      Refresh the bearer token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/refresh [post]
// @Security     BearerAuth
func (h *AuthHandler) Refresh(c *gin.Context) {
	tok, err := h.authUC.Refresh(c.Request.Context(), middleware.CurrentAccount(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Token refreshed", gin.H{
		"access_token": tok,
		"token_type":   "bearer",
	})
}

// Logout godoc
// @Summary      Log out
// @Description  Stateless tokens cannot be revoked server-side; clients drop them
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Success(c, http.StatusOK, "Logged out", nil)
}

// ListUsers godoc
// @Summary      List accounts (admin)
// @Tags         auth
// @Produce      json
// @Param        role   query     string  false  "Role filter"
// @Param        skip   query     int     false  "Offset"
// @Param        limit  query     int     false  "Page size"
// @Success      200    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Router       /auth/users [get]
// @Security     BearerAuth
func (h *AuthHandler) ListUsers(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	var role *domain.Role
	if raw := c.Query("role"); raw != "" {
		parsed, err := domain.ParseRole(raw)
		if err != nil {
			c.Error(apperror.BadRequest("Role must be ADMIN, RECRUITER or CONSULTANT"))
			return
		}
		role = &parsed
	}

	accounts, err := h.authUC.ListUsers(c.Request.Context(), role, skip, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User list", accounts)
}

// CreateUser godoc
// @Summary      Create an account (admin)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        account  body      RegisterRequest  true  "Account JSON"
// @Success      201      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /auth/users [post]
// @Security     BearerAuth
func (h *AuthHandler) CreateUser(c *gin.Context) {
	h.Register(c)
}

// UpdateUser godoc
// @Summary      Update an account (admin)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        id       path      string             true  "Account ID"
// @Param        account  body      UpdateUserRequest  true  "Update JSON"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /auth/users/{id} [put]
// @Security     BearerAuth
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		c.Error(apperror.BadRequest("Role must be ADMIN, RECRUITER or CONSULTANT"))
		return
	}

	acc, err := h.authUC.UpdateUser(c.Request.Context(), role, c.Param("id"), domain.UpdateUser{
		Name:     req.Name,
		IsActive: req.IsActive,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User updated", acc)
}

// DeleteUser godoc
// @Summary      Delete an account (admin)
// @Tags         auth
// @Produce      json
// @Param        id    path      string  true  "Account ID"
// @Param        role  query     string  true  "Account role"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /auth/users/{id} [delete]
// @Security     BearerAuth
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	role, err := domain.ParseRole(c.Query("role"))
	if err != nil {
		c.Error(apperror.BadRequest("Role must be ADMIN, RECRUITER or CONSULTANT"))
		return
	}

	if err := h.authUC.DeleteUser(c.Request.Context(), role, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User deleted", nil)
}
