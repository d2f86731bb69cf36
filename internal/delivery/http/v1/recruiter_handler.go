package v1

import (
	"net/http"

	"consultant-tracker-backend/internal/delivery/http/middleware"
	"consultant-tracker-backend/internal/delivery/http/response"
	"consultant-tracker-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type RecruiterHandler struct {
	recruiterUC domain.RecruiterUsecase
}

func NewRecruiterHandler(protected *gin.RouterGroup, recruiterUC domain.RecruiterUsecase) {
	handler := &RecruiterHandler{recruiterUC: recruiterUC}

	recruiters := protected.Group("/recruiters")
	recruiters.Use(middleware.RequireRole(domain.RoleRecruiter))
	{
		recruiters.GET("/me", handler.GetMyProfile)
		recruiters.PUT("/me", handler.UpdateMyProfile)
	}
}

// GetMyProfile godoc
// @Summary      Get my recruiter profile
// @Description  Returns the caller's profile, creating it on first access
// @Tags         recruiters
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /recruiters/me [get]
// @Security     BearerAuth
func (h *RecruiterHandler) GetMyProfile(c *gin.Context) {
	profile, err := h.recruiterUC.GetMyProfile(c.Request.Context(), middleware.CurrentAccount(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recruiter profile", profile)
}

// UpdateMyProfile godoc
// @Summary      Update my recruiter profile
// @Description  Partial update; omitted fields are left untouched
// @Tags         recruiters
// @Accept       json
// @Produce      json
// @Param        profile  body      domain.RecruiterProfileUpdate  true  "Profile JSON"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /recruiters/me [put]
// @Security     BearerAuth
func (h *RecruiterHandler) UpdateMyProfile(c *gin.Context) {
	var upd domain.RecruiterProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.Error(bindError(err))
		return
	}

	profile, err := h.recruiterUC.UpdateMyProfile(c.Request.Context(), middleware.CurrentAccount(c), upd)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recruiter profile updated", profile)
}
