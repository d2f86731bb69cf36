package v1

import (
	"net/http"
	"path/filepath"
	"strconv"

	"consultant-tracker-backend/internal/delivery/http/middleware"
	"consultant-tracker-backend/internal/delivery/http/response"
	"consultant-tracker-backend/internal/domain"
	"consultant-tracker-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ConsultantHandler struct {
	consultantUC domain.ConsultantUsecase
}

func NewConsultantHandler(protected *gin.RouterGroup, consultantUC domain.ConsultantUsecase, uploadLimiter gin.HandlerFunc) {
	handler := &ConsultantHandler{consultantUC: consultantUC}

	consultants := protected.Group("/consultants")

	// Own-profile routes
	me := consultants.Group("/me")
	me.Use(middleware.RequireRole(domain.RoleConsultant))
	{
		me.GET("", handler.GetMyProfile)
		me.PUT("", handler.UpdateMyProfile)
		me.POST("/resume", uploadLimiter, handler.UploadResume)
		me.GET("/resume", handler.DownloadMyResume)
		me.GET("/stats", handler.MyStats)
	}

	// Roster routes for recruiters and admins
	roster := consultants.Group("")
	roster.Use(middleware.RequireRole(domain.RoleRecruiter))
	{
		roster.GET("", handler.List)
		roster.GET("/:id", handler.GetByID)
		roster.GET("/:id/resume", handler.DownloadResume)
	}
}

// GetMyProfile godoc
// @Summary      Get my consultant profile
// @Description  Returns the caller's profile, creating it with defaults on first access
// @Tags         consultants
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /consultants/me [get]
// @Security     BearerAuth
func (h *ConsultantHandler) GetMyProfile(c *gin.Context) {
	profile, err := h.consultantUC.GetMyProfile(c.Request.Context(), middleware.CurrentAccount(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Consultant profile", profile)
}

// UpdateMyProfile godoc
// @Summary      Update my consultant profile
// @Description  Partial update; a phone change also updates the account record
// @Tags         consultants
// @Accept       json
// @Produce      json
// @Param        profile  body      domain.ConsultantProfileUpdate  true  "Profile JSON"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /consultants/me [put]
// @Security     BearerAuth
func (h *ConsultantHandler) UpdateMyProfile(c *gin.Context) {
	var upd domain.ConsultantProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.Error(bindError(err))
		return
	}

	profile, err := h.consultantUC.UpdateMyProfile(c.Request.Context(), middleware.CurrentAccount(c), upd)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Consultant profile updated", profile)
}

// UploadResume godoc
// @Summary      Upload my resume
// @Description  Accepts .pdf, .doc or .docx; replaces any previous file
// @Tags         consultants
// @Accept       multipart/form-data
// @Produce      json
// @Param        resume  formData  file  true  "Resume file"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Router       /consultants/me/resume [post]
// @Security     BearerAuth
func (h *ConsultantHandler) UploadResume(c *gin.Context) {
	file, err := c.FormFile("resume")
	if err != nil {
		c.Error(apperror.BadRequest("Resume file is required"))
		return
	}

	src, err := file.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer src.Close()

	path, err := h.consultantUC.UploadResume(c.Request.Context(), middleware.CurrentAccount(c),
		file.Filename, file.Size, src)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume uploaded", gin.H{"resume_path": path})
}

// DownloadMyResume godoc
// @Summary      Download my resume
// @Tags         consultants
// @Produce      octet-stream
// @Success      200  {file}    file
// @Failure      404  {object}  response.Response
// @Router       /consultants/me/resume [get]
// @Security     BearerAuth
func (h *ConsultantHandler) DownloadMyResume(c *gin.Context) {
	h.serveResume(c, middleware.CurrentAccount(c).ID)
}

// MyStats godoc
// @Summary      My submission statistics
// @Tags         consultants
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /consultants/me/stats [get]
// @Security     BearerAuth
func (h *ConsultantHandler) MyStats(c *gin.Context) {
	stats, err := h.consultantUC.Stats(c.Request.Context(), middleware.CurrentAccount(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Submission statistics", stats)
}

// List godoc
// @Summary      List consultants (recruiter/admin)
// @Tags         consultants
// @Produce      json
// @Param        skip   query     int  false  "Offset"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Router       /consultants [get]
// @Security     BearerAuth
func (h *ConsultantHandler) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	profiles, err := h.consultantUC.List(c.Request.Context(), skip, limit)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Consultant list", profiles)
}

// GetByID godoc
// @Summary      Get a consultant profile (recruiter/admin)
// @Tags         consultants
// @Produce      json
// @Param        id   path      string  true  "Consultant ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /consultants/{id} [get]
// @Security     BearerAuth
func (h *ConsultantHandler) GetByID(c *gin.Context) {
	profile, err := h.consultantUC.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Consultant profile", profile)
}

// DownloadResume godoc
// @Summary      Download a consultant's resume (recruiter/admin)
// @Tags         consultants
// @Produce      octet-stream
// @Param        id   path      string  true  "Consultant ID"
// @Success      200  {file}    file
// @Failure      404  {object}  response.Response
// @Router       /consultants/{id}/resume [get]
// @Security     BearerAuth
func (h *ConsultantHandler) DownloadResume(c *gin.Context) {
	h.serveResume(c, c.Param("id"))
}

func (h *ConsultantHandler) serveResume(c *gin.Context, consultantID string) {
	path, err := h.consultantUC.ResumePath(c.Request.Context(), consultantID)
	if err != nil {
		c.Error(err)
		return
	}
	c.FileAttachment(path, "resume"+filepath.Ext(path))
}
