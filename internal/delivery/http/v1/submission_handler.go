package v1

import (
	"net/http"

	"consultant-tracker-backend/internal/delivery/http/middleware"
	"consultant-tracker-backend/internal/delivery/http/response"
	"consultant-tracker-backend/internal/domain"
	"consultant-tracker-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	submissionUC domain.SubmissionUsecase
}

func NewSubmissionHandler(protected *gin.RouterGroup, submissionUC domain.SubmissionUsecase, uploadLimiter gin.HandlerFunc) {
	handler := &SubmissionHandler{submissionUC: submissionUC}

	submissions := protected.Group("/submissions")
	{
		consultantOnly := submissions.Group("")
		consultantOnly.Use(middleware.RequireRole(domain.RoleConsultant))
		{
			consultantOnly.POST("", uploadLimiter, handler.Apply)
			consultantOnly.GET("/me", handler.MySubmissions)
		}

		recruiterOnly := submissions.Group("")
		recruiterOnly.Use(middleware.RequireRole(domain.RoleRecruiter))
		{
			recruiterOnly.GET("", handler.ListAll)
			recruiterOnly.PUT("/:id/status", handler.UpdateStatus)
		}
	}
}

type UpdateSubmissionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Multipart form with jd_id, optional comments and a resume file
// @Tags         submissions
// @Accept       multipart/form-data
// @Produce      json
// @Param        jd_id     formData  string  true   "Job description ID"
// @Param        comments  formData  string  false  "Comments"
// @Param        resume    formData  file    true   "Resume file"
// @Success      201       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Router       /submissions [post]
// @Security     BearerAuth
func (h *SubmissionHandler) Apply(c *gin.Context) {
	jdID := c.PostForm("jd_id")
	if jdID == "" {
		c.Error(apperror.BadRequest("jd_id is required"))
		return
	}
	comments := c.PostForm("comments")

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

	sub, err := h.submissionUC.Apply(c.Request.Context(), middleware.CurrentAccount(c),
		jdID, comments, file.Filename, file.Size, src)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Submission created", sub)
}

// MySubmissions godoc
// @Summary      List my submissions
// @Tags         submissions
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /submissions/me [get]
// @Security     BearerAuth
func (h *SubmissionHandler) MySubmissions(c *gin.Context) {
	subs, err := h.submissionUC.MySubmissions(c.Request.Context(), middleware.CurrentAccount(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "My submissions", subs)
}

// ListAll godoc
// @Summary      List submissions (recruiter/admin)
// @Description  Recruiters see submissions for their jobs; admins see everything
// @Tags         submissions
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /submissions [get]
// @Security     BearerAuth
func (h *SubmissionHandler) ListAll(c *gin.Context) {
	subs, err := h.submissionUC.ListAll(c.Request.Context(), middleware.CurrentAccount(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Submission list", subs)
}

// UpdateStatus godoc
// @Summary      Update a submission's status
// @Description  Any defined status may be set from any other
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        id      path      string                         true  "Submission ID"
// @Param        status  body      UpdateSubmissionStatusRequest  true  "New status"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /submissions/{id}/status [put]
// @Security     BearerAuth
func (h *SubmissionHandler) UpdateStatus(c *gin.Context) {
	var req UpdateSubmissionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	sub, err := h.submissionUC.UpdateStatus(c.Request.Context(), middleware.CurrentAccount(c),
		c.Param("id"), domain.SubmissionStatus(req.Status))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Submission status updated", sub)
}
