package v1

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"consultant-tracker-backend/internal/delivery/http/middleware"
	"consultant-tracker-backend/internal/delivery/http/response"
	"consultant-tracker-backend/internal/domain"
	"consultant-tracker-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(protected *gin.RouterGroup, jobUC domain.JobUsecase, uploadLimiter gin.HandlerFunc) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := protected.Group("/jobs")
	{
		// Any authenticated role may browse; the usecase narrows what
		// consultants can see.
		jobs.GET("", handler.List)
		jobs.GET("/:id", handler.GetDetails)
		jobs.GET("/:id/jd-file", handler.DownloadJDFile)

		posting := jobs.Group("")
		posting.Use(middleware.RequireRole(domain.RoleRecruiter))
		{
			posting.POST("", handler.Create)
			posting.PUT("/:id", handler.Update)
			posting.POST("/:id/jd-file", uploadLimiter, handler.UploadJDFile)
			posting.POST("/classify", handler.Classify)
		}
	}
}

type CreateJobRequest struct {
	Title              string   `json:"title" binding:"required"`
	Description        string   `json:"description" binding:"required"`
	ClientName         *string  `json:"client_name"`
	ExperienceRequired float64  `json:"experience_required"`
	TechRequired       []string `json:"tech_required"`
	Location           *string  `json:"location"`
	VisaRequired       *string  `json:"visa_required"`
	StartDate          *string  `json:"start_date"`
	JobType            *string  `json:"job_type"`
	JDSummary          *string  `json:"jd_summary"`
	AdditionalNotes    *string  `json:"additional_notes"`
	Status             string   `json:"status"`
}

type ClassifyRequest struct {
	Text string `json:"text" binding:"required"`
}

// Create godoc
// @Summary      Post a job description
// @Description  Create a job posting owned by the calling recruiter
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      CreateJobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	job := &domain.JobDescription{
		Title:              req.Title,
		Description:        req.Description,
		ClientName:         req.ClientName,
		ExperienceRequired: req.ExperienceRequired,
		TechRequired:       req.TechRequired,
		Location:           req.Location,
		VisaRequired:       req.VisaRequired,
		JDSummary:          req.JDSummary,
		AdditionalNotes:    req.AdditionalNotes,
		Status:             req.Status,
	}

	if req.StartDate != nil {
		t, err := parseStartDate(*req.StartDate)
		if err != nil {
			c.Error(apperror.BadRequest("start_date must be an ISO date"))
			return
		}
		job.StartDate = t
	}
	if req.JobType != nil {
		jt := domain.MatchJobType(*req.JobType)
		if jt == nil {
			c.Error(apperror.BadRequest("job_type must be Contract, Full-time, C2C or W2"))
			return
		}
		job.JobType = jt
	}

	created, err := h.jobUC.Create(c.Request.Context(), middleware.CurrentAccount(c), job)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job description created", created)
}

// List godoc
// @Summary      List job descriptions
// @Description  Consultants only ever see OPEN jobs
// @Tags         jobs
// @Produce      json
// @Param        status  query     string  false  "Status filter (OPEN/CLOSED)"
// @Param        skip    query     int     false  "Offset"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  response.Response
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *JobHandler) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	status := c.Query("status")

	jobs, err := h.jobUC.List(c.Request.Context(), middleware.CurrentAccount(c), status, skip, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job list", jobs)
}

// GetDetails godoc
// @Summary      Get a job description
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) GetDetails(c *gin.Context) {
	job, err := h.jobUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job details", job)
}

// Update godoc
// @Summary      Update a job description
// @Description  Only the owning recruiter may update; admins are rejected too
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string            true  "Job ID"
// @Param        job  body      domain.JobUpdate  true  "Update JSON"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	var upd domain.JobUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.Error(bindError(err))
		return
	}

	job, err := h.jobUC.Update(c.Request.Context(), middleware.CurrentAccount(c), c.Param("id"), upd)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job description updated", job)
}

// UploadJDFile godoc
// @Summary      Attach the source JD document
// @Description  Upload the original job description file; replaces any prior attachment
// @Tags         jobs
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "Job ID"
// @Param        file  formData  file    true  "JD document (.pdf, .doc or .docx)"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /jobs/{id}/jd-file [post]
// @Security     BearerAuth
func (h *JobHandler) UploadJDFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("JD file is required"))
		return
	}

	src, err := file.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer src.Close()

	job, err := h.jobUC.UploadJDFile(c.Request.Context(), middleware.CurrentAccount(c),
		c.Param("id"), file.Filename, file.Size, src)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "JD file uploaded", job)
}

// DownloadJDFile godoc
// @Summary      Download the attached JD document
// @Tags         jobs
// @Produce      application/octet-stream
// @Param        id  path  string  true  "Job ID"
// @Success      200
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/jd-file [get]
// @Security     BearerAuth
func (h *JobHandler) DownloadJDFile(c *gin.Context) {
	path, err := h.jobUC.JDFilePath(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.FileAttachment(path, "jd"+filepath.Ext(path))
}

// Classify godoc
// @Summary      Classify raw JD text
// @Description  Extract structured job fields from pasted text via the AI service
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        text  body      ClassifyRequest  true  "Raw JD text"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      503   {object}  response.Response
// @Router       /jobs/classify [post]
// @Security     BearerAuth
func (h *JobHandler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	result, err := h.jobUC.Classify(c.Request.Context(), req.Text)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Classification result", result)
}

func parseStartDate(s string) (*time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("invalid date")
}
