package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/justsurfingit/Job-Application-Tracker/internal/dtos"
	"github.com/justsurfingit/Job-Application-Tracker/internal/metrics"
	"github.com/justsurfingit/Job-Application-Tracker/internal/services"
	"github.com/justsurfingit/Job-Application-Tracker/internal/web"
)

// ApplicationHandler serves the JSON API and the HTML pages.
type ApplicationHandler struct {
	Service *services.ApplicationService
	Metrics *metrics.Metrics
	Log     *zap.Logger
}

// NewApplicationHandler creates the handler with dependencies
func NewApplicationHandler(s *services.ApplicationService, m *metrics.Metrics, log *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		Service: s,
		Metrics: m,
		Log:     log,
	}
}

// Register mounts every application route on r. The engine must have the
// page templates loaded.
func (h *ApplicationHandler) Register(r gin.IRouter) {
	r.GET("/", h.Index)
	r.GET("/add", h.AddPage)
	r.POST("/add", h.CreateApplication)
	r.GET("/edit/:id", h.EditPage)
	r.POST("/edit/:id", h.UpdateApplication)
	r.POST("/delete/:id", h.DeleteApplication)

	api := r.Group("/api")
	{
		api.GET("/summary", h.Summary)
		api.GET("/applications", h.ListApplications)
		api.GET("/applications/:id", h.GetApplication)
		api.GET("/applications/:id/history", h.History)
	}
}

// Summary is the GET /api/summary endpoint
func (h *ApplicationHandler) Summary(c *gin.Context) {
	summary, err := h.Service.Summary(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to load summary", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ListApplications is the GET /api/applications endpoint
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	apps, err := h.Service.List(c.Request.Context(), c.Query("sort"), c.Query("order"))
	if err != nil {
		h.internalError(c, "Failed to load applications", err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	app, err := h.Service.Get(c.Request.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, dtos.Result{Success: false, Message: "Job application not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Failed to load application", err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) History(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	history, err := h.Service.History(c.Request.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, dtos.Result{Success: false, Message: "Job application not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Failed to load status history", err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// CreateApplication is the POST /add endpoint. JSON callers get a Result,
// form posts are redirected to the list.
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	req, problem := h.bindRequest(c)
	if problem != "" {
		if isForm(c) {
			c.HTML(http.StatusBadRequest, "form.html", web.NewAddPage(req, problem))
			return
		}
		c.JSON(http.StatusBadRequest, dtos.Result{Success: false, Message: problem})
		return
	}

	app, err := h.Service.Create(c.Request.Context(), &req)
	if err != nil {
		h.internalError(c, "Failed to add job application", err)
		return
	}
	h.mutation("create")
	h.Log.Info("application created", zap.Uint("id", app.ID), zap.String("status", app.Status))

	if isForm(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.JSON(http.StatusOK, dtos.Result{Success: true, Message: "Job application added successfully"})
}

// UpdateApplication is the POST /edit/:id endpoint.
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	req, problem := h.bindRequest(c)
	if problem != "" {
		if isForm(c) {
			c.HTML(http.StatusBadRequest, "form.html", web.NewEditFormPage(id, req, problem))
			return
		}
		c.JSON(http.StatusBadRequest, dtos.Result{Success: false, Message: problem})
		return
	}

	app, err := h.Service.Update(c.Request.Context(), id, &req)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, dtos.Result{Success: false, Message: "Job application not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Failed to update job application", err)
		return
	}
	h.mutation("update")
	h.Log.Info("application updated", zap.Uint("id", app.ID), zap.String("status", app.Status))

	if isForm(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.JSON(http.StatusOK, dtos.Result{Success: true, Message: "Job application updated successfully"})
}

// DeleteApplication is the POST /delete/:id endpoint. Unknown ids succeed.
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		h.internalError(c, "Failed to delete job application", err)
		return
	}
	h.mutation("delete")
	h.Log.Info("application deleted", zap.Uint("id", id))

	if isForm(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.JSON(http.StatusOK, dtos.Result{Success: true, Message: "Job application deleted successfully"})
}

// bindRequest decodes JSON or form bodies. The returned message is empty when
// the request is usable.
func (h *ApplicationHandler) bindRequest(c *gin.Context) (dtos.ApplicationRequest, string) {
	var req dtos.ApplicationRequest
	if err := c.ShouldBind(&req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return req, "Invalid request format: " + err.Error()
		}
		h.Log.Debug("request failed validation", zap.Strings("fields", fieldNames(verrs)))
	}

	req.Normalize()
	if missing := req.MissingFields(); len(missing) > 0 {
		return req, "Missing required fields: " + strings.Join(missing, ", ")
	}
	return req, ""
}

func (h *ApplicationHandler) internalError(c *gin.Context, msg string, err error) {
	h.Log.Error(strings.ToLower(msg), zap.Error(err))
	c.JSON(http.StatusInternalServerError, dtos.Result{Success: false, Message: msg})
}

func (h *ApplicationHandler) mutation(op string) {
	if h.Metrics != nil {
		h.Metrics.Mutation(op)
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dtos.Result{Success: false, Message: "Invalid application id"})
		return 0, false
	}
	return uint(id), true
}

func isForm(c *gin.Context) bool {
	switch c.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		return true
	}
	return false
}

func fieldNames(verrs validator.ValidationErrors) []string {
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		names = append(names, fe.Field())
	}
	return names
}
