package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/Job-Application-Tracker/internal/dtos"
	"github.com/justsurfingit/Job-Application-Tracker/internal/services"
	"github.com/justsurfingit/Job-Application-Tracker/internal/web"
)

// Index renders the list page. Query parameters sort, order, status and q
// select the same view the terminal client would show.
func (h *ApplicationHandler) Index(c *gin.Context) {
	ctx := c.Request.Context()
	sort, order := services.NormalizeSort(c.Query("sort"), c.Query("order"))

	summary, err := h.Service.Summary(ctx)
	if err != nil {
		h.internalError(c, "Failed to load summary", err)
		return
	}
	apps, err := h.Service.List(ctx, sort, order)
	if err != nil {
		h.internalError(c, "Failed to load applications", err)
		return
	}

	page, err := web.NewIndexPage(summary, apps, c.Query("status"), c.Query("q"), sort, order)
	if err != nil {
		h.internalError(c, "Failed to render applications", err)
		return
	}
	c.HTML(http.StatusOK, "index.html", page)
}

func (h *ApplicationHandler) AddPage(c *gin.Context) {
	c.HTML(http.StatusOK, "form.html", web.NewAddPage(dtos.ApplicationRequest{}, ""))
}

// EditPage renders the edit form. Unknown ids go back to the list.
func (h *ApplicationHandler) EditPage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	app, err := h.Service.Get(c.Request.Context(), uint(id))
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "form.html", web.NewEditPage(app, ""))
}
