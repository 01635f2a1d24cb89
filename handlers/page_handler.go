package handlers

import (
	"fmt"
	"net/http"
	"time"

	"CopiaTrack/exporter"
	"CopiaTrack/services"
	"CopiaTrack/ui"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// PageHandler drives the checklist page: rendering, the transient selection
// set, saving the selection and the spreadsheet export.
type PageHandler struct {
	service *services.BackupService
	state   *ui.State
}

func NewPageHandler(service *services.BackupService, state *ui.State) *PageHandler {
	return &PageHandler{service: service, state: state}
}

func (h *PageHandler) Index(c echo.Context) error {
	statuses, err := h.service.GetStatus(c.Request().Context())
	if err != nil {
		logrus.Error("Loading statuses failed: ", err)
		h.state.SetNotice("Could not load backup data", true, time.Now())
		return c.Render(http.StatusOK, "index.html", ui.BuildView(nil, h.state, time.Now()))
	}
	return c.Render(http.StatusOK, "index.html", ui.BuildView(statuses, h.state, time.Now()))
}

// Select toggles one item in the selection set and re-renders.
func (h *PageHandler) Select(c echo.Context) error {
	item := c.FormValue("item")
	if item != "" {
		h.state.Toggle(item, c.FormValue("checked") == "true")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// Save records one backup per selected item, all sharing "now". The
// selection is cleared only after the service confirms the write; on
// failure it is preserved so the operator can retry.
func (h *PageHandler) Save(c echo.Context) error {
	now := time.Now()
	selected := h.state.SelectedItems()
	if len(selected) == 0 {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	count, err := h.service.RecordBackups(c.Request().Context(), selected, now)
	if err != nil {
		logrus.Error("Saving selection failed: ", err)
		h.state.SetNotice("Could not save backups, selection kept", true, now)
		return c.Redirect(http.StatusSeeOther, "/")
	}

	backupsRecorded.Add(float64(count))
	h.state.ClearSelection()
	h.state.SetNotice(fmt.Sprintf("%d backups saved successfully", count), false, now)
	return c.Redirect(http.StatusSeeOther, "/")
}

// Export streams the 30-day attendance workbook.
func (h *PageHandler) Export(c echo.Context) error {
	now := time.Now()
	statuses, err := h.service.GetStatus(c.Request().Context())
	if err != nil {
		logrus.Error("Loading statuses for export failed: ", err)
		h.state.SetNotice("Could not export backups", true, now)
		return c.Redirect(http.StatusSeeOther, "/")
	}

	data, err := exporter.Export(statuses, now)
	if err != nil {
		logrus.Error("Export failed: ", err)
		h.state.SetNotice("Could not export backups", true, now)
		return c.Redirect(http.StatusSeeOther, "/")
	}

	exportsGenerated.Inc()
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, exporter.Filename(now)))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
