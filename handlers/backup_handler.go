package handlers

import (
	"net/http"

	"CopiaTrack/models"
	"CopiaTrack/services"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// BackupHandler serves the JSON read and write endpoints.
type BackupHandler struct {
	service *services.BackupService
}

func NewBackupHandler(service *services.BackupService) *BackupHandler {
	return &BackupHandler{service: service}
}

type backupItemPayload struct {
	Categoria string `json:"categoria"`
	Item      string `json:"item"`
	Fecha     string `json:"fecha"`
}

type saveRequest struct {
	Items []backupItemPayload `json:"items"`
}

// List returns the full catalog structure with every history as
// display-formatted strings, newest first.
func (h *BackupHandler) List(c echo.Context) error {
	statuses, err := h.service.GetStatus(c.Request().Context())
	if err != nil {
		logrus.Error("Fetching backups failed: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "could not fetch backups",
		})
	}

	data := make(map[string]map[string][]string)
	for categoria, items := range statuses {
		data[categoria] = make(map[string][]string)
		for item, status := range items {
			stamps := make([]string, 0, len(status.History))
			for _, ts := range status.History {
				stamps = append(stamps, services.FormatDisplay(ts))
			}
			data[categoria][item] = stamps
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

// Save records a batch of confirmations. Rows with missing fields or an
// unparseable fecha are skipped, matching the read side's tolerance; the
// remainder is inserted atomically.
func (h *BackupHandler) Save(c echo.Context) error {
	var req saveRequest
	if err := c.Bind(&req); err != nil || req.Items == nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "invalid request body",
		})
	}

	records := make([]models.BackupRecord, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Categoria == "" || item.Item == "" || item.Fecha == "" {
			continue
		}
		ts, err := services.ParseDisplay(item.Fecha)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"item":  item.Item,
				"fecha": item.Fecha,
			}).Warn("Skipping record with malformed fecha")
			continue
		}
		records = append(records, models.BackupRecord{
			Categoria:  item.Categoria,
			Item:       item.Item,
			FechaCopia: ts,
		})
	}

	count, err := h.service.RecordBatch(c.Request().Context(), records)
	if err != nil {
		logrus.Error("Saving backups failed: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "could not save backups",
		})
	}

	backupsRecorded.Add(float64(count))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "backups saved successfully",
		"count":   count,
	})
}
