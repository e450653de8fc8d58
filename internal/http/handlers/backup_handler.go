package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/juris-ledger/internal/services"
)

// FileRequest names a backup file inside the configured backup directory.
// Relative paths are resolved against it and paths leaving it are rejected.
// An empty path means the user dismissed the file picker.
type FileRequest struct {
	Path string `json:"path" example:"juris-payment-backup-2024-05-20.json"`
}

// Backup godoc
// @ID          backup
// @Summary     Write a backup file
// @Description A directory path receives the default dated file name. An empty path cancels.
// @Tags        Backup
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.FileRequest  true  "Destination"
// @Success     200   {object}  services.BackupResult
// @Failure     400   {object}  handlers.ErrorResponse  "Bad request"
// @Failure     429   {object}  handlers.ErrorResponse  "Rate limited"
// @Failure     500   {object}  handlers.ErrorResponse  "Write failed"
// @Router      /backup [post]
func (h *Handlers) Backup(c *gin.Context) {
	var req FileRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.backup.Backup(c.Request.Context(), services.FixedPath(req.Path))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}

// DownloadBackup godoc
// @ID          downloadBackup
// @Summary     Download a backup
// @Tags        Backup
// @Produce     json
// @Success     200  {object}  domain.Snapshot
// @Header      200  {string}  Content-Disposition  "attachment; filename=juris-payment-backup-YYYY-MM-DD.json"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /backup [get]
func (h *Handlers) DownloadBackup(c *gin.Context) {
	var buf bytes.Buffer
	if _, err := h.backup.WriteSnapshot(c.Request.Context(), &buf); err != nil {
		failErr(c, err)
		return
	}
	name := services.DefaultBackupName(h.now())
	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(name))
	c.Data(http.StatusOK, "application/json; charset=utf-8", buf.Bytes())
}

// Restore godoc
// @ID          restore
// @Summary     Replace all data from a backup file
// @Description Validates the file first; nothing changes unless the whole replace commits. An empty path cancels.
// @Tags        Backup
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.FileRequest  true  "Source"
// @Success     200   {object}  services.RestoreResult
// @Failure     400   {object}  handlers.ErrorResponse  "Invalid backup"
// @Failure     404   {object}  handlers.ErrorResponse  "File not found"
// @Failure     500   {object}  handlers.ErrorResponse  "Restore rolled back"
// @Router      /restore [post]
func (h *Handlers) Restore(c *gin.Context) {
	var req FileRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.backup.Restore(c.Request.Context(), services.FixedPath(req.Path))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}

// RestoreUpload godoc
// @ID          restoreUpload
// @Summary     Replace all data from an uploaded backup
// @Tags        Backup
// @Accept      json
// @Produce     json
// @Param       body  body      domain.Snapshot  true  "Backup document"
// @Success     200   {object}  services.RestoreResult
// @Failure     400   {object}  handlers.ErrorResponse  "Invalid backup"
// @Failure     413   {object}  handlers.ErrorResponse  "Too large"
// @Failure     500   {object}  handlers.ErrorResponse  "Restore rolled back"
// @Router      /restore/upload [post]
func (h *Handlers) RestoreUpload(c *gin.Context) {
	res, err := h.backup.RestoreFrom(c.Request.Context(), c.Request.Body)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}
