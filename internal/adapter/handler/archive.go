package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/aseeltahaa/smartspace/errors"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/storage"
	meetingUsecase "github.com/aseeltahaa/smartspace/internal/usecase/meeting"
)

// presignExpiry is the lifetime of archive download links
const presignExpiry = time.Hour

// presigner is implemented by sinks that can hand out temporary links
type presigner interface {
	PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// Archive copies meeting attachments into the configured sink
type Archive struct {
	editors *meetingUsecase.Service
	sink    storage.Sink
	logger  *zap.Logger
}

// NewArchive creates a new archive handler
func NewArchive(editors *meetingUsecase.Service, sink storage.Sink, logger *zap.Logger) *Archive {
	return &Archive{
		editors: editors,
		sink:    sink,
		logger:  logger,
	}
}

// ArchiveMeeting stores every attachment of a meeting in the sink
// @Summary      Archive meeting attachments
// @Description  Copies every attachment of the meeting into the configured archive storage
// @Tags         Archive
// @Produce      json
// @Param        id   path      string                  true  "Meeting ID"
// @Success      200  {object}  common.SuccessResponse  "Per-file archive results"
// @Failure      401  {object}  common.ErrorResponse    "Not signed in"
// @Router       /meetings/{id}/attachments/archive [post]
func (h *Archive) ArchiveMeeting(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	res, err := h.editors.ArchiveAttachments(c.Request().Context(), id, h.sink)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, res)
}

// ListFiles lists archived objects
// @Summary      List archived files
// @Tags         Archive
// @Produce      json
// @Param        prefix  query     string                  false  "Object name prefix"
// @Success      200     {object}  common.SuccessResponse  "Files in the archive"
// @Failure      500     {object}  common.ErrorResponse    "Storage unavailable"
// @Router       /archive/files [get]
func (h *Archive) ListFiles(c echo.Context) error {
	prefix := c.QueryParam("prefix")

	files, err := h.sink.List(c.Request().Context(), prefix)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("failed to list files", zap.Error(err))
		}
		return HandleError(h.logger, c, errors.ErrStorageFailed("list", err))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"files":  files,
		"count":  len(files),
		"prefix": prefix,
		"sink":   h.sink.Name(),
	})
}

// DownloadURL generates a temporary link to an archived object
// @Summary      Presigned download URL
// @Description  Only available when the archive is backed by object storage
// @Tags         Archive
// @Produce      json
// @Param        file  query     string                  true  "Object name"
// @Success      200   {object}  common.SuccessResponse  "URL valid for one hour"
// @Failure      400   {object}  common.ErrorResponse    "Missing file or sink cannot presign"
// @Router       /archive/download-url [get]
func (h *Archive) DownloadURL(c echo.Context) error {
	filePath := c.QueryParam("file")
	if filePath == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Missing file parameter"))
	}

	p, ok := h.sink.(presigner)
	if !ok {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("The "+h.sink.Name()+" archive does not issue download links"))
	}

	url, err := p.PresignedURL(c.Request().Context(), filePath, presignExpiry)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("failed to generate download URL",
				zap.String("file", filePath),
				zap.Error(err))
		}
		return HandleError(h.logger, c, errors.ErrStorageFailed("presign", err))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"file":       filePath,
		"url":        url,
		"expires_in": presignExpiry.String(),
	})
}
