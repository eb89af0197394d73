package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/aseeltahaa/smartspace/errors"
	"github.com/aseeltahaa/smartspace/internal/adapter/dto/common"
	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/http/middleware"
	usecaseErrors "github.com/aseeltahaa/smartspace/internal/usecase/errors"
	"github.com/aseeltahaa/smartspace/pkg/validator"
)

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusOK, data)
}

// HandleCreated writes a standardized 201 response
func HandleCreated(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusCreated, data)
}

func respond(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := common.SuccessResponse{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)
	appErr := toAppError(err)

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Any("app_code", appErr.Code),
			zap.Error(err),
		)
	}

	info := ""
	if appErr.Raw != nil {
		info = appErr.Raw.Error()
	}

	body := common.ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Info:    info,
		Details: appErr.Details,
	}

	return c.JSON(appErr.HTTPCode, body)
}

// toAppError maps use case sentinels onto the AppError taxonomy
func toAppError(err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrNotAuthenticated):
		return errors.ErrNoSession()
	case stdErrors.Is(err, usecaseErrors.ErrNotAdmin):
		return errors.ErrNotAdmin()
	case stdErrors.Is(err, usecaseErrors.ErrNotOrganizer):
		return errors.ErrNotOrganizer()
	case stdErrors.Is(err, usecaseErrors.ErrNotAssignee):
		return errors.ErrPermissionDenied(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrNoNextPage):
		return errors.ErrPaginationBoundary("", "next")
	case stdErrors.Is(err, usecaseErrors.ErrNoPreviousPage):
		return errors.ErrPaginationBoundary("", "previous")
	case stdErrors.Is(err, usecaseErrors.ErrUnknownSection):
		return errors.ErrNotFound("Section")
	case stdErrors.Is(err, usecaseErrors.ErrActionItemMissing):
		return errors.ErrNotFound("Action item")
	case stdErrors.Is(err, usecaseErrors.ErrInviteeNotFound):
		return errors.ErrNotFound("Invitee")
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput),
		stdErrors.Is(err, usecaseErrors.ErrEmptyNote),
		stdErrors.Is(err, usecaseErrors.ErrNoAttachments),
		stdErrors.Is(err, entities.ErrInvalidJudgment),
		stdErrors.Is(err, entities.ErrInvalidRole),
		stdErrors.Is(err, entities.ErrInvalidTimes),
		stdErrors.Is(err, entities.ErrMissingTitle):
		return errors.ErrInvalidArgument(err.Error())
	}
	return errors.ErrInternal(err)
}

// bindAndValidate binds the request body into req and validates it
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidArgument(validator.Message(err))
	}
	return nil
}

// paramID reads a path parameter as an entity id
func paramID(c echo.Context, name string) (entities.ID, error) {
	v := c.Param(name)
	if v == "" {
		return "", errors.ErrInvalidArgument("missing " + name)
	}
	return entities.ID(v), nil
}

func currentUserID(c echo.Context) entities.ID {
	return middleware.GetUserID(c)
}
