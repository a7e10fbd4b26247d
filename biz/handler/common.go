package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/yi-nology/opsboard/biz/service"
	pkgcommon "github.com/yi-nology/opsboard/pkg/common"
)

// EnrichContext copies caller headers into ctx for handlers mounted without the Auth middleware.
func EnrichContext(ctx context.Context, c *app.RequestContext) context.Context {
	if _, ok := pkgcommon.CallerFrom(ctx); ok {
		return ctx
	}
	caller := pkgcommon.ParseCaller(
		string(c.GetHeader(pkgcommon.HeaderUserID)),
		string(c.GetHeader(pkgcommon.HeaderRole)),
	)
	if caller.IsZero() {
		return ctx
	}
	return pkgcommon.ContextWithCaller(ctx, caller)
}

func WriteBadRequest(c *app.RequestContext, err error) {
	c.JSON(consts.StatusOK, pkgcommon.CommonResponse{
		Code:  consts.StatusBadRequest,
		Msg:   err.Error(),
		Error: err.Error(),
	})
}

func WriteInternalError(c *app.RequestContext, err error) {
	c.JSON(consts.StatusOK, pkgcommon.CommonResponse{
		Code:  consts.StatusInternalServerError,
		Msg:   "internal error",
		Error: err.Error(),
	})
}

func WriteNotFound(c *app.RequestContext, err error) {
	c.JSON(consts.StatusOK, pkgcommon.CommonResponse{
		Code:  consts.StatusNotFound,
		Msg:   err.Error(),
		Error: err.Error(),
	})
}

func WriteConflict(c *app.RequestContext, err error) {
	c.JSON(consts.StatusOK, pkgcommon.CommonResponse{
		Code:  consts.StatusConflict,
		Msg:   err.Error(),
		Error: err.Error(),
	})
}

// RespondData writes a successful response carrying data.
func RespondData(c *app.RequestContext, data interface{}) {
	c.JSON(consts.StatusOK, pkgcommon.CommonResponse{
		Code: consts.StatusOK,
		Msg:  http.StatusText(consts.StatusOK),
		Data: data,
	})
}

// RespondError picks the response code from the service error.
func RespondError(ctx context.Context, c *app.RequestContext, err error) {
	switch statusFor(err) {
	case consts.StatusBadRequest:
		WriteBadRequest(c, err)
	case consts.StatusNotFound:
		WriteNotFound(c, err)
	case consts.StatusConflict:
		WriteConflict(c, err)
	case consts.StatusServiceUnavailable:
		c.JSON(consts.StatusOK, pkgcommon.CommonResponse{
			Code:  consts.StatusServiceUnavailable,
			Msg:   err.Error(),
			Error: err.Error(),
		})
	default:
		hlog.CtxErrorf(ctx, "%s %s: %v", c.Method(), c.Path(), err)
		WriteInternalError(c, err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		return consts.StatusBadRequest
	case errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrInfrastructureNotFound),
		errors.Is(err, service.ErrComponentNotFound),
		errors.Is(err, service.ErrDeploymentConfigNotFound),
		errors.Is(err, service.ErrInstanceNotFound):
		return consts.StatusNotFound
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrComponentExists),
		errors.Is(err, service.ErrDeploymentConfigExists),
		errors.Is(err, service.ErrInstanceExists):
		return consts.StatusConflict
	case errors.Is(err, service.ErrSeedingUnavailable):
		return consts.StatusServiceUnavailable
	}
	return consts.StatusInternalServerError
}

// pathID parses a positive numeric path parameter.
func pathID(c *app.RequestContext, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return uint(id), nil
}

// Ping reports liveness.
func Ping(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, pkgcommon.CommonResponse{Code: consts.StatusOK, Msg: "pong"})
}
