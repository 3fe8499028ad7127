package mid

import (
	"context"
	"errors"
	"net/http"
	"path"

	"github.com/polyladder/server/app/sdk/errs"
	"github.com/polyladder/server/app/sdk/metrics"
	"github.com/polyladder/server/business/sdk/web"
	"github.com/polyladder/server/foundation/logger"
)

// Errors handles errors coming out of the call chain. The central place
// where error details are logged; what goes over the wire is the trusted
// errs.Error projection only.
func Errors(log *logger.Logger) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)
			err := checkIsError(resp)
			if err == nil {
				return resp
			}

			var appErr *errs.Error
			if !errors.As(err, &appErr) {
				appErr = errs.Errorf(errs.Internal, "Internal Server Error")
			}

			log.Error(ctx, "handled error during request",
				"appID", GetAppID(ctx),
				"err", err,
				"source_err_file", path.Base(appErr.FileName),
				"source_err_func", path.Base(appErr.FuncName))

			metrics.AddErrors(ctx)

			// Details of internal-only errors never leave the service.
			if appErr.Code == errs.InternalOnlyLog {
				appErr = errs.New(errs.Internal, errors.New("internal server error"))
			}

			// HTTP Basic requires a challenge alongside a 401.
			if appErr.Code == errs.Unauthenticated {
				if w := web.GetWriter(ctx); w != nil {
					w.Header().Set("WWW-Authenticate", "Basic")
				}
			}

			return appErr
		}

		return h
	}

	return m
}
