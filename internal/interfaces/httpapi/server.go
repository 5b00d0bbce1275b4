package httpapi

import (
	"net/http"

	"github.com/riskibarqy/goalquest/internal/platform/logging"
)

type RouterOptions struct {
	SwaggerEnabled      bool
	CORSAllowedOrigins  []string
	CaptureRequestBody  bool
	RequestBodyMaxBytes int
}

func NewRouter(handler *Handler, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, opts.SwaggerEnabled)
	registerPublicRoutes(mux, handler)

	var chain http.Handler = recoverPanic(logger, mux)
	chain = CORS(opts.CORSAllowedOrigins, chain)
	if opts.CaptureRequestBody {
		chain = CaptureRequestBody(opts.RequestBodyMaxBytes, chain)
	}
	return RequestTracing(RequestLogging(logger, chain))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
