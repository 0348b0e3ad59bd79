package httpapi

import (
	"net/http"

	"github.com/riskibarqy/novastream/internal/platform/id"
	"github.com/riskibarqy/novastream/internal/platform/logging"
	"github.com/riskibarqy/novastream/internal/platform/metrics"
)

func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	registry *metrics.Registry,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, registry)
	registerContentRoutes(mux, handler)
	registerAccountRoutes(mux, handler)

	return RequestTracing(
		RequestID(id.NewUUIDGenerator(),
			ClientIdentity(
				RequestLogging(logger,
					CORS(corsAllowedOrigins,
						recoverPanic(logger,
							ObserveRequests(registry, mux)))))))
}
