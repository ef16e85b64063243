package rest

import (
	"net/http"
	"strings"

	"github.com/bwise1/lifegroup_locator/internal/locator"
	"github.com/bwise1/lifegroup_locator/util"
	"github.com/bwise1/lifegroup_locator/util/tracing"
	"github.com/bwise1/lifegroup_locator/util/values"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

func (api *API) GeocodeRoutes() chi.Router {
	mux := chi.NewRouter()

	// Forward geocoding of a user-typed address through the region/country fallback
	// Query Params: ?address=...
	mux.Method(http.MethodGet, "/", Handler(api.GeocodeAddressHandler))
	return mux
}

func (api *API) GeocodeAddressHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc, ok := r.Context().Value(values.ContextTracingKey).(tracing.Context)
	if !ok {
		return respondWithError(nil, "Missing tracing context", values.SystemErr, nil)
	}

	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		return respondWithError(nil, "Missing or empty 'address' query parameter", values.BadRequestBody, &tc)
	}

	loc, err := api.Deps.Locator.ResolveAddress(r.Context(), address)
	if err != nil {
		if errors.Is(err, locator.ErrAddressNotFound) {
			return respondWithError(err, "Address not found", values.AddressNotFound, &tc)
		}
		return respondWithError(err, "Failed to geocode address", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Address resolved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       loc,
	}
}
