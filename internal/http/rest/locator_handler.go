package rest

import (
	"net/http"
	"time"

	"github.com/bwise1/lifegroup_locator/internal/locator"
	"github.com/bwise1/lifegroup_locator/internal/model"
	"github.com/bwise1/lifegroup_locator/util"
	"github.com/bwise1/lifegroup_locator/util/tracing"
	"github.com/bwise1/lifegroup_locator/util/values"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func (api *API) SearchRoutes() chi.Router {
	mux := chi.NewRouter()
	mux.Method(http.MethodPost, "/", Handler(api.SearchMeetings))
	return mux
}

func (api *API) MeetingRoutes() chi.Router {
	mux := chi.NewRouter()
	// Query Params: ?audience=...&day=...&modality=... (repeatable)
	mux.Method(http.MethodGet, "/", Handler(api.ListMeetings))
	mux.Method(http.MethodGet, "/facets", Handler(api.ListFacets))
	return mux
}

func (api *API) DatasetRoutes() chi.Router {
	mux := chi.NewRouter()
	mux.Method(http.MethodPost, "/refresh", Handler(api.RefreshDataset))
	return mux
}

type MeetingList struct {
	SnapshotID uuid.UUID             `json:"snapshot_id"`
	LoadedAt   time.Time             `json:"loaded_at"`
	Count      int                   `json:"count"`
	Meetings   []model.MeetingRecord `json:"meetings"`
}

type DatasetStatus struct {
	SnapshotID uuid.UUID       `json:"snapshot_id"`
	LoadedAt   time.Time       `json:"loaded_at"`
	Stats      model.LoadStats `json:"stats"`
}

func (api *API) SearchMeetings(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.UserQuery
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	result, err := api.Deps.Locator.Search(r.Context(), req)
	if err != nil {
		resp := respondWithError(err, searchFailureMessage(err), searchFailureStatus(err), &tc)
		resp.Data = result
		return resp
	}

	return &ServerResponse{
		Message:    "Meetings ranked successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       result,
	}
}

func (api *API) ListMeetings(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	query := r.URL.Query()
	facets := model.Facets{
		AudienceTypes: util.TrimAll(query["audience"]),
		Days:          util.TrimAll(query["day"]),
		Modalities:    util.TrimAll(query["modality"]),
	}

	snap, meetings, err := api.Deps.Locator.Meetings(r.Context(), facets)
	if err != nil {
		return respondWithError(err, "meeting data is unavailable", values.DataUnavailable, &tc)
	}

	return &ServerResponse{
		Message:    "Meetings retrieved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data: MeetingList{
			SnapshotID: snap.ID,
			LoadedAt:   snap.LoadedAt,
			Count:      len(meetings),
			Meetings:   meetings,
		},
	}
}

func (api *API) ListFacets(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	facets, err := api.Deps.Locator.Facets(r.Context())
	if err != nil {
		return respondWithError(err, "meeting data is unavailable", values.DataUnavailable, &tc)
	}

	return &ServerResponse{
		Message:    "Facets retrieved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       facets,
	}
}

func (api *API) RefreshDataset(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	snap, err := api.Deps.Locator.Refresh(r.Context())
	status := DatasetStatus{SnapshotID: snap.ID, LoadedAt: snap.LoadedAt, Stats: snap.Stats}
	if err != nil {
		resp := respondWithError(err, "dataset refresh produced no usable meetings", values.DataUnavailable, &tc)
		resp.Data = status
		return resp
	}

	return &ServerResponse{
		Message:    "Dataset refreshed successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       status,
	}
}

func searchFailureStatus(err error) string {
	switch {
	case errors.Is(err, locator.ErrValidation):
		return values.ValidationFailed
	case errors.Is(err, locator.ErrDataUnavailable):
		return values.DataUnavailable
	case errors.Is(err, locator.ErrAddressNotFound):
		return values.AddressNotFound
	default:
		return values.Error
	}
}

func searchFailureMessage(err error) string {
	switch searchFailureStatus(err) {
	case values.ValidationFailed:
		return "display name, contact number and address are required"
	case values.DataUnavailable:
		return "meeting data is unavailable, try again later"
	case values.AddressNotFound:
		return "address not found, try adding the neighborhood or city"
	default:
		return "unable to complete search"
	}
}
