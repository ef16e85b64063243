// Package locator ranks LifeGroup meetings by distance from a user's address.
package locator

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/bwise1/lifegroup_locator/internal/dataset"
	"github.com/bwise1/lifegroup_locator/internal/geocode"
	"github.com/bwise1/lifegroup_locator/internal/links"
	"github.com/bwise1/lifegroup_locator/internal/model"
	"github.com/bwise1/lifegroup_locator/internal/phone"
	"github.com/bwise1/lifegroup_locator/util"
	"github.com/pkg/errors"
)

var (
	ErrValidation      = errors.New("display name, contact number and address are required")
	ErrDataUnavailable = dataset.ErrDataUnavailable
	ErrAddressNotFound = errors.New("address not found")
)

const (
	DefaultBestMatches = 3
	DefaultMoreMatches = 7
)

// Snapshots supplies the current meeting snapshot.
type Snapshots interface {
	Get(ctx context.Context) model.Snapshot
	Refresh(ctx context.Context) model.Snapshot
}

type Service struct {
	Snapshots Snapshots
	Geocoder  geocode.Geocoder
	Links     *links.Builder

	Region  string
	Country string
	Timeout time.Duration

	// Page sizes. A negative value selects the default; 0 hides the page.
	BestMatches int
	MoreMatches int
}

// Search runs the full pipeline for q. On failure the returned result still carries
// the matching status alongside the error.
func (s *Service) Search(ctx context.Context, q model.UserQuery) (model.SearchResult, error) {
	q.DisplayName = strings.TrimSpace(q.DisplayName)
	q.ContactNumber = strings.TrimSpace(q.ContactNumber)
	q.Address = strings.TrimSpace(q.Address)

	if err := util.ValidateStruct(q); err != nil {
		return model.SearchResult{Status: model.StatusValidationFailed}, errors.Wrap(ErrValidation, err.Error())
	}

	snap := s.Snapshots.Get(ctx)
	result := model.SearchResult{SnapshotID: snap.ID}
	if !snap.Available() {
		result.Status = model.StatusDataUnavailable
		return result, unavailable(snap)
	}

	loc, err := s.ResolveAddress(ctx, q.Address)
	if err != nil {
		result.Status = model.StatusAddressNotFound
		return result, err
	}
	result.UserLocation = &loc

	filtered := Filter(snap.Meetings, q.Facets(), snap.Schema)
	inPerson, online := SplitOnline(filtered)

	best, more := Select(Rank(inPerson, loc.Latitude, loc.Longitude), s.bestMatches(), s.moreMatches())
	result.Best = s.annotate(best, q)
	result.More = s.annotate(more, q)
	result.Online = s.annotate(Alphabetical(online), q)
	result.Status = model.StatusSuccess
	return result, nil
}

// ResolveAddress geocodes a user-typed address through the region then country fallback.
func (s *Service) ResolveAddress(ctx context.Context, address string) (model.ResolvedLocation, error) {
	if strings.TrimSpace(address) == "" {
		return model.ResolvedLocation{}, errors.Wrap(ErrValidation, "address is blank")
	}

	fb := geocode.Fallback{Geocoder: s.Geocoder, Region: s.Region, Country: s.Country, Timeout: s.Timeout}
	res := fb.Resolve(ctx, address)
	if !res.OK() {
		log.Printf("[Geocode]: user address %q unresolved (%s): %v", res.Query, res.Reason, res.Err)
		return model.ResolvedLocation{}, errors.Wrapf(ErrAddressNotFound, "%s: %s", res.Query, res.Reason)
	}
	if err := util.ValidateCoordinates(res.Location.Latitude, res.Location.Longitude); err != nil {
		return model.ResolvedLocation{}, errors.Wrapf(ErrAddressNotFound, "invalid coordinates for %s", res.Query)
	}
	return *res.Location, nil
}

// Meetings returns the snapshot's meetings narrowed by facets, in source order.
func (s *Service) Meetings(ctx context.Context, facets model.Facets) (model.Snapshot, []model.MeetingRecord, error) {
	snap := s.Snapshots.Get(ctx)
	if !snap.Available() {
		return snap, nil, unavailable(snap)
	}
	return snap, Filter(snap.Meetings, facets, snap.Schema), nil
}

// Facets returns the selectable values of every facet in the current snapshot.
func (s *Service) Facets(ctx context.Context) (model.Facets, error) {
	snap := s.Snapshots.Get(ctx)
	if !snap.Available() {
		return model.Facets{}, unavailable(snap)
	}
	return FacetOptions(snap), nil
}

// Refresh rebuilds the snapshot now.
func (s *Service) Refresh(ctx context.Context) (model.Snapshot, error) {
	snap := s.Snapshots.Refresh(ctx)
	if !snap.Available() {
		return snap, unavailable(snap)
	}
	return snap, nil
}

func (s *Service) annotate(entries []model.RankedMeeting, q model.UserQuery) []model.RankedMeeting {
	out := make([]model.RankedMeeting, len(entries))
	for i, e := range entries {
		vars := links.MessageVars{
			LeaderNames:   e.Meeting.LeaderNames,
			DisplayName:   q.DisplayName,
			ContactNumber: q.ContactNumber,
		}
		number, ok := phone.NormalizeString(e.Meeting.PhoneRaw)
		if link, ok := s.Links.ContactLink(number, ok, vars); ok {
			e.ContactLink = &link
		}
		if !e.Meeting.IsOnline() {
			e.DirectionsLink = s.Links.DirectionsLink(q.Address, e.Meeting.Address)
		}
		out[i] = e
	}
	return out
}

func (s *Service) bestMatches() int {
	if s.BestMatches >= 0 {
		return s.BestMatches
	}
	return DefaultBestMatches
}

func (s *Service) moreMatches() int {
	if s.MoreMatches >= 0 {
		return s.MoreMatches
	}
	return DefaultMoreMatches
}

func unavailable(snap model.Snapshot) error {
	if snap.Err != nil && errors.Is(snap.Err, ErrDataUnavailable) {
		return snap.Err
	}
	if snap.Err != nil {
		return errors.Wrap(ErrDataUnavailable, snap.Err.Error())
	}
	return errors.Wrap(ErrDataUnavailable, "no meetings loaded")
}
