// Package dataset turns the raw meetings table into geocoded snapshots and caches them.
package dataset

import (
	"context"
	"log"
	"time"

	"github.com/bwise1/lifegroup_locator/internal/geocode"
	"github.com/bwise1/lifegroup_locator/internal/model"
	"github.com/bwise1/lifegroup_locator/internal/source"
	"github.com/bwise1/lifegroup_locator/util"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ErrDataUnavailable marks a snapshot that cannot serve searches.
var ErrDataUnavailable = errors.New("meeting data unavailable")

// Loader normalizes rows and geocodes every meeting address once per load.
type Loader struct {
	Geocoder geocode.Geocoder
	Country  string
	Timeout  time.Duration
	// Workers bounds concurrent geocoding calls. Values below 2 load sequentially.
	Workers int
}

type rowOutcome struct {
	record  model.MeetingRecord
	skipped bool
}

// Load builds a snapshot from tbl. The returned snapshot always carries stats;
// Err is set when no usable meeting remains.
func (l *Loader) Load(ctx context.Context, tbl source.Table) model.Snapshot {
	schema := model.ResolveSchema(tbl.Header)
	snap := model.Snapshot{
		ID:       util.GenerateUUID(),
		Schema:   schema,
		LoadedAt: time.Now(),
	}
	snap.Stats.Rows = len(tbl.Rows)

	if !schema.Has(model.FieldName) || !schema.Has(model.FieldAddress) {
		snap.Err = errors.Wrap(ErrDataUnavailable, "sheet has no name or address column")
		return snap
	}

	outcomes := make([]rowOutcome, len(tbl.Rows))
	geocodeRow := func(i int) {
		outcomes[i] = l.loadRow(ctx, schema, i, tbl.Rows[i])
	}

	if l.Workers > 1 {
		g := new(errgroup.Group)
		g.SetLimit(l.Workers)
		for i := range tbl.Rows {
			g.Go(func() error {
				geocodeRow(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range tbl.Rows {
			geocodeRow(i)
		}
	}

	for _, out := range outcomes {
		switch {
		case out.skipped && out.record.Name == "":
			snap.Stats.MissingName++
		case out.skipped && out.record.Address == "":
			snap.Stats.MissingAddress++
		case out.skipped:
			snap.Stats.GeocodeFailed++
		default:
			snap.Meetings = append(snap.Meetings, out.record)
		}
	}
	snap.Stats.Usable = len(snap.Meetings)

	log.Printf("[Dataset]: loaded %d rows, %d usable (missing name %d, missing address %d, geocode failed %d)",
		snap.Stats.Rows, snap.Stats.Usable, snap.Stats.MissingName, snap.Stats.MissingAddress, snap.Stats.GeocodeFailed)

	if len(snap.Meetings) == 0 {
		snap.Err = errors.Wrap(ErrDataUnavailable, "no usable meetings after load")
	}
	return snap
}

func (l *Loader) loadRow(ctx context.Context, schema model.Schema, i int, row []string) rowOutcome {
	rec := Normalize(schema, row)
	rec.Row = i + 1

	if rec.Name == "" || rec.Address == "" {
		return rowOutcome{record: rec, skipped: true}
	}

	res := geocode.Attempt(ctx, l.Geocoder, geocode.Qualify(rec.Address, l.Country), l.Timeout)
	if !res.OK() {
		log.Printf("[Dataset]: row %d %q dropped, geocode %s: %v", rec.Row, rec.Name, res.Reason, res.Err)
		return rowOutcome{record: rec, skipped: true}
	}
	if err := util.ValidateCoordinates(res.Location.Latitude, res.Location.Longitude); err != nil {
		log.Printf("[Dataset]: row %d %q dropped, out of range coordinates: %v", rec.Row, rec.Name, err)
		return rowOutcome{record: rec, skipped: true}
	}
	rec.Coordinates = res.Location.Coordinates()
	return rowOutcome{record: rec}
}

// Normalize maps a raw row onto a MeetingRecord without geocoding it.
func Normalize(schema model.Schema, row []string) model.MeetingRecord {
	rec := model.MeetingRecord{
		Name:         schema.Value(row, model.FieldName),
		Address:      schema.Value(row, model.FieldAddress),
		LeaderNames:  schema.Value(row, model.FieldLeaders),
		PhoneRaw:     schema.Value(row, model.FieldPhone),
		DayOfWeek:    schema.Value(row, model.FieldDayOfWeek),
		StartTime:    schema.Value(row, model.FieldStartTime),
		AudienceType: schema.Value(row, model.FieldAudienceType),
		Modality:     schema.Value(row, model.FieldModality),
		Neighborhood: schema.Value(row, model.FieldNeighborhood),
	}
	if rec.Modality == "" {
		rec.Modality = model.DefaultModality
	}
	return rec
}
