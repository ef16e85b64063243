package locator

import (
	"sort"
	"strings"

	"github.com/bwise1/lifegroup_locator/internal/model"
	"github.com/bwise1/lifegroup_locator/util"
	"github.com/tidwall/geodesic"
)

// DistanceKm is the geodesic distance between two points on the WGS84 ellipsoid.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	var meters float64
	geodesic.WGS84.Inverse(lat1, lon1, lat2, lon2, &meters, nil, nil)
	return meters / 1000
}

// Rank annotates records with their distance from (lat, lon) and sorts them nearest
// first. Ties keep input order. Records without coordinates are skipped.
func Rank(records []model.MeetingRecord, lat, lon float64) []model.RankedMeeting {
	ranked := make([]model.RankedMeeting, 0, len(records))
	for _, rec := range records {
		if rec.Coordinates == nil {
			continue
		}
		d := DistanceKm(lat, lon, rec.Coordinates.Latitude, rec.Coordinates.Longitude)
		ranked = append(ranked, model.RankedMeeting{
			Meeting:       rec,
			DistanceKm:    &d,
			DistanceLabel: util.FormatKm(d),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].DistanceKm < *ranked[j].DistanceKm
	})
	return ranked
}

// SplitOnline separates online meetings from in-person ones, preserving order in both.
func SplitOnline(records []model.MeetingRecord) (inPerson, online []model.MeetingRecord) {
	for _, rec := range records {
		if rec.IsOnline() {
			online = append(online, rec)
		} else {
			inPerson = append(inPerson, rec)
		}
	}
	return inPerson, online
}

// Alphabetical returns online meetings as unranked entries sorted by name.
func Alphabetical(records []model.MeetingRecord) []model.RankedMeeting {
	out := make([]model.RankedMeeting, 0, len(records))
	for _, rec := range records {
		out = append(out, model.RankedMeeting{Meeting: rec})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Meeting.Name) < strings.ToLower(out[j].Meeting.Name)
	})
	return out
}

// Select cuts the ranked list into the first best entries and up to more after them.
func Select(ranked []model.RankedMeeting, best, more int) (top, next []model.RankedMeeting) {
	if best < 0 {
		best = 0
	}
	if more < 0 {
		more = 0
	}
	if best > len(ranked) {
		best = len(ranked)
	}
	end := best + more
	if end > len(ranked) {
		end = len(ranked)
	}
	return ranked[:best], ranked[best:end]
}
