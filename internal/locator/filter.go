package locator

import (
	"github.com/bwise1/lifegroup_locator/internal/model"
	"github.com/bwise1/lifegroup_locator/util"
)

// Filter narrows records by the selected facets, preserving order. An empty selection
// passes everything, selections compose with AND, and a facet whose column is absent
// from schema is ignored. A nil schema treats every facet column as present.
func Filter(records []model.MeetingRecord, facets model.Facets, schema model.Schema) []model.MeetingRecord {
	checks := []struct {
		field    model.Field
		selected []string
		value    func(model.MeetingRecord) string
	}{
		{model.FieldAudienceType, facets.AudienceTypes, func(m model.MeetingRecord) string { return m.AudienceType }},
		{model.FieldDayOfWeek, facets.Days, func(m model.MeetingRecord) string { return m.DayOfWeek }},
		{model.FieldModality, facets.Modalities, func(m model.MeetingRecord) string { return m.Modality }},
	}

	type active struct {
		set   map[string]struct{}
		value func(model.MeetingRecord) string
	}
	var filters []active
	for _, c := range checks {
		if len(c.selected) == 0 {
			continue
		}
		if schema != nil && !schema.Has(c.field) {
			continue
		}
		set := make(map[string]struct{}, len(c.selected))
		for _, s := range c.selected {
			set[s] = struct{}{}
		}
		filters = append(filters, active{set: set, value: c.value})
	}

	out := make([]model.MeetingRecord, 0, len(records))
	for _, rec := range records {
		keep := true
		for _, f := range filters {
			if _, ok := f.set[f.value(rec)]; !ok {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, rec)
		}
	}
	return out
}

// FacetOptions lists the distinct values of each facet present in the snapshot.
func FacetOptions(snap model.Snapshot) model.Facets {
	var audiences, days, modalities []string
	for _, m := range snap.Meetings {
		audiences = append(audiences, m.AudienceType)
		days = append(days, m.DayOfWeek)
		modalities = append(modalities, m.Modality)
	}

	facets := model.Facets{AudienceTypes: []string{}, Days: []string{}, Modalities: []string{}}
	if snap.Schema == nil || snap.Schema.Has(model.FieldAudienceType) {
		facets.AudienceTypes = util.DistinctSorted(audiences)
	}
	if snap.Schema == nil || snap.Schema.Has(model.FieldDayOfWeek) {
		facets.Days = util.DistinctSorted(days)
	}
	if snap.Schema == nil || snap.Schema.Has(model.FieldModality) {
		facets.Modalities = util.DistinctSorted(modalities)
	}
	return facets
}
