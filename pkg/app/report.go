package app

import (
	"context"

	"tableflip.dev/packlist/pkg/trip"
)

// ReportItem captures one trip and how far its packing has come.
type ReportItem struct {
	Trip     trip.Trip
	Progress trip.Progress
	Shared   bool
}

// ReportSection groups trips that share a status.
type ReportSection struct {
	Status trip.Status
	Trips  []ReportItem
}

// ReportResult is an overview of every locally known trip.
type ReportResult struct {
	Sections []ReportSection
	Total    int
	Checked  int
	Items    int
}

var reportOrder = []trip.Status{trip.StatusActive, trip.StatusPlanning, trip.StatusCompleted}

// Report returns the trips grouped by status, active first. Within a section
// trips keep their list order.
func (s *Service) Report(ctx context.Context) (ReportResult, error) {
	trips, err := s.Trips(ctx)
	if err != nil {
		return ReportResult{}, err
	}

	grouped := make(map[trip.Status][]ReportItem, len(reportOrder))
	result := ReportResult{}
	for i := range trips {
		t := trips[i]
		status := t.Status
		if !status.Valid() {
			status = trip.DeriveStatus(t)
		}
		p := t.Progress()
		grouped[status] = append(grouped[status], ReportItem{
			Trip:     t,
			Progress: p,
			Shared:   t.OwnerUserID != s.userID(),
		})
		result.Total++
		result.Checked += p.Checked
		result.Items += p.Total
	}

	for _, status := range reportOrder {
		if len(grouped[status]) == 0 {
			continue
		}
		result.Sections = append(result.Sections, ReportSection{
			Status: status,
			Trips:  grouped[status],
		})
	}
	return result, nil
}
