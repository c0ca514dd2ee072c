package trip

import "math"

// Progress counts checked items.
type Progress struct {
	Checked int `json:"checked"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// Progress reports how much of the trip is packed. Percent is rounded and
// zero for an empty trip.
func (t *Trip) Progress() Progress {
	p := Progress{Total: len(t.Items)}
	for _, i := range t.Items {
		if i.Checked {
			p.Checked++
		}
	}
	if p.Total > 0 {
		p.Percent = int(math.Round(float64(p.Checked) * 100 / float64(p.Total)))
	}
	return p
}

// touch re-derives the status after a mutation. Any edit moves a trip out
// of planning; a trip whose items are all checked is completed.
func (t *Trip) touch() {
	p := t.Progress()
	if p.Total > 0 && p.Checked == p.Total {
		t.Status = StatusCompleted
		return
	}
	t.Status = StatusActive
}

// DeriveStatus computes a status from the items alone, for trips loaded
// without one.
func DeriveStatus(t Trip) Status {
	p := t.Progress()
	switch {
	case p.Total > 0 && p.Checked == p.Total:
		return StatusCompleted
	case p.Checked > 0:
		return StatusActive
	default:
		return StatusPlanning
	}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPlanning, StatusActive, StatusCompleted:
		return true
	}
	return false
}
