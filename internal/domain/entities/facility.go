package entities

// Facility represents a candidate destination facility in the dispatch
// session's directory. The directory is static for the lifetime of a
// session and read-only to the dispatch core.
type Facility struct {
	ID          string   `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	DistanceKm  float64  `json:"distance_km" db:"distance_km"`
	EtaMinutes  float64  `json:"eta_minutes" db:"eta_minutes"`
	Specialties []string `json:"specialties" db:"-"`
	Capacity    int      `json:"capacity" db:"capacity"`
	Occupied    int      `json:"occupied" db:"occupied"`
}

// OccupancyPercent surfaces how full the facility is for operator
// judgment. It never participates in ranking.
func (f *Facility) OccupancyPercent() float64 {
	if f.Capacity <= 0 {
		return 0
	}
	return float64(f.Occupied) / float64(f.Capacity) * 100
}
