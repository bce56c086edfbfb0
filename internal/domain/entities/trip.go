package entities

import "time"

// TripStatus represents the lifecycle state of a transport
type TripStatus string

const (
	TripStatusEnRoute TripStatus = "EN_ROUTE"
	TripStatusArrived TripStatus = "ARRIVED"
)

// VitalsSnapshot is the patient's live vitals as of the last update cycle.
// Only the simulation tick mutates it; blood pressure is carried forward
// unchanged (no drift modeled).
type VitalsSnapshot struct {
	HeartRate   int       `json:"heart_rate"`
	SpO2        int       `json:"spo2"`
	BPSystolic  int       `json:"bp_systolic"`
	BPDiastolic int       `json:"bp_diastolic"`
	LastUpdated time.Time `json:"last_updated"`
}

// Trip is one tracked emergency transport from dispatch to arrival.
//
// Invariants: CurrentEtaMinutes <= InitialEtaMinutes, ProgressPercent in
// [0,100], and Status is ARRIVED exactly when CurrentEtaMinutes is 0.
// Once ARRIVED the record is terminal and frozen.
type Trip struct {
	ID                string            `json:"id"`
	TransportUnitID   string            `json:"transport_unit_id"`
	FacilityID        string            `json:"facility_id"`
	PatientSummary    PatientData       `json:"patient_summary"`
	Assessment        *TriageAssessment `json:"assessment"`
	CreatedAt         time.Time         `json:"created_at"`
	InitialEtaMinutes float64           `json:"initial_eta_minutes"`
	CurrentEtaMinutes float64           `json:"current_eta_minutes"`
	ProgressPercent   float64           `json:"progress_percent"`
	Status            TripStatus        `json:"status"`
	Vitals            VitalsSnapshot    `json:"vitals"`
}

// Terminal reports whether the trip has reached its final state
func (t *Trip) Terminal() bool {
	return t.Status == TripStatusArrived
}

// Clone returns an independent copy of the trip. Readers of the trip
// store only ever receive clones, so snapshots cannot be mutated from
// outside the tick loop.
func (t *Trip) Clone() *Trip {
	if t == nil {
		return nil
	}
	cp := *t
	cp.Assessment = t.Assessment.Clone()
	return &cp
}
