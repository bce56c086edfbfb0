package services

import (
	"sort"
	"strings"

	"github.com/resqlink/dispatch/internal/domain/entities"
)

// RankingService orders candidate destination facilities against a triage
// assessment. Rank is pure: no side effects, stable, deterministic for
// equal input, so it is safe to re-run on every assessment update.
type RankingService struct{}

// NewRankingService creates a new destination ranking service
func NewRankingService() *RankingService {
	return &RankingService{}
}

// Rank returns the facilities ordered by suitability: facilities matching
// a recommended specialty come first, then ascending ETA within each
// tier. Capacity and occupancy are surfaced to the operator but never
// alter the order. The first element is the recommended default
// selection; an empty input yields an empty ordering and the caller must
// block trip creation.
func (s *RankingService) Rank(facilities []*entities.Facility, assessment *entities.TriageAssessment) []*entities.Facility {
	ranked := make([]*entities.Facility, len(facilities))
	copy(ranked, facilities)

	sort.SliceStable(ranked, func(i, j int) bool {
		mi := s.matchesSpecialty(ranked[i], assessment)
		mj := s.matchesSpecialty(ranked[j], assessment)
		if mi != mj {
			return mi
		}
		return ranked[i].EtaMinutes < ranked[j].EtaMinutes
	})

	return ranked
}

// matchesSpecialty reports whether any facility specialty matches any
// recommended specialist. Matching is case-insensitive substring
// containment in either direction, so "Cardiology" pairs with
// "Interventional Cardiology" and vice versa.
func (s *RankingService) matchesSpecialty(facility *entities.Facility, assessment *entities.TriageAssessment) bool {
	if assessment == nil {
		return false
	}
	for _, specialty := range facility.Specialties {
		fs := strings.ToLower(specialty)
		for _, recommended := range assessment.RecommendedSpecialists {
			rs := strings.ToLower(recommended)
			if rs == "" || fs == "" {
				continue
			}
			if strings.Contains(fs, rs) || strings.Contains(rs, fs) {
				return true
			}
		}
	}
	return false
}
