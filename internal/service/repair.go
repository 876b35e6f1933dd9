package service

import (
	"github.com/msme-dost/marketplace/internal/schema"
)

// RepairResult reports the outcome of repairing one collection.
type RepairResult struct {
	Collection string `json:"collection"`
	Changed    bool   `json:"changed"`
	Err        error  `json:"-"`
}

// RepairCollections normalizes every collection file and persists those
// whose round-tripped encoding differs from what is on disk (or all of
// them when force is set). Missing files are skipped. This is the
// normalize-on-read, persist-if-changed policy: dashboards trigger it so
// malformed records heal themselves before rendering.
func (s *Service) RepairCollections(force bool) []RepairResult {
	results := make([]RepairResult, 0, len(schema.Kinds()))

	for _, kind := range schema.Kinds() {
		name := string(kind)
		raw, err := s.repo.ReadCollection(name)
		if err != nil {
			s.log.Warnf("Repair: cannot read %s: %v", name, err)
			results = append(results, RepairResult{Collection: name, Err: err})
			continue
		}
		if raw == nil {
			continue
		}

		normalized, changed, err := s.norm.AutoFix(kind, raw)
		if err != nil {
			s.log.Warnf("Repair: cannot fix %s: %v", name, err)
			results = append(results, RepairResult{Collection: name, Err: err})
			continue
		}

		if changed || force {
			if err := s.repo.WriteCollection(name, normalized); err != nil {
				s.log.Warnf("Repair: cannot write %s: %v", name, err)
				results = append(results, RepairResult{Collection: name, Err: err})
				continue
			}
		}
		if changed {
			s.log.Infof("Repaired collection %s", name)
		}
		results = append(results, RepairResult{Collection: name, Changed: changed})
	}

	return results
}
