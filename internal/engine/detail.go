package engine

import (
	"github.com/edufinder/campus-search/internal/engine/document"
	pkgerrors "github.com/edufinder/campus-search/pkg/errors"
)

// InstituteDetail is the full denormalised single-entity response: the
// institute with every programme and course expanded, unpaginated.
type InstituteDetail struct {
	Institute   *document.Institute `json:"institute,omitempty"`
	Performance Performance         `json:"performance"`
}

// Institute resolves a slug via linear scan, matching either the stored
// slug or a freshly computed slug of the name. On a miss it returns
// ErrInstituteNotFound together with a zero-result performance report.
func (s *Snapshot) Institute(slug string) (*InstituteDetail, error) {
	tr := startTracker()

	inst := s.store.BySlug(slug)
	if inst == nil {
		return &InstituteDetail{
			Performance: tr.done(len(s.store.Institutes), 0),
		}, pkgerrors.ErrInstituteNotFound
	}

	return &InstituteDetail{
		Institute:   inst,
		Performance: tr.done(len(s.store.Institutes), 1),
	}, nil
}
