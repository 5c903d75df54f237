package catalog

import (
	"context"
	"sync"

	pkgerrors "github.com/ridgelinemoto/backend/pkg/errors"
	"github.com/ridgelinemoto/backend/pkg/wps"
)

// Selection tracks the make → model → year fitment cascade. Child selections
// are only meaningful in the context of their parent, so changing a parent
// always clears its descendants, and a child-list fetch keyed on a parent
// that changed mid-flight is reported as superseded so its result is never
// treated as authoritative.
type Selection struct {
	mu      sync.Mutex
	service Service

	makeID  string
	modelID string
	yearID  string

	makeGen  uint64
	modelGen uint64
}

// NewSelection builds an empty fitment selection backed by the service.
func NewSelection(service Service) *Selection {
	return &Selection{service: service}
}

// Current returns the selected make, model, and year ids.
func (s *Selection) Current() (makeID, modelID, yearID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.makeID, s.modelID, s.yearID
}

// SetMake selects a make, clears any model/year selection, and fetches the
// models for the new make. ok is false when the selection changed again
// while the fetch was in flight; the returned list must then be discarded.
func (s *Selection) SetMake(ctx context.Context, makeID string) (models []wps.VehicleModel, ok bool, err error) {
	s.mu.Lock()
	s.makeID = makeID
	s.modelID = ""
	s.yearID = ""
	s.makeGen++
	gen := s.makeGen
	s.mu.Unlock()

	if makeID == "" {
		return nil, true, nil
	}

	models, err = s.service.VehicleModels(ctx, makeID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.makeGen {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, err
	}
	return models, true, nil
}

// SetModel selects a model under the current make, clears the year, and
// fetches the years for the new model. Same supersession contract as SetMake.
// A model is only meaningful under a make, so selecting one with no make set
// is rejected.
func (s *Selection) SetModel(ctx context.Context, modelID string) (years []wps.VehicleYear, ok bool, err error) {
	s.mu.Lock()
	if s.makeID == "" && modelID != "" {
		s.mu.Unlock()
		return nil, true, pkgerrors.New(pkgerrors.CodeValidation, "a make must be selected before a model")
	}
	s.modelID = modelID
	s.yearID = ""
	s.modelGen++
	gen := s.modelGen
	makeGen := s.makeGen
	s.mu.Unlock()

	if modelID == "" {
		return nil, true, nil
	}

	years, err = s.service.VehicleYears(ctx, modelID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.modelGen || makeGen != s.makeGen {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, err
	}
	return years, true, nil
}

// SetYear selects a year under the current model. Ignored when no model is
// selected; clearing an already-empty year is always allowed.
func (s *Selection) SetYear(yearID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.modelID == "" && yearID != "" {
		return
	}
	s.yearID = yearID
}
