package service

import (
	"sort"
	"strings"
	"sync"

	"github.com/noah-isme/mentor-insight-api/internal/models"
)

// SelectionService holds the mentor's working selection for bulk actions: a
// set of learner IDs, a free-text search and a batch filter. Unlike the
// single-threaded UI it replaces, handlers run concurrently, so all state is
// mutex-guarded.
type SelectionService struct {
	mu          sync.RWMutex
	selected    map[string]struct{}
	search      string
	batchFilter string
}

// NewSelectionService constructs an empty selection store.
func NewSelectionService() *SelectionService {
	return &SelectionService{selected: make(map[string]struct{})}
}

// Toggle flips membership for one learner ID and reports the new state.
func (s *SelectionService) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return false
	}
	s.selected[id] = struct{}{}
	return true
}

// SelectAllVisible replaces the selection with exactly the learners passing
// the active filters. Repeat calls with unchanged filters are idempotent.
func (s *SelectionService) SelectAllVisible(learners []models.Learner) []string {
	visible := s.Visible(learners)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]struct{}, len(visible))
	for _, l := range visible {
		s.selected[l.ID] = struct{}{}
	}
	return s.selectedIDsLocked()
}

// Clear empties the selection unconditionally.
func (s *SelectionService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]struct{})
}

// SetFilters updates the search string and batch filter.
func (s *SelectionService) SetFilters(search, batchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = search
	s.batchFilter = batchID
}

// Filters returns the active search string and batch filter.
func (s *SelectionService) Filters() (search, batchID string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.search, s.batchFilter
}

// Visible projects the learners passing the active filters: name contains the
// search string case-insensitively, and the batch filter (when set) equals the
// learner's batch ID. Neither the input nor the selection is mutated.
func (s *SelectionService) Visible(learners []models.Learner) []models.Learner {
	s.mu.RLock()
	search := strings.ToLower(s.search)
	batchID := s.batchFilter
	s.mu.RUnlock()

	out := make([]models.Learner, 0, len(learners))
	for _, l := range learners {
		if search != "" && !strings.Contains(strings.ToLower(l.Name), search) {
			continue
		}
		if batchID != "" && l.BatchID != batchID {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Selected filters the given learners down to the selected ones, preserving
// input order. Selected IDs absent from the input are ignored.
func (s *SelectionService) Selected(learners []models.Learner) []models.Learner {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Learner, 0, len(s.selected))
	for _, l := range learners {
		if _, ok := s.selected[l.ID]; ok {
			out = append(out, l)
		}
	}
	return out
}

// SelectedIDs returns the selection as a sorted slice.
func (s *SelectionService) SelectedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedIDsLocked()
}

// IsSelected reports membership for one ID.
func (s *SelectionService) IsSelected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.selected[id]
	return ok
}

// Count returns the selection size.
func (s *SelectionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selected)
}

// Prune intersects the selection with the given learner collection, dropping
// IDs that no longer exist. Called whenever the collection is reloaded.
func (s *SelectionService) Prune(learners []models.Learner) {
	valid := make(map[string]struct{}, len(learners))
	for _, l := range learners {
		valid[l.ID] = struct{}{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.selected {
		if _, ok := valid[id]; !ok {
			delete(s.selected, id)
		}
	}
}

func (s *SelectionService) selectedIDsLocked() []string {
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
