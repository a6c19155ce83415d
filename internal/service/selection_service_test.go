package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mentor-insight-api/internal/mockdata"
	"github.com/noah-isme/mentor-insight-api/internal/models"
)

func sampleLearners() []models.Learner {
	return mockdata.NewGenerator(1).Generate().Learners
}

func TestToggleIsIdempotentInPairs(t *testing.T) {
	s := NewSelectionService()

	assert.True(t, s.Toggle("L001"))
	assert.True(t, s.IsSelected("L001"))
	assert.False(t, s.Toggle("L001"))
	assert.False(t, s.IsSelected("L001"))
	assert.Equal(t, 0, s.Count())
}

func TestVisibleAppliesSearchAndBatchFilter(t *testing.T) {
	s := NewSelectionService()
	learners := sampleLearners()

	s.SetFilters("ALICE", "")
	visible := s.Visible(learners)
	require.Len(t, visible, 1)
	assert.Equal(t, "Alice Johnson", visible[0].Name)

	s.SetFilters("", "B002")
	visible = s.Visible(learners)
	require.Len(t, visible, 1)
	assert.Equal(t, "Bob Smith", visible[0].Name)

	s.SetFilters("o", "B002")
	visible = s.Visible(learners)
	require.Len(t, visible, 1)
	assert.Equal(t, "L002", visible[0].ID)

	// Visible is always a subset of the input with matching predicates.
	s.SetFilters("", "")
	assert.Len(t, s.Visible(learners), len(learners))
}

func TestVisibleDoesNotMutateInputs(t *testing.T) {
	s := NewSelectionService()
	learners := sampleLearners()
	s.Toggle("L001")
	s.SetFilters("nobody matches this", "")

	assert.Empty(t, s.Visible(learners))
	assert.Equal(t, []string{"L001"}, s.SelectedIDs())
	assert.Len(t, learners, 6)
}

func TestSelectAllVisibleReplacesSelection(t *testing.T) {
	s := NewSelectionService()
	learners := sampleLearners()

	s.Toggle("L006")
	s.SetFilters("", "B001")
	ids := s.SelectAllVisible(learners)

	// Full replace, not union: the out-of-filter L006 is gone.
	assert.Equal(t, []string{"L001"}, ids)

	again := s.SelectAllVisible(learners)
	assert.Equal(t, ids, again)
}

func TestSelectAllVisibleMatchesVisibleSet(t *testing.T) {
	s := NewSelectionService()
	learners := sampleLearners()

	s.SetFilters("", "")
	s.SelectAllVisible(learners)

	visibleIDs := make([]string, 0)
	for _, l := range s.Visible(learners) {
		visibleIDs = append(visibleIDs, l.ID)
	}
	assert.ElementsMatch(t, visibleIDs, s.SelectedIDs())
}

func TestClearSelection(t *testing.T) {
	s := NewSelectionService()
	s.Toggle("L001")
	s.Toggle("L002")

	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.SelectedIDs())
}

func TestSelectedIgnoresStaleIDs(t *testing.T) {
	s := NewSelectionService()
	learners := sampleLearners()
	s.Toggle("L001")
	s.Toggle("GONE")

	selected := s.Selected(learners)
	require.Len(t, selected, 1)
	assert.Equal(t, "L001", selected[0].ID)
}

func TestPruneDropsVanishedLearners(t *testing.T) {
	s := NewSelectionService()
	learners := sampleLearners()
	s.Toggle("L001")
	s.Toggle("L002")

	s.Prune(learners[:1])
	assert.Equal(t, []string{"L001"}, s.SelectedIDs())
}
