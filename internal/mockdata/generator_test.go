package mockdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mentor-insight-api/internal/models"
)

func TestGenerateRangesAndShape(t *testing.T) {
	g := NewGenerator(42)
	ds := g.Generate()

	require.Len(t, ds.Students, 6)
	for _, s := range ds.Students {
		assert.GreaterOrEqual(t, s.CoursesEnrolled, 1)
		assert.LessOrEqual(t, s.CoursesEnrolled, 4)
		assert.GreaterOrEqual(t, s.Progress, 30)
		assert.LessOrEqual(t, s.Progress, 100)
		_, err := time.Parse("2006-01-02", s.LastActivity)
		assert.NoError(t, err)
	}

	require.Len(t, ds.Courses, 6)
	completed := 0
	for _, c := range ds.Courses {
		assert.GreaterOrEqual(t, c.Students, 5)
		assert.LessOrEqual(t, c.Students, 20)
		assert.GreaterOrEqual(t, c.Progress, 0)
		assert.LessOrEqual(t, c.Progress, 100)
		if c.Progress == 100 {
			completed++
		}
		if c.Title == "Python Basics" {
			assert.Equal(t, 100, c.Progress)
		}
	}
	assert.GreaterOrEqual(t, completed, 1)

	require.Len(t, ds.Insights.ProgressData, 6)
	for _, mp := range ds.Insights.ProgressData {
		require.Len(t, mp.Scores, 6)
		for _, score := range mp.Scores {
			assert.GreaterOrEqual(t, score, 10)
			assert.LessOrEqual(t, score, 69)
		}
	}
	require.Len(t, ds.Insights.EngagementData, 6)
	for _, e := range ds.Insights.EngagementData {
		assert.GreaterOrEqual(t, e.TimeSpent, 50)
		assert.LessOrEqual(t, e.TimeSpent, 199)
		assert.GreaterOrEqual(t, e.Interactions, 20)
		assert.LessOrEqual(t, e.Interactions, 89)
	}
}

func TestGenerateStatsReduceOverCollections(t *testing.T) {
	ds := NewGenerator(7).Generate()

	enrolled := 0
	for _, s := range ds.Students {
		enrolled += s.CoursesEnrolled
	}
	assert.Equal(t, enrolled, ds.Stats.EnrolledCourses)
	assert.Equal(t, len(ds.Students), ds.Stats.TotalStudents)
	assert.Equal(t, len(ds.Evaluations), ds.Stats.PendingEvaluations)
	assert.Equal(t, 6, ds.Stats.ActiveCourses+ds.Stats.CompletedCourses)
	assert.GreaterOrEqual(t, ds.Stats.CompletedCourses, 1)
	// One of the two sample sessions is live.
	assert.Equal(t, 1, ds.Stats.UpcomingSessions)
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	a := NewGenerator(99).Generate()
	b := NewGenerator(99).Generate()
	assert.Equal(t, a.Students, b.Students)
	assert.Equal(t, a.Courses, b.Courses)
	assert.Equal(t, a.Insights, b.Insights)
}

func TestSampleLearnersAndBatches(t *testing.T) {
	ds := NewGenerator(1).Generate()

	require.Len(t, ds.Learners, 6)
	require.Len(t, ds.Batches, 6)
	assert.Equal(t, "L001", ds.Learners[0].ID)
	assert.Equal(t, models.CertificateUnsigned, ds.Learners[0].CertificateStatus)
	for _, l := range ds.Learners {
		found := false
		for _, b := range ds.Batches {
			if b.ID == l.BatchID {
				found = true
				break
			}
		}
		assert.True(t, found, "learner %s references unknown batch %s", l.ID, l.BatchID)
		assert.NotEmpty(t, ds.BatchFeedback[l.BatchName])
	}

	require.Len(t, ds.TrackedStudents, 5)
	require.Len(t, ds.CourseInsights, 2)
	assert.Contains(t, ds.CourseInsights, "Node.js Fundamentals")
}
