package badges

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/ssclab/internal/models"
)

func experimentFixture(environment string, tools string, timeframe string, logType *string) models.Experiment {
	return models.Experiment{
		Title:       "fixture",
		Environment: environment,
		Tools:       tools,
		Timeframe:   timeframe,
		LogType:     logType,
	}
}

func TestEmptyCriteriaMatchesEverything(t *testing.T) {
	criteria := NewCriteria()

	require.True(t, criteria.IsEmpty())
	require.True(t, criteria.Matches(NewSet()))
	require.True(t, MatchExperiment(criteria, experimentFixture("outdoor", "none", "30D", nil)))
	require.True(t, MatchWin(criteria, models.Win{Title: "no icons"}))
}

func TestCriteriaSelectsIndoorSevenDayExperiment(t *testing.T) {
	e1 := experimentFixture("indoor", "required", "7D", nil)
	e2 := experimentFixture("outdoor", "none", "1D", nil)

	criteria := NewCriteria(Indoor, Timeframe("7D"))
	require.True(t, MatchExperiment(criteria, e1))
	require.False(t, MatchExperiment(criteria, e2))

	criteria = NewCriteria(Outdoor, Tools)
	require.False(t, MatchExperiment(criteria, e1))
	require.False(t, MatchExperiment(criteria, e2))
}

func TestCriteriaIsOrWithinCategory(t *testing.T) {
	criteria := NewCriteria(Timeframe("1D"), Timeframe("7D"))

	require.True(t, MatchExperiment(criteria, experimentFixture("indoor", "required", "1D", nil)))
	require.True(t, MatchExperiment(criteria, experimentFixture("indoor", "required", "7D", nil)))
	require.False(t, MatchExperiment(criteria, experimentFixture("indoor", "required", "30D", nil)))
}

func TestCriteriaLogTypeExcludesExperimentsWithoutLogType(t *testing.T) {
	criteria := NewCriteria(OneTime)

	require.False(t, MatchExperiment(criteria, experimentFixture("indoor", "required", "1D", nil)))
	require.True(t, MatchExperiment(criteria, experimentFixture("indoor", "required", "1D", models.StringPtr("anything"))))
	require.False(t, MatchExperiment(criteria, experimentFixture("indoor", "required", "1D", models.StringPtr(models.LogTypeNewInterest))))
}

func TestCriteriaIgnoresLinkTag(t *testing.T) {
	criteria := NewCriteria(Link)

	require.True(t, MatchExperiment(criteria, experimentFixture("indoor", "required", "1D", nil)))
}

func TestCriteriaMatchesAgainstDerivedTagsExhaustively(t *testing.T) {
	candidates := []models.Experiment{
		experimentFixture("indoor", "required", "1D", nil),
		experimentFixture("Outdoor", "NONE", "7D", models.StringPtr(models.LogTypeOneTime)),
		experimentFixture("outdoor", "required", "30D", models.StringPtr(models.LogTypeNewInterest)),
		experimentFixture("indoor", "none", "+30D", nil),
	}
	universe := []Tag{Indoor, Outdoor, Tools, NoTools, OneTime, NewInterest,
		Timeframe("1D"), Timeframe("7D"), Timeframe("30D"), Timeframe("+30D")}

	// Every subset of the universe against every candidate.
	for mask := 0; mask < 1<<len(universe); mask++ {
		selected := make([]Tag, 0)
		for index, tag := range universe {
			if mask&(1<<index) != 0 {
				selected = append(selected, tag)
			}
		}
		criteria := NewCriteria(selected...)

		for _, candidate := range candidates {
			tags := ExperimentTags(candidate)
			want := true
			for category := CategoryEnvironment; category <= CategoryLogType; category++ {
				inCategory := 0
				hit := false
				for _, tag := range selected {
					if tagCategory, _ := CategoryOf(tag); tagCategory == category {
						inCategory++
						hit = hit || tags.Has(tag)
					}
				}
				if inCategory > 0 && !hit {
					want = false
				}
			}
			require.Equal(t, want, criteria.Matches(tags), "selection %v candidate %+v", selected, candidate)
		}
	}
}

func TestWinTagsUseIconLookup(t *testing.T) {
	win := models.Win{
		BadgeIcon1:  IconOutdoor,
		BadgeIcon2:  IconNoTools,
		BadgeIcon3:  IconTimeframe30D,
		LogTypeIcon: IconNewInterest,
	}

	tags := WinTags(win)
	require.Equal(t, []Tag{Outdoor, NoTools, NewInterest, Timeframe("30D")}, tags.Sorted())
	require.True(t, MatchWin(NewCriteria(Outdoor, Timeframe("30D"), NewInterest), win))
	require.False(t, MatchWin(NewCriteria(Indoor), win))
}

func TestWinWithUnknownIconsFailsActiveCategories(t *testing.T) {
	win := models.Win{BadgeIcon1: "star", BadgeIcon2: ""}

	require.Empty(t, WinTags(win))
	require.False(t, MatchWin(NewCriteria(Indoor), win))
}
