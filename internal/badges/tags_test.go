package badges

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/ssclab/internal/models"
)

func TestParseTagRoundTripsStringForm(t *testing.T) {
	for _, tag := range []Tag{Indoor, Outdoor, Tools, NoTools, OneTime, NewInterest, Link, Timeframe("+30D")} {
		parsed, err := ParseTag(tag.String())
		require.NoError(t, err)
		require.Equal(t, tag, parsed)
	}
}

func TestParseTagNormalizesCase(t *testing.T) {
	tag, err := ParseTag(" NOTOOLS ")
	require.NoError(t, err)
	require.Equal(t, NoTools, tag)

	tag, err = ParseTag("Timeframe:7d")
	require.NoError(t, err)
	require.Equal(t, Timeframe("7D"), tag)
}

func TestParseTagRejectsUnknownInput(t *testing.T) {
	for _, raw := range []string{"", "sunny", "timeframe", "timeframe:", "indoor:7D"} {
		_, err := ParseTag(raw)
		require.Error(t, err, raw)
	}
}

func TestCategoryOfLinkIsNotFilterable(t *testing.T) {
	_, ok := CategoryOf(Link)
	require.False(t, ok)

	category, ok := CategoryOf(Timeframe("anything"))
	require.True(t, ok)
	require.Equal(t, CategoryTimeframe, category)
}

func TestBadgeIconsForExperimentReverseMapToSameFields(t *testing.T) {
	experiment := models.Experiment{
		Environment: models.EnvironmentOutdoor,
		Tools:       models.ToolsNone,
		Timeframe:   models.Timeframe30D,
		LogType:     models.StringPtr(models.LogTypeNewInterest),
	}

	environment, tools, timeframe, logType := BadgeIconsFor(experiment)
	require.Equal(t, IconOutdoor, environment)
	require.Equal(t, IconNoTools, tools)
	require.Equal(t, IconTimeframe30D, timeframe)
	require.Equal(t, IconNewInterest, logType)

	icons := []string{environment, tools, timeframe, logType}
	require.Equal(t, models.EnvironmentOutdoor, EnvironmentFromIcons(icons...))
	require.Equal(t, models.ToolsNone, ToolsFromIcons(icons...))
	require.Equal(t, models.Timeframe30D, TimeframeFromIcons(icons...))
	require.Equal(t, models.LogTypeNewInterest, *LogTypeFromIcons(icons...))
}

func TestReverseMappingDefaultsWithoutIcons(t *testing.T) {
	require.Equal(t, models.EnvironmentIndoor, EnvironmentFromIcons())
	require.Equal(t, models.ToolsRequired, ToolsFromIcons("star"))
	require.Equal(t, models.Timeframe1D, TimeframeFromIcons(""))
	require.Nil(t, LogTypeFromIcons(IconIndoor))
}
