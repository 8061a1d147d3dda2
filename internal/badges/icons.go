package badges

import (
	"strings"

	"github.com/terraincognita07/ssclab/internal/models"
)

const (
	IconIndoor           = "house.fill"
	IconOutdoor          = "tree.fill"
	IconTools            = "wrench.and.screwdriver.fill"
	IconNoTools          = "hand.raised.fill"
	IconOneTime          = "1.circle.fill"
	IconNewInterest      = "sparkles"
	IconLink             = "link"
	IconTimeframe1D      = "sun.max.fill"
	IconTimeframe7D      = "calendar"
	IconTimeframe30D     = "calendar.circle.fill"
	IconTimeframePlus30D = "infinity"
)

var iconTags = map[string]Tag{
	IconIndoor:           Indoor,
	IconOutdoor:          Outdoor,
	IconTools:            Tools,
	IconNoTools:          NoTools,
	IconOneTime:          OneTime,
	IconNewInterest:      NewInterest,
	IconLink:             Link,
	IconTimeframe1D:      Timeframe(models.Timeframe1D),
	IconTimeframe7D:      Timeframe(models.Timeframe7D),
	IconTimeframe30D:     Timeframe(models.Timeframe30D),
	IconTimeframePlus30D: Timeframe(models.TimeframePlus30),
}

func TagForIcon(icon string) (Tag, bool) {
	tag, ok := iconTags[strings.TrimSpace(icon)]
	return tag, ok
}

// IconFor returns the icon name for a tag, or "" when the tag has no icon.
func IconFor(tag Tag) string {
	for icon, candidate := range iconTags {
		if candidate == tag {
			return icon
		}
	}
	return ""
}

// BadgeIconsFor returns the badge slots and log type slot a win logged from
// the experiment carries.
func BadgeIconsFor(experiment models.Experiment) (string, string, string, string) {
	tags := ExperimentTags(experiment)

	environment := IconIndoor
	if tags.Has(Outdoor) {
		environment = IconOutdoor
	}
	tools := IconTools
	if tags.Has(NoTools) {
		tools = IconNoTools
	}
	timeframe := IconFor(Timeframe(strings.TrimSpace(experiment.Timeframe)))

	logType := ""
	switch {
	case tags.Has(NewInterest):
		logType = IconNewInterest
	case tags.Has(OneTime):
		logType = IconOneTime
	}
	return environment, tools, timeframe, logType
}

func EnvironmentFromIcons(icons ...string) string {
	for _, icon := range icons {
		if tag, ok := TagForIcon(icon); ok && tag == Outdoor {
			return models.EnvironmentOutdoor
		}
	}
	return models.EnvironmentIndoor
}

func ToolsFromIcons(icons ...string) string {
	for _, icon := range icons {
		if tag, ok := TagForIcon(icon); ok && tag == NoTools {
			return models.ToolsNone
		}
	}
	return models.ToolsRequired
}

func TimeframeFromIcons(icons ...string) string {
	for _, icon := range icons {
		if tag, ok := TagForIcon(icon); ok && tag.Kind == KindTimeframe {
			return tag.Label
		}
	}
	return models.Timeframe1D
}

func LogTypeFromIcons(icons ...string) *string {
	for _, icon := range icons {
		tag, ok := TagForIcon(icon)
		if !ok {
			continue
		}
		switch tag {
		case NewInterest:
			return models.StringPtr(models.LogTypeNewInterest)
		case OneTime:
			return models.StringPtr(models.LogTypeOneTime)
		}
	}
	return nil
}
