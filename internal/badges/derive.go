package badges

import (
	"strings"

	"github.com/terraincognita07/ssclab/internal/models"
)

func ExperimentTags(experiment models.Experiment) Set {
	set := make(Set, 5)

	if strings.EqualFold(strings.TrimSpace(experiment.Environment), models.EnvironmentOutdoor) {
		set.Add(Outdoor)
	} else {
		set.Add(Indoor)
	}

	if strings.EqualFold(strings.TrimSpace(experiment.Tools), models.ToolsNone) {
		set.Add(NoTools)
	} else {
		set.Add(Tools)
	}

	if timeframe := strings.TrimSpace(experiment.Timeframe); timeframe != "" {
		set.Add(Timeframe(timeframe))
	}

	if experiment.LogType != nil {
		if *experiment.LogType == models.LogTypeNewInterest {
			set.Add(NewInterest)
		} else {
			set.Add(OneTime)
		}
	}

	if strings.TrimSpace(experiment.ReferenceURL) != "" {
		set.Add(Link)
	}
	return set
}

func WinTags(win models.Win) Set {
	set := make(Set, 4)
	for _, icon := range win.BadgeIcons() {
		if tag, ok := TagForIcon(icon); ok {
			set.Add(tag)
		}
	}
	return set
}

func MatchExperiment(criteria Criteria, experiment models.Experiment) bool {
	return criteria.Matches(ExperimentTags(experiment))
}

func MatchWin(criteria Criteria, win models.Win) bool {
	return criteria.Matches(WinTags(win))
}
