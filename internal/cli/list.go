package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/ssclab/internal/badges"
	"github.com/terraincognita07/ssclab/internal/models"
	"github.com/terraincognita07/ssclab/internal/services"
)

func newExperimentsCommand(options *rootOptions) *cobra.Command {
	var tags []string

	command := &cobra.Command{
		Use:   "experiments",
		Short: "List open experiments, optionally filtered by tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := criteriaFromFlags(tags)
			if err != nil {
				return err
			}
			s, err := openStore(options)
			if err != nil {
				return err
			}
			defer s.Close()

			experiments, err := s.services.Experiments.List(criteria)
			if err != nil {
				return fmt.Errorf("list experiments: %w", err)
			}
			if len(experiments) == 0 {
				fmt.Fprintln(options.stdout, "No experiments match.")
				return nil
			}

			rows := make([][]string, 0, len(experiments))
			for _, experiment := range experiments {
				rows = append(rows, []string{
					experimentStatus(experiment),
					experiment.Title,
					joinTags(badges.ExperimentTags(experiment)),
				})
			}
			renderTable(options.stdout, []string{"Status", "Title", "Tags"}, rows)
			return nil
		},
	}
	command.Flags().StringSliceVarP(&tags, "tag", "t", nil, "filter tag such as indoor, noTools or timeframe:7D (repeatable)")
	return command
}

func newWinsCommand(options *rootOptions) *cobra.Command {
	var (
		tags    []string
		scope   string
		grouped bool
	)

	command := &cobra.Command{
		Use:   "wins",
		Short: "List logged wins in a collection scope",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := criteriaFromFlags(tags)
			if err != nil {
				return err
			}
			s, err := openStore(options)
			if err != nil {
				return err
			}
			defer s.Close()

			groups, err := listWinGroups(s.services.Wins, scope, criteria, grouped)
			if err != nil {
				return fmt.Errorf("list wins: %w", err)
			}
			if len(groups) == 0 {
				fmt.Fprintln(options.stdout, "No wins match.")
				return nil
			}

			rows := make([][]string, 0, len(groups))
			for _, group := range groups {
				rows = append(rows, []string{
					group.Win.LoggedDate.UTC().Format("2006-01-02"),
					group.Win.Title,
					strconv.Itoa(group.Count),
					joinTags(badges.WinTags(group.Win)),
				})
			}
			renderTable(options.stdout, []string{"Logged", "Title", "Repeats", "Tags"}, rows)
			return nil
		},
	}
	command.Flags().StringSliceVarP(&tags, "tag", "t", nil, "filter tag (repeatable)")
	command.Flags().StringVar(&scope, "scope", models.CollectionScopeAll, "all, uncategorized or a collection id")
	command.Flags().BoolVar(&grouped, "grouped", false, "show one row per repeated activity")
	return command
}

// listWinGroups returns every win with its repeat count, or one row per
// activity when grouped is set.
func listWinGroups(wins *services.WinService, scope string, criteria badges.Criteria, grouped bool) ([]services.RepeatGroup, error) {
	if grouped {
		return wins.Grouped(scope, criteria)
	}

	visible, err := wins.List(scope, criteria)
	if err != nil {
		return nil, err
	}
	all, err := wins.List(models.CollectionScopeAll, badges.NewCriteria())
	if err != nil {
		return nil, err
	}
	groups := make([]services.RepeatGroup, 0, len(visible))
	for _, win := range visible {
		groups = append(groups, services.RepeatGroup{Win: win, Count: services.RepeatCount(win, all)})
	}
	return groups, nil
}

func criteriaFromFlags(raw []string) (badges.Criteria, error) {
	tags, err := badges.ParseTags(raw)
	if err != nil {
		return badges.Criteria{}, err
	}
	return badges.NewCriteria(tags...), nil
}

func experimentStatus(experiment models.Experiment) string {
	if experiment.IsActive {
		return "active"
	}
	return "open"
}

func joinTags(set badges.Set) string {
	sorted := set.Sorted()
	labels := make([]string, 0, len(sorted))
	for _, tag := range sorted {
		labels = append(labels, tag.String())
	}
	return strings.Join(labels, " ")
}

// renderTable draws rows with a renderer bound to out, so colors only show on terminals.
func renderTable(out io.Writer, headers []string, rows [][]string) {
	renderer := lipgloss.NewRenderer(out)
	headerStyle := renderer.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := renderer.NewStyle().Padding(0, 1)

	rendered := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(renderer.NewStyle().Foreground(lipgloss.Color("241"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)

	fmt.Fprintln(out, rendered.Render())
}
