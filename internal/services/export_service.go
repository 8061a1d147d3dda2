package services

import (
	"strconv"
	"strings"

	"github.com/terraincognita07/ssclab/internal/badges"
	"github.com/terraincognita07/ssclab/internal/models"
)

const exportDateLayout = "2006-01-02"

var ExportCSVHeaders = []string{
	"Title",
	"Logged date",
	"Collection",
	"Tags",
	"Repeats",
	"Icon",
	"Notes",
}

type ExportWinReader interface {
	List(scope string, criteria badges.Criteria) ([]models.Win, error)
}

type ExportCollectionReader interface {
	List() ([]models.CollectionSummary, error)
}

type ExportService struct {
	wins        ExportWinReader
	collections ExportCollectionReader
}

type ExportSummary struct {
	TotalEntries int    `json:"total_entries"`
	HasData      bool   `json:"has_data"`
	DateFrom     string `json:"date_from,omitempty"`
	DateTo       string `json:"date_to,omitempty"`
}

type ExportJSONEntry struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	LoggedDate   string   `json:"logged_date"`
	CollectionID *string  `json:"collection_id"`
	Collection   string   `json:"collection"`
	Tags         []string `json:"tags"`
	Repeats      int      `json:"repeats"`
	Icon         string   `json:"icon"`
	Notes        string   `json:"notes"`
}

type ExportCSVRow struct {
	Title      string
	LoggedDate string
	Collection string
	Tags       []string
	Repeats    int
	Icon       string
	Notes      string
}

type exportData struct {
	wins            []models.Win
	all             []models.Win
	collectionNames map[string]string
}

func NewExportService(wins ExportWinReader, collections ExportCollectionReader) *ExportService {
	return &ExportService{
		wins:        wins,
		collections: collections,
	}
}

// loadData reads the wins in scope plus what rows need around them: every win
// for repeat counts and the collection names.
func (service *ExportService) loadData(scope string, criteria badges.Criteria) (exportData, error) {
	wins, err := service.wins.List(scope, criteria)
	if err != nil {
		return exportData{}, err
	}
	all, err := service.wins.List(models.CollectionScopeAll, badges.NewCriteria())
	if err != nil {
		return exportData{}, err
	}
	summaries, err := service.collections.List()
	if err != nil {
		return exportData{}, err
	}

	names := make(map[string]string, len(summaries))
	for _, summary := range summaries {
		names[summary.ID] = summary.Name
	}
	return exportData{wins: wins, all: all, collectionNames: names}, nil
}

func (service *ExportService) BuildSummary(scope string, criteria badges.Criteria) (ExportSummary, error) {
	wins, err := service.wins.List(scope, criteria)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(wins) == 0 {
		return ExportSummary{}, nil
	}

	first := wins[0].LoggedDate
	last := wins[0].LoggedDate
	for _, win := range wins[1:] {
		if win.LoggedDate.Before(first) {
			first = win.LoggedDate
		}
		if win.LoggedDate.After(last) {
			last = win.LoggedDate
		}
	}

	return ExportSummary{
		TotalEntries: len(wins),
		HasData:      true,
		DateFrom:     first.UTC().Format(exportDateLayout),
		DateTo:       last.UTC().Format(exportDateLayout),
	}, nil
}

func (service *ExportService) BuildJSONEntries(scope string, criteria badges.Criteria) ([]ExportJSONEntry, error) {
	data, err := service.loadData(scope, criteria)
	if err != nil {
		return nil, err
	}

	entries := make([]ExportJSONEntry, 0, len(data.wins))
	for _, win := range data.wins {
		entries = append(entries, ExportJSONEntry{
			ID:           win.ID,
			Title:        win.Title,
			LoggedDate:   win.LoggedDate.UTC().Format(exportDateLayout),
			CollectionID: win.CollectionID,
			Collection:   data.collectionName(win, ""),
			Tags:         exportTagLabels(win),
			Repeats:      RepeatCount(win, data.all),
			Icon:         win.DisplayIcon(),
			Notes:        win.Notes,
		})
	}
	return entries, nil
}

// BuildCSVRows labels wins outside any collection with uncategorized.
func (service *ExportService) BuildCSVRows(scope string, criteria badges.Criteria, uncategorized string) ([]ExportCSVRow, error) {
	data, err := service.loadData(scope, criteria)
	if err != nil {
		return nil, err
	}

	rows := make([]ExportCSVRow, 0, len(data.wins))
	for _, win := range data.wins {
		rows = append(rows, ExportCSVRow{
			Title:      win.Title,
			LoggedDate: win.LoggedDate.UTC().Format(exportDateLayout),
			Collection: data.collectionName(win, uncategorized),
			Tags:       exportTagLabels(win),
			Repeats:    RepeatCount(win, data.all),
			Icon:       win.DisplayIcon(),
			Notes:      win.Notes,
		})
	}
	return rows, nil
}

func (row ExportCSVRow) Columns() []string {
	return []string{
		row.Title,
		row.LoggedDate,
		row.Collection,
		strings.Join(row.Tags, " "),
		strconv.Itoa(row.Repeats),
		row.Icon,
		row.Notes,
	}
}

func (data exportData) collectionName(win models.Win, uncategorized string) string {
	if win.CollectionID == nil {
		return uncategorized
	}
	return data.collectionNames[*win.CollectionID]
}

func exportTagLabels(win models.Win) []string {
	sorted := badges.WinTags(win).Sorted()
	labels := make([]string, 0, len(sorted))
	for _, tag := range sorted {
		labels = append(labels, tag.String())
	}
	return labels
}
