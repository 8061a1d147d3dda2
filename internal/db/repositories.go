package db

import "gorm.io/gorm"

type Repositories struct {
	Experiments *ExperimentRepository
	Wins        *WinRepository
	Collections *CollectionRepository
	Data        *DataRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Experiments: NewExperimentRepository(database),
		Wins:        NewWinRepository(database),
		Collections: NewCollectionRepository(database),
		Data:        NewDataRepository(database),
	}
}
