package dto

type HistoryFilters struct {
	StartDate string `query:"start" validate:"required"`
	EndDate   string `query:"end" validate:"required"`
}
