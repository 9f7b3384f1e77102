package dto

type RangeQuery struct {
	Staff     string `query:"staff" validate:"required"`
	StartDate string `query:"start" validate:"required"`
	EndDate   string `query:"end" validate:"required"`
}
