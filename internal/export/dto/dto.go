package dto

type ReportQuery struct {
	StartDate string `query:"start"`
	EndDate   string `query:"end"`
	Format    string `query:"format" validate:"omitempty,oneof=xlsx pdf"`
}
