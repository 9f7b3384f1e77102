package dto

type AddStaffInput struct {
	Date     string `json:"-" validate:"required"`
	Name     string `json:"name" validate:"required,max=120"`
	Role     string `json:"role" validate:"required,max=120"`
	CheckIn  string `json:"checkIn" validate:"omitempty,clock|eq=-"`
	CheckOut string `json:"checkOut" validate:"omitempty,clock|eq=-"`
	Status   string `json:"status" validate:"required,oneof=Present Absent Late 'Half Day'"`
}

type SaveRecordInput struct {
	Date     string `json:"-" validate:"required"`
	ID       int64  `json:"-" validate:"required,gt=0"`
	Name     string `json:"name" validate:"omitempty,max=120"`
	Role     string `json:"role" validate:"omitempty,max=120"`
	CheckIn  string `json:"checkIn" validate:"omitempty,clock|eq=-"`
	CheckOut string `json:"checkOut" validate:"omitempty,clock|eq=-"`
	Status   string `json:"status" validate:"omitempty,oneof=Present Absent Late 'Half Day'"`
}

type RosterInput struct {
	Records []RosterRecord `json:"records" validate:"dive"`
}

type RosterRecord struct {
	ID       int64  `json:"id"`
	Name     string `json:"name" validate:"required,max=120"`
	Role     string `json:"role" validate:"required,max=120"`
	CheckIn  string `json:"checkIn" validate:"omitempty,clock|eq=-"`
	CheckOut string `json:"checkOut" validate:"omitempty,clock|eq=-"`
	Status   string `json:"status" validate:"required,oneof=Present Absent Late 'Half Day'"`
	Hours    string `json:"hours"`
}
