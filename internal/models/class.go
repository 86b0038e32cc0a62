package models

// Class is the top-level grouping; fee types are scoped to a class.
type Class struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Level       string `db:"level" json:"level"`
	OrderNumber int    `db:"order_number" json:"order_number"`
}

// Section belongs to exactly one class.
type Section struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	ClassID int64  `db:"class_id" json:"class_id"`
}

// SectionDetail carries the owning class alongside the section.
type SectionDetail struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	ClassID   int64  `db:"class_id" json:"class_id"`
	ClassName string `db:"class_name" json:"class_name"`
}

// ClassSections groups sections under their class for form consumption.
type ClassSections struct {
	ClassID   int64     `json:"class_id"`
	ClassName string    `json:"class_name"`
	Sections  []Section `json:"sections"`
}
