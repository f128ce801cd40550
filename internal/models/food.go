package models

// Food is a food choice with its glycemic figures; foods sharing a Number are compared as a pair
type Food struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Number        int    `gorm:"index" json:"number"`
	Food          string `gorm:"size:255;not null;uniqueIndex" json:"food"`
	GlycemicIndex int    `gorm:"not null" json:"glycemic_index"`
	GlycemicLoad  int    `json:"glycemic_load"`
	Description   string `gorm:"size:500" json:"description"`
	Image         string `gorm:"size:255" json:"image"`
}

// TableName overrides the table name for Food
func (Food) TableName() string {
	return "foods"
}
