package domain

// WorkingDay is one weekday, stored by English name ("Monday".."Sunday").
type WorkingDay struct {
	ID  int64  `json:"id" gorm:"primaryKey"`
	Day string `json:"day" gorm:"size:16;uniqueIndex;not null"`
}

// WorkingTime is one "HH:MM"-"HH:MM" range a master works on a weekday.
type WorkingTime struct {
	ID        int64       `json:"id" gorm:"primaryKey"`
	DayID     int64       `json:"day" gorm:"index;not null"`
	Day       *WorkingDay `json:"-" gorm:"foreignKey:DayID;constraint:OnDelete:CASCADE"`
	StartTime string      `json:"start_time" gorm:"size:5;not null;default:'10:00'"`
	EndTime   string      `json:"end_time" gorm:"size:5;not null;default:'18:00'"`
	UserID    int64       `json:"user" gorm:"index;not null"`
	User      *User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (WorkingTime) TableName() string { return "working_times" }
