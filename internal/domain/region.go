package domain

type Region struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:255;not null"`
}

type District struct {
	ID       int64   `json:"id" gorm:"primaryKey"`
	Name     string  `json:"name" gorm:"size:255;not null"`
	RegionID int64   `json:"region" gorm:"index;not null"`
	Region   *Region `json:"-" gorm:"foreignKey:RegionID;constraint:OnDelete:CASCADE"`
}

type Mahalla struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"size:255;not null"`
	DistrictID int64     `json:"district" gorm:"index;not null"`
	District   *District `json:"-" gorm:"foreignKey:DistrictID;constraint:OnDelete:CASCADE"`
}

// Address is the caller's location; the three parents are denormalised for display.
type Address struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	RegionID   int64     `json:"region_id" gorm:"index;not null"`
	Region     *Region   `json:"-" gorm:"foreignKey:RegionID;constraint:OnDelete:CASCADE"`
	DistrictID int64     `json:"district_id" gorm:"index;not null"`
	District   *District `json:"-" gorm:"foreignKey:DistrictID;constraint:OnDelete:CASCADE"`
	MahallaID  int64     `json:"mahalla_id" gorm:"index;not null"`
	Mahalla    *Mahalla  `json:"-" gorm:"foreignKey:MahallaID;constraint:OnDelete:CASCADE"`
	House      string    `json:"house" gorm:"size:255"`
}
