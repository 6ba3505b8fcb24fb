package domain

import "time"

type Category struct {
	ID    int64  `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:255;not null"`
	Image string `json:"image"`
}

// Service is an offering of one master. Duration is "HH:MM".
type Service struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Price       float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	Duration    string    `json:"duration" gorm:"size:5;not null"`
	Description string    `json:"description"`
	CategoryID  int64     `json:"category" gorm:"index;not null"`
	Category    *Category `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	UserID      int64     `json:"user_id" gorm:"index;not null"`
	User        *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Image       string    `json:"image"`
}

type Shop struct {
	ID             int64   `json:"id" gorm:"primaryKey"`
	Name           string  `json:"name" gorm:"size:255;not null"`
	Description    string  `json:"description"`
	Image          string  `json:"image"`
	Image1         string  `json:"image1"`
	Image2         string  `json:"image2"`
	Image3         string  `json:"image3"`
	Price          float64 `json:"price" gorm:"type:decimal(10,2);not null"`
	Discount       float64 `json:"discount" gorm:"type:decimal(10,2);not null;default:0"`
	View           int64   `json:"view" gorm:"not null;default:0"`
	Availability   bool    `json:"availability" gorm:"not null"`
	ContactNumber  string  `json:"contact_number" gorm:"size:32"`
	AdditionalInfo string  `json:"additional_info"`
	Video          string  `json:"video"`
	Brand          string  `json:"brand" gorm:"size:255"`
	Weight         string  `json:"weight" gorm:"size:64"`
	Size           string  `json:"size" gorm:"size:64"`
	Grams          string  `json:"grams" gorm:"size:64"`
	Color          string  `json:"color" gorm:"size:64"`
}

type Blog struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description"`
	Image1      string    `json:"image1"`
	Image2      string    `json:"image2"`
	Image3      string    `json:"image3"`
	Image4      string    `json:"image4"`
	View        int64     `json:"view" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
}

type Faq struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	Question string `json:"question" gorm:"not null"`
	Answer   string `json:"answer" gorm:"not null"`
}

type AboutImage struct {
	ID    int64  `json:"id" gorm:"primaryKey"`
	Image string `json:"image" gorm:"not null"`
}

type About struct {
	ID          int64        `json:"id" gorm:"primaryKey"`
	Title       string       `json:"title" gorm:"size:255;not null"`
	Description string       `json:"description"`
	Images      []AboutImage `json:"images" gorm:"many2many:about_images_links"`
}
