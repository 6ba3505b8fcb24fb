package domain

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleMaster   UserRole = "master"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type User struct {
	ID           int64    `json:"id" gorm:"primaryKey"`
	FullName     string   `json:"full_name" gorm:"size:255;not null"`
	Username     string   `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email        string   `json:"email" gorm:"size:254;uniqueIndex;not null"`
	Phone        *string  `json:"phone" gorm:"size:32;uniqueIndex"`
	Bio          string   `json:"bio"`
	Gender       Gender   `json:"gender" gorm:"size:10"`
	Telegram     string   `json:"telegram" gorm:"size:255"`
	Instagram    string   `json:"instagram" gorm:"size:255"`
	Facebook     string   `json:"facebook" gorm:"size:255"`
	AddressID    *int64   `json:"address_id" gorm:"index"`
	Address      *Address `json:"address,omitempty" gorm:"foreignKey:AddressID;constraint:OnDelete:SET NULL"`
	Image        string   `json:"image"`
	IsMaster     bool     `json:"is_master" gorm:"not null;default:false"`
	IsActive     bool     `json:"is_active" gorm:"not null;default:false"`
	IsStaff      bool     `json:"is_staff" gorm:"not null;default:false"`
	PasswordHash string   `json:"-" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) Role() UserRole {
	if u.IsMaster {
		return RoleMaster
	}
	return RoleCustomer
}

func (u *User) PhoneValue() string {
	if u.Phone == nil {
		return ""
	}
	return *u.Phone
}
