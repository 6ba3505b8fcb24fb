package domain

// Favorite is a user's like on a service.
type Favorite struct {
	ID        int64 `json:"id" gorm:"primaryKey"`
	ServiceID int64 `json:"service" gorm:"not null;uniqueIndex:idx_favorite_user_service"`
	UserID    int64 `json:"user" gorm:"not null;index;uniqueIndex:idx_favorite_user_service"`
	Like      bool  `json:"like" gorm:"column:is_like;not null;default:true"`
}

func (Favorite) TableName() string { return "favorites" }

// Saved is a user's bookmark on a service.
type Saved struct {
	ID        int64 `json:"id" gorm:"primaryKey"`
	ServiceID int64 `json:"service" gorm:"not null;uniqueIndex:idx_saved_user_service"`
	UserID    int64 `json:"user" gorm:"not null;index;uniqueIndex:idx_saved_user_service"`
	Saved     bool  `json:"saved" gorm:"not null;default:true"`
}

func (Saved) TableName() string { return "saved" }

type ShopFavorite struct {
	ID     int64 `json:"id" gorm:"primaryKey"`
	ShopID int64 `json:"product" gorm:"not null;uniqueIndex:idx_shop_favorite_user_shop"`
	UserID int64 `json:"user" gorm:"not null;index;uniqueIndex:idx_shop_favorite_user_shop"`
	Like   bool  `json:"like" gorm:"column:is_like;not null;default:true"`
}

func (ShopFavorite) TableName() string { return "shop_favorites" }

type ShopSaved struct {
	ID     int64 `json:"id" gorm:"primaryKey"`
	ShopID int64 `json:"product" gorm:"not null;uniqueIndex:idx_shop_saved_user_shop"`
	UserID int64 `json:"user" gorm:"not null;index;uniqueIndex:idx_shop_saved_user_shop"`
	Saved  bool  `json:"saved" gorm:"not null;default:true"`
}

func (ShopSaved) TableName() string { return "shop_saved" }
