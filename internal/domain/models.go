package domain

// Models lists every persisted type in migration order.
func Models() []any {
	return []any{
		&Region{}, &District{}, &Mahalla{}, &Address{},
		&User{}, &RefreshToken{},
		&Category{}, &Service{},
		&WorkingDay{}, &WorkingTime{},
		&Booking{},
		&Favorite{}, &Saved{},
		&Shop{}, &ShopFavorite{}, &ShopSaved{},
		&Blog{}, &Faq{}, &AboutImage{}, &About{},
	}
}
