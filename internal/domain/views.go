package domain

// AddressView is the flattened address shown on profiles and bookings.
type AddressView struct {
	ID       int64  `json:"id"`
	Region   string `json:"region"`
	District string `json:"district"`
	Mahalla  string `json:"mahalla"`
	House    string `json:"house"`
}

// View flattens a preloaded address. Missing parents render as empty names.
func (a *Address) View() *AddressView {
	if a == nil {
		return nil
	}
	v := &AddressView{ID: a.ID, House: a.House}
	if a.Region != nil {
		v.Region = a.Region.Name
	}
	if a.District != nil {
		v.District = a.District.Name
	}
	if a.Mahalla != nil {
		v.Mahalla = a.Mahalla.Name
	}
	return v
}
