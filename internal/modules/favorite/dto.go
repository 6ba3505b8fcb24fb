package favorite

// Omitted flags default to true.

type ServiceLikeRequest struct {
	Service int64 `json:"service" binding:"required"`
	Like    *bool `json:"like"`
}

type ServiceSavedRequest struct {
	Service int64 `json:"service" binding:"required"`
	Saved   *bool `json:"saved"`
}

type ShopLikeRequest struct {
	Product int64 `json:"product" binding:"required"`
	Like    *bool `json:"like"`
}

type ShopSavedRequest struct {
	Product int64 `json:"product" binding:"required"`
	Saved   *bool `json:"saved"`
}

// LikeResult describes the state after a like toggle. ID is the row id, or
// the caller's user id when the like was removed.
type LikeResult struct {
	ID         int64
	TargetID   int64
	Like       bool
	LikesCount int64
}

func flag(v *bool) bool {
	return v == nil || *v
}
