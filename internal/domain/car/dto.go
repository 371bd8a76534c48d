package car

// CreateRequest is used by handlers/services when registering a new car.
type CreateRequest struct {
	Model        string  `json:"model" binding:"required"`
	LicensePlate string  `json:"license_plate" binding:"required"`
	Capacity     int     `json:"capacity" binding:"required,min=1"`
	PricePerKm   float64 `json:"price_per_km,omitempty" binding:"omitempty,min=0"`
	PricePerDay  float64 `json:"price_per_day,omitempty" binding:"omitempty,min=0"`
}

// UpdateRequest patches existing car info.
type UpdateRequest struct {
	Model        *string  `json:"model,omitempty"`
	LicensePlate *string  `json:"license_plate,omitempty"`
	Capacity     *int     `json:"capacity,omitempty" binding:"omitempty,min=1"`
	PricePerKm   *float64 `json:"price_per_km,omitempty" binding:"omitempty,min=0"`
	PricePerDay  *float64 `json:"price_per_day,omitempty" binding:"omitempty,min=0"`
	Status       *Status  `json:"status,omitempty"`
}

// ListFilters narrows car listings.
type ListFilters struct {
	Status      Status `form:"status"`
	MinCapacity int    `form:"capacity"`
}
