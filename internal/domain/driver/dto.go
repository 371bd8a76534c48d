package driver

// CreateRequest registers an existing user as a driver.
type CreateRequest struct {
	UserID        int64  `json:"user_id" binding:"required"`
	LicenseNumber string `json:"license_number" binding:"required"`
}

// UpdateRequest patches existing driver info.
type UpdateRequest struct {
	LicenseNumber *string `json:"license_number,omitempty"`
	Status        *Status `json:"status,omitempty"`
}

// ListFilters narrows driver listings.
type ListFilters struct {
	Status Status `form:"status"`
}
