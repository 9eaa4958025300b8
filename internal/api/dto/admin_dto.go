package dto

// PlatformStatsResponse is the admin dashboard counters payload.
type PlatformStatsResponse struct {
	TotalUsers      int64   `json:"total_users"`
	TotalBrands     int64   `json:"total_brands"`
	TotalTickets    int64   `json:"total_tickets"`
	ResolvedTickets int64   `json:"resolved_tickets"`
	ResolutionRate  float64 `json:"resolution_rate"`
}

// SettingsRequest replaces the stored platform settings.
type SettingsRequest struct {
	Settings map[string]string `json:"settings"`
}

// SettingsResponse returns the stored platform settings.
type SettingsResponse struct {
	Settings map[string]string `json:"settings"`
}
