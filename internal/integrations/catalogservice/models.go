package catalogservice

// Service is a bookable marketplace service as exposed by CatalogService.
type Service struct {
	ID         int64  `json:"id"`
	ProviderID int64  `json:"providerId"`
	Title      string `json:"title"`
	IsActive   bool   `json:"isActive"`
}

// Provider is a service provider profile.
type Provider struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName"`
	City        string `json:"city"`
	IsActive    bool   `json:"isActive"`
}

// Logger is the logging interface the client depends on.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
