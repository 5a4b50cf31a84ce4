package domain

// Default capacity values applied when a resource has no explicit figure
const (
	DefaultStayRooms              = 1
	DefaultTransportationQuantity = 1
	DefaultSightseeingSlotsPerDay = 50
)

// Business validation constants
const (
	MinNumberOfPeople = 1
	MaxNumberOfPeople = 100
	MinNumberOfDays   = 1
	MaxNumberOfDays   = 90
	MaxSightseeings   = 20

	MaxCancellationReasonLength = 500
)

// Role constants supplied by the identity collaborator
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
