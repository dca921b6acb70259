package constants

const (
	INTERVIEWS_COLLECTION = "interviews"
	USERS_COLLECTION      = "users"
)
