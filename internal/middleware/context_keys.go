package middleware

import "github.com/gin-gonic/gin"

// householdIDParam is the route parameter carrying the household scope key.
const householdIDParam = "householdID"

// GetHouseholdIDFromContext retrieves the household scope key from the
// request's route parameters. It returns the id and a boolean indicating if
// it was present.
func GetHouseholdIDFromContext(c *gin.Context) (string, bool) {
	householdID := c.Param(householdIDParam)
	if householdID == "" {
		return "", false
	}
	return householdID, true
}

// actorHeader carries the acting user's id, set by the upstream identity
// layer. Authentication itself happens before requests reach this service.
const actorHeader = "X-User-ID"

// GetActorUserID returns the acting user id for audit columns, falling back
// to "api" when the upstream layer did not set one.
func GetActorUserID(c *gin.Context) string {
	if actor := c.GetHeader(actorHeader); actor != "" {
		return actor
	}
	return "api"
}
