package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	portssvc "github.com/hfa-project/home_finance_app/internal/core/ports/services"
	"github.com/hfa-project/home_finance_app/internal/platform/config"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// registerCustomValidators installs the yyyymm binding validator used by the
// budget payloads.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("yyyymm", func(fl validator.FieldLevel) bool {
			return monthPattern.MatchString(fl.Field().String())
		})
	}
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	registerHouseholdRoutes(v1, services.Household)

	// Everything below is scoped to one household via the route parameter.
	household := v1.Group("/households/:householdID")
	registerConnectionRoutes(household, services.Connection)
	registerTransactionRoutes(household, services.Transaction)
	registerCategoryRoutes(household, services.Category)
	registerRuleRoutes(household, services.Rule)
	registerBudgetRoutes(household, services.Budget)
	RegisterSyncRoutes(household, services.Sync)
}
