package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/realty-crm/configs"
	"github.com/maheshrc27/realty-crm/internal/api/handlers"
	"github.com/maheshrc27/realty-crm/internal/api/middleware"
	"github.com/maheshrc27/realty-crm/internal/plans"
)

// Handlers groups every HTTP handler the server mounts.
type Handlers struct {
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Profile    *handlers.ProfileHandler
	Settings   *handlers.SettingsHandler
	ApiKeys    *handlers.ApiKeyHandler
	Leads      *handlers.LeadHandler
	Properties *handlers.PropertyHandler
	Contacts   *handlers.ContactHandler
	Tasks      *handlers.TaskHandler
	Clients    *handlers.ClientHandler
	Team       *handlers.TeamHandler
	Dashboard  *handlers.DashboardHandler
	Billing    *handlers.BillingHandler
	Webhook    *handlers.WebhookHandler
	Demo       *handlers.DemoHandler
}

func SetupRoutes(app *fiber.App, cfg config.Config, h Handlers, auth *middleware.AuthMiddleware, guard *middleware.DashboardGuard) {
	feature := func(name string) fiber.Handler {
		return middleware.RequireFeature(cfg.FrontendURL, name)
	}

	app.Post("/auth/signup", h.Auth.Signup)
	app.Post("/auth/login", h.Auth.Login)
	app.Post("/auth/logout", h.Auth.Logout)
	app.Get("/auth/google", h.Auth.GoogleLogin)
	app.Get("/auth/google/callback", h.Auth.GoogleCallback)

	app.Post("/webhooks/stripe", h.Webhook.StripeWebhook)

	// public routes, registered before the authenticated group
	app.Get("/api/plans", h.Billing.ListPlans)
	app.Get("/api/demo/dashboard", h.Demo.Dashboard)

	dashboards := app.Group("/dashboard", guard.Guard())
	dashboards.Get("/", h.Dashboard.Summary)
	for _, tier := range plans.Tiers() {
		dashboards.Get(strings.TrimPrefix(plans.DashboardPath(tier), "/dashboard"), h.Dashboard.Summary)
	}

	api := app.Group("/api")
	api.Use(auth.AuthMiddleware())

	api.Get("/user/info", h.User.GetUserInfo)
	api.Delete("/user", h.User.RemoveUser)

	api.Get("/profile", h.Profile.GetProfile)
	api.Put("/profile", h.Profile.UpdateProfile)

	api.Get("/settings", h.Settings.GetSettingsInfo)
	api.Put("/settings", h.Settings.UpdateSettings)

	leads := api.Group("/leads", feature(plans.FeatureLeads))
	leads.Post("/", h.Leads.CreateLead)
	leads.Get("/", h.Leads.ListLeads)
	leads.Get("/:id", h.Leads.GetLead)
	leads.Put("/:id", h.Leads.UpdateLead)
	leads.Delete("/:id", h.Leads.RemoveLead)

	properties := api.Group("/properties", feature(plans.FeatureProperties))
	properties.Post("/", h.Properties.CreateProperty)
	properties.Get("/", h.Properties.ListProperties)
	properties.Get("/:id", h.Properties.GetProperty)
	properties.Put("/:id", h.Properties.UpdateProperty)
	properties.Delete("/:id", h.Properties.RemoveProperty)
	properties.Post("/:id/photos", feature(plans.FeaturePropertyPhotos), h.Properties.UploadPhotos)

	contacts := api.Group("/contacts", feature(plans.FeatureContacts))
	contacts.Post("/", h.Contacts.CreateContact)
	contacts.Get("/", h.Contacts.ListContacts)
	contacts.Get("/:id", h.Contacts.GetContact)
	contacts.Put("/:id", h.Contacts.UpdateContact)
	contacts.Delete("/:id", h.Contacts.RemoveContact)

	tasks := api.Group("/tasks", feature(plans.FeatureTasks))
	tasks.Post("/", h.Tasks.CreateTask)
	tasks.Get("/", h.Tasks.ListTasks)
	tasks.Get("/:id", h.Tasks.GetTask)
	tasks.Put("/:id", h.Tasks.UpdateTask)
	tasks.Delete("/:id", h.Tasks.RemoveTask)

	clients := api.Group("/clients", feature(plans.FeatureClients))
	clients.Post("/", h.Clients.CreateClient)
	clients.Get("/", h.Clients.ListClients)
	clients.Get("/:id", h.Clients.GetClient)
	clients.Put("/:id", h.Clients.UpdateClient)
	clients.Delete("/:id", h.Clients.RemoveClient)

	team := api.Group("/team", feature(plans.FeatureTeamManagement))
	team.Get("/members", h.Team.ListMembers)
	team.Post("/members", h.Team.AddMember)
	team.Delete("/members/:user_id", h.Team.RemoveMember)

	api.Get("/analytics", feature(plans.FeatureAnalytics), h.Dashboard.Analytics)
	api.Get("/logs", feature(plans.FeatureActivityLogs), h.Dashboard.ActivityLogs)

	billing := api.Group("/billing")
	billing.Post("/checkout", h.Billing.Checkout)
	billing.Post("/portal", h.Billing.Portal)
	billing.Get("/subscription", h.Billing.Subscription)

	apiKeys := api.Group("/api_key", feature(plans.FeatureAPIAccess))
	apiKeys.Post("/new", h.ApiKeys.CreateApiKey)
	apiKeys.Get("/list", h.ApiKeys.ListKeys)
	apiKeys.Post("/remove", h.ApiKeys.RemoveAPIKey)
}
