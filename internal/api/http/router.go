package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/glptrack/wellness-service/internal/api/http/handlers"
	"github.com/glptrack/wellness-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Profile        *handlers.ProfileHandler
	Premium        *handlers.PremiumHandler
	Forum          *handlers.ForumHandler
	Content        *handlers.ContentHandler
	News           *handlers.NewsHandler
	Foods          *handlers.FoodsHandler
	Records        *handlers.RecordsHandler
	Media          *handlers.MediaHandler
	OpenGraph      *handlers.OpenGraphHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Everything under /v1 requires a
// verified bearer token; finer role checks live in the services.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	v1 := app.Group("/v1", cfg.AuthMiddleware.Handle)

	v1.Get("/me", cfg.Profile.Me)
	v1.Patch("/me", cfg.Profile.Update)
	v1.Delete("/me", cfg.Profile.Delete)
	v1.Post("/me/onboarding", cfg.Profile.CompleteOnboarding)
	v1.Post("/me/heartbeat", cfg.Profile.Heartbeat)
	v1.Get("/community/stats", cfg.Profile.CommunityStats)

	v1.Get("/premium/status", cfg.Premium.Status)
	v1.Post("/premium/trial", cfg.Premium.ActivateTrial)
	v1.Post("/premium/redeem", cfg.Premium.RedeemPromo)

	v1.Get("/forum/topics", cfg.Forum.ListTopics)
	v1.Post("/forum/topics", cfg.Forum.CreateTopic)
	v1.Get("/forum/topics/:id", cfg.Forum.GetTopic)
	v1.Post("/forum/topics/:id/replies", cfg.Forum.CreateReply)
	v1.Post("/forum/topics/:id/pin", cfg.Forum.TogglePin)
	v1.Delete("/forum/posts/:id", cfg.Forum.DeletePost)
	v1.Post("/forum/posts/:id/like", cfg.Forum.ToggleLike)

	v1.Get("/content/:section/categories", cfg.Content.ListCategories)
	v1.Post("/content/:section/categories", cfg.Content.CreateCategory)
	v1.Post("/content/:section/categories/reorder", cfg.Content.ReorderCategories)
	v1.Put("/content/:section/categories/:id", cfg.Content.UpdateCategory)
	v1.Delete("/content/:section/categories/:id", cfg.Content.DeleteCategory)
	v1.Get("/content/categories/:categoryId/topics", cfg.Content.ListTopics)
	v1.Post("/content/categories/:categoryId/topics", cfg.Content.CreateTopic)
	v1.Put("/content/topics/:id", cfg.Content.UpdateTopic)
	v1.Delete("/content/topics/:id", cfg.Content.DeleteTopic)
	v1.Get("/content/topics/:topicId/articles", cfg.Content.ListArticles)
	v1.Post("/content/topics/:topicId/articles", cfg.Content.CreateArticle)
	v1.Get("/content/articles/:id", cfg.Content.GetArticle)
	v1.Put("/content/articles/:id", cfg.Content.UpdateArticle)
	v1.Delete("/content/articles/:id", cfg.Content.DeleteArticle)

	v1.Get("/news", cfg.News.List)
	v1.Post("/news", cfg.News.Create)
	v1.Get("/news/:id", cfg.News.Get)
	v1.Put("/news/:id", cfg.News.Update)
	v1.Delete("/news/:id", cfg.News.Delete)
	v1.Post("/news/:id/pin", cfg.News.TogglePin)

	v1.Get("/foods/catalog", cfg.Foods.ListCatalog)
	v1.Post("/foods/catalog", cfg.Foods.CreateCatalog)
	v1.Get("/foods/catalog/tabs/:tabId", cfg.Foods.ListCatalogByTab)
	v1.Put("/foods/catalog/:id", cfg.Foods.UpdateCatalog)
	v1.Post("/foods/catalog/:id/deactivate", cfg.Foods.DeactivateCatalog)
	v1.Delete("/foods/catalog/:id", cfg.Foods.DeleteCatalog)
	v1.Get("/foods/mine", cfg.Foods.ListUserFoods)
	v1.Post("/foods/mine", cfg.Foods.CreateUserFood)
	v1.Put("/foods/mine/:id", cfg.Foods.UpdateUserFood)
	v1.Delete("/foods/mine/:id", cfg.Foods.DeleteUserFood)

	v1.Get("/records/weights", cfg.Records.ListWeights)
	v1.Post("/records/weights", cfg.Records.CreateWeight)
	v1.Delete("/records/weights/:id", cfg.Records.DeleteWeight)
	v1.Get("/records/injections", cfg.Records.ListInjections)
	v1.Post("/records/injections", cfg.Records.CreateInjection)
	v1.Delete("/records/injections/:id", cfg.Records.DeleteInjection)
	v1.Get("/records/measures", cfg.Records.ListMeasures)
	v1.Post("/records/measures", cfg.Records.CreateMeasure)
	v1.Delete("/records/measures/:id", cfg.Records.DeleteMeasure)
	v1.Get("/records/moods", cfg.Records.ListMoods)
	v1.Post("/records/moods", cfg.Records.CreateMood)
	v1.Delete("/records/moods/:id", cfg.Records.DeleteMood)
	v1.Get("/records/water", cfg.Records.GetWater)
	v1.Put("/records/water", cfg.Records.SetWater)
	v1.Get("/records/nutrition", cfg.Records.GetNutrition)
	v1.Get("/records/nutrition/history", cfg.Records.ListNutrition)
	v1.Put("/records/nutrition", cfg.Records.SetNutrition)
	v1.Get("/records/stock", cfg.Records.ListStockItems)
	v1.Post("/records/stock", cfg.Records.CreateStockItem)
	v1.Put("/records/stock/:id", cfg.Records.UpdateStockItem)
	v1.Delete("/records/stock/:id", cfg.Records.DeleteStockItem)

	v1.Post("/media", cfg.Media.Upload)
	v1.Get("/media/shortcodes/:code", cfg.Media.Resolve)
	v1.Delete("/media/shortcodes/:code", cfg.Media.Delete)

	v1.Get("/opengraph", cfg.OpenGraph.Preview)

	v1.Get("/settings", cfg.Admin.GetSettings)

	admin := v1.Group("/admin")
	admin.Post("/promo-codes", cfg.Admin.CreatePromo)
	admin.Get("/promo-codes", cfg.Admin.ListPromos)
	admin.Get("/members", cfg.Admin.FindMember)
	admin.Put("/members/:id/role", cfg.Admin.SetRole)
	admin.Put("/members/:id/permanent-premium", cfg.Admin.SetPermanentPremium)
	admin.Put("/settings", cfg.Admin.UpdateSettings)
}
