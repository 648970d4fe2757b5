package handlers

import (
	"github.com/gofiber/fiber/v2"

	"vendrefacile/internal/auth"
	"vendrefacile/internal/repos"
	"vendrefacile/internal/services"
)

type Deps struct {
	AuthHandler         *AuthHandler
	CategoryHandler     *CategoryHandler
	AnnonceHandler      *AnnonceHandler
	FavoriteHandler     *FavoriteHandler
	ConversationHandler *ConversationHandler

	jwt *auth.JWTService
	gw  *repos.Gateway
}

func NewDeps(gw *repos.Gateway, jwt *auth.JWTService) *Deps {
	userRepo := repos.NewUserRepo(gw)
	catRepo := repos.NewCategoryRepo(gw)
	annRepo := repos.NewAnnonceRepo(gw)
	favRepo := repos.NewFavoriteRepo(gw)
	convRepo := repos.NewConversationRepo(gw)

	authSvc := services.NewAuthService(userRepo, jwt)
	listingSvc := services.NewListingService(annRepo)
	favSvc := services.NewFavoriteService(favRepo)
	convSvc := services.NewConversationService(annRepo, convRepo)

	return &Deps{
		AuthHandler:         &AuthHandler{Auth: authSvc},
		CategoryHandler:     &CategoryHandler{Categories: catRepo},
		AnnonceHandler:      &AnnonceHandler{Listings: listingSvc},
		FavoriteHandler:     &FavoriteHandler{Favs: favSvc},
		ConversationHandler: &ConversationHandler{Convs: convSvc},
		jwt:                 jwt,
		gw:                  gw,
	}
}

// Register mounts every route; main and the handler tests share it so the
// wiring under test is the wiring that ships.
func (d *Deps) Register(app *fiber.App) {
	api := app.Group("/api")
	protected := RequireUser(d.jwt)

	api.Post("/auth/register", d.AuthHandler.Register)
	api.Post("/auth/login", d.AuthHandler.Login)
	api.Get("/profile", protected, d.AuthHandler.Profile)
	api.Put("/profile", protected, d.AuthHandler.UpdateProfile)

	api.Get("/categories", d.CategoryHandler.List)

	api.Get("/annonces", d.AnnonceHandler.Search)
	api.Get("/annonces/mine", protected, d.AnnonceHandler.Mine)
	api.Get("/annonces/:id", d.AnnonceHandler.Detail)
	api.Post("/annonces", protected, d.AnnonceHandler.Create)
	api.Put("/annonces/:id", protected, d.AnnonceHandler.Update)
	api.Delete("/annonces/:id", protected, d.AnnonceHandler.Delete)

	api.Get("/favorites", protected, d.FavoriteHandler.List)
	api.Post("/favorites/:annonce_id", protected, d.FavoriteHandler.Add)
	api.Delete("/favorites/:annonce_id", protected, d.FavoriteHandler.Remove)

	api.Get("/conversations", protected, d.ConversationHandler.List)
	api.Post("/conversations", protected, d.ConversationHandler.Open)
	api.Get("/conversations/:id/messages", protected, d.ConversationHandler.Messages)
	api.Post("/conversations/:id/messages", protected, d.ConversationHandler.Send)

	api.Get("/health", func(c *fiber.Ctx) error {
		if err := d.gw.Read.Ping(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "db": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok", "db": "connected"})
	})
}
