package internal

import (
	"fragments/internal/controllers"
	"fragments/internal/providers"
	"net/http"
)

func InitRoutes(gameController *controllers.GameController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/api/init", http.HandlerFunc(gameController.Init))
	routers.Post("/api/new-game", http.HandlerFunc(gameController.NewGame))
	routers.Get("/api/game-state", http.HandlerFunc(gameController.GameState))
	routers.Post("/api/submit-word", http.HandlerFunc(gameController.SubmitWord))
	routers.Post("/api/end-game", http.HandlerFunc(gameController.EndGame))
	routers.Get("/api/leaderboard", http.HandlerFunc(gameController.Leaderboard))
	routers.Get("/api/dates", http.HandlerFunc(gameController.Dates))
	return routers
}
