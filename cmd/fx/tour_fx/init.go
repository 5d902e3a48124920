package tour_fx

import (
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripwise/internal/repositories"
	"tripwise/internal/services"
	"tripwise/pkg/utils"
)

var Module = fx.Provide(
	provideTourService, provideTourRepo, provideEmbeddingClient)

func provideTourRepo(db *gorm.DB) repositories.ITourRepository {
	return repositories.NewTourRepository(db)
}

func provideEmbeddingClient() utils.EmbeddingClientInterface {
	return utils.NewOpenAIEmbeddingClient(os.Getenv("OPENAI_API_KEY"))
}

func provideTourService(tourRepo repositories.ITourRepository, embeddingClient utils.EmbeddingClientInterface) services.TourServiceInterface {
	return services.NewTourService(tourRepo, embeddingClient)
}
