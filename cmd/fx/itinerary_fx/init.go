package itinerary_fx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripwise/internal/repositories"
	"tripwise/internal/services"
	mem "tripwise/pkg/memcache"
	"tripwise/pkg/utils"
)

var Module = fx.Provide(
	provideItineraryService, providePlanRepo, providePlannerAI)

func providePlanRepo(db *gorm.DB) repositories.ITravelPlanRepository {
	return repositories.NewTravelPlanRepository(db)
}

func providePlannerAI() utils.PlannerAIInterface {
	client, err := utils.NewGeminiPlannerClient(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
	if err != nil {
		log.Fatalf("Failed to init Gemini client: %v", err)
	}
	return client
}

func provideItineraryService(
	planRepo repositories.ITravelPlanRepository,
	tourService services.TourServiceInterface,
	aiService utils.PlannerAIInterface,
	shareLinks mem.ShareLinkStore,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(planRepo, tourService, aiService, shareLinks, os.Getenv("SHARE_BASE_URL"))
}
