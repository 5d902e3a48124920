package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"tripwise/internal/models/db_models"
	"tripwise/internal/models/request_models"
	"tripwise/internal/models/response_models"
	"tripwise/internal/planner"
	"tripwise/internal/repositories"
	"tripwise/pkg/memcache"
	"tripwise/pkg/utils"
)

// Generation is chunked the same way chat edits are: at most MaxChunkDays
// days per AI call. Longer trips report hasMore/nextStartDate so the app
// can request the remainder.
const maxDaysPerGeneration = planner.MaxChunkDays

const shareSlugBytes = 8

type ItineraryServiceInterface interface {
	CreateItinerary(ctx context.Context, ownerID uuid.UUID, req request_models.CreateItineraryRequest) (*response_models.CreateItineraryResponse, error)
	UpdateItinerary(ctx context.Context, req request_models.UpdateItineraryRequest) (*response_models.UpdateItineraryResponse, error)
	UpdateItineraryChunk(ctx context.Context, req request_models.UpdateItineraryChunkRequest) (*response_models.UpdateItineraryResponse, error)
	GetHistoryDetail(ctx context.Context, planID string) (map[string]any, error)
	ShareItinerary(ctx context.Context, planID string) (*response_models.ShareItineraryResponse, error)
	GetSharedItinerary(ctx context.Context, slug string) (map[string]any, error)
}

type ItineraryService struct {
	planRepo    repositories.ITravelPlanRepository
	tourService TourServiceInterface
	aiService   utils.PlannerAIInterface
	shareLinks  memcache.ShareLinkStore
	shareBase   string // e.g. https://tripwise.vn
}

func NewItineraryService(
	planRepo repositories.ITravelPlanRepository,
	tourService TourServiceInterface,
	aiService utils.PlannerAIInterface,
	shareLinks memcache.ShareLinkStore,
	shareBase string,
) ItineraryServiceInterface {
	return &ItineraryService{
		planRepo:    planRepo,
		tourService: tourService,
		aiService:   aiService,
		shareLinks:  shareLinks,
		shareBase:   shareBase,
	}
}

func (s *ItineraryService) CreateItinerary(ctx context.Context, ownerID uuid.UUID, req request_models.CreateItineraryRequest) (*response_models.CreateItineraryResponse, error) {
	if strings.TrimSpace(req.Destination) == "" || req.DurationDays < 1 {
		return nil, utils.ErrInvalidInput
	}

	dayCount := req.DurationDays
	if dayCount > maxDaysPerGeneration {
		dayCount = maxDaysPerGeneration
	}

	payload, err := s.generateWithRetry(ctx, req, dayCount)
	if err != nil {
		log.Printf("AI generation error: %v", err)
		return nil, utils.ErrUnexpectedBehaviorOfAI
	}

	// The model is not trusted to echo the form; overwrite the header
	// fields so the stored plan always reflects what was asked for.
	payload["destination"] = req.Destination
	payload["travelDate"] = req.TravelDate
	payload["durationDays"] = req.DurationDays
	payload["preferences"] = strings.Join(req.Preferences, ", ")
	payload["budget"] = req.Budget
	payload["transportation"] = req.Transportation
	payload["groupType"] = req.GroupType
	payload["accommodation"] = req.Accommodation

	payload["hasMore"] = req.DurationDays > dayCount
	if req.DurationDays > dayCount {
		payload["nextStartDate"] = utils.AddDaysVN(req.TravelDate, dayCount)
	} else {
		payload["nextStartDate"] = ""
	}

	s.decoratePayload(ctx, ownerID, req.Destination, payload)

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, utils.ErrUnexpectedBehaviorOfAI
	}

	plan := &db_models.TravelPlan{
		OwnerID:      ownerID,
		Destination:  req.Destination,
		TravelDate:   req.TravelDate,
		DurationDays: req.DurationDays,
		Preferences:  req.Preferences,
		Budget:       req.Budget,
		Payload:      raw,
	}
	if err := s.planRepo.Insert(ctx, plan); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.CreateItineraryResponse{
		Data:           payload,
		GeneratePlanID: plan.ID.String(),
	}, nil
}

func (s *ItineraryService) UpdateItinerary(ctx context.Context, req request_models.UpdateItineraryRequest) (*response_models.UpdateItineraryResponse, error) {
	constraint := "Chỉnh sửa theo đúng yêu cầu, giữ nguyên những phần không liên quan."
	if req.DayNumber != nil && req.ActivityIndex != nil {
		constraint = fmt.Sprintf(
			"Yêu cầu nhắm vào hoạt động thứ %d (tính từ 0) của ngày %d, mô tả hiện tại: %q. Chỉ chỉnh sửa hoạt động đó trừ khi yêu cầu nói khác.",
			*req.ActivityIndex, *req.DayNumber, req.Description,
		)
	}
	return s.applyEdit(ctx, req.PlanID, req.Text, constraint)
}

func (s *ItineraryService) UpdateItineraryChunk(ctx context.Context, req request_models.UpdateItineraryChunkRequest) (*response_models.UpdateItineraryResponse, error) {
	if req.ChunkSize < 1 || req.ChunkSize > planner.MaxChunkDays {
		return nil, utils.ErrInvalidInput
	}
	endDay := req.StartDay + req.ChunkSize - 1
	constraint := fmt.Sprintf(
		"Chỉ được chỉnh sửa các ngày từ %d đến %d. Mọi ngày khác phải giữ nguyên từng trường một.",
		req.StartDay, endDay,
	)
	return s.applyEdit(ctx, req.PlanID, req.Text, constraint)
}

func (s *ItineraryService) GetHistoryDetail(ctx context.Context, planID string) (map[string]any, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	var payload map[string]any
	if err := json.Unmarshal(plan.Payload, &payload); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return payload, nil
}

func (s *ItineraryService) ShareItinerary(ctx context.Context, planID string) (*response_models.ShareItineraryResponse, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	slug := plan.ShareSlug
	if slug == "" {
		slug, err = utils.GenerateSecureToken(shareSlugBytes)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if err := s.planRepo.SetShareSlug(ctx, planID, slug); err != nil {
			return nil, utils.ErrDatabaseError
		}
	}

	s.shareLinks.Set(slug, planID, memcache.ShareLinkTTL)

	return &response_models.ShareItineraryResponse{
		ShareURL: fmt.Sprintf("%s/s/%s", s.shareBase, slug),
	}, nil
}

func (s *ItineraryService) GetSharedItinerary(ctx context.Context, slug string) (map[string]any, error) {
	if planID, ok := s.shareLinks.Lookup(slug); ok {
		return s.GetHistoryDetail(ctx, planID)
	}

	plan, err := s.planRepo.GetByShareSlug(ctx, slug)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrShareLinkNotFound
	}

	s.shareLinks.Set(slug, plan.ID.String(), memcache.ShareLinkTTL)
	return s.GetHistoryDetail(ctx, plan.ID.String())
}

// editResult is the contract the edit prompt demands from the model.
type editResult struct {
	HasChanges    bool           `json:"hasChanges"`
	UpdateSummary string         `json:"updateSummary"`
	ChangeDetails string         `json:"changeDetails"`
	UserGuidance  string         `json:"userGuidance"`
	Itinerary     map[string]any `json:"itinerary"`
}

func (s *ItineraryService) applyEdit(ctx context.Context, planID, instruction, constraint string) (*response_models.UpdateItineraryResponse, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	prompt := buildEditPrompt(string(plan.Payload), instruction, constraint)

	var result *editResult
	for attempt := 1; attempt <= 3; attempt++ {
		raw, err := s.aiService.EditItineraryJSON(ctx, prompt)
		if err != nil {
			log.Printf("edit attempt %d/%d failed: %v", attempt, 3, err)
			continue
		}

		var parsed editResult
		if err := json.Unmarshal([]byte(utils.CleanAIJSON(raw)), &parsed); err != nil {
			log.Printf("edit attempt %d/%d: unparseable answer: %v", attempt, 3, err)
			continue
		}
		if parsed.HasChanges && parsed.Itinerary == nil {
			log.Printf("edit attempt %d/%d: hasChanges without itinerary", attempt, 3)
			continue
		}

		result = &parsed
		break
	}
	if result == nil {
		return nil, utils.ErrUnexpectedBehaviorOfAI
	}

	if !result.HasChanges {
		guidance := result.UserGuidance
		if guidance == "" {
			guidance = "Lịch trình hiện tại đã đáp ứng yêu cầu của bạn."
		}
		return &response_models.UpdateItineraryResponse{
			HasChanges:   false,
			UserGuidance: guidance,
		}, nil
	}

	// Models tend to drop the metadata block when rewriting; carry it
	// over from the stored payload so the plan keeps its decorations.
	var previous map[string]any
	if err := json.Unmarshal(plan.Payload, &previous); err == nil {
		for _, key := range []string{"hasMore", "nextStartDate", "previousAddresses", "relatedTours"} {
			if _, ok := result.Itinerary[key]; !ok {
				if v, ok := previous[key]; ok {
					result.Itinerary[key] = v
				}
			}
		}
	}

	raw, err := json.Marshal(result.Itinerary)
	if err != nil {
		return nil, utils.ErrUnexpectedBehaviorOfAI
	}
	if err := s.planRepo.ReplacePayload(ctx, planID, raw); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.UpdateItineraryResponse{
		HasChanges:    true,
		UpdateSummary: result.UpdateSummary,
		ChangeDetails: result.ChangeDetails,
	}, nil
}

// decoratePayload attaches previous destinations and related tours. Both
// are best-effort: a generated plan without decorations is still a plan.
func (s *ItineraryService) decoratePayload(ctx context.Context, ownerID uuid.UUID, destination string, payload map[string]any) {
	addresses, err := s.planRepo.ListDestinationsByOwner(ctx, ownerID, 5)
	if err != nil {
		log.Printf("previous addresses lookup failed: %v", err)
		addresses = nil
	}
	if addresses == nil {
		addresses = []string{}
	}
	payload["previousAddresses"] = addresses

	related, err := s.tourService.RelatedTours(ctx, destination, 4)
	if err != nil {
		log.Printf("related tours lookup failed: %v", err)
		related = nil
	}
	if related == nil {
		related = []response_models.RelatedTourResponse{}
	}
	payload["relatedTours"] = related
}

func (s *ItineraryService) generateWithRetry(ctx context.Context, req request_models.CreateItineraryRequest, dayCount int) (map[string]any, error) {
	maxAttempts := 3

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		prompt := buildGenerationPrompt(req, dayCount, attempt == maxAttempts)

		raw, err := s.aiService.GenerateItineraryJSON(ctx, prompt)
		if err != nil {
			log.Printf("generation attempt %d/%d failed: %v", attempt, maxAttempts, err)
			if attempt == maxAttempts {
				return nil, err
			}
			continue
		}

		payload, err := validateGeneratedPayload(utils.CleanAIJSON(raw), dayCount)
		if err != nil {
			log.Printf("generation attempt %d/%d: %v", attempt, maxAttempts, err)
			continue
		}
		return payload, nil
	}

	return nil, fmt.Errorf("model returned invalid itinerary after %d attempts", maxAttempts)
}

func validateGeneratedPayload(raw string, expectedDays int) (map[string]any, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("invalid itinerary JSON: %w", err)
	}

	days, ok := payload["days"].([]any)
	if !ok || len(days) == 0 {
		return nil, fmt.Errorf("itinerary has no days")
	}
	if len(days) != expectedDays {
		return nil, fmt.Errorf("expected %d days, got %d", expectedDays, len(days))
	}
	return payload, nil
}

const itinerarySchema = `{
  "destination": "string",
  "travelDate": "2006-01-02",
  "durationDays": 3,
  "totalCost": "tổng chi phí ước tính, ví dụ \"2.500.000đ\"",
  "suggestedStay": "link hoặc tên chỗ ở gợi ý",
  "days": [
    {
      "dayNumber": 1,
      "title": "tiêu đề ngày",
      "dailyCost": "chi phí trong ngày",
      "weather": "",
      "temperature": "",
      "activities": [
        {
          "starttime": "08:00",
          "endtime": "10:00",
          "description": "mô tả hoạt động",
          "estimatedCost": "chi phí",
          "transportation": "phương tiện",
          "address": "địa chỉ",
          "placeDetail": "chi tiết địa điểm",
          "mapUrl": "",
          "image": ""
        }
      ]
    }
  ]
}`

func buildGenerationPrompt(req request_models.CreateItineraryRequest, dayCount int, strict bool) string {
	var prompt strings.Builder

	prompt.WriteString(fmt.Sprintf("Bạn là chuyên gia du lịch. Hãy lập lịch trình %d ngày tại %s, bắt đầu từ %s.\n\n",
		dayCount, req.Destination, req.TravelDate))

	prompt.WriteString("Thông tin chuyến đi:\n")
	if len(req.Preferences) > 0 {
		prompt.WriteString(fmt.Sprintf("- Sở thích: %s\n", strings.Join(req.Preferences, ", ")))
	}
	if req.Budget != "" {
		prompt.WriteString(fmt.Sprintf("- Ngân sách: %s\n", req.Budget))
	}
	if req.Transportation != "" {
		prompt.WriteString(fmt.Sprintf("- Phương tiện: %s\n", req.Transportation))
	}
	if req.GroupType != "" {
		prompt.WriteString(fmt.Sprintf("- Nhóm: %s\n", req.GroupType))
	}
	if req.Accommodation != "" {
		prompt.WriteString(fmt.Sprintf("- Chỗ ở mong muốn: %s\n", req.Accommodation))
	}

	prompt.WriteString("\nYêu cầu bắt buộc:\n")
	prompt.WriteString(fmt.Sprintf("1. Đúng %d ngày trong \"days\", dayNumber từ 1 đến %d không ngắt quãng\n", dayCount, dayCount))
	prompt.WriteString("2. Mỗi ngày 3-5 hoạt động, giờ dạng HH:MM, không trùng giờ\n")
	prompt.WriteString("3. Chi phí ghi bằng tiền Việt\n")
	prompt.WriteString("4. Chỉ trả về JSON hợp lệ, không kèm văn bản\n\n")

	prompt.WriteString("Trả về JSON đúng theo mẫu sau (khớp chính xác tên trường):\n")
	prompt.WriteString(itinerarySchema)

	if strict {
		prompt.WriteString(fmt.Sprintf("\n\nNHẮC LẠI: trả về đúng %d ngày, JSON thuần, không markdown, không giải thích.", dayCount))
	}

	return prompt.String()
}

func buildEditPrompt(currentPayload, instruction, constraint string) string {
	var prompt strings.Builder

	prompt.WriteString("Bạn đang chỉnh sửa một lịch trình du lịch theo yêu cầu của người dùng.\n\n")
	prompt.WriteString("Lịch trình hiện tại (JSON):\n")
	prompt.WriteString(currentPayload)
	prompt.WriteString("\n\nYêu cầu của người dùng: ")
	prompt.WriteString(instruction)
	prompt.WriteString("\n\nRàng buộc: ")
	prompt.WriteString(constraint)

	prompt.WriteString(`

Trả về JSON duy nhất theo mẫu:
{
  "hasChanges": true,
  "updateSummary": "tóm tắt ngắn thay đổi",
  "changeDetails": "liệt kê chi tiết từng thay đổi",
  "userGuidance": "",
  "itinerary": { toàn bộ lịch trình sau chỉnh sửa, giữ nguyên cấu trúc trường }
}

Nếu yêu cầu không dẫn đến thay đổi nào (đã có sẵn, không khả thi, hoặc không liên quan đến lịch trình),
trả về hasChanges=false, bỏ trống itinerary và giải thích lý do trong userGuidance bằng tiếng Việt.
Không trả về bất cứ thứ gì ngoài JSON.`)

	return prompt.String()
}
