package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tourism-microservice/internal/domain"
)

// Фразы-триггеры чат-бота
const (
	phraseNearbyAttractions = "สถานที่ท่องเที่ยวใกล้เคียงฉันตอนนี้"
	phraseNearbyShops       = "ร้านค้าใกล้เคียงฉันตอนนี้"
	phraseNearbyHotels      = "ที่พักใกล้เคียงฉันตอนนี้"
	phraseNearbyRestaurants = "ร้านอาหารใกล้เคียงฉันตอนนี้"
	phraseNearbyAll         = "สถานที่ใกล้เคียงตอนนี้"

	suffixClosingSoon = "ที่ใกล้จะปิด"
	suffixOpeningSoon = "ที่ใกล้จะเปิด"
	suffixOpenNow     = "ที่เปิดอยู่ตอนนี้"
	prefixRecommend   = "แนะนำ"
)

// Фиксированные ответы
const (
	ReplyProcessingError = "เกิดข้อผิดพลาดในการประมวลผลคำถาม"
	ReplyUnavailable     = "ไม่สามารถตอบคำถามได้ในขณะนี้"
	googlePlacesHeader   = "ข้อมูลจาก Google Places:\n"
	googleMapsSearchURL  = "https://www.google.com/maps/search/?api=1&query="
)

// intentRule - правило маршрутизации: фраза, требование геопозиции и обработчик
type intentRule struct {
	name         string
	phrase       string
	needLocation bool
	handle       func(ctx context.Context, uc *ChatbotUseCase, q domain.ChatQuery) (string, error)
}

func (r intentRule) applies(q domain.ChatQuery) bool {
	if r.needLocation && q.Location == nil {
		return false
	}
	return strings.Contains(q.Text, r.phrase)
}

// defaultRules - правила в порядке проверки
func defaultRules() []intentRule {
	rules := []intentRule{
		nearbyRule(phraseNearbyAttractions, "สถานที่ท่องเที่ยว", domain.CategoryAttraction),
		nearbyRule(phraseNearbyShops, "ร้านค้า", domain.CategorySouvenirShop),
		nearbyRule(phraseNearbyHotels, "ที่พัก", domain.CategoryAccommodation),
		nearbyRule(phraseNearbyRestaurants, "ร้านอาหาร", domain.CategoryRestaurant),
		nearbyRule(phraseNearbyAll, "สถานที่", ""),
	}
	for _, category := range domain.Categories {
		rules = append(rules,
			closingSoonRule(category),
			openingSoonRule(category),
			openNowRule(category),
			recommendRule(category),
		)
	}
	return rules
}

func nearbyRule(phrase, label, category string) intentRule {
	return intentRule{
		name:         "nearby:" + label,
		phrase:       phrase,
		needLocation: true,
		handle: func(ctx context.Context, uc *ChatbotUseCase, q domain.ChatQuery) (string, error) {
			rows, err := uc.chatRepo.FindNearby(ctx, q.Location.Latitude, q.Location.Longitude,
				uc.cfg.RadiusKm, category, uc.cfg.ResultLimit)
			if err != nil {
				return "", err
			}
			radius := formatKm(uc.cfg.RadiusKm)
			if len(rows) == 0 {
				return fmt.Sprintf("ไม่พบ%sใกล้เคียงในระยะ %s กิโลเมตร", label, radius), nil
			}

			var sb strings.Builder
			if category == "" {
				fmt.Fprintf(&sb, "%sใกล้พิกัดของคุณภายใน %s กิโลเมตร (รวมทุกประเภท):\n", label, radius)
				for i, row := range rows {
					fmt.Fprintf(&sb, "%d. %s (%s) - %s\n ลิ้งค์ไปยังที่ตั้ง: %s\n\n",
						i+1, row.Name, row.CategoryName, row.Description, uc.placeLink(row.ID))
				}
				return sb.String(), nil
			}
			fmt.Fprintf(&sb, "%sใกล้พิกัดของคุณภายใน %s กิโลเมตร:\n", label, radius)
			uc.writeEntries(&sb, rows, "")
			return sb.String(), nil
		},
	}
}

func closingSoonRule(category string) intentRule {
	return intentRule{
		name:   "closing:" + category,
		phrase: category + suffixClosingSoon,
		handle: func(ctx context.Context, uc *ChatbotUseCase, q domain.ChatQuery) (string, error) {
			day, from, to := uc.window()
			rows, err := uc.chatRepo.FindClosingBetween(ctx, category, day, from, to)
			if err != nil {
				return "", err
			}
			return uc.windowReply(rows, category+suffixClosingSoon, "ปิดเวลา"), nil
		},
	}
}

func openingSoonRule(category string) intentRule {
	return intentRule{
		name:   "opening:" + category,
		phrase: category + suffixOpeningSoon,
		handle: func(ctx context.Context, uc *ChatbotUseCase, q domain.ChatQuery) (string, error) {
			day, from, to := uc.window()
			rows, err := uc.chatRepo.FindOpeningBetween(ctx, category, day, from, to)
			if err != nil {
				return "", err
			}
			return uc.windowReply(rows, category+suffixOpeningSoon, "เปิดเวลา"), nil
		},
	}
}

func openNowRule(category string) intentRule {
	return intentRule{
		name:   "open:" + category,
		phrase: category + suffixOpenNow,
		handle: func(ctx context.Context, uc *ChatbotUseCase, q domain.ChatQuery) (string, error) {
			now := uc.clock()
			rows, err := uc.chatRepo.FindOpenAt(ctx, category, domain.WeekdayOf(now), domain.ClockOf(now))
			if err != nil {
				return "", err
			}
			title := category + suffixOpenNow
			if len(rows) == 0 {
				return "ไม่พบ" + title, nil
			}
			var sb strings.Builder
			sb.WriteString(title + ":\n")
			uc.writeEntries(&sb, rows, "ปิดเวลา")
			return sb.String(), nil
		},
	}
}

func recommendRule(category string) intentRule {
	return intentRule{
		name:   "recommend:" + category,
		phrase: prefixRecommend + category,
		handle: func(ctx context.Context, uc *ChatbotUseCase, q domain.ChatQuery) (string, error) {
			rows, err := uc.chatRepo.FindByCategory(ctx, category)
			if err != nil {
				return "", err
			}
			if len(rows) == 0 {
				return "ไม่พบข้อมูล" + category, nil
			}
			var sb strings.Builder
			sb.WriteString(prefixRecommend + category + ":\n")
			uc.writeEntries(&sb, rows, "")
			return sb.String(), nil
		},
	}
}

// window - сегодняшний день и окно [now, now+window]
func (uc *ChatbotUseCase) window() (string, domain.ClockTime, domain.ClockTime) {
	now := uc.clock()
	from, to, _ := domain.ClockWindow(now, uc.windowSize())
	return domain.WeekdayOf(now), from, to
}

func (uc *ChatbotUseCase) windowReply(rows []domain.PlaceSummary, title, timeLabel string) string {
	minutes := int(uc.windowSize().Minutes())
	if len(rows) == 0 {
		return fmt.Sprintf("ไม่พบ%sภายใน %d นาที", title, minutes)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%sภายใน %d นาที:\n", title, minutes)
	uc.writeEntries(&sb, rows, timeLabel)
	return sb.String()
}

// writeEntries - нумерованный список; timeLabel != "" добавляет граничное время
func (uc *ChatbotUseCase) writeEntries(sb *strings.Builder, rows []domain.PlaceSummary, timeLabel string) {
	for i, row := range rows {
		fmt.Fprintf(sb, "%d. %s - %s", i+1, row.Name, row.Description)
		if timeLabel != "" && row.BoundaryTime != "" {
			fmt.Fprintf(sb, " (%s %s)", timeLabel, row.BoundaryTime)
		}
		fmt.Fprintf(sb, "\n ลิ้งค์ไปยังที่ตั้ง: %s\n\n", uc.placeLink(row.ID))
	}
}

func (uc *ChatbotUseCase) placeLink(id int64) string {
	return fmt.Sprintf("%s/place/%d", uc.cfg.PlaceBaseURL, id)
}

// formatExternal - ответ по результатам Google Places
func formatExternal(places []domain.ExternalPlace) string {
	var sb strings.Builder
	sb.WriteString(googlePlacesHeader)
	for i, p := range places {
		fmt.Fprintf(&sb, "%d. %s\n ลิ้งค์ไปยัง Google Maps: %s%s\n\n",
			i+1, p.Name, googleMapsSearchURL, encodeURIComponent(p.Name))
	}
	return sb.String()
}

// encodeURIComponent - url.QueryEscape, но пробел кодируется как %20
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func formatKm(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64)
}
