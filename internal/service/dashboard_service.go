package service

import (
	"context"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/models"
)

// recentMessagesLimit сколько последних сообщений показывает дашборд.
const recentMessagesLimit = 4

// DashboardStore описывает зависимости DashboardService от слоя хранилища.
type DashboardStore interface {
	ListRecent(ctx context.Context, limit int) ([]models.Message, error)
	CountUnread(ctx context.Context) (int, error)
}

// VisitCounter считает просмотры страниц.
type VisitCounter interface {
	CountAll(ctx context.Context) (int, error)
	CountWithoutUserAgent(ctx context.Context) (int, error)
}

// DashboardService собирает сводку для главной страницы админки.
type DashboardService struct {
	messages DashboardStore
	visits   VisitCounter
	cache    *QueryCache
}

// NewDashboardService создаёт сервис дашборда.
func NewDashboardService(messages DashboardStore, visits VisitCounter, cache *QueryCache) *DashboardService {
	return &DashboardService{
		messages: messages,
		visits:   visits,
		cache:    cache,
	}
}

// staticTrends показатели динамики пока не вычисляются.
var staticTrends = []dto.Trend{
	{Label: "Просмотры", Change: "+12%"},
	{Label: "Сообщения", Change: "+5%"},
	{Label: "Посетители", Change: "+8%"},
}

// Summary возвращает последние сообщения и счётчики просмотров.
// Уникальными посетителями считаются просмотры без user agent.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	recent, err := cachedList(ctx, s.cache, models.TableMessages+":recent", func(ctx context.Context) ([]models.Message, error) {
		return s.messages.ListRecent(ctx, recentMessagesLimit)
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	unread, err := s.messages.CountUnread(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}

	total, err := s.visits.CountAll(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}

	unique, err := s.visits.CountWithoutUserAgent(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}

	trends := make([]dto.Trend, len(staticTrends))
	copy(trends, staticTrends)

	return &dto.DashboardResponse{
		RecentMessages: recent,
		UnreadMessages: unread,
		TotalVisits:    total,
		UniqueVisitors: unique,
		Trends:         trends,
	}, nil
}
