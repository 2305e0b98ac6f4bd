package services

import (
	"context"
	"log"
	"time"

	"staffing-server/api/footfall"
	"staffing-server/calendar"
	"staffing-server/config"
	redisdao "staffing-server/dao/redis"
	"staffing-server/historical"
	"staffing-server/metrics"
	"staffing-server/models"
	"staffing-server/recommend"
	"staffing-server/traffic"
)

// RecommendationOptions carry per-request overrides for the staffing formula.
type RecommendationOptions struct {
	DesiredAttention *float64
	GrowthFactor     *float64
	Unrounded        bool
}

// RecommendationService orchestrates a weekly recommendation: resolve the
// historical reference, fetch and aggregate traffic per day, and run the
// staffing calculator.
type RecommendationService struct {
	storeDao      *redisdao.RedisStoreDAO
	footfallAPI   footfall.FootfallAPI
	configService *HistoricalConfigService
	policy        traffic.Policy
	fetchTimeout  time.Duration
}

// NewRecommendationService constructs the service with its dependencies.
func NewRecommendationService(
	storeDao *redisdao.RedisStoreDAO,
	footfallAPI footfall.FootfallAPI,
	configService *HistoricalConfigService,
) *RecommendationService {
	return &RecommendationService{
		storeDao:      storeDao,
		footfallAPI:   footfallAPI,
		configService: configService,
		policy:        traffic.DefaultPolicy,
		fetchTimeout:  config.TRAFFIC_FETCH_TIMEOUT,
	}
}

// GetWeekRecommendation computes the staffing recommendation for every day
// of the target week. A failed traffic fetch degrades that day to simulated
// zero data and flags the result instead of failing the whole week.
func (s *RecommendationService) GetWeekRecommendation(
	ctx context.Context,
	storeID, weekLabel string,
	opts RecommendationOptions,
) (*models.RecommendationWeek, error) {
	store, err := s.storeDao.GetStore(storeID)
	if err != nil {
		return nil, err
	}
	dates, err := calendar.DatesOf(weekLabel)
	if err != nil {
		return nil, err
	}
	entry, err := s.configService.Resolve(ctx, storeID, weekLabel)
	if err != nil {
		return nil, err
	}

	params := recommend.Params{
		DesiredAttention: store.DesiredAttention,
		GrowthFactor:     store.GrowthFactor,
		Unrounded:        opts.Unrounded,
	}
	if opts.DesiredAttention != nil {
		params.DesiredAttention = *opts.DesiredAttention
	}
	if opts.GrowthFactor != nil {
		params.GrowthFactor = *opts.GrowthFactor
	}

	openHour, closeHour, err := recommend.OpenCloseHours(store)
	if err != nil {
		return nil, err
	}
	dayParams := recommend.DayParams{
		Params:       params,
		OpenHour:     openHour,
		CloseHour:    closeHour,
		MinimumStaff: store.MinimumStaff,
	}

	usedHistorical := false
	days := make([]models.RecommendationDay, 0, len(dates))
	for _, date := range dates {
		profile, reference := s.resolveDayProfile(ctx, storeID, date, entry)
		if reference != "" {
			usedHistorical = true
		}
		day, err := recommend.BuildDay(profile.Date, profile, dayParams)
		if err != nil {
			return nil, err
		}
		day.HistoricalReference = reference
		days = append(days, day)
	}

	week := recommend.BuildWeek(storeID, weekLabel, days)
	week.UsedHistoricalConfig = usedHistorical
	metrics.RecommendationsServedTotal.Inc()
	return &week, nil
}

// resolveDayProfile produces the traffic profile for one target date,
// together with a description of the historical reference used ("" when the
// day fell back to standard lookup).
func (s *RecommendationService) resolveDayProfile(
	ctx context.Context,
	storeID string,
	date time.Time,
	entry historical.Entry,
) (models.TrafficDay, string) {
	dateStr := date.Format(calendar.DATE_FORMAT)

	switch entry.Kind {
	case historical.KindWeekList:
		referenceDays := make([]models.TrafficDay, 0, len(entry.Weeks))
		for _, refWeek := range entry.Weeks {
			refDate, err := calendar.SameWeekdayIn(refWeek, date)
			if err != nil {
				continue // labels were validated when the config was decoded
			}
			referenceDays = append(referenceDays, s.fetchDay(ctx, storeID, refDate))
		}
		return traffic.Aggregate(dateStr, referenceDays, s.policy), entry.Describe()

	case historical.KindDayMapping:
		if refDateStr, ok := entry.ReferenceDateFor(dateStr); ok {
			if refDate, err := calendar.ParseDate(refDateStr); err == nil {
				day := s.fetchDay(ctx, storeID, refDate)
				day.Date = dateStr // passthrough of the mapped day onto the target
				return day, refDateStr
			}
		}
		// This single day is not configured: standard lookup.
		return s.fetchDay(ctx, storeID, date), ""

	default:
		return s.fetchDay(ctx, storeID, date), ""
	}
}

// fetchDay reads the traffic cache, falls back to the upstream service with
// a bounded timeout, and degrades to simulated zero data on failure.
func (s *RecommendationService) fetchDay(ctx context.Context, storeID string, date time.Time) models.TrafficDay {
	dateStr := date.Format(calendar.DATE_FORMAT)

	if cached, err := s.storeDao.GetTrafficDay(storeID, dateStr); err == nil && cached != nil {
		metrics.TrafficCacheHitsTotal.Inc()
		return *cached
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	start := time.Now()
	day, err := s.footfallAPI.GetDayTraffic(fetchCtx, storeID, dateStr)
	metrics.TrafficFetchDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		log.Printf("[RecommendationService] Traffic fetch failed for store=%s date=%s, substituting simulated data: %v",
			storeID, dateStr, err)
		metrics.TrafficFetchFailuresTotal.Inc()
		metrics.SimulatedDaysTotal.Inc()
		return traffic.SimulatedDay(dateStr)
	}

	if err := s.storeDao.SetTrafficDay(storeID, *day); err != nil {
		log.Printf("[RecommendationService] Failed to cache traffic for store=%s date=%s: %v", storeID, dateStr, err)
	}
	return *day
}
