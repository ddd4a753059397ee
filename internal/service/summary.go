package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/and161185/proglo/internal/model"
)

// sleepAverageWindow is how many recent nights the dashboard averages.
const sleepAverageWindow = 7

// Summary is the dashboard view of the current user.
type Summary struct {
	User                model.User       `json:"user"`
	WeekActivities      int              `json:"week_activities"`
	WeekActivityMinutes int              `json:"week_activity_minutes"`
	WeekCaloriesBurned  int              `json:"week_calories_burned"`
	LatestBMI           *model.BMIRecord `json:"latest_bmi,omitempty"`
	SleepAverageHours   float64          `json:"sleep_average_hours"`
	SleepAverageQuality string           `json:"sleep_average_quality,omitempty"`
	WaterTodayML        int              `json:"water_today_ml"`
	MealsToday          int              `json:"meals_today"`
	GoalsTotal          int              `json:"goals_total"`
	GoalsCompleted      int              `json:"goals_completed"`
}

// SummaryService aggregates tracked data for the dashboard.
type SummaryService interface {
	Summary(ctx context.Context) (Summary, error)
}

type SummaryServiceImpl struct {
	tracking TrackingService
	goals    GoalService
	auth     Authenticator
	now      func() time.Time
}

var _ SummaryService = (*SummaryServiceImpl)(nil)

// NewSummaryService constructs SummaryService.
func NewSummaryService(auth Authenticator, tracking TrackingService, goals GoalService) *SummaryServiceImpl {
	return &SummaryServiceImpl{auth: auth, tracking: tracking, goals: goals, now: time.Now}
}

// Summary computes totals for the last seven days (today included), the latest BMI,
// the average of the most recent nights and today's intake.
func (s *SummaryServiceImpl) Summary(ctx context.Context) (Summary, error) {
	u, err := requireUser(ctx, s.auth)
	if err != nil {
		return Summary{}, err
	}
	now := s.now().In(time.Local)
	today := now.Format(model.DateLayout)
	weekStart := now.AddDate(0, 0, -6).Format(model.DateLayout)
	// DateLayout sorts lexicographically in date order.
	inWeek := func(d string) bool { return d >= weekStart && d <= today }

	out := Summary{User: u}

	acts, err := s.tracking.Activities(ctx)
	if err != nil {
		return Summary{}, err
	}
	for _, a := range acts {
		if !inWeek(a.Date) {
			continue
		}
		out.WeekActivities++
		out.WeekActivityMinutes += a.Duration
		if a.CaloriesBurned != nil {
			out.WeekCaloriesBurned += *a.CaloriesBurned
		}
	}

	bmis, err := s.tracking.BMIHistory(ctx)
	if err != nil {
		return Summary{}, err
	}
	for i := range bmis {
		if out.LatestBMI == nil || bmis[i].Date >= out.LatestBMI.Date {
			out.LatestBMI = &bmis[i]
		}
	}

	sleep, err := s.tracking.SleepHistory(ctx)
	if err != nil {
		return Summary{}, err
	}
	sort.SliceStable(sleep, func(i, j int) bool { return sleep[i].Date > sleep[j].Date })
	if len(sleep) > sleepAverageWindow {
		sleep = sleep[:sleepAverageWindow]
	}
	if len(sleep) > 0 {
		var total float64
		for _, r := range sleep {
			total += r.HoursSlept
		}
		avg := total / float64(len(sleep))
		out.SleepAverageHours = math.Round(avg*10) / 10
		out.SleepAverageQuality = model.SleepQuality(avg)
	}

	water, err := s.tracking.WaterHistory(ctx)
	if err != nil {
		return Summary{}, err
	}
	for _, w := range water {
		if w.Date == today {
			out.WaterTodayML += w.Amount
		}
	}

	meals, err := s.tracking.Meals(ctx)
	if err != nil {
		return Summary{}, err
	}
	for _, m := range meals {
		if m.Date == today {
			out.MealsToday++
		}
	}

	goals, err := s.goals.Goals(ctx)
	if err != nil {
		return Summary{}, err
	}
	out.GoalsTotal = len(goals)
	for _, g := range goals {
		if g.Completed {
			out.GoalsCompleted++
		}
	}
	return out, nil
}
