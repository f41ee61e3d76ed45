package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/2beens/vitalstats/internal/keyval"
	"github.com/2beens/vitalstats/internal/telemetry/tracing"
	"github.com/2beens/vitalstats/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var ErrMealNotFound = errors.New("meal not found")

type gateway interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

type idGenerator interface {
	NewID() string
}

// Totals is the nutrient sum over a set of meals.
type Totals struct {
	Calories int
	Protein  float64
	Carbs    float64
	Fat      float64
	Fiber    float64
	Sugar    float64
}

type MonthlySummary struct {
	Calories int
	Protein  float64
	Carbs    float64
	Fat      float64
}

// Ledger owns the meal collection and its derived analytics. Every
// mutation updates memory first, persists the whole collection, and
// refreshes the cache of meals on the selected day.
type Ledger struct {
	store   gateway
	idGen   idGenerator
	loc     *time.Location
	now     func() time.Time
	catalog []Food

	mutex        sync.RWMutex
	meals        []Meal
	todaysMeals  []Meal
	selectedDate time.Time
}

func NewLedger(store gateway, idGen idGenerator, loc *time.Location) *Ledger {
	l := &Ledger{
		store:   store,
		idGen:   idGen,
		loc:     loc,
		now:     time.Now,
		catalog: SampleFoods(),
	}
	l.selectedDate = l.now()
	return l
}

// Load reads the persisted meal collection. Missing or corrupt bytes
// fall back to the demo dataset so the dashboard is never empty.
func (l *Ledger) Load(ctx context.Context) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "nutritionLedger.load")
	defer span.End()

	l.mutex.Lock()
	defer l.mutex.Unlock()

	data, err := l.store.Load(ctx, keyval.KeyMeals)
	if err != nil {
		if !errors.Is(err, keyval.ErrKeyNotFound) {
			log.Warnf("nutrition ledger: load: %s", err)
		}
		if err := l.seedDemoMeals(ctx); err != nil {
			log.Warnf("nutrition ledger: seed demo meals: %s", err)
		}
		l.refreshTodaysMeals()
		return
	}

	var meals []Meal
	if err := json.Unmarshal(data, &meals); err != nil {
		log.Warnf("nutrition ledger: corrupt meals bytes, reseeding: %s", err)
		if err := l.seedDemoMeals(ctx); err != nil {
			log.Warnf("nutrition ledger: seed demo meals: %s", err)
		}
		l.refreshTodaysMeals()
		return
	}

	l.meals = meals
	l.refreshTodaysMeals()
	log.Debugf("nutrition ledger: loaded %d meals", len(meals))
}

func (l *Ledger) Add(ctx context.Context, meal Meal) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if meal.ID == "" {
		meal.ID = l.idGen.NewID()
	}
	l.meals = append(l.meals, meal)
	l.refreshTodaysMeals()
	return l.persist(ctx)
}

func (l *Ledger) Update(ctx context.Context, meal Meal) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	for i := range l.meals {
		if l.meals[i].ID == meal.ID {
			l.meals[i] = meal
			l.refreshTodaysMeals()
			return l.persist(ctx)
		}
	}
	return ErrMealNotFound
}

func (l *Ledger) Delete(ctx context.Context, mealID string) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	meals := l.meals[:0]
	for _, m := range l.meals {
		if m.ID != mealID {
			meals = append(meals, m)
		}
	}
	l.meals = meals
	l.refreshTodaysMeals()
	return l.persist(ctx)
}

// AddQuickMeal logs a meal dated at the selected day.
func (l *Ledger) AddQuickMeal(ctx context.Context, name string, foods []Food, mealType MealType) error {
	l.mutex.Lock()
	date := l.selectedDate
	l.mutex.Unlock()

	return l.Add(ctx, Meal{
		Name:     name,
		Foods:    foods,
		MealType: mealType,
		Date:     date,
	})
}

// DuplicateMeal logs a copy of the given meal under a fresh ID,
// re-dated to the selected day.
func (l *Ledger) DuplicateMeal(ctx context.Context, meal Meal) error {
	l.mutex.Lock()
	date := l.selectedDate
	l.mutex.Unlock()

	return l.Add(ctx, Meal{
		Name:     meal.Name + " (Copy)",
		Foods:    meal.Foods,
		MealType: meal.MealType,
		Date:     date,
		Notes:    meal.Notes,
	})
}

func (l *Ledger) Meals() []Meal {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	meals := make([]Meal, len(l.meals))
	copy(meals, l.meals)
	return meals
}

func (l *Ledger) TodaysMeals() []Meal {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	meals := make([]Meal, len(l.todaysMeals))
	copy(meals, l.todaysMeals)
	return meals
}

func (l *Ledger) SelectedDate() time.Time {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.selectedDate
}

// DailyTotals sums the nutrients over meals on the given calendar day.
func (l *Ledger) DailyTotals(date time.Time) Totals {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	var totals Totals
	for i := range l.meals {
		if pkg.SameCalendarDay(l.meals[i].Date, date, l.loc) {
			addMealTotals(&totals, &l.meals[i])
		}
	}
	return totals
}

// TodaysTotals sums the nutrients over the selected day.
func (l *Ledger) TodaysTotals() Totals {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	var totals Totals
	for i := range l.todaysMeals {
		addMealTotals(&totals, &l.todaysMeals[i])
	}
	return totals
}

func addMealTotals(totals *Totals, m *Meal) {
	totals.Calories += m.TotalCalories()
	totals.Protein += m.TotalProtein()
	totals.Carbs += m.TotalCarbs()
	totals.Fat += m.TotalFat()
	totals.Fiber += m.TotalFiber()
	totals.Sugar += m.TotalSugar()
}

// CalorieProgress is today's calories over the goal, clamped to [0,1].
// A non-positive goal yields 0 instead of a division by zero.
func (l *Ledger) CalorieProgress(goal int) float64 {
	if goal <= 0 {
		return 0
	}
	return clampProgress(float64(l.TodaysTotals().Calories) / float64(goal))
}

func (l *Ledger) ProteinProgress(goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return clampProgress(l.TodaysTotals().Protein / goal)
}

func (l *Ledger) CarbsProgress(goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return clampProgress(l.TodaysTotals().Carbs / goal)
}

func (l *Ledger) FatProgress(goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return clampProgress(l.TodaysTotals().Fat / goal)
}

func clampProgress(p float64) float64 {
	if p > 1 {
		return 1
	}
	return p
}

func (l *Ledger) MealsByType(mealType MealType) []Meal {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	var meals []Meal
	for _, m := range l.todaysMeals {
		if m.MealType == mealType {
			meals = append(meals, m)
		}
	}
	return meals
}

func (l *Ledger) CaloriesForType(mealType MealType) int {
	total := 0
	for _, m := range l.MealsByType(mealType) {
		total += m.TotalCalories()
	}
	return total
}

// WeeklyCalorieAverage averages the daily calorie totals over the
// 7 calendar days ending at the selected day. Days without any meal
// are left out of the denominator, not counted as zero.
func (l *Ledger) WeeklyCalorieAverage(ctx context.Context) float64 {
	_, span := tracing.GlobalTracer.Start(ctx, "nutritionLedger.weeklyCalorieAverage")
	defer span.End()

	l.mutex.RLock()
	defer l.mutex.RUnlock()

	windowStart := pkg.DaysAgo(l.selectedDate, 6, l.loc)
	windowEnd := pkg.DaysAgo(l.selectedDate, -1, l.loc)

	day2calories := make(map[time.Time]int)
	for i := range l.meals {
		m := &l.meals[i]
		if m.Date.Before(windowStart) || !m.Date.Before(windowEnd) {
			continue
		}
		day := pkg.StartOfDay(m.Date, l.loc)
		day2calories[day] += m.TotalCalories()
	}

	if len(day2calories) == 0 {
		return 0
	}

	total := 0
	for _, calories := range day2calories {
		total += calories
	}
	return float64(total) / float64(len(day2calories))
}

// MonthlySummary sums nutrients over the trailing calendar month
// ending at the selected day.
func (l *Ledger) MonthlySummary(ctx context.Context) MonthlySummary {
	_, span := tracing.GlobalTracer.Start(ctx, "nutritionLedger.monthlySummary")
	defer span.End()

	l.mutex.RLock()
	defer l.mutex.RUnlock()

	monthAgo := l.selectedDate.AddDate(0, -1, 0)

	var summary MonthlySummary
	for i := range l.meals {
		m := &l.meals[i]
		if m.Date.Before(monthAgo) || m.Date.After(l.selectedDate) {
			continue
		}
		summary.Calories += m.TotalCalories()
		summary.Protein += m.TotalProtein()
		summary.Carbs += m.TotalCarbs()
		summary.Fat += m.TotalFat()
	}
	return summary
}

func (l *Ledger) SelectPreviousDay() {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.selectedDate = l.selectedDate.AddDate(0, 0, -1)
	l.refreshTodaysMeals()
}

func (l *Ledger) SelectNextDay() {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.selectedDate = l.selectedDate.AddDate(0, 0, 1)
	l.refreshTodaysMeals()
}

func (l *Ledger) SelectToday() {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.selectedDate = l.now()
	l.refreshTodaysMeals()
}

// FilteredFoods searches the reference catalog, not the logged meals.
func (l *Ledger) FilteredFoods(query string) []Food {
	return FilterFoods(l.catalog, query)
}

func (l *Ledger) Catalog() []Food {
	return l.catalog
}

func (l *Ledger) ClearAll(ctx context.Context) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.meals = []Meal{}
	l.refreshTodaysMeals()
	return l.persist(ctx)
}

func (l *Ledger) ResetToDefaults(ctx context.Context) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.meals = nil
	err := l.seedDemoMeals(ctx)
	l.selectedDate = l.now()
	l.refreshTodaysMeals()
	return err
}

// refreshTodaysMeals must be called with the lock held.
func (l *Ledger) refreshTodaysMeals() {
	var todays []Meal
	for _, m := range l.meals {
		if pkg.SameCalendarDay(m.Date, l.selectedDate, l.loc) {
			todays = append(todays, m)
		}
	}
	sort.SliceStable(todays, func(i, j int) bool {
		return todays[i].Date.Before(todays[j].Date)
	})
	l.todaysMeals = todays
}

// persist must be called with the write lock held. A failed write is
// reported but the in-memory collection stays authoritative.
func (l *Ledger) persist(ctx context.Context) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "nutritionLedger.persist")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("meals.count", len(l.meals)))

	data, err := json.Marshal(l.meals)
	if err != nil {
		return fmt.Errorf("marshal meals: %w", err)
	}
	if err := l.store.Save(ctx, keyval.KeyMeals, data); err != nil {
		log.Warnf("nutrition ledger: persist: %s", err)
		return fmt.Errorf("persist meals: %w", err)
	}
	return nil
}

// seedDemoMeals must be called with the lock held.
func (l *Ledger) seedDemoMeals(ctx context.Context) error {
	catalog := l.catalog
	today := l.now()
	yesterday := today.AddDate(0, 0, -1)

	l.meals = []Meal{
		{
			ID:       l.idGen.NewID(),
			Name:     "Healthy Breakfast",
			Foods:    []Food{catalog[0], catalog[6]}, // apple, greek yogurt
			MealType: Breakfast,
			Date:     today,
		},
		{
			ID:       l.idGen.NewID(),
			Name:     "Power Lunch",
			Foods:    []Food{catalog[2], catalog[3], catalog[4]}, // chicken, rice, broccoli
			MealType: Lunch,
			Date:     today,
		},
		{
			ID:       l.idGen.NewID(),
			Name:     "Yesterday's Dinner",
			Foods:    []Food{catalog[5], catalog[3]}, // salmon, rice
			MealType: Dinner,
			Date:     yesterday,
		},
	}

	log.Debugf("nutrition ledger: seeded %d demo meals", len(l.meals))
	return l.persist(ctx)
}
