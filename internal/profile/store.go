package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/vitalstats/internal/keyval"
	"github.com/2beens/vitalstats/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

var (
	ErrNoProfile     = errors.New("no profile set")
	ErrGoalNotFound  = errors.New("fitness goal not found")
	ErrInvalidParams = errors.New("invalid profile params")
)

// goal reported before any profile exists
const DefaultDailyCalorieGoal = 2000

type gateway interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

type idGenerator interface {
	NewID() string
}

// Store owns the single user profile: loads it from the gateway,
// persists every mutation, and derives BMI and the calorie goal.
type Store struct {
	store   gateway
	idGen   idGenerator
	now     func() time.Time
	mutex   sync.RWMutex
	profile *UserProfile
}

func NewStore(store gateway, idGen idGenerator) *Store {
	return &Store{
		store: store,
		idGen: idGen,
		now:   time.Now,
	}
}

// Load reads the persisted profile. Missing or corrupt bytes mean
// "no profile yet", never an error.
func (s *Store) Load(ctx context.Context) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "profileStore.load")
	defer span.End()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	data, err := s.store.Load(ctx, keyval.KeyProfile)
	if err != nil {
		if !errors.Is(err, keyval.ErrKeyNotFound) {
			log.Warnf("profile store: load: %s", err)
		}
		s.profile = nil
		return
	}

	var p UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warnf("profile store: corrupt profile bytes, starting fresh: %s", err)
		s.profile = nil
		return
	}

	s.profile = &p
	log.Debugf("profile store: loaded profile for %s", p.Name)
}

type CreateParams struct {
	Name          string
	Age           int
	HeightCm      float64
	WeightKg      float64
	ActivityLevel ActivityLevel
	DietaryGoal   DietaryGoal
}

func (s *Store) Create(ctx context.Context, params CreateParams) (*UserProfile, error) {
	if params.Name == "" || params.Age <= 0 || params.HeightCm <= 0 || params.WeightKg <= 0 {
		return nil, ErrInvalidParams
	}

	p := &UserProfile{
		Name:                params.Name,
		Age:                 params.Age,
		HeightCm:            params.HeightCm,
		WeightKg:            params.WeightKg,
		ActivityLevel:       params.ActivityLevel,
		DietaryGoal:         params.DietaryGoal,
		DietaryRestrictions: []string{},
		FitnessGoals:        []FitnessGoal{},
		JoinDate:            s.now().UTC(),
	}
	p.recalcDailyCalorieGoal()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.profile = p
	if err := s.persist(ctx); err != nil {
		return p, err
	}
	return p, nil
}

// Update replaces the profile in place. The daily calorie goal is
// rederived from the BMR inputs, so direct edits to it never stick.
func (s *Store) Update(ctx context.Context, p UserProfile) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.profile == nil {
		return ErrNoProfile
	}

	p.recalcDailyCalorieGoal()
	s.profile = &p
	return s.persist(ctx)
}

func (s *Store) Current() (UserProfile, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.profile == nil {
		return UserProfile{}, false
	}
	return *s.profile, true
}

func (s *Store) IsSet() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.profile != nil
}

func (s *Store) DailyCalorieGoal() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.profile == nil {
		return DefaultDailyCalorieGoal
	}
	return s.profile.DailyCalorieGoal
}

func (s *Store) BMI() (float64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.profile == nil {
		return 0, ErrNoProfile
	}
	return s.profile.BMI(), nil
}

func (s *Store) BMICategory() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.profile == nil {
		return "Unknown"
	}
	return s.profile.BMICategory()
}

func (s *Store) AddFitnessGoal(ctx context.Context, goal FitnessGoal) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.profile == nil {
		return ErrNoProfile
	}

	if goal.ID == "" {
		goal.ID = s.idGen.NewID()
	}
	s.profile.FitnessGoals = append(s.profile.FitnessGoals, goal)
	return s.persist(ctx)
}

func (s *Store) UpdateFitnessGoal(ctx context.Context, goal FitnessGoal) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.profile == nil {
		return ErrNoProfile
	}

	for i := range s.profile.FitnessGoals {
		if s.profile.FitnessGoals[i].ID == goal.ID {
			s.profile.FitnessGoals[i] = goal
			return s.persist(ctx)
		}
	}
	return ErrGoalNotFound
}

func (s *Store) RemoveFitnessGoal(ctx context.Context, goalID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.profile == nil {
		return ErrNoProfile
	}

	goals := s.profile.FitnessGoals[:0]
	for _, g := range s.profile.FitnessGoals {
		if g.ID != goalID {
			goals = append(goals, g)
		}
	}
	s.profile.FitnessGoals = goals
	return s.persist(ctx)
}

// AddDietaryRestriction keeps the restriction list a set.
func (s *Store) AddDietaryRestriction(ctx context.Context, restriction string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.profile == nil {
		return ErrNoProfile
	}

	for _, r := range s.profile.DietaryRestrictions {
		if r == restriction {
			return nil
		}
	}
	s.profile.DietaryRestrictions = append(s.profile.DietaryRestrictions, restriction)
	return s.persist(ctx)
}

func (s *Store) RemoveDietaryRestriction(ctx context.Context, restriction string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.profile == nil {
		return ErrNoProfile
	}

	restrictions := s.profile.DietaryRestrictions[:0]
	for _, r := range s.profile.DietaryRestrictions {
		if r != restriction {
			restrictions = append(restrictions, r)
		}
	}
	s.profile.DietaryRestrictions = restrictions
	return s.persist(ctx)
}

// Reset drops the profile entirely, in memory and on the gateway.
func (s *Store) Reset(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.profile = nil
	if err := s.store.Delete(ctx, keyval.KeyProfile); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// CreateDemo sets up the demo user used by fresh installs.
func (s *Store) CreateDemo(ctx context.Context) (*UserProfile, error) {
	return s.Create(ctx, CreateParams{
		Name:          "Demo User",
		Age:           28,
		HeightCm:      175,
		WeightKg:      70,
		ActivityLevel: ModeratelyActive,
		DietaryGoal:   MaintainWeight,
	})
}

// persist must be called with the write lock held. A failed write
// is reported but the in-memory profile stays authoritative.
func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := s.store.Save(ctx, keyval.KeyProfile, data); err != nil {
		log.Warnf("profile store: persist: %s", err)
		return fmt.Errorf("persist profile: %w", err)
	}
	return nil
}
