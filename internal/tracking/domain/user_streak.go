package domain

import (
	"errors"
	"time"

	sharedDomain "github.com/felixgeelhaar/cadence/internal/shared/domain"
	"github.com/google/uuid"
)

var ErrInvalidWeeklyGoal = errors.New("weekly goal must be positive")

// UserStreak is the per-user persisted streak document: the active-day
// history plus the derived current/longest streak. Two request paths and
// a batch refresher may update it concurrently without locks; updates are
// idempotent unions so last-writer-wins races self-heal on the next
// recomputation.
type UserStreak struct {
	sharedDomain.BaseAggregateRoot
	userID          uuid.UUID
	history         StreakHistory
	current         int
	longest         int
	lastActiveDay   DayKey
	weeklyGoalHours float64
}

// NewUserStreak creates an empty streak document for a user.
func NewUserStreak(userID uuid.UUID, weeklyGoalHours float64) (*UserStreak, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingUser
	}
	if weeklyGoalHours <= 0 {
		return nil, ErrInvalidWeeklyGoal
	}
	return &UserStreak{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		history:           make(StreakHistory, 0),
		weeklyGoalHours:   weeklyGoalHours,
	}, nil
}

// Getters
func (s *UserStreak) UserID() uuid.UUID        { return s.userID }
func (s *UserStreak) History() StreakHistory   { return s.history }
func (s *UserStreak) Current() int             { return s.current }
func (s *UserStreak) Longest() int             { return s.longest }
func (s *UserStreak) LastActiveDay() DayKey    { return s.lastActiveDay }
func (s *UserStreak) WeeklyGoalHours() float64 { return s.weeklyGoalHours }

// SetWeeklyGoal updates the weekly hours target.
func (s *UserStreak) SetWeeklyGoal(hours float64) error {
	if hours <= 0 {
		return ErrInvalidWeeklyGoal
	}
	s.weeklyGoalHours = hours
	s.Touch()
	return nil
}

// Apply unions newly observed active days into the history and
// recomputes the streaks for now. Emits StreakUpdated only when the
// derived state actually changed, so idempotent re-applications stay
// silent.
func (s *UserStreak) Apply(now time.Time, newlyActive []DayKey) StreakResult {
	result := UpdateStreak(now, s.history, newlyActive, s.longest, s.lastActiveDay)

	changed := result.Current != s.current ||
		result.Longest != s.longest ||
		result.LastActiveDay != s.lastActiveDay ||
		len(result.History) != len(s.history)

	s.history = result.History
	s.current = result.Current
	s.longest = result.Longest
	s.lastActiveDay = result.LastActiveDay
	s.Touch()

	if changed {
		s.AddDomainEvent(NewStreakUpdated(s))
	}

	return result
}

// RehydrateUserStreak recreates a streak document from persisted state
// without generating events.
func RehydrateUserStreak(
	id uuid.UUID,
	userID uuid.UUID,
	history StreakHistory,
	current int,
	longest int,
	lastActiveDay DayKey,
	weeklyGoalHours float64,
	createdAt time.Time,
	updatedAt time.Time,
) *UserStreak {
	return &UserStreak{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(
			sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		),
		userID:          userID,
		history:         history,
		current:         current,
		longest:         longest,
		lastActiveDay:   lastActiveDay,
		weeklyGoalHours: weeklyGoalHours,
	}
}
