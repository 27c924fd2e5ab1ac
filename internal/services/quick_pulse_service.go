package services

import (
	"errors"
	"time"

	"github.com/lifelag/lifelag/internal/models"
)

var ErrQuickPulseNoCheckin = errors.New("quick pulse requires a checkin")

// Three points are enough for the two-step trend checks.
const quickPulseHistoryDepth = 3

type QuickPulseCheckinReader interface {
	ListRecentByUser(userID uint, limit int) ([]models.Checkin, error)
}

type QuickPulseStatus struct {
	Show             bool      `json:"show"`
	Eligible         bool      `json:"eligible"`
	MiddleOfWeek     bool      `json:"middleOfWeek"`
	Dismissed        bool      `json:"dismissed"`
	LatestCheckinID  uint      `json:"latestCheckinId,omitempty"`
	WeakestDimension Dimension `json:"weakestDimension,omitempty"`
}

type QuickPulseService struct {
	checkins QuickPulseCheckinReader
	now      func() time.Time
}

func NewQuickPulseService(checkins QuickPulseCheckinReader, now func() time.Time) *QuickPulseService {
	if now == nil {
		now = time.Now
	}
	return &QuickPulseService{checkins: checkins, now: now}
}

// Status reports whether the mid-week pulse should be surfaced.
// dismissedCheckinID is the check-in the current session already dismissed
// the pulse for, or zero.
func (service *QuickPulseService) Status(userID uint, dismissedCheckinID uint) (QuickPulseStatus, error) {
	recent, err := service.recentSummaries(userID)
	if err != nil {
		return QuickPulseStatus{}, err
	}
	if len(recent) == 0 {
		return QuickPulseStatus{}, nil
	}

	latest := recent[0]
	status := QuickPulseStatus{
		Eligible:         ShouldShowQuickPulse(recent),
		MiddleOfWeek:     IsMiddleOfWeek(latest.CreatedAt, service.now()),
		Dismissed:        dismissedCheckinID != 0 && dismissedCheckinID == latest.ID,
		LatestCheckinID:  latest.ID,
		WeakestDimension: latest.WeakestDimension,
	}
	status.Show = status.Eligible && status.MiddleOfWeek && !status.Dismissed
	return status, nil
}

func (service *QuickPulseService) Respond(userID uint, rawResponse string) (MicroAdjustment, error) {
	response, err := ParseQuickPulseResponse(rawResponse)
	if err != nil {
		return MicroAdjustment{}, err
	}

	recent, err := service.recentSummaries(userID)
	if err != nil {
		return MicroAdjustment{}, err
	}
	if len(recent) == 0 {
		return MicroAdjustment{}, ErrQuickPulseNoCheckin
	}

	latest := recent[0]
	return MicroAdjustmentFor(response, latest.WeakestDimension, latest.LagScore), nil
}

func (service *QuickPulseService) recentSummaries(userID uint) ([]CheckinSummary, error) {
	checkins, err := service.checkins.ListRecentByUser(userID, quickPulseHistoryDepth)
	if err != nil {
		return nil, ErrCheckinHistoryFailed
	}
	return SummariesFromCheckins(checkins), nil
}
