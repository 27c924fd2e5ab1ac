package services

import (
	"errors"
	"math"

	"github.com/lifelag/lifelag/internal/models"
)

var ErrCheckinAnswersInvalid = errors.New("checkin answers invalid")

const (
	minAnswerValue = 1
	maxAnswerValue = 5

	// Maximal drift (all answers 1) lands on 80 rather than 100.
	lagScoreSoftening = 0.8
)

type Dimension string

const (
	DimensionEnergy         Dimension = models.DimensionEnergy
	DimensionSleep          Dimension = models.DimensionSleep
	DimensionStructure      Dimension = models.DimensionStructure
	DimensionInitiation     Dimension = models.DimensionInitiation
	DimensionEngagement     Dimension = models.DimensionEngagement
	DimensionSustainability Dimension = models.DimensionSustainability
)

// CanonicalDimensions is the fixed order used for tie-breaks.
var CanonicalDimensions = [...]Dimension{
	DimensionEnergy,
	DimensionSleep,
	DimensionStructure,
	DimensionInitiation,
	DimensionEngagement,
	DimensionSustainability,
}

func IsValidDimension(raw string) bool {
	for _, dimension := range CanonicalDimensions {
		if string(dimension) == raw {
			return true
		}
	}
	return false
}

type DriftCategory string

const (
	DriftAligned  DriftCategory = "aligned"
	DriftMild     DriftCategory = "mild"
	DriftModerate DriftCategory = "moderate"
	DriftHeavy    DriftCategory = "heavy"
	DriftCritical DriftCategory = "critical"
)

// Severity orders categories from aligned (0) to critical (4). Unknown
// values report -1.
func (category DriftCategory) Severity() int {
	switch category {
	case DriftAligned:
		return 0
	case DriftMild:
		return 1
	case DriftModerate:
		return 2
	case DriftHeavy:
		return 3
	case DriftCritical:
		return 4
	default:
		return -1
	}
}

type Answers struct {
	Energy         int `json:"energy" form:"energy" query:"energy"`
	Sleep          int `json:"sleep" form:"sleep" query:"sleep"`
	Structure      int `json:"structure" form:"structure" query:"structure"`
	Initiation     int `json:"initiation" form:"initiation" query:"initiation"`
	Engagement     int `json:"engagement" form:"engagement" query:"engagement"`
	Sustainability int `json:"sustainability" form:"sustainability" query:"sustainability"`
}

func (answers Answers) Value(dimension Dimension) int {
	switch dimension {
	case DimensionEnergy:
		return answers.Energy
	case DimensionSleep:
		return answers.Sleep
	case DimensionStructure:
		return answers.Structure
	case DimensionInitiation:
		return answers.Initiation
	case DimensionEngagement:
		return answers.Engagement
	case DimensionSustainability:
		return answers.Sustainability
	default:
		return 0
	}
}

// ValidateAnswers is the boundary check applied before answers reach the
// score engine. A zero value means the key was missing from the payload.
func ValidateAnswers(answers Answers) error {
	for _, dimension := range CanonicalDimensions {
		value := answers.Value(dimension)
		if value < minAnswerValue || value > maxAnswerValue {
			return ErrCheckinAnswersInvalid
		}
	}
	return nil
}

func CalculateLagScore(answers Answers) int {
	var totalDrift float64
	for _, dimension := range CanonicalDimensions {
		totalDrift += float64(maxAnswerValue-answers.Value(dimension)) / float64(maxAnswerValue-minAnswerValue)
	}
	averageDrift := totalDrift / float64(len(CanonicalDimensions))

	score := int(math.Round(averageDrift * 100 * lagScoreSoftening))
	return clampInt(score, 0, 100)
}

func DriftCategoryForScore(score int) DriftCategory {
	switch {
	case score >= 0 && score <= 19:
		return DriftAligned
	case score >= 20 && score <= 34:
		return DriftMild
	case score >= 35 && score <= 54:
		return DriftModerate
	case score >= 55 && score <= 74:
		return DriftHeavy
	default:
		return DriftCritical
	}
}

func WeakestDimension(answers Answers) Dimension {
	weakest := CanonicalDimensions[0]
	lowest := answers.Value(weakest)
	for _, dimension := range CanonicalDimensions[1:] {
		if value := answers.Value(dimension); value < lowest {
			weakest = dimension
			lowest = value
		}
	}
	return weakest
}

func clampInt(value int, low int, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
