// Package progress estimates how far along the profile is and decides which
// encouragement and milestone messages to show.
package progress

import (
	"fmt"
	"math"

	"github.com/jonathan/resume-wizard/internal/types"
)

const (
	// totalPoints is the fixed denominator of Compute.
	totalPoints = 6
	// skillsForPoint is the skills count that earns the skills point.
	skillsForPoint = 5
	// estimateFields is the number of fields TimeEstimate counts.
	estimateFields = 6
)

// Compute returns completion as an integer percentage. Four basic info fields
// (headline excluded), a non-empty experience list and at least five skills
// are each worth one of six points.
func Compute(info types.BasicInfo, experiences []types.WorkExperience, skills []types.Skill) int {
	earned := 0
	for _, v := range []string{info.FullName, info.Email, info.Phone, info.Location} {
		if v != "" {
			earned++
		}
	}
	if len(experiences) > 0 {
		earned++
	}
	if len(skills) >= skillsForPoint {
		earned++
	}
	return int(math.Round(100 * float64(earned) / totalPoints))
}

// Encouragement maps a progress value to a message, checking thresholds from
// the highest down.
func Encouragement(progress int) string {
	switch {
	case progress >= 100:
		return "Perfect! Your profile is complete."
	case progress >= 75:
		return "Almost done! Your profile is looking strong."
	case progress >= 50:
		return "Halfway there! Keep going."
	case progress >= 25:
		return "You're off to a great start!"
	case progress > 0:
		return "Great! Let's build your profile."
	default:
		return "Let's get started!"
	}
}

// Remaining counts the unfilled fields among full name, email, phone,
// location, headline and experience presence.
func Remaining(info types.BasicInfo, experiences []types.WorkExperience) int {
	done := 0
	for _, v := range []string{info.FullName, info.Email, info.Phone, info.Location, info.Headline} {
		if v != "" {
			done++
		}
	}
	if len(experiences) > 0 {
		done++
	}
	return estimateFields - done
}

// TimeEstimate describes the remaining work. Beyond three remaining fields the
// coarse estimate is chosen by progress, not by the field count.
func TimeEstimate(info types.BasicInfo, experiences []types.WorkExperience, progress int) string {
	switch remaining := Remaining(info, experiences); {
	case remaining == 0:
		return "All done!"
	case remaining == 1:
		return "Just 1 more field to go"
	case remaining <= 3:
		return fmt.Sprintf("Just %d more fields to go", remaining)
	case progress >= 50:
		return "You're doing great, 2 minutes left"
	default:
		return "This will take about 5 minutes"
	}
}
