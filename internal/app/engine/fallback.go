package engine

import (
	"strings"

	"github.com/guildday/guildday/internal/domain"
)

// TitleCompletes decides quest completion from the quest title alone.
// Legacy path for quests created before structured rules existed; new
// templates always carry an explicit completion rule. Titles matching
// no heuristic are never auto-completed.
func TitleCompletes(title string, log domain.ActivityLog) bool {
	t := strings.ToLower(title)

	// Mandatory proxies
	if strings.HasPrefix(t, "move:") {
		return log.Steps >= 7000
	}
	if strings.HasPrefix(t, "train:") {
		return log.WorkoutDone
	}
	if strings.HasPrefix(t, "learn:") {
		return log.LearningMinutes >= 20
	}
	if strings.HasPrefix(t, "hunt:") {
		return log.Convos >= 5 || log.Appts >= 1 || (log.Calls >= 20 && log.Texts >= 40)
	}

	// Fitness
	if strings.Contains(t, "workout") || strings.Contains(t, "train") {
		return log.WorkoutDone
	}
	if strings.Contains(t, "10k steps") || strings.Contains(t, "10,000 steps") {
		return log.Steps >= 10000
	}

	// Business
	if strings.Contains(t, "5 convos") {
		return log.Convos >= 5
	}
	if strings.Contains(t, "1 appt") || strings.Contains(t, "appointment") {
		return log.Appts >= 1
	}
	if strings.Contains(t, "content") {
		return log.ContentDone
	}

	// Learning
	if strings.Contains(t, "20 min") || strings.Contains(t, "study") {
		return log.LearningMinutes >= 20
	}

	return false
}
