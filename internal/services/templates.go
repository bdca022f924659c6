package services

import (
	"fmt"
	"strings"
	"time"

	"challengehub/internal/models"
)

// ChallengeTemplate is one entry of the static daily pool.
type ChallengeTemplate struct {
	Title        string
	Description  string
	Category     models.Category
	Difficulty   models.Difficulty
	Points       int
	Requirements []string
}

var photoSubjects = []string{"sunset", "flowers", "architecture", "street art", "shadows", "reflections", "patterns", "textures", "people", "animals", "food", "clouds", "water", "trees", "urban scenes"}
var fitnessActivities = []string{"walking", "jogging", "stretching", "yoga poses", "jumping jacks", "push-ups", "dancing", "stairs climbing", "cycling", "swimming"}
var learningTopics = []string{"astronomy", "marine biology", "ancient history", "quantum physics", "linguistics", "psychology", "philosophy", "art history", "geography", "mythology", "economics", "anthropology"}
var creativePrompts = []string{"childhood memory", "future invention", "magical object", "unlikely friendship", "time travel", "parallel universe", "superpower", "dream world", "abandoned place", "mysterious letter"}
var mindfulnessThemes = []string{"gratitude", "present moment", "breathing", "self-compassion", "kindness", "acceptance", "inner peace", "emotional awareness", "body awareness", "forgiveness"}
var codingProjects = []string{"calculator", "to-do app", "weather widget", "random quote generator", "color palette generator", "password generator", "unit converter", "expense tracker", "habit tracker", "timer app"}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// dailyTemplates builds the full template pool. The pool is static data: the
// same index always yields the same challenge.
func dailyTemplates() []ChallengeTemplate {
	var out []ChallengeTemplate

	for i, subject := range photoSubjects {
		difficulty, points := models.DifficultyEasy, 10
		switch i % 3 {
		case 1:
			difficulty, points = models.DifficultyMedium, 15
		case 2:
			difficulty, points = models.DifficultyHard, 20
		}
		out = append(out, ChallengeTemplate{
			Title:       fmt.Sprintf("%s Photography", titleCase(subject)),
			Description: fmt.Sprintf("Capture an interesting photo featuring %s. Focus on composition, lighting, and creative perspective.", subject),
			Category:    models.CategoryPhoto,
			Difficulty:  difficulty,
			Points:      points,
			Requirements: []string{
				"Photo must be taken today",
				fmt.Sprintf("Focus on %s as the main subject", subject),
				"Consider lighting and composition",
				"Original content only",
			},
		})
	}

	for i, activity := range fitnessActivities {
		difficulty := models.DifficultyEasy
		switch i % 3 {
		case 1:
			difficulty = models.DifficultyMedium
		case 2:
			difficulty = models.DifficultyHard
		}
		minutes := 10 + i*2
		out = append(out, ChallengeTemplate{
			Title:       fmt.Sprintf("%s Challenge", titleCase(activity)),
			Description: fmt.Sprintf("Complete a %s session for %d minutes. Focus on form and consistency.", activity, minutes),
			Category:    models.CategoryFitness,
			Difficulty:  difficulty,
			Points:      12 + i*2,
			Requirements: []string{
				fmt.Sprintf("Complete %d minutes of %s", minutes, activity),
				"Focus on proper form",
				"Document your experience",
				"Note how you feel afterward",
			},
		})
	}

	for _, topic := range learningTopics {
		out = append(out, ChallengeTemplate{
			Title:       fmt.Sprintf("Discover %s", titleCase(topic)),
			Description: fmt.Sprintf("Spend 15-20 minutes learning about %s. Find something that surprises or interests you.", topic),
			Category:    models.CategoryLearning,
			Difficulty:  models.DifficultyMedium,
			Points:      18,
			Requirements: []string{
				fmt.Sprintf("Research %s for at least 15 minutes", topic),
				"Use reliable sources",
				"Share one fascinating fact you learned",
				"Explain why it interested you",
			},
		})
	}

	for i, prompt := range creativePrompts {
		difficulty, points := models.DifficultyMedium, 20
		if i%2 == 1 {
			difficulty, points = models.DifficultyHard, 25
		}
		out = append(out, ChallengeTemplate{
			Title:       fmt.Sprintf("Creative Writing: %s", titleCase(prompt)),
			Description: fmt.Sprintf("Write a creative piece inspired by %q. Let your imagination run wild!", prompt),
			Category:    models.CategoryCreative,
			Difficulty:  difficulty,
			Points:      points,
			Requirements: []string{
				fmt.Sprintf("Base your story/poem on %q", prompt),
				"Write 100-200 words",
				"Be creative and original",
				"Any genre is welcome",
			},
		})
	}

	for _, theme := range mindfulnessThemes {
		out = append(out, ChallengeTemplate{
			Title:       fmt.Sprintf("Mindful %s", titleCase(theme)),
			Description: fmt.Sprintf("Practice mindfulness focused on %s. Take time to reflect and be present.", theme),
			Category:    models.CategoryMindfulness,
			Difficulty:  models.DifficultyEasy,
			Points:      12,
			Requirements: []string{
				fmt.Sprintf("Focus on %s for 5-10 minutes", theme),
				"Find a quiet space",
				"Reflect on your experience",
				"Share your main insight",
			},
		})
	}

	for i, project := range codingProjects {
		difficulty, points := models.DifficultyMedium, 25
		if i%3 != 0 {
			difficulty, points = models.DifficultyHard, 30
		}
		out = append(out, ChallengeTemplate{
			Title:       fmt.Sprintf("Code a %s", titleCase(project)),
			Description: fmt.Sprintf("Build a simple %s using any programming language. Focus on functionality and clean code.", project),
			Category:    models.CategoryCoding,
			Difficulty:  difficulty,
			Points:      points,
			Requirements: []string{
				fmt.Sprintf("Create a working %s", project),
				"Use any programming language",
				"Write clean, readable code",
				"Test your implementation",
			},
		})
	}

	out = append(out,
		ChallengeTemplate{
			Title:        "Digital Detox Hour",
			Description:  "Spend one full hour without any digital devices. Focus on offline activities and mental clarity.",
			Category:     models.CategoryMindfulness,
			Difficulty:   models.DifficultyMedium,
			Points:       20,
			Requirements: []string{"No phones, computers, or screens for 1 hour", "Engage in offline activities", "Notice your thoughts and feelings", "Reflect on the experience"},
		},
		ChallengeTemplate{
			Title:        "Local History Explorer",
			Description:  "Research and learn about the history of your local area or neighborhood.",
			Category:     models.CategoryLearning,
			Difficulty:   models.DifficultyEasy,
			Points:       15,
			Requirements: []string{"Research your local area's history", "Find 3 interesting historical facts", "Share what surprised you most"},
		},
		ChallengeTemplate{
			Title:        "Compliment Chain",
			Description:  "Give genuine compliments to 3 different people today (in person, text, or call).",
			Category:     models.CategoryMindfulness,
			Difficulty:   models.DifficultyEasy,
			Points:       15,
			Requirements: []string{"Give 3 genuine compliments", "Make them specific and meaningful", "Note people's reactions"},
		},
		ChallengeTemplate{
			Title:        "Macro Photography",
			Description:  "Take extreme close-up photos of small objects, revealing details usually unseen.",
			Category:     models.CategoryPhoto,
			Difficulty:   models.DifficultyHard,
			Points:       25,
			Requirements: []string{"Take macro/close-up shots", "Focus on tiny details", "Experiment with lighting", "Capture 3-5 different subjects"},
		},
		ChallengeTemplate{
			Title:        "Memory Palace",
			Description:  "Create a memory palace to memorize a list of 10 items using visualization techniques.",
			Category:     models.CategoryLearning,
			Difficulty:   models.DifficultyHard,
			Points:       25,
			Requirements: []string{"Learn the memory palace technique", "Create your own memory palace", "Memorize 10 items", "Test your recall"},
		},
	)

	return out
}

// TemplateForDate picks today's template: the day index since the Unix epoch
// modulo the pool size, so every user sees the same challenge on a given day.
func TemplateForDate(date time.Time) ChallengeTemplate {
	pool := dailyTemplates()
	days := int(midnight(date).Unix() / (24 * 60 * 60))
	idx := days % len(pool)
	if idx < 0 {
		idx += len(pool)
	}
	return pool[idx]
}
