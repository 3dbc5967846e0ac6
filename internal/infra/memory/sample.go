package memory

import "dogslife-quiz/internal/domain"

// SampleQuestions seeds the in-memory store when no database is configured.
func SampleQuestions() []domain.Question {
	return []domain.Question{
		{
			Text:           "Woran erkennt man Stress beim Hund?",
			Type:           domain.MultipleChoice,
			AllAnswers:     []string{"Gähnen", "Hecheln", "Schwanzwedeln", "Schlafen"},
			CorrectAnswers: []string{"Gähnen", "Hecheln"},
			Category:       "Hundeführerschein",
		},
		{
			Text:           "Muss ein Hund innerorts angeleint werden?",
			Type:           domain.SingleChoice,
			AllAnswers:     []string{"Ja", "Nein"},
			CorrectAnswers: []string{"Ja"},
			Category:       "Hundeführerschein",
		},
		{
			Text:           "Wie oft sollte ein erwachsener Hund gefüttert werden?",
			Type:           domain.SingleChoice,
			AllAnswers:     []string{"Einmal pro Woche", "Ein- bis zweimal täglich", "Stündlich"},
			CorrectAnswers: []string{"Ein- bis zweimal täglich"},
			Category:       "Hundeführerschein",
		},
		{
			Text:           "Welche Signale gehören zu den Beschwichtigungssignalen?",
			Type:           domain.MultipleChoice,
			AllAnswers:     []string{"Kopf abwenden", "Über die Nase lecken", "Knurren", "Zähne fletschen"},
			CorrectAnswers: []string{"Kopf abwenden", "Über die Nase lecken"},
			Category:       "Trainerprüfung",
		},
		{
			Text:           "Was beschreibt positive Verstärkung?",
			Type:           domain.SingleChoice,
			AllAnswers:     []string{"Etwas Angenehmes wird hinzugefügt", "Etwas Unangenehmes wird entfernt", "Etwas Angenehmes wird entfernt"},
			CorrectAnswers: []string{"Etwas Angenehmes wird hinzugefügt"},
			Category:       "Trainerprüfung",
		},
		{
			Text:           "In welchem Alter liegt die Sozialisierungsphase des Welpen?",
			Type:           domain.SingleChoice,
			AllAnswers:     []string{"3. bis 12. Woche", "6. bis 9. Monat", "2. bis 3. Lebensjahr"},
			CorrectAnswers: []string{"3. bis 12. Woche"},
			Category:       "Trainerprüfung",
		},
	}
}
