package quiz

// QuestionResult is the grading outcome of a single question.
type QuestionResult struct {
	QuestionID      string `json:"questionId"`
	Chosen          string `json:"chosen,omitempty"`
	CorrectOptionID string `json:"correctOptionId,omitempty"`
	IsCorrect       bool   `json:"isCorrect"`
}

// Result is the graded outcome of a whole quiz.
type Result struct {
	Score   int              `json:"score"`
	Total   int              `json:"total"`
	Details []QuestionResult `json:"details"`
}

// Grade scores answers against a quiz. A question counts as correct only
// when the chosen option exists in the question and is marked correct.
func Grade(q Quiz, answers Answers) Result {
	result := Result{
		Total:   len(q.Questions),
		Details: make([]QuestionResult, 0, len(q.Questions)),
	}

	for _, question := range q.Questions {
		chosen := answers[question.ID]
		detail := QuestionResult{
			QuestionID: question.ID,
			Chosen:     chosen,
		}
		if correct, ok := question.CorrectOption(); ok {
			detail.CorrectOptionID = correct.ID
		}
		if opt, ok := question.Option(chosen); ok && chosen != "" {
			detail.IsCorrect = opt.Correct
		}
		if detail.IsCorrect {
			result.Score++
		}
		result.Details = append(result.Details, detail)
	}

	return result
}
