package entities

import "time"

type PracticeState string

const (
	PracticeStateCreated    PracticeState = "created"
	PracticeStateInProgress PracticeState = "in_progress"
	PracticeStateFinished   PracticeState = "finished"
)

// PracticeSession is a self-test built from sampled translations.
// Duration and Score stay nil until the session is finished.
type PracticeSession struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"index" json:"user_id"`
	Duration  *time.Duration `json:"duration"`
	Score     *float64       `json:"score"`
	Questions []Question     `gorm:"foreignKey:PracticeSessionID" json:"questions,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}

// Finished reports whether the score has been written.
func (s *PracticeSession) Finished() bool {
	return s.Score != nil
}

// State derives the lifecycle state from the score and the graded questions.
func (s *PracticeSession) State() PracticeState {
	if s.Finished() {
		return PracticeStateFinished
	}
	for _, q := range s.Questions {
		if q.Graded() {
			return PracticeStateInProgress
		}
	}
	return PracticeStateCreated
}

// Question asks the learner to translate one past translation again.
type Question struct {
	ID                uint        `gorm:"primaryKey" json:"id"`
	PracticeSessionID uint        `gorm:"index;uniqueIndex:idx_question_translation,priority:1" json:"practice_session_id"`
	TranslationID     uint        `gorm:"index;uniqueIndex:idx_question_translation,priority:2" json:"translation_id"`
	Translation       Translation `gorm:"foreignKey:TranslationID" json:"translation"`
	AnswerProvided    *string     `gorm:"type:text" json:"answer_provided"`
	Correct           *bool       `json:"correct"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// Graded reports whether a verdict has been recorded.
func (q *Question) Graded() bool {
	return q.Correct != nil
}

// Score returns the percentage of correct answers. An empty session scores 0.
func Score(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100.0 * float64(correct) / float64(total)
}
