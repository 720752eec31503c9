package entity

import (
	"time"

	"github.com/volatiletech/null/v8"
)

const DefaultTestName = "General test"

type TestResult struct {
	ID             int64      `db:"id" json:"id"`
	UserID         null.Int64 `db:"user_id" json:"user_id"`
	TestName       string     `db:"test_name" json:"test_name"`
	Score          int        `db:"score" json:"score"`
	TotalQuestions int        `db:"total_questions" json:"total_questions"`
	CompletedAt    time.Time  `db:"completed_at" json:"completed_at"`
}

func NewTestResult(userID int64, testName string, score, total int) TestResult {
	if testName == "" {
		testName = DefaultTestName
	}
	return TestResult{
		UserID:         null.Int64From(userID),
		TestName:       testName,
		Score:          score,
		TotalQuestions: total,
	}
}
