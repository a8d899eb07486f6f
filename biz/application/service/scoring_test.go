package service

import (
	"testing"

	"exam-hall/biz/infrastructure/consts"
	"exam-hall/biz/infrastructure/repository/exam"
	"exam-hall/biz/infrastructure/repository/submission"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func objectiveQuestion(correct int64, marks float64) *exam.Question {
	return &exam.Question{
		ID:                 primitive.NewObjectID(),
		QuestionType:       consts.QuestionTypeObjective,
		Options:            []string{"a", "b", "c", "d"},
		CorrectOptionIndex: correct,
		Marks:              marks,
	}
}

func theoryQuestion(marks float64, keywords ...exam.KeywordMark) *exam.Question {
	return &exam.Question{
		ID:           primitive.NewObjectID(),
		QuestionType: consts.QuestionTypeTheory,
		Keywords:     keywords,
		Marks:        marks,
	}
}

func int64p(v int64) *int64 { return &v }

func TestScoreObjective(t *testing.T) {
	q := objectiveQuestion(2, 5)

	cases := []struct {
		name string
		ans  *submission.Answer
		want float64
	}{
		{"correct option", &submission.Answer{SelectedOptionIndex: int64p(2)}, 5},
		{"wrong option", &submission.Answer{SelectedOptionIndex: int64p(0)}, 0},
		{"no selection", &submission.Answer{}, 0},
		{"unanswered", nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := scoreObjective(q, tc.ans); got != tc.want {
				t.Fatalf("scoreObjective = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestScoreTheory(t *testing.T) {
	q := theoryQuestion(10,
		exam.KeywordMark{Keyword: "photosynthesis", Marks: 4},
		exam.KeywordMark{Keyword: "chlorophyll", Marks: 6},
	)

	cases := []struct {
		name string
		text string
		want float64
	}{
		{"both keywords", "Photosynthesis requires chlorophyll in the leaf.", 10},
		{"first only", "photosynthesis converts light to energy", 4},
		{"second only", "the green pigment is Chlorophyll", 6},
		{"neither", "plants need water and sunlight", 0},
		{"keyword repeated counts once", "chlorophyll chlorophyll chlorophyll", 6},
		{"case insensitive", "PHOTOSYNTHESIS and CHLOROPHYLL", 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := scoreTheory(q, &submission.Answer{AnswerText: tc.text})
			if got != tc.want {
				t.Fatalf("scoreTheory(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}

	if got := scoreTheory(q, nil); got != 0 {
		t.Fatalf("scoreTheory(nil) = %v, want 0", got)
	}
}

func TestGradeSubmission(t *testing.T) {
	obj := objectiveQuestion(1, 5)
	theory := theoryQuestion(10,
		exam.KeywordMark{Keyword: "mitosis", Marks: 4},
		exam.KeywordMark{Keyword: "chromosome", Marks: 6},
	)
	unanswered := objectiveQuestion(0, 3)

	sub := &submission.Submission{
		Answers: []submission.Answer{
			{QuestionID: obj.ID.Hex(), SelectedOptionIndex: int64p(1)},
			{QuestionID: theory.ID.Hex(), AnswerText: "cells divide by mitosis"},
			{QuestionID: primitive.NewObjectID().Hex(), AnswerText: "orphan answer"},
		},
	}

	graded, total := gradeSubmission([]*exam.Question{obj, theory, unanswered}, sub)

	if total != 9 {
		t.Fatalf("total = %v, want 9", total)
	}
	if len(graded) != 3 {
		t.Fatalf("graded %d answers, want 3", len(graded))
	}
	if graded[0].AwardedMarks != 5 {
		t.Fatalf("objective awarded %v, want 5", graded[0].AwardedMarks)
	}
	if graded[1].AwardedMarks != 4 {
		t.Fatalf("theory awarded %v, want 4", graded[1].AwardedMarks)
	}
	if graded[2].AwardedMarks != 0 {
		t.Fatalf("unanswered awarded %v, want 0", graded[2].AwardedMarks)
	}
}

func TestTotalScoreAfterOverride(t *testing.T) {
	answers := []submission.Answer{
		{QuestionID: "q1", AwardedMarks: 5},
		{QuestionID: "q2", AwardedMarks: 4},
		{QuestionID: "q3", AwardedMarks: 0},
	}
	if got := totalScore(answers); got != 9 {
		t.Fatalf("totalScore = %v, want 9", got)
	}

	answers[2].AwardedMarks = 7
	answers[2].IsOverridden = true
	if got := totalScore(answers); got != 16 {
		t.Fatalf("totalScore after override = %v, want 16", got)
	}
}

func TestKeywordSumValidation(t *testing.T) {
	if !floatEquals(0.1+0.2, 0.3) {
		t.Fatal("floatEquals must absorb float addition noise")
	}
	if floatEquals(9.5, 10) {
		t.Fatal("floatEquals must reject a real mismatch")
	}
}
