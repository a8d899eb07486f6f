package service

import (
	"exam-hall/biz/application/dto/exam/hall"
	"exam-hall/biz/infrastructure/notify"
	"exam-hall/biz/infrastructure/repository/exam"
	"exam-hall/biz/infrastructure/repository/result"
	"exam-hall/biz/infrastructure/repository/submission"

	"github.com/jinzhu/copier"
	"github.com/samber/lo"
)

func toSubmissionDTO(s *submission.Submission) *hall.Submission {
	out := &hall.Submission{}
	_ = copier.Copy(out, s)
	out.Id = s.ID.Hex()
	out.ExamId = s.ExamID
	out.StudentId = s.StudentID
	if s.StartTime != nil {
		start := s.StartTime.Unix()
		out.StartTime = &start
	}
	if s.EndTime != nil {
		end := s.EndTime.Unix()
		out.EndTime = &end
	}
	out.Answers = lo.Map(s.Answers, func(a submission.Answer, _ int) *hall.Answer {
		ans := &hall.Answer{}
		_ = copier.Copy(ans, &a)
		ans.QuestionId = a.QuestionID
		return ans
	})
	out.DurationTakenSec = s.DurationTakenSec()
	return out
}

func toExamDTO(e *exam.Exam) *hall.Exam {
	out := &hall.Exam{}
	_ = copier.Copy(out, e)
	out.Id = e.ID.Hex()
	out.SchoolId = e.SchoolID
	out.ClassroomId = e.ClassroomID
	out.SubjectId = e.SubjectID
	if e.ScheduledEndAt != nil {
		at := e.ScheduledEndAt.Unix()
		out.ScheduledEndAt = &at
	}
	out.CreateTime = e.CreateTime.Unix()
	return out
}

func toPaperDTO(e *exam.Exam, questions []*exam.Question) *hall.ExamPaper {
	return &hall.ExamPaper{
		ExamId:            e.ID.Hex(),
		Title:             e.Title,
		DurationInMinutes: e.DurationInMinutes,
		TotalMarks:        e.TotalMarks,
		Questions: lo.Map(questions, func(q *exam.Question, _ int) *hall.PaperQuestion {
			return &hall.PaperQuestion{
				Id:           q.ID.Hex(),
				QuestionType: q.QuestionType,
				Text:         q.Text,
				Options:      q.Options,
				Marks:        q.Marks,
			}
		}),
	}
}

func toEventDTO(e *notify.Event) *hall.ExamEvent {
	return &hall.ExamEvent{
		Id:        e.Id,
		ExamId:    e.ExamId,
		Name:      e.Name,
		Message:   e.PayloadString("message"),
		Timestamp: e.Timestamp,
	}
}

func toResultDTO(r *result.Result) *hall.ResultCard {
	return &hall.ResultCard{
		Id:        r.ID.Hex(),
		StudentId: r.StudentID,
		Session:   r.Session,
		Term:      r.Term,
		Position:  r.Position,
		Items: lo.Map(r.Items, func(item result.Item, _ int) *hall.ResultItem {
			return &hall.ResultItem{
				SubjectId:    item.SubjectID,
				ExamScore:    item.ExamScore,
				MaxExamScore: item.MaxExamScore,
				CaScore:      item.CaScore,
				Position:     item.Position,
			}
		}),
	}
}
