package hall

import "exam-hall/biz/application/dto/basic"

type Exam struct {
	Id                string  `json:"id" mapstructure:"id"`
	SchoolId          string  `json:"schoolId" mapstructure:"schoolId"`
	ClassroomId       string  `json:"classroomId" mapstructure:"classroomId"`
	SubjectId         string  `json:"subjectId" mapstructure:"subjectId"`
	Session           string  `json:"session" mapstructure:"session"`
	Term              string  `json:"term" mapstructure:"term"`
	Title             string  `json:"title" mapstructure:"title"`
	DurationInMinutes int64   `json:"durationInMinutes" mapstructure:"durationInMinutes"`
	MaxPauses         int64   `json:"maxPauses" mapstructure:"maxPauses"`
	ScheduledEndAt    *int64  `json:"scheduledEndAt,omitempty" mapstructure:"scheduledEndAt"`
	TotalMarks        float64 `json:"totalMarks" mapstructure:"totalMarks"`
	CreateTime        int64   `json:"createTime" mapstructure:"createTime"`
}

type CreateExamReq struct {
	ClassroomId       string `json:"classroomId"`
	SubjectId         string `json:"subjectId"`
	Session           string `json:"session"`
	Term              string `json:"term"`
	Title             string `json:"title"`
	DurationInMinutes int64  `json:"durationInMinutes"`
	MaxPauses         int64  `json:"maxPauses"`
	ScheduledEndAt    *int64 `json:"scheduledEndAt,omitempty"`
}

type CreateExamResp struct {
	Exam *Exam  `json:"exam"`
	Msg  string `json:"msg"`
}

type KeywordMark struct {
	Keyword string  `json:"keyword" mapstructure:"keyword"`
	Marks   float64 `json:"marks" mapstructure:"marks"`
}

type AddQuestionReq struct {
	ExamId             string         `path:"examId" json:"examId"`
	QuestionType       string         `json:"questionType"`
	Text               string         `json:"text"`
	Options            []string       `json:"options,omitempty"`
	CorrectOptionIndex *int64         `json:"correctOptionIndex,omitempty"`
	Keywords           []*KeywordMark `json:"keywords,omitempty"`
	Marks              float64        `json:"marks"`
}

type AddQuestionResp struct {
	QuestionId string  `json:"questionId"`
	TotalMarks float64 `json:"totalMarks"`
	Msg        string  `json:"msg"`
}

type AssignInvigilatorReq struct {
	ExamId    string `path:"examId" json:"examId"`
	TeacherId string `json:"teacherId"`
}

type AssignInvigilatorResp struct {
	Msg string `json:"msg"`
}

type PaperQuestion struct {
	Id           string   `json:"id" mapstructure:"id"`
	QuestionType string   `json:"questionType" mapstructure:"questionType"`
	Text         string   `json:"text" mapstructure:"text"`
	Options      []string `json:"options,omitempty" mapstructure:"options"`
	Marks        float64  `json:"marks" mapstructure:"marks"`
}

// ExamPaper is the student-facing projection of an exam; answer keys and
// keyword lists are never part of it.
type ExamPaper struct {
	ExamId            string           `json:"examId" mapstructure:"examId"`
	Title             string           `json:"title" mapstructure:"title"`
	DurationInMinutes int64            `json:"durationInMinutes" mapstructure:"durationInMinutes"`
	TotalMarks        float64          `json:"totalMarks" mapstructure:"totalMarks"`
	Questions         []*PaperQuestion `json:"questions" mapstructure:"questions"`
}

type GetPaperReq struct {
	ExamId string `path:"examId" json:"examId"`
}

type GetPaperResp struct {
	Paper *ExamPaper `json:"paper"`
}

type ListSubmissionsReq struct {
	ExamId            string                   `path:"examId" json:"examId"`
	PaginationOptions *basic.PaginationOptions `json:"paginationOptions,omitempty"`
}

type ListSubmissionsResp struct {
	Submissions []*Submission `json:"submissions"`
	Total       int64         `json:"total"`
}
