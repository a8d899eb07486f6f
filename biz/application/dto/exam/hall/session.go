package hall

type Answer struct {
	QuestionId          string  `json:"questionId" mapstructure:"questionId"`
	SelectedOptionIndex *int64  `json:"selectedOptionIndex,omitempty" mapstructure:"selectedOptionIndex"`
	AnswerText          string  `json:"answerText,omitempty" mapstructure:"answerText"`
	AwardedMarks        float64 `json:"awardedMarks" mapstructure:"awardedMarks"`
	IsOverridden        bool    `json:"isOverridden" mapstructure:"isOverridden"`
}

type Submission struct {
	Id                   string    `json:"id" mapstructure:"id"`
	ExamId               string    `json:"examId" mapstructure:"examId"`
	StudentId            string    `json:"studentId" mapstructure:"studentId"`
	Status               string    `json:"status" mapstructure:"status"`
	Session              string    `json:"session" mapstructure:"session"`
	Term                 string    `json:"term" mapstructure:"term"`
	StartTime            *int64    `json:"startTime,omitempty" mapstructure:"startTime"`
	EndTime              *int64    `json:"endTime,omitempty" mapstructure:"endTime"`
	PauseCount           int64     `json:"pauseCount" mapstructure:"pauseCount"`
	TimeRemainingOnPause int64     `json:"timeRemainingOnPause" mapstructure:"timeRemainingOnPause"`
	Answers              []*Answer `json:"answers" mapstructure:"answers"`
	TotalScore           float64   `json:"totalScore" mapstructure:"totalScore"`
	IsPublished          bool      `json:"isPublished" mapstructure:"isPublished"`
	Late                 bool      `json:"late" mapstructure:"late"`
	DurationTakenSec     *int64    `json:"durationTakenSec,omitempty" mapstructure:"durationTakenSec"`
}

type StartExamReq struct {
	ExamId string `json:"examId"`
}

type StartExamResp struct {
	Submission *Submission `json:"submission"`
	Msg        string      `json:"msg"`
}

type BeginExamReq struct {
	SubmissionId string `path:"submissionId" json:"submissionId"`
}

type BeginExamResp struct {
	Submission *Submission `json:"submission"`
	Msg        string      `json:"msg"`
}

type SubmitAnswerReq struct {
	SubmissionId        string  `path:"submissionId" json:"submissionId"`
	QuestionId          string  `json:"questionId"`
	SelectedOptionIndex *int64  `json:"selectedOptionIndex,omitempty"`
	AnswerText          *string `json:"answerText,omitempty"`
}

type SubmitAnswerResp struct {
	Submission *Submission `json:"submission"`
	Msg        string      `json:"msg"`
}

type PauseExamReq struct {
	SubmissionId string `path:"submissionId" json:"submissionId"`
}

type PauseExamResp struct {
	Submission *Submission `json:"submission"`
	Msg        string      `json:"msg"`
}

type ResumeExamReq struct {
	SubmissionId string `path:"submissionId" json:"submissionId"`
}

type ResumeExamResp struct {
	Submission *Submission `json:"submission"`
	Msg        string      `json:"msg"`
}

type FinalizeExamReq struct {
	SubmissionId string `path:"submissionId" json:"submissionId"`
}

type FinalizeExamResp struct {
	Submission *Submission `json:"submission"`
	Msg        string      `json:"msg"`
}

type AdjustTimeReq struct {
	ExamId            string `path:"examId" json:"examId"`
	AdditionalMinutes int64  `json:"additionalMinutes"`
}

type AdjustTimeResp struct {
	Exam *Exam  `json:"exam"`
	Msg  string `json:"msg"`
}

type EndExamReq struct {
	ExamId string `path:"examId" json:"examId"`
}

type EndExamResp struct {
	ForceSubmitted int64  `json:"forceSubmitted"`
	Msg            string `json:"msg"`
}

type AnnounceReq struct {
	ExamId  string `path:"examId" json:"examId"`
	Message string `json:"message"`
}

type AnnounceResp struct {
	Msg string `json:"msg"`
}

type ExamEvent struct {
	Id        string `json:"id"`
	ExamId    string `json:"examId"`
	Name      string `json:"name"`
	Message   string `json:"message,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

type ListEventsReq struct {
	ExamId string `path:"examId" json:"examId"`
	Limit  int64  `query:"limit" json:"limit,omitempty"`
}

type ListEventsResp struct {
	Events []*ExamEvent `json:"events"`
	Total  int64        `json:"total"`
}
