package hall

type MarkSubmissionReq struct {
	SubmissionId string `path:"submissionId" json:"submissionId"`
}

type MarkSubmissionResp struct {
	Submission *Submission `json:"submission"`
	Msg        string      `json:"msg"`
}

type OverrideScoreReq struct {
	SubmissionId string   `path:"submissionId" json:"submissionId"`
	QuestionId   string   `json:"questionId"`
	NewScore     *float64 `json:"newScore,omitempty"`
	Reason       string   `json:"reason,omitempty"`
}

type OverrideScoreResp struct {
	Submission *Submission `json:"submission"`
	Msg        string      `json:"msg"`
}

type ResultItem struct {
	SubjectId    string   `json:"subjectId" mapstructure:"subjectId"`
	ExamScore    float64  `json:"examScore" mapstructure:"examScore"`
	MaxExamScore float64  `json:"maxExamScore" mapstructure:"maxExamScore"`
	CaScore      *float64 `json:"caScore,omitempty" mapstructure:"caScore"`
	Position     *int64   `json:"position,omitempty" mapstructure:"position"`
}

type ResultCard struct {
	Id        string        `json:"id" mapstructure:"id"`
	StudentId string        `json:"studentId" mapstructure:"studentId"`
	Session   string        `json:"session" mapstructure:"session"`
	Term      string        `json:"term" mapstructure:"term"`
	Position  *int64        `json:"position,omitempty" mapstructure:"position"`
	Items     []*ResultItem `json:"items" mapstructure:"items"`
}

type PostToReportCardReq struct {
	SubmissionId string `path:"submissionId" json:"submissionId"`
}

type PostToReportCardResp struct {
	Result *ResultCard `json:"result"`
	Msg    string      `json:"msg"`
}

type PublishItem struct {
	SubmissionId string `json:"submissionId"`
	StudentId    string `json:"studentId"`
	Ok           bool   `json:"ok"`
	Message      string `json:"message,omitempty"`
}

type BulkPublishReq struct {
	ExamId string `path:"examId" json:"examId"`
}

type BulkPublishResp struct {
	Successful int64          `json:"successful"`
	Failed     int64          `json:"failed"`
	Items      []*PublishItem `json:"items"`
}

type RecomputePositionsReq struct {
	ClassroomId string `json:"classroomId"`
	Term        string `json:"term"`
	Session     string `json:"session"`
}

type RecomputePositionsResp struct {
	Ranked int64  `json:"ranked"`
	Msg    string `json:"msg"`
}
