package consts

var PageSize int64 = 10

// database fields
const (
	ID         = "_id"
	ExamID     = "exam_id"
	StudentID  = "student_id"
	TeacherID  = "teacher_id"
	Status     = "status"
	CreateTime = "create_time"
	UpdateTime = "update_time"
	In         = "$in"
	NotEqual   = "$ne"
	LessThan   = "$lt"
)

// actor roles carried in the authorization context
const (
	RoleStudent     = "student"
	RoleTeacher     = "teacher"
	RolePrincipal   = "principal"
	RoleSchoolAdmin = "school_admin"
	RoleGlobalAdmin = "global_admin"
)

// submission lifecycle states
const (
	SubmissionStatusReady      = "ready"
	SubmissionStatusInProgress = "in_progress"
	SubmissionStatusPaused     = "paused"
	SubmissionStatusSubmitted  = "submitted"
	SubmissionStatusMarked     = "marked"
)

// question types
const (
	QuestionTypeObjective = "objective"
	QuestionTypeTheory    = "theory"
)

// broadcast event names
const (
	EventExamEnded    = "exam_ended"
	EventAnnouncement = "announcement"
)
