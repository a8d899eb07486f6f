package service

import (
	"context"
	"errors"
	"exam-hall/biz/application/dto/basic"
	"exam-hall/biz/infrastructure/consts"
	"exam-hall/biz/infrastructure/repository/classroom"
	"exam-hall/biz/infrastructure/repository/exam"
	"exam-hall/biz/infrastructure/util/clock"
	"exam-hall/biz/infrastructure/util/log"

	"github.com/google/wire"
)

// SupervisedOp names an operation covered by the supervision policy table.
type SupervisedOp int

const (
	OpAnnounce SupervisedOp = iota
	OpPause
	OpAdjustTime
	OpEndExam
	OpMark
	OpPublish
)

type opRule struct {
	// teacherNeedsInvigilator: a plain teacher passes only when listed in
	// the invigilator registry for the exam.
	teacherNeedsInvigilator bool
	// teacherNeedsScheduleElapsed: when the exam has a scheduled end, a
	// plain teacher passes only after it, so an invigilator cannot distort
	// the exam before its scheduled close.
	teacherNeedsScheduleElapsed bool
}

var supervisionRules = map[SupervisedOp]opRule{
	OpAnnounce:   {teacherNeedsInvigilator: true},
	OpPause:      {teacherNeedsInvigilator: true},
	OpAdjustTime: {teacherNeedsInvigilator: true, teacherNeedsScheduleElapsed: true},
	OpEndExam:    {teacherNeedsInvigilator: true, teacherNeedsScheduleElapsed: true},
	OpMark:       {},
	OpPublish:    {},
}

// allowSupervision is the policy table core: role checks are decided here,
// in one place, never inlined per operation.
func allowSupervision(op SupervisedOp, role string, sameSchool, isInvigilator, scheduleElapsed bool) bool {
	rule, ok := supervisionRules[op]
	if !ok {
		return false
	}
	switch role {
	case consts.RoleGlobalAdmin:
		return true
	case consts.RoleSchoolAdmin, consts.RolePrincipal:
		return sameSchool
	case consts.RoleTeacher:
		if !sameSchool {
			return false
		}
		if rule.teacherNeedsInvigilator && !isInvigilator {
			return false
		}
		if rule.teacherNeedsScheduleElapsed && !scheduleElapsed {
			return false
		}
		return true
	default:
		return false
	}
}

// AuthGate evaluates the supervision policy and the enrollment precondition
// for every state transition.
type AuthGate struct {
	InvigilatorMapper exam.IInvigilatorMongoMapper
	MemberMapper      classroom.IMemberMongoMapper
	Clock             clock.Clock
}

var AuthGateSet = wire.NewSet(
	wire.Struct(new(AuthGate), "*"),
)

// EnsureSupervisor authorizes a supervisory operation on an exam.
func (g *AuthGate) EnsureSupervisor(ctx context.Context, e *exam.Exam, actor *basic.UserMeta, op SupervisedOp) error {
	if actor.GetUserId() == "" {
		return consts.ErrNotAuthentication
	}

	isInvigilator := false
	if actor.GetRole() == consts.RoleTeacher {
		_, err := g.InvigilatorMapper.FindByExamAndTeacher(ctx, e.ID.Hex(), actor.GetUserId())
		switch {
		case err == nil:
			isInvigilator = true
		case errors.Is(err, consts.ErrNotFound):
		default:
			return err
		}
	}

	scheduleElapsed := e.ScheduledEndAt == nil || g.Clock.Now().After(*e.ScheduledEndAt)
	sameSchool := actor.GetSchoolId() == e.SchoolID

	if !allowSupervision(op, actor.GetRole(), sameSchool, isInvigilator, scheduleElapsed) {
		log.CtxInfo(ctx, "supervision denied [exam: %s, actor: %s, role: %s, op: %d]",
			e.ID.Hex(), actor.GetUserId(), actor.GetRole(), op)
		return consts.ErrForbidden
	}
	return nil
}

// EnsureEnrolled verifies classroom membership and returns the member record.
func (g *AuthGate) EnsureEnrolled(ctx context.Context, classroomID, studentID string) (*classroom.Member, error) {
	member, err := g.MemberMapper.FindByClassroomAndStudent(ctx, classroomID, studentID)
	if err != nil {
		if errors.Is(err, consts.ErrNotFound) {
			return nil, consts.ErrNotEnrolled
		}
		return nil, err
	}
	return member, nil
}
