package service

import (
	"testing"

	"exam-hall/biz/infrastructure/consts"
)

func TestAllowSupervisionRoles(t *testing.T) {
	cases := []struct {
		name            string
		op              SupervisedOp
		role            string
		sameSchool      bool
		isInvigilator   bool
		scheduleElapsed bool
		want            bool
	}{
		{"global admin always passes", OpEndExam, consts.RoleGlobalAdmin, false, false, false, true},
		{"school admin same school", OpEndExam, consts.RoleSchoolAdmin, true, false, false, true},
		{"school admin other school", OpEndExam, consts.RoleSchoolAdmin, false, false, false, false},
		{"principal same school", OpAdjustTime, consts.RolePrincipal, true, false, false, true},
		{"principal other school", OpAdjustTime, consts.RolePrincipal, false, false, false, false},
		{"student never supervises", OpAnnounce, consts.RoleStudent, true, true, true, false},
		{"unknown role", OpAnnounce, "janitor", true, true, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := allowSupervision(tc.op, tc.role, tc.sameSchool, tc.isInvigilator, tc.scheduleElapsed)
			if got != tc.want {
				t.Fatalf("allowSupervision = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAllowSupervisionTeacher(t *testing.T) {
	cases := []struct {
		name            string
		op              SupervisedOp
		sameSchool      bool
		isInvigilator   bool
		scheduleElapsed bool
		want            bool
	}{
		{"invigilator may announce before close", OpAnnounce, true, true, false, true},
		{"invigilator may pause before close", OpPause, true, true, false, true},
		{"non-invigilator may not announce", OpAnnounce, true, false, true, false},
		{"invigilator may not extend before close", OpAdjustTime, true, true, false, false},
		{"invigilator may extend after close", OpAdjustTime, true, true, true, true},
		{"invigilator may not end before close", OpEndExam, true, true, false, false},
		{"invigilator may end after close", OpEndExam, true, true, true, true},
		{"other school invigilator rejected", OpPause, false, true, true, false},
		{"teacher may mark without invigilation", OpMark, true, false, false, true},
		{"teacher may publish without invigilation", OpPublish, true, false, false, true},
		{"other school teacher may not mark", OpMark, false, false, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := allowSupervision(tc.op, consts.RoleTeacher, tc.sameSchool, tc.isInvigilator, tc.scheduleElapsed)
			if got != tc.want {
				t.Fatalf("allowSupervision = %v, want %v", got, tc.want)
			}
		})
	}
}
