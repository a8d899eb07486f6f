package service

import (
	"context"
	"errors"
	"testing"

	"exam-hall/biz/infrastructure/consts"
	"exam-hall/biz/infrastructure/repository/classroom"
	"exam-hall/biz/infrastructure/repository/exam"
	"exam-hall/biz/infrastructure/repository/result"
	"exam-hall/biz/infrastructure/repository/submission"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func cardWithScore(surname string, score float64) *result.Result {
	return &result.Result{
		Surname: surname,
		Items:   []result.Item{{SubjectID: "math", ExamScore: score, MaxExamScore: 100}},
	}
}

func TestAssignPositionsDenseRanking(t *testing.T) {
	cards := []*result.Result{
		cardWithScore("Adeyemi", 85),
		cardWithScore("Bello", 85),
		cardWithScore("Chukwu", 70),
	}

	positions := assignPositions(cards)

	want := []int64{1, 1, 3}
	for i := range want {
		if positions[i] != want[i] {
			t.Fatalf("positions = %v, want %v", positions, want)
		}
	}
}

func TestAssignPositionsUnsortedInput(t *testing.T) {
	cards := []*result.Result{
		cardWithScore("Adeyemi", 40),
		cardWithScore("Bello", 90),
		cardWithScore("Chukwu", 60),
		cardWithScore("Danladi", 90),
	}

	positions := assignPositions(cards)

	want := []int64{4, 1, 3, 1}
	for i := range want {
		if positions[i] != want[i] {
			t.Fatalf("positions = %v, want %v", positions, want)
		}
	}
}

// Cards arrive sorted by surname; equal totals must keep that order so the
// ranking is reproducible run to run.
func TestAssignPositionsTieOrderStable(t *testing.T) {
	cards := []*result.Result{
		cardWithScore("Adeyemi", 75),
		cardWithScore("Bello", 75),
		cardWithScore("Chukwu", 75),
	}

	positions := assignPositions(cards)
	for i, p := range positions {
		if p != 1 {
			t.Fatalf("card %d got position %d, want 1", i, p)
		}
	}
}

func TestAssignPositionsCountsCaScore(t *testing.T) {
	ca := 20.0
	withCa := &result.Result{
		Surname: "Adeyemi",
		Items:   []result.Item{{SubjectID: "math", ExamScore: 60, MaxExamScore: 80, CaScore: &ca}},
	}
	without := cardWithScore("Bello", 70)

	positions := assignPositions([]*result.Result{withCa, without})

	// 60+20 beats 70
	if positions[0] != 1 || positions[1] != 2 {
		t.Fatalf("positions = %v, want [1 2]", positions)
	}
}

func TestAssignPositionsEmpty(t *testing.T) {
	if got := assignPositions(nil); len(got) != 0 {
		t.Fatalf("assignPositions(nil) = %v, want empty", got)
	}
}

type stubMemberStore struct {
	classroom.IMemberMongoMapper
}

func (s *stubMemberStore) FindByClassroomAndStudent(_ context.Context, _, _ string) (*classroom.Member, error) {
	return nil, consts.ErrNotFound
}

type fakeResultStore struct {
	result.IMongoMapper
	upserts  int
	failNext bool
}

func (f *fakeResultStore) UpsertItem(_ context.Context, r *result.Result, item result.Item) (*result.Result, error) {
	if f.failNext {
		f.failNext = false
		return nil, errors.New("write concern timeout")
	}
	f.upserts++
	r.Items = append(r.Items, item)
	return r, nil
}

type fakeSubmissionStore struct {
	submission.IMongoMapper
	published int
	casLost   bool
}

func (f *fakeSubmissionStore) SetPublished(_ context.Context, _ string) (*submission.Submission, error) {
	if f.casLost {
		return nil, consts.ErrNotFound
	}
	f.published++
	return &submission.Submission{IsPublished: true}, nil
}

func markedSubmission() *submission.Submission {
	return &submission.Submission{
		ID:          primitive.NewObjectID(),
		ExamID:      primitive.NewObjectID().Hex(),
		StudentID:   "student-1",
		ClassroomID: "classroom-1",
		SchoolID:    "school-1",
		SubjectID:   "math",
		Session:     "2025/2026",
		Term:        "first",
		Status:      consts.SubmissionStatusMarked,
		TotalScore:  7.5,
	}
}

// A failed card write must leave the submission unpublished so the caller can
// retry; flipping the flag only after the card lands guarantees that.
func TestPublishOneCardFailureKeepsSubmissionPublishable(t *testing.T) {
	ctx := context.Background()
	subs := &fakeSubmissionStore{}
	cards := &fakeResultStore{failNext: true}
	svc := &PublicationService{
		SubmissionMapper: subs,
		ResultMapper:     cards,
		MemberMapper:     &stubMemberStore{},
	}
	e := &exam.Exam{TotalMarks: 10}

	if _, err := svc.publishOne(ctx, e, markedSubmission()); !errors.Is(err, consts.ErrPublishResult) {
		t.Fatalf("publishOne with failing card write: err = %v, want %v", err, consts.ErrPublishResult)
	}
	if subs.published != 0 {
		t.Fatalf("is_published flipped despite failed card write")
	}

	r, err := svc.publishOne(ctx, e, markedSubmission())
	if err != nil {
		t.Fatalf("retry after card failure: %v", err)
	}
	if subs.published != 1 || cards.upserts != 1 {
		t.Fatalf("retry: published = %d, upserts = %d, want 1 and 1", subs.published, cards.upserts)
	}
	if len(r.Items) != 1 || r.Items[0].ExamScore != 7.5 || r.Items[0].MaxExamScore != 10 {
		t.Fatalf("card items = %+v, want one math item 7.5/10", r.Items)
	}
}

func TestPublishOneConcurrentLoser(t *testing.T) {
	ctx := context.Background()
	subs := &fakeSubmissionStore{casLost: true}
	cards := &fakeResultStore{}
	svc := &PublicationService{
		SubmissionMapper: subs,
		ResultMapper:     cards,
		MemberMapper:     &stubMemberStore{},
	}

	_, err := svc.publishOne(ctx, &exam.Exam{TotalMarks: 10}, markedSubmission())
	if !errors.Is(err, consts.ErrAlreadyPublished) {
		t.Fatalf("losing the publish race: err = %v, want %v", err, consts.ErrAlreadyPublished)
	}
}

func TestCardsWithinSchool(t *testing.T) {
	mine := &result.Result{SchoolID: "school-1"}
	other := &result.Result{SchoolID: "school-2"}

	tests := []struct {
		name  string
		cards []*result.Result
		want  bool
	}{
		{"all own school", []*result.Result{mine, mine}, true},
		{"foreign card present", []*result.Result{mine, other}, false},
		{"empty group", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cardsWithinSchool(tt.cards, "school-1"); got != tt.want {
				t.Fatalf("cardsWithinSchool = %v, want %v", got, tt.want)
			}
		})
	}
}
