package provider

import (
	"exam-hall/biz/application/service"
	"exam-hall/biz/infrastructure/cache"
	"exam-hall/biz/infrastructure/config"
	"exam-hall/biz/infrastructure/notify"
	"exam-hall/biz/infrastructure/repository/classroom"
	"exam-hall/biz/infrastructure/repository/exam"
	"exam-hall/biz/infrastructure/repository/result"
	"exam-hall/biz/infrastructure/repository/submission"
	"exam-hall/biz/infrastructure/util/clock"

	"github.com/google/wire"
)

var provider *Provider

func Init() {
	var err error
	provider, err = NewProvider()
	if err != nil {
		panic(err)
	}
}

// Provider supplies the objects the controllers depend on.
type Provider struct {
	Config             *config.Config
	ExamService        service.IExamService
	SessionService     service.ISessionService
	ScoringService     service.IScoringService
	PublicationService service.IPublicationService
}

func Get() *Provider {
	return provider
}

var ApplicationSet = wire.NewSet(
	service.ExamServiceSet,
	service.SessionServiceSet,
	service.ScoringServiceSet,
	service.PublicationServiceSet,
	service.AuthGateSet,
)

var InfrastructureSet = wire.NewSet(
	config.NewConfig,
	clock.New,
	exam.NewMongoMapper,
	wire.Bind(new(exam.IMongoMapper), new(*exam.MongoMapper)),
	exam.NewQuestionMongoMapper,
	wire.Bind(new(exam.IQuestionMongoMapper), new(*exam.QuestionMongoMapper)),
	exam.NewInvigilatorMongoMapper,
	wire.Bind(new(exam.IInvigilatorMongoMapper), new(*exam.InvigilatorMongoMapper)),
	submission.NewMongoMapper,
	wire.Bind(new(submission.IMongoMapper), new(*submission.MongoMapper)),
	classroom.NewMemberMongoMapper,
	wire.Bind(new(classroom.IMemberMongoMapper), new(*classroom.MemberMongoMapper)),
	result.NewMongoMapper,
	wire.Bind(new(result.IMongoMapper), new(*result.MongoMapper)),
	cache.NewPaperCacheMapper,
	wire.Bind(new(cache.IPaperCacheMapper), new(*cache.PaperCacheMapper)),
	notify.NewRedisBroadcaster,
	wire.Bind(new(notify.Broadcaster), new(*notify.RedisBroadcaster)),
)

var AllProvider = wire.NewSet(
	ApplicationSet,
	InfrastructureSet,
)
