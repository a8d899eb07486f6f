package main

import (
	handler "exam-hall/biz/adaptor/controller"
	"exam-hall/biz/adaptor/controller/examhall"

	"github.com/cloudwego/hertz/pkg/app/server"
)

// customizedRegister registers customize routers.
func customizedRegister(r *server.Hertz) {
	r.GET("/ping", handler.Ping)

	apiV1 := r.Group("/api/v1")
	{
		exams := apiV1.Group("/exams")
		{
			exams.POST("", examhall.CreateExam)
			exams.GET("/:examId/paper", examhall.GetPaper)
			exams.POST("/:examId/questions", examhall.AddQuestion)
			exams.POST("/:examId/invigilators", examhall.AssignInvigilator)
			exams.POST("/:examId/submissions", examhall.ListSubmissions)
			exams.POST("/:examId/adjust-time", examhall.AdjustTime)
			exams.POST("/:examId/end", examhall.EndExam)
			exams.POST("/:examId/announce", examhall.Announce)
			exams.GET("/:examId/events", examhall.ListEvents)
			exams.POST("/:examId/publish", examhall.BulkPublish)
		}

		submissions := apiV1.Group("/submissions")
		{
			submissions.POST("", examhall.StartExam)
			submissions.POST("/:submissionId/begin", examhall.BeginExam)
			submissions.PUT("/:submissionId/answers", examhall.SubmitAnswer)
			submissions.POST("/:submissionId/pause", examhall.PauseExam)
			submissions.POST("/:submissionId/resume", examhall.ResumeExam)
			submissions.POST("/:submissionId/finalize", examhall.FinalizeExam)
			submissions.POST("/:submissionId/mark", examhall.MarkSubmission)
			submissions.POST("/:submissionId/override", examhall.OverrideScore)
			submissions.POST("/:submissionId/publish", examhall.PostToReportCard)
		}

		results := apiV1.Group("/results")
		{
			results.POST("/positions", examhall.RecomputePositions)
		}
	}
}
