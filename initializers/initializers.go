package initializers

import (
	"ai-interview-backend/config"
	"ai-interview-backend/fiberlog"
	authhandler "ai-interview-backend/lib/auth"
	xlsexport "ai-interview-backend/lib/export/xls"
	filestorage "ai-interview-backend/lib/file-storage"
	gpthandler "ai-interview-backend/lib/gpt"
	"ai-interview-backend/lib/interview"
	staleworker "ai-interview-backend/lib/interview/stale-worker"
	"context"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	filestorage.NewHandler()
	gpthandler.NewHandler()
	interview.NewHandler()
	authhandler.NewHandler()
	xlsexport.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Задача отмены брошенных интервью
	staleworker.StartWorker(ctx)
}
