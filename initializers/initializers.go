package initializers

import (
	"context"

	"hr-recruitment-backend/config"
	"hr-recruitment-backend/fiberlog"
	"hr-recruitment-backend/lib/applicant"
	xlsexport "hr-recruitment-backend/lib/export/xls"
	jobhandler "hr-recruitment-backend/lib/job"
	messagetemplate "hr-recruitment-backend/lib/message-template"
	noobjectionhandler "hr-recruitment-backend/lib/no-objection"
	"hr-recruitment-backend/lib/notification"
	questionset "hr-recruitment-backend/lib/question-set"
	recruitmentprocess "hr-recruitment-backend/lib/recruitment/process"
	spaceauthhandler "hr-recruitment-backend/lib/space/auth"
	stagerecordhandler "hr-recruitment-backend/lib/stage-record"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	notification.NewHandler(config.Conf.Smtp.From)
	recruitmentprocess.NewHandler(notification.Instance)
	noobjectionhandler.NewHandler(recruitmentprocess.Instance, notification.Instance)
	spaceauthhandler.NewHandler()
	applicant.NewHandler()
	jobhandler.NewHandler()
	messagetemplate.NewHandler()
	questionset.NewHandler()
	stagerecordhandler.NewHandler()
	xlsexport.NewHandler()
}
