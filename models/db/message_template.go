package dbmodels

// MessageTemplate - шаблон письма кандидату или отчета, плейсхолдеры вида {{key}}
type MessageTemplate struct {
	BaseSpaceModel
	Name    string `gorm:"type:varchar(255)"`
	Subject string `gorm:"type:varchar(255)"`
	Message string
}
