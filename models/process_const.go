package models

// RecordStatus - статус обработки рабочей записи этапа
type RecordStatus string

const (
	RecordStatusPending   RecordStatus = "Pending"
	RecordStatusProgress  RecordStatus = "Progress"
	RecordStatusCompleted RecordStatus = "Completed"
)

func (s RecordStatus) ToString() string {
	return string(s)
}

// NoObjectionStatus - статус ручного гейта согласования
type NoObjectionStatus string

const (
	NoObjectionStatusPending   NoObjectionStatus = "Pending"
	NoObjectionStatusCompleted NoObjectionStatus = "Completed"
	NoObjectionStatusApproved  NoObjectionStatus = "Approved"
	NoObjectionStatusDenied    NoObjectionStatus = "Denied"
)

func (s NoObjectionStatus) ToString() string {
	return string(s)
}

// IsResolved - Approved/Denied терминальны, повторное решение недопустимо
func (s NoObjectionStatus) IsResolved() bool {
	return s == NoObjectionStatusApproved || s == NoObjectionStatusDenied
}

// JobStatus - статус вакансии
type JobStatus string

const (
	JobStatusDraft     JobStatus = "Draft"
	JobStatusPublished JobStatus = "Published"
	JobStatusClosed    JobStatus = "Closed"
)

// UserRole - роль пользователя пространства
type UserRole string

const (
	SpaceAdminRole UserRole = "space_admin"
	SpaceUserRole  UserRole = "space_user"
)

// SystemUserName - имя автора для системных записей аудита
const SystemUserName = "Система"

// SystemRejectRemarks - ремарка при отклонении кандидатов системой после согласования
const SystemRejectRemarks = "Rejected By System"
