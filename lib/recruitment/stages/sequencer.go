package stages

import (
	"hr-recruitment-backend/models"
	dbmodels "hr-recruitment-backend/models/db"

	"github.com/pkg/errors"
)

// ErrInvalidStage - этап отсутствует в пайплайне вакансии: конфигурацию найма
// поменяли после того, как кандидаты уже дошли до этого этапа
var ErrInvalidStage = errors.New("этап не входит в список этапов вакансии")

// NoNextStage - текущий этап последний, перевод дальше не сконфигурирован.
// Для вызывающих это штатный no-op, не ошибка.
const NoNextStage = models.StageKey("")

// Next - этап, следующий за current в списке этапов вакансии
func Next(pipeline []models.StageKey, current models.StageKey) (models.StageKey, error) {
	index := -1
	for k, stage := range pipeline {
		if stage == current {
			index = k
			break
		}
	}
	if index == -1 {
		return NoNextStage, errors.Wrapf(ErrInvalidStage, "этап %v", current)
	}
	if index+1 >= len(pipeline) {
		return NoNextStage, nil
	}
	return pipeline[index+1], nil
}

// PartitionFilter - предикат разбиения откликов вакансии по наличию рабочей
// записи следующего этапа. NextIsNull=true - "еще на текущем этапе",
// NextIsNull=false - "уже переведен дальше". Для терминального следующего
// этапа проверка наличия записи не имеет смысла и опускается.
type PartitionFilter struct {
	JobID         string
	NextKind      models.RecordKind
	NextIsNull    bool
	SkipNextCheck bool
}

// Partition - построить фильтр разбиения для этапа stage вакансии job
func Partition(job dbmodels.Job, stage models.StageKey, isNull bool) (PartitionFilter, error) {
	next, err := Next(job.Stages, stage)
	if err != nil {
		return PartitionFilter{}, err
	}
	filter := PartitionFilter{
		JobID:      job.ID,
		NextIsNull: isNull,
	}
	if next == NoNextStage || next.IsTerminal() {
		filter.SkipNextCheck = true
		return filter, nil
	}
	filter.NextKind = RecordKind(next)
	return filter, nil
}
