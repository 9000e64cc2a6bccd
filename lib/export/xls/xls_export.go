package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	recruitmentapimodels "hr-recruitment-backend/models/api/recruitment"
)

type Provider interface {
	ExportStageList(stageName string, list []recruitmentapimodels.StageRecordView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var stageHeaders = []string{"ФИО", "Email", "Балл", "Категория", "Статус записи", "Подтверждено", "Статус отклика"}

func (i impl) ExportStageList(stageName string, list []recruitmentapimodels.StageRecordView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, stageHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeStageData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, stageName)
	return f.WriteToBuffer()
}

func writeStageData(f *excelize.File, sheet string, list []recruitmentapimodels.StageRecordView, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(stageHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "ФИО"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.CandidateName); err != nil {
			return row, err
		}

		// "Email"
		col++
		if err := writeColumn(f, sheet, col, row, item.CandidateEmail); err != nil {
			return row, err
		}

		// "Балл"
		col++
		if item.Score != nil {
			if err := writeColumn(f, sheet, col, row, *item.Score); err != nil {
				return row, err
			}
		}

		// "Категория"
		col++
		if err := writeColumn(f, sheet, col, row, item.Category); err != nil {
			return row, err
		}

		// "Статус записи"
		col++
		if err := writeColumn(f, sheet, col, row, item.Status.ToString()); err != nil {
			return row, err
		}

		// "Подтверждено"
		col++
		verified := "Нет"
		if item.Verified {
			verified = "Да"
		}
		if err := writeColumn(f, sheet, col, row, verified); err != nil {
			return row, err
		}

		// "Статус отклика"
		col++
		if err := writeColumn(f, sheet, col, row, item.ApplyStatus.ToString()); err != nil {
			return row, err
		}
	}
	return row, nil
}
