package msgtemplateapimodels

import (
	"github.com/pkg/errors"
)

type TemplateData struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (d TemplateData) Validate() error {
	if d.Name == "" {
		return errors.New("не указано название шаблона")
	}
	if d.Message == "" {
		return errors.New("не указан текст шаблона")
	}
	return nil
}

// RenderData - значения подстановок вида {{ключ}}
type RenderData struct {
	Values map[string]string `json:"values"`
}

type RenderView struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}
