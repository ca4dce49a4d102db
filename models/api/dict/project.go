package dictapimodels

import (
	"github.com/pkg/errors"
	dbmodels "timesheet-backend/models/db"
)

type ProjectData struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProjectView struct {
	ProjectData
	ID string `json:"id"`
}

func (c ProjectData) Validate() error {
	if c.Name == "" {
		return errors.New("не указано название проекта")
	}
	return nil
}

func ProjectConvert(rec dbmodels.Project) ProjectView {
	return ProjectView{
		ProjectData: ProjectData{
			Name:        rec.Name,
			Description: rec.Description,
		},
		ID: rec.ID,
	}
}
