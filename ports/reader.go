package ports

import (
	"gosegment/domain/survey"
)

// SurveyReader loads the raw survey table from its source file
type SurveyReader interface {
	Read() (*survey.RawTable, error)
}
