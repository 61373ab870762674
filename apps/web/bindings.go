package webapi

import (
	"github.com/go-playground/validator/v10"

	"github.com/darasahq/darasa/core/directory"
	"github.com/darasahq/darasa/core/school"
	"github.com/darasahq/darasa/core/session"
)

type LoginResponse struct {
	Session  session.Session `json:"session"`
	Redirect string          `json:"redirect"`
}

type MeResponse struct {
	State    string              `json:"state"`
	Loading  bool                `json:"loading"`
	Identity *directory.Identity `json:"identity,omitempty"`
}

type GradeSubmission struct {
	StudentID string `json:"student_id" validate:"required"`
	Score     int    `json:"score" validate:"min=0"`
	MaxScore  int    `json:"max_score" validate:"required,min=1"`
}

type GradesRequest struct {
	Grades []GradeSubmission `json:"grades" validate:"required,min=1,dive"`
}

func (r *GradesRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

type GradesResponse struct {
	Saved   int                 `json:"saved"`
	Entries []school.GradeEntry `json:"entries"`
}
