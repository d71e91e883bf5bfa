package models

import "errors"

// Form field names accepted by FormState.SetField. They match the wire names of the API.
const (
	FieldNome      = "nome"
	FieldMatricula = "matricula"
	FieldCurso     = "curso"
	FieldBimestre  = "bimestre"
)

// NameRequiredMessage is the inline error shown when a submit is attempted without a name.
const NameRequiredMessage = "Campo obrigatório!"

// ErrUnknownField is returned by SetField for names outside the draft.
var ErrUnknownField = errors.New("unknown form field")

// FormMode tells whether a submit creates or updates a record.
type FormMode string

const (
	ModeCreating FormMode = "creating"
	ModeEditing  FormMode = "editing"
)

// Draft holds the in-progress field values of the form.
type Draft struct {
	Nome      string `json:"nome"`
	Matricula string `json:"matricula"`
	Curso     Course `json:"curso"`
	Bimestre  string `json:"bimestre"`
}

// Payload converts the draft to the API request body.
func (d Draft) Payload() AlunoPayload {
	return AlunoPayload{
		Nome:      d.Nome,
		Matricula: d.Matricula,
		Curso:     string(d.Curso),
		Bimestre:  d.Bimestre,
	}
}

// IsZero reports whether every field is empty.
func (d Draft) IsZero() bool {
	return d == Draft{}
}

// FormState is the complete UI state of one form instance.
type FormState struct {
	Draft        Draft   `json:"draft"`
	EditTargetID string  `json:"edit_target_id"`
	NameError    string  `json:"name_error"`
	Alunos       []Aluno `json:"alunos"`
	Loading      bool    `json:"loading"`
	ListError    string  `json:"list_error"`
	Loaded       bool    `json:"loaded"`
	Toasts       []Toast `json:"toasts"`
}

// Mode derives the form mode from the edit target.
func (s FormState) Mode() FormMode {
	if s.EditTargetID != "" {
		return ModeEditing
	}
	return ModeCreating
}

// SetField merges a single field into the draft, leaving the others untouched.
// Course values outside the form's options are kept verbatim.
func (s *FormState) SetField(name, value string) error {
	switch name {
	case FieldNome:
		s.Draft.Nome = value
	case FieldMatricula:
		s.Draft.Matricula = value
	case FieldCurso:
		s.Draft.Curso = Course(value)
	case FieldBimestre:
		s.Draft.Bimestre = value
	default:
		return ErrUnknownField
	}
	return nil
}

// BeginEdit copies an existing record into the draft and targets it for update.
func (s *FormState) BeginEdit(aluno Aluno) {
	s.Draft = Draft{
		Nome:      aluno.Nome,
		Matricula: aluno.Matricula,
		Curso:     Course(aluno.Curso),
		Bimestre:  aluno.Bimestre,
	}
	s.EditTargetID = aluno.ID
}

// Reset clears the draft. The edit target is managed by the caller.
func (s *FormState) Reset() {
	s.Draft = Draft{}
}

// ClearEditTarget returns the form to create mode.
func (s *FormState) ClearEditTarget() {
	s.EditTargetID = ""
}

// PushToast queues a notification for the next render.
func (s *FormState) PushToast(toast Toast) {
	s.Toasts = append(s.Toasts, toast)
}

// DrainToasts returns and clears the queued notifications.
func (s *FormState) DrainToasts() []Toast {
	toasts := s.Toasts
	s.Toasts = nil
	return toasts
}

// FindAluno looks up a record of the current list by identifier.
func (s FormState) FindAluno(id string) (Aluno, bool) {
	for _, aluno := range s.Alunos {
		if aluno.ID == id {
			return aluno, true
		}
	}
	return Aluno{}, false
}

// Rows numbers the current list from 1 in server order.
func (s FormState) Rows() []Row {
	rows := make([]Row, 0, len(s.Alunos))
	for i, aluno := range s.Alunos {
		rows = append(rows, Row{Ordem: i + 1, Aluno: aluno})
	}
	return rows
}
