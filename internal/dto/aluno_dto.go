package dto

import "github.com/noah-isme/diario-eletronico/internal/models"

// AlunoForm is the submitted form. A nil field was not posted and leaves the stored draft value
// in place.
type AlunoForm struct {
	Nome      *string `json:"nome" form:"nome"`
	Matricula *string `json:"matricula" form:"matricula"`
	Curso     *string `json:"curso" form:"curso"`
	Bimestre  *string `json:"bimestre" form:"bimestre"`
}

// Fields lists the posted values by form field name.
func (f AlunoForm) Fields() map[string]string {
	fields := make(map[string]string, 4)
	for name, value := range map[string]*string{
		models.FieldNome:      f.Nome,
		models.FieldMatricula: f.Matricula,
		models.FieldCurso:     f.Curso,
		models.FieldBimestre:  f.Bimestre,
	} {
		if value != nil {
			fields[name] = *value
		}
	}
	return fields
}

// AlunoRequest is the draft about to be sent to the API. Only the name is required.
type AlunoRequest struct {
	Nome      string `validate:"required"`
	Matricula string
	Curso     string
	Bimestre  string
}

// NewAlunoRequest wraps a draft for validation.
func NewAlunoRequest(draft models.Draft) AlunoRequest {
	payload := draft.Payload()
	return AlunoRequest{
		Nome:      payload.Nome,
		Matricula: payload.Matricula,
		Curso:     payload.Curso,
		Bimestre:  payload.Bimestre,
	}
}

// FieldUpdateRequest merges a single field into the draft.
type FieldUpdateRequest struct {
	Field string `json:"field" form:"field" validate:"required,oneof=nome matricula curso bimestre"`
	Value string `json:"value" form:"value"`
}

// DraftResponse mirrors models.Draft for JSON clients.
type DraftResponse struct {
	Nome      string `json:"nome"`
	Matricula string `json:"matricula"`
	Curso     string `json:"curso"`
	Bimestre  string `json:"bimestre"`
}

// RowResponse is one numbered table row.
type RowResponse struct {
	Ordem     int    `json:"ordem"`
	ID        string `json:"_id"`
	Nome      string `json:"nome"`
	Matricula string `json:"matricula"`
	Curso     string `json:"curso"`
	Bimestre  string `json:"bimestre"`
}

// FormStateResponse exposes the session form state.
type FormStateResponse struct {
	Mode         string        `json:"mode"`
	Draft        DraftResponse `json:"draft"`
	EditTargetID string        `json:"edit_target_id"`
	NameError    string        `json:"name_error"`
	Loading      bool          `json:"loading"`
	ListError    string        `json:"list_error,omitempty"`
	Rows         []RowResponse `json:"rows"`
}

// NewFormStateResponse converts the state container to its JSON view.
func NewFormStateResponse(state models.FormState) FormStateResponse {
	rows := make([]RowResponse, 0, len(state.Alunos))
	for _, row := range state.Rows() {
		rows = append(rows, RowResponse{
			Ordem:     row.Ordem,
			ID:        row.Aluno.ID,
			Nome:      row.Aluno.Nome,
			Matricula: row.Aluno.Matricula,
			Curso:     row.Aluno.Curso,
			Bimestre:  row.Aluno.Bimestre,
		})
	}

	return FormStateResponse{
		Mode: string(state.Mode()),
		Draft: DraftResponse{
			Nome:      state.Draft.Nome,
			Matricula: state.Draft.Matricula,
			Curso:     string(state.Draft.Curso),
			Bimestre:  state.Draft.Bimestre,
		},
		EditTargetID: state.EditTargetID,
		NameError:    state.NameError,
		Loading:      state.Loading,
		ListError:    state.ListError,
		Rows:         rows,
	}
}
