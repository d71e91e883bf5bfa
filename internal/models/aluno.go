package models

// Aluno is a student record as exposed by the remote /aluno API.
type Aluno struct {
	ID        string `json:"_id,omitempty"`
	Nome      string `json:"nome"`
	Matricula string `json:"matricula"`
	Curso     string `json:"curso"`
	Bimestre  string `json:"bimestre"`
}

// AlunoPayload is the request body accepted by the create and update endpoints.
type AlunoPayload struct {
	Nome      string `json:"nome"`
	Matricula string `json:"matricula"`
	Curso     string `json:"curso"`
	Bimestre  string `json:"bimestre"`
}

// Row is a projection of an Aluno for table rendering.
type Row struct {
	Ordem int
	Aluno Aluno
}
