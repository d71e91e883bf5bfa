package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"

	"github.com/noah-isme/diario-eletronico/internal/models"
)

// Title is the page heading.
const Title = "Diário eletrônico"

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// CourseOption is one entry of the course select.
type CourseOption struct {
	Value    string
	Label    string
	Selected bool
}

// RowView is a numbered table row with its action targets.
type RowView struct {
	Ordem        int
	Aluno        models.Aluno
	EditAction   string
	DeleteAction string
}

// Page is the data rendered by the index template.
type Page struct {
	Title     string
	Draft     models.Draft
	NameError string
	Editing   bool
	Courses   []CourseOption
	Loading   bool
	ListError string
	Rows      []RowView
	Toasts    []models.Toast
}

// NewPage projects the form state onto the template model.
func NewPage(state models.FormState, toasts []models.Toast) Page {
	options := append([]models.Course{models.CourseUnset}, models.Courses()...)
	if !state.Draft.Curso.Known() {
		// Keep a value written by another client selectable so a resubmit sends it back.
		options = append(options, state.Draft.Curso)
	}

	courses := make([]CourseOption, 0, len(options))
	for _, course := range options {
		courses = append(courses, CourseOption{
			Value:    string(course),
			Label:    course.Label(),
			Selected: course == state.Draft.Curso,
		})
	}

	rows := make([]RowView, 0, len(state.Alunos))
	for _, row := range state.Rows() {
		escaped := url.PathEscape(row.Aluno.ID)
		rows = append(rows, RowView{
			Ordem:        row.Ordem,
			Aluno:        row.Aluno,
			EditAction:   "/alunos/" + escaped + "/edit",
			DeleteAction: "/alunos/" + escaped + "/delete",
		})
	}

	return Page{
		Title:     Title,
		Draft:     state.Draft,
		NameError: state.NameError,
		Editing:   state.Mode() == models.ModeEditing,
		Courses:   courses,
		Loading:   state.Loading,
		ListError: state.ListError,
		Rows:      rows,
		Toasts:    toasts,
	}
}

// Renderer executes the parsed page template.
type Renderer struct {
	index *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	index, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}
	return &Renderer{index: index}, nil
}

// Render writes the page for state, showing toasts in the toast container.
func (r *Renderer) Render(w io.Writer, state models.FormState, toasts []models.Toast) error {
	return r.index.ExecuteTemplate(w, "index.html", NewPage(state, toasts))
}

// Static returns the stylesheet and scripts served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
