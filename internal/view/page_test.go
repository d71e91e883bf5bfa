package view_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/diario-eletronico/internal/models"
	"github.com/noah-isme/diario-eletronico/internal/view"
)

func render(t *testing.T, state models.FormState, toasts []models.Toast) string {
	t.Helper()
	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(&buf, state, toasts))
	return buf.String()
}

func TestRenderLoadingPlaceholder(t *testing.T) {
	out := render(t, models.FormState{Loading: true, Alunos: []models.Aluno{{ID: "a", Nome: "Ana"}}}, nil)

	require.Contains(t, out, "Carregando...")
	require.NotContains(t, out, "<th class=\"flex-0\">Ordem</th>")
	require.NotContains(t, out, "Ana")
}

func TestRenderEmptyListKeepsHeader(t *testing.T) {
	out := render(t, models.FormState{Alunos: []models.Aluno{}}, nil)

	require.NotContains(t, out, "Carregando...")
	require.Contains(t, out, "<th class=\"flex-0\">Ordem</th>")
	require.Contains(t, out, "Ações")
	require.Zero(t, strings.Count(out, "class=\"row_aluno\""))
}

func TestRenderRowsAndActions(t *testing.T) {
	state := models.FormState{Alunos: []models.Aluno{
		{ID: "a1", Nome: "Ana", Matricula: "123", Curso: "UX", Bimestre: "1"},
		{ID: "b/2", Nome: "<b>Bia</b>", Curso: "Redes"},
	}}
	out := render(t, state, nil)

	require.Equal(t, 2, strings.Count(out, "class=\"row_aluno\""))
	require.Contains(t, out, "<td class=\"flex-0\">1</td>")
	require.Contains(t, out, "<td class=\"flex-0\">2</td>")
	require.Contains(t, out, `action="/alunos/a1/edit"`)
	require.Contains(t, out, `action="/alunos/a1/delete"`)
	require.Contains(t, out, `action="/alunos/b%2F2/delete"`)
	require.Contains(t, out, "&lt;b&gt;Bia&lt;/b&gt;")
}

func TestRenderFormState(t *testing.T) {
	state := models.FormState{
		Draft:        models.Draft{Nome: "Ana", Curso: models.CourseBancoDeDados},
		EditTargetID: "a1",
		NameError:    models.NameRequiredMessage,
	}
	out := render(t, state, []models.Toast{{ID: "t1", Level: models.ToastError, Message: "Erro ao remover o aluno."}})

	require.Contains(t, out, "Diário eletrônico")
	require.Contains(t, out, `value="Ana"`)
	require.Contains(t, out, `<option value="Banco de Dados" selected>Banco de Dados</option>`)
	require.Contains(t, out, `<option value="">Selecione um curso</option>`)
	require.Contains(t, out, "Campo obrigatório!")
	require.Contains(t, out, "Editando aluno")
	require.Contains(t, out, `class="toast toast_error" data-id="t1">Erro ao remover o aluno.</div>`)
}

func TestRenderListErrorOffersRetry(t *testing.T) {
	out := render(t, models.FormState{ListError: "Erro ao carregar os alunos. timeout"}, nil)

	require.Contains(t, out, "Tentar novamente")
	require.Contains(t, out, `action="/alunos/refresh"`)
}

func TestNewPageCourseOptions(t *testing.T) {
	page := view.NewPage(models.FormState{}, nil)

	require.Len(t, page.Courses, 6)
	require.True(t, page.Courses[0].Selected)
	require.Equal(t, models.CoursePlaceholder, page.Courses[0].Label)
	require.False(t, page.Editing)
}

func TestRenderKeepsUnknownCourseSelected(t *testing.T) {
	state := models.FormState{Draft: models.Draft{Nome: "Caio", Curso: models.Course("Culinária")}, EditTargetID: "x1"}

	page := view.NewPage(state, nil)
	require.Len(t, page.Courses, 7)
	last := page.Courses[len(page.Courses)-1]
	require.Equal(t, view.CourseOption{Value: "Culinária", Label: "Culinária", Selected: true}, last)
	require.False(t, page.Courses[0].Selected)

	out := render(t, state, nil)
	require.Contains(t, out, `<option value="Culinária" selected>Culinária</option>`)
}
