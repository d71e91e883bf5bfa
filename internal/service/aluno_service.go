package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/diario-eletronico/internal/dto"
	"github.com/noah-isme/diario-eletronico/internal/middleware"
	"github.com/noah-isme/diario-eletronico/internal/models"
	"github.com/noah-isme/diario-eletronico/internal/observability"
	"github.com/noah-isme/diario-eletronico/internal/session"
	"github.com/noah-isme/diario-eletronico/pkg/alunoapi"
)

// Toast texts shown after remote operations.
const (
	MsgCreated      = "Aluno cadastrado com sucesso!"
	MsgCreateFailed = "Erro ao cadastrar o aluno: "
	MsgUpdated      = "Aluno atualizado com sucesso!"
	MsgUpdateFailed = "Erro ao atualizar o aluno: "
	MsgDeleted      = "Aluno removido com sucesso."
	MsgDeleteFailed = "Erro ao remover o aluno."
	MsgListFailed   = "Erro ao carregar os alunos."
)

// ErrAlunoNotFound indicates the record is not part of the session's current list.
var ErrAlunoNotFound = errors.New("aluno not found")

// AlunoAPI is the remote student resource.
type AlunoAPI interface {
	List(ctx context.Context) ([]models.Aluno, error)
	Create(ctx context.Context, payload models.AlunoPayload) error
	Update(ctx context.Context, id string, payload models.AlunoPayload) error
	Delete(ctx context.Context, id string) error
}

// AlunoService keeps a session's form state in sync with the remote API.
type AlunoService interface {
	State(ctx context.Context, sessionID string) (models.FormState, error)
	EnsureLoaded(ctx context.Context, sessionID string) (models.FormState, error)
	Refresh(ctx context.Context, sessionID string) (models.FormState, error)
	SetField(ctx context.Context, sessionID, field, value string) (models.FormState, error)
	BeginEdit(ctx context.Context, sessionID, id string) (models.FormState, error)
	Submit(ctx context.Context, sessionID string, form dto.AlunoForm) (models.FormState, error)
	Delete(ctx context.Context, sessionID, id string) (models.FormState, error)
	TakeToasts(ctx context.Context, sessionID string) ([]models.Toast, error)
}

type alunoService struct {
	api           AlunoAPI
	store         session.Store
	locker        *session.Locker
	notifications NotificationService
	activity      ActivityRecorder
	validator     *validator.Validate
	logger        zerolog.Logger
	tracer        trace.Tracer
}

// NewAlunoService wires the sync flow. activity may be nil.
func NewAlunoService(api AlunoAPI, store session.Store, notifications NotificationService, activity ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) AlunoService {
	return &alunoService{
		api:           api,
		store:         store,
		locker:        session.NewLocker(),
		notifications: notifications,
		activity:      activity,
		validator:     validate,
		logger:        logger.With().Str("component", "aluno_service").Logger(),
		tracer:        otel.Tracer("github.com/noah-isme/diario-eletronico/internal/service/aluno"),
	}
}

func (s *alunoService) State(ctx context.Context, sessionID string) (models.FormState, error) {
	return s.store.Load(ctx, sessionID)
}

func (s *alunoService) EnsureLoaded(ctx context.Context, sessionID string) (models.FormState, error) {
	unlock := s.locker.Lock(sessionID)
	defer unlock()

	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return models.FormState{}, err
	}
	if state.Loaded {
		return state, nil
	}

	if err := s.refresh(ctx, sessionID, &state); err != nil {
		return models.FormState{}, err
	}
	return state, nil
}

func (s *alunoService) Refresh(ctx context.Context, sessionID string) (models.FormState, error) {
	unlock := s.locker.Lock(sessionID)
	defer unlock()

	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return models.FormState{}, err
	}

	if err := s.refresh(ctx, sessionID, &state); err != nil {
		return models.FormState{}, err
	}
	return state, nil
}

func (s *alunoService) SetField(ctx context.Context, sessionID, field, value string) (models.FormState, error) {
	return s.mutate(ctx, sessionID, func(state *models.FormState) error {
		return state.SetField(field, value)
	})
}

func (s *alunoService) BeginEdit(ctx context.Context, sessionID, id string) (models.FormState, error) {
	return s.mutate(ctx, sessionID, func(state *models.FormState) error {
		aluno, ok := state.FindAluno(id)
		if !ok {
			return ErrAlunoNotFound
		}
		state.BeginEdit(aluno)
		return nil
	})
}

func (s *alunoService) TakeToasts(ctx context.Context, sessionID string) ([]models.Toast, error) {
	var toasts []models.Toast
	_, err := s.mutate(ctx, sessionID, func(state *models.FormState) error {
		toasts = state.DrainToasts()
		return nil
	})
	return toasts, err
}

// Submit merges the posted fields into the stored draft and sends it. A missing name blocks the
// submit with an inline error and returns the validation error; remote failures are reported
// through toasts and leave err nil.
func (s *alunoService) Submit(ctx context.Context, sessionID string, form dto.AlunoForm) (models.FormState, error) {
	unlock := s.locker.Lock(sessionID)
	defer unlock()

	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return models.FormState{}, err
	}

	for field, value := range form.Fields() {
		if err := state.SetField(field, value); err != nil {
			return models.FormState{}, err
		}
	}

	if validationErr := s.validator.Struct(dto.NewAlunoRequest(state.Draft)); validationErr != nil {
		state.NameError = models.NameRequiredMessage
		if err := s.store.Save(ctx, sessionID, state); err != nil {
			return models.FormState{}, err
		}
		return state, validationErr
	}
	state.NameError = ""

	ctx, span := s.tracer.Start(ctx, "aluno.submit", trace.WithAttributes(
		attribute.String("aluno.mode", string(state.Mode())),
	))
	defer span.End()

	payload := state.Draft.Payload()
	if state.EditTargetID != "" {
		id := state.EditTargetID
		start := time.Now()
		err := s.api.Update(ctx, id, payload)
		observability.ObserveAlunoAPICall("update", start, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "update failed")
			s.requestLogger(ctx, sessionID).Warn().Err(err).Str("aluno_id", id).Msg("failed to update aluno")
			s.toast(ctx, sessionID, &state, models.ToastError, MsgUpdateFailed+err.Error())
			s.record(ctx, sessionID, models.ActionAlunoUpdated, id, err, &payload)
			if alunoapi.IsNotFound(err) {
				// The record is gone upstream; stop targeting it and drop the stale row.
				state.ClearEditTarget()
				if err := s.refresh(ctx, sessionID, &state); err != nil {
					return models.FormState{}, err
				}
			}
		} else {
			if err := s.refresh(ctx, sessionID, &state); err != nil {
				return models.FormState{}, err
			}
			s.toast(ctx, sessionID, &state, models.ToastSuccess, MsgUpdated)
			state.ClearEditTarget()
			s.record(ctx, sessionID, models.ActionAlunoUpdated, id, nil, &payload)
		}
	} else {
		start := time.Now()
		err := s.api.Create(ctx, payload)
		observability.ObserveAlunoAPICall("create", start, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "create failed")
			s.requestLogger(ctx, sessionID).Warn().Err(err).Msg("failed to create aluno")
			s.toast(ctx, sessionID, &state, models.ToastError, MsgCreateFailed+err.Error())
		} else {
			if err := s.refresh(ctx, sessionID, &state); err != nil {
				return models.FormState{}, err
			}
			s.toast(ctx, sessionID, &state, models.ToastSuccess, MsgCreated)
		}
		s.record(ctx, sessionID, models.ActionAlunoCreated, "", err, &payload)
	}

	// The draft is cleared whatever the outcome; a failed update keeps its edit target unless the
	// record no longer exists.
	state.Reset()

	if err := s.store.Save(ctx, sessionID, state); err != nil {
		return models.FormState{}, err
	}
	return state, nil
}

func (s *alunoService) Delete(ctx context.Context, sessionID, id string) (models.FormState, error) {
	unlock := s.locker.Lock(sessionID)
	defer unlock()

	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return models.FormState{}, err
	}

	ctx, span := s.tracer.Start(ctx, "aluno.delete", trace.WithAttributes(attribute.String("aluno.id", id)))
	defer span.End()

	start := time.Now()
	deleteErr := s.api.Delete(ctx, id)
	observability.ObserveAlunoAPICall("delete", start, deleteErr)
	if deleteErr != nil {
		span.RecordError(deleteErr)
		span.SetStatus(codes.Error, "delete failed")
		s.requestLogger(ctx, sessionID).Warn().Err(deleteErr).Str("aluno_id", id).Msg("failed to delete aluno")
		s.toast(ctx, sessionID, &state, models.ToastError, MsgDeleteFailed)
		if alunoapi.IsNotFound(deleteErr) {
			if err := s.refresh(ctx, sessionID, &state); err != nil {
				return models.FormState{}, err
			}
		}
	} else {
		if err := s.refresh(ctx, sessionID, &state); err != nil {
			return models.FormState{}, err
		}
		s.toast(ctx, sessionID, &state, models.ToastSuccess, MsgDeleted)
	}
	s.record(ctx, sessionID, models.ActionAlunoDeleted, id, deleteErr, nil)

	if err := s.store.Save(ctx, sessionID, state); err != nil {
		return models.FormState{}, err
	}
	return state, nil
}

// refresh replaces the list with a fresh fetch. The loading flag is persisted while the call is
// in flight so concurrent renders show the placeholder. A failed fetch keeps the previous list,
// records a diagnostic and clears the loading flag.
func (s *alunoService) refresh(ctx context.Context, sessionID string, state *models.FormState) error {
	state.Loading = true
	if err := s.store.Save(ctx, sessionID, *state); err != nil {
		return err
	}

	start := time.Now()
	alunos, err := s.api.List(ctx)
	observability.ObserveAlunoAPICall("list", start, err)

	state.Loading = false
	state.Loaded = true
	if err != nil {
		s.requestLogger(ctx, sessionID).Error().Err(err).Msg("failed to list alunos")
		state.ListError = fmt.Sprintf("%s %v", MsgListFailed, err)
		s.toast(ctx, sessionID, state, models.ToastError, MsgListFailed)
	} else {
		state.Alunos = alunos
		state.ListError = ""
	}

	return s.store.Save(ctx, sessionID, *state)
}

func (s *alunoService) mutate(ctx context.Context, sessionID string, fn func(*models.FormState) error) (models.FormState, error) {
	unlock := s.locker.Lock(sessionID)
	defer unlock()

	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return models.FormState{}, err
	}
	if err := fn(&state); err != nil {
		return state, err
	}
	if err := s.store.Save(ctx, sessionID, state); err != nil {
		return models.FormState{}, err
	}
	return state, nil
}

func (s *alunoService) toast(ctx context.Context, sessionID string, state *models.FormState, level, message string) {
	if s.notifications == nil {
		state.PushToast(models.Toast{Level: level, Message: message, CreatedAt: time.Now().UTC()})
		return
	}

	toast, err := s.notifications.Publish(ctx, sessionID, level, message)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish toast")
		return
	}
	state.PushToast(toast)
}

func (s *alunoService) record(ctx context.Context, sessionID, action, alunoID string, err error, payload *models.AlunoPayload) {
	if s.activity == nil {
		return
	}

	entry := ActivityEntry{
		SessionID: sessionID,
		Action:    action,
		AlunoID:   alunoID,
		Outcome:   models.OutcomeSuccess,
		Metadata:  map[string]interface{}{},
	}
	if payload != nil {
		entry.Metadata["nome"] = payload.Nome
		entry.Metadata["curso"] = payload.Curso
	}
	if err != nil {
		entry.Outcome = models.OutcomeFailure
		entry.Metadata["error"] = err.Error()
	}

	if _, recErr := s.activity.Record(ctx, entry); recErr != nil {
		s.logger.Warn().Err(recErr).Str("action", action).Msg("failed to record activity")
	}
}

func (s *alunoService) requestLogger(ctx context.Context, sessionID string) *zerolog.Logger {
	logger := s.logger.With().Str("session_id", sessionID).Logger()
	if correlation := middleware.CorrelationIDFromContext(ctx); correlation != "" {
		logger = logger.With().Str("correlation_id", correlation).Logger()
	}
	return &logger
}
