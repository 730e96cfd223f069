package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyQuery = errors.New("query is required")

// Recorder recibe la clasificación de cada consulta (métricas). Puede ser nil.
type Recorder interface {
	QueryClassified(role, intent string)
}

type Service struct {
	resolver  *Resolver
	responder *Responder
	recorder  Recorder
}

func NewService(resolver *Resolver, responder *Responder, recorder Recorder) *Service {
	return &Service{resolver: resolver, responder: responder, recorder: recorder}
}

// Ask devuelve error solo ante fallas inesperadas (datastore, rol inválido).
// "No encontrado" y errores del LLM vuelven como texto de respuesta.
func (s *Service) Ask(ctx context.Context, actor Actor, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}
	if actor == nil {
		return "", ErrInvalidRole
	}

	in := Classify(query, actor.Role())
	if s.recorder != nil {
		s.recorder.QueryClassified(string(actor.Role()), string(in.Kind))
	}

	// Help es texto estático: no hace falta tocar el datastore.
	var data Dataset
	if in.Kind != KindHelp {
		var err error
		data, err = s.resolver.Resolve(ctx, actor)
		if err != nil {
			return "", fmt.Errorf("resolve dataset: %w", err)
		}
	}

	return s.responder.Respond(ctx, in, data, actor.Role(), query), nil
}
