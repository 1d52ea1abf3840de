package events

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/fitforge/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type EventParams struct {
	UID  string
	Type *EventType
	From *time.Time
	To   *time.Time
}

// ListParams pages through events, newest first. Page starts at 1.
type ListParams struct {
	EventParams
	Page int
	Size int
}

func (p ListParams) offset() int {
	if p.Page < 1 {
		return 0
	}
	return p.Size * (p.Page - 1)
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, event Event) (_ *Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.events.add")
	defer tracing.EndSpanWithErrCheck(span, &err)
	span.SetAttributes(attribute.String("type", event.Type.String()))

	if event.Data == nil {
		event.Data = map[string]string{}
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO training_event (uid, type, data, timestamp)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		event.UID,
		event.Type,
		event.Data,
		event.Timestamp,
	).Scan(&event.ID)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.events.get")
	defer tracing.EndSpanWithErrCheck(span, &err)

	event := &Event{}
	err = r.db.
		QueryRow(ctx, `
			SELECT id, uid, type, data, timestamp
			FROM training_event
			WHERE id = $1
		`, id).
		Scan(&event.ID, &event.UID, &event.Type, &event.Data, &event.Timestamp)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []*Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.events.list")
	defer tracing.EndSpanWithErrCheck(span, &err)
	setParamsAttributes(span, params.EventParams)
	span.SetAttributes(attribute.Int("page", params.Page), attribute.Int("size", params.Size))

	events := make([]*Event, 0)
	rows, err := r.db.Query(ctx, `
		SELECT id, uid, type, data, timestamp
		FROM training_event
		WHERE uid = $1
		  AND ($2::text IS NULL OR type = $2)
		  AND ($3::timestamptz IS NULL OR timestamp >= $3)
		  AND ($4::timestamptz IS NULL OR timestamp <= $4)
		ORDER BY timestamp DESC
		LIMIT $5 OFFSET $6;
	`,
		params.UID,
		params.Type,
		params.From, params.To,
		params.Size, params.offset(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		event := &Event{}
		if err := rows.Scan(&event.ID, &event.UID, &event.Type, &event.Data, &event.Timestamp); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *Repo) Count(ctx context.Context, params EventParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.events.count")
	defer tracing.EndSpanWithErrCheck(span, &err)
	setParamsAttributes(span, params)

	var count int
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM training_event
		WHERE uid = $1
		  AND ($2::text IS NULL OR type = $2)
		  AND ($3::timestamptz IS NULL OR timestamp >= $3)
		  AND ($4::timestamptz IS NULL OR timestamp <= $4);
	`,
		params.UID,
		params.Type,
		params.From, params.To,
	).Scan(&count)
	if err != nil {
		return -1, fmt.Errorf("count training events: %w", err)
	}
	return count, nil
}

func setParamsAttributes(span trace.Span, params EventParams) {
	span.SetAttributes(attribute.String("uid", params.UID))
	if params.Type != nil {
		span.SetAttributes(attribute.String("type", string(*params.Type)))
	}
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}
}
