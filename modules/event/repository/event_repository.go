package repository

import (
	"context"
	"database/sql"
	"errors"

	"metra-api/core/database"
	"metra-api/core/logger"
	"metra-api/modules/event/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ErrDuplicateRsvp is returned when a concurrent toggle already inserted the
// same (event, user) RSVP row.
var ErrDuplicateRsvp = errors.New("rsvp already exists")

type EventRepositoryInterface interface {
	Create(ctx context.Context, event *entity.Event, items []entity.EventItem, timeOptionIDs []string, siteOptionIDs []uuid.UUID) (*entity.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*entity.EventDetail, error)
	List(ctx context.Context, limit int) ([]entity.EventDetail, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID, limit int) ([]entity.EventDetail, error)
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id uuid.UUID) error

	ListRsvps(ctx context.Context, eventID uuid.UUID) ([]entity.EventRsvp, error)
	ListRsvpUserIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error)
	DeleteRsvp(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
	InsertRsvpIfCapacity(ctx context.Context, eventID, userID uuid.UUID) (*entity.EventRsvp, error)
}

type EventRepository struct {
	db database.IDatabase
}

func NewEventRepository(db database.IDatabase) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, creator_id, title, slug, description, capacity, status, final_time, final_site_id, created_at, updated_at`

// Create inserts the event and all of its child rows in one transaction.
// Duplicate option ids in the input are collapsed by the unique indexes.
func (r *EventRepository) Create(ctx context.Context, event *entity.Event, items []entity.EventItem, timeOptionIDs []string, siteOptionIDs []uuid.UUID) (*entity.Event, error) {
	var created entity.Event

	err := r.db.Transact(ctx, func(tx *sqlx.Tx) error {
		insertEvent := `
			INSERT INTO events (creator_id, title, slug, description, capacity, status)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING ` + eventColumns
		if err := tx.GetContext(ctx, &created, insertEvent,
			event.CreatorID, event.Title, event.Slug, event.Description,
			event.Capacity, event.Status); err != nil {
			return err
		}

		for _, optionID := range timeOptionIDs {
			insertOption := `
				INSERT INTO event_time_options (event_id, option_id)
				VALUES ($1, $2)
				ON CONFLICT (event_id, option_id) DO NOTHING`
			if _, err := tx.ExecContext(ctx, insertOption, created.ID, optionID); err != nil {
				return err
			}
		}

		for _, siteID := range siteOptionIDs {
			insertOption := `
				INSERT INTO event_site_options (event_id, site_id)
				VALUES ($1, $2)
				ON CONFLICT (event_id, site_id) DO NOTHING`
			if _, err := tx.ExecContext(ctx, insertOption, created.ID, siteID); err != nil {
				return err
			}
		}

		for _, item := range items {
			insertItem := `
				INSERT INTO event_items (event_id, category_id, target_qty)
				VALUES ($1, $2, $3)`
			if _, err := tx.ExecContext(ctx, insertItem, created.ID, item.CategoryID, item.TargetQty); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("EventRepository:Create:Error:", err)
		return nil, err
	}
	return &created, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var event entity.Event
	err := r.db.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetByID:Error:", err)
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) GetDetail(ctx context.Context, id uuid.UUID) (*entity.EventDetail, error) {
	event, err := r.GetByID(ctx, id)
	if err != nil || event == nil {
		return nil, err
	}

	detail := &entity.EventDetail{Event: *event}

	if err := r.db.SelectContext(ctx, &detail.TimeOptions,
		`SELECT id, event_id, option_id, created_at FROM event_time_options WHERE event_id = $1 ORDER BY created_at`, id); err != nil {
		logger.Error("EventRepository:GetDetail:TimeOptions:Error:", err)
		return nil, err
	}
	if err := r.db.SelectContext(ctx, &detail.SiteOptions,
		`SELECT id, event_id, site_id, created_at FROM event_site_options WHERE event_id = $1 ORDER BY created_at`, id); err != nil {
		logger.Error("EventRepository:GetDetail:SiteOptions:Error:", err)
		return nil, err
	}
	if err := r.db.SelectContext(ctx, &detail.Items,
		`SELECT id, event_id, category_id, target_qty, created_at FROM event_items WHERE event_id = $1 ORDER BY created_at`, id); err != nil {
		logger.Error("EventRepository:GetDetail:Items:Error:", err)
		return nil, err
	}
	if err := r.db.GetContext(ctx, &detail.RsvpCount,
		`SELECT COUNT(*) FROM event_rsvps WHERE event_id = $1`, id); err != nil {
		logger.Error("EventRepository:GetDetail:RsvpCount:Error:", err)
		return nil, err
	}
	return detail, nil
}

func (r *EventRepository) List(ctx context.Context, limit int) ([]entity.EventDetail, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC LIMIT $1`

	var events []entity.Event
	if err := r.db.SelectContext(ctx, &events, query, limit); err != nil {
		logger.Error("EventRepository:List:Error:", err)
		return nil, err
	}
	return r.loadDetails(ctx, events)
}

func (r *EventRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID, limit int) ([]entity.EventDetail, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE creator_id = $1 ORDER BY created_at DESC LIMIT $2`

	var events []entity.Event
	if err := r.db.SelectContext(ctx, &events, query, creatorID, limit); err != nil {
		logger.Error("EventRepository:ListByCreator:Error:", err)
		return nil, err
	}
	return r.loadDetails(ctx, events)
}

// loadDetails batch-loads child rows for a page of events.
func (r *EventRepository) loadDetails(ctx context.Context, events []entity.Event) ([]entity.EventDetail, error) {
	details := make([]entity.EventDetail, len(events))
	for i := range events {
		details[i] = entity.EventDetail{
			Event:       events[i],
			TimeOptions: []entity.EventTimeOption{},
			SiteOptions: []entity.EventSiteOption{},
			Items:       []entity.EventItem{},
		}
	}
	if len(events) == 0 {
		return details, nil
	}

	ids := make([]uuid.UUID, len(events))
	index := make(map[uuid.UUID]int, len(events))
	for i, e := range events {
		ids[i] = e.ID
		index[e.ID] = i
	}

	var timeOptions []entity.EventTimeOption
	if err := r.selectIn(ctx, &timeOptions,
		`SELECT id, event_id, option_id, created_at FROM event_time_options WHERE event_id IN (?) ORDER BY created_at`, ids); err != nil {
		return nil, err
	}
	for _, opt := range timeOptions {
		i := index[opt.EventID]
		details[i].TimeOptions = append(details[i].TimeOptions, opt)
	}

	var siteOptions []entity.EventSiteOption
	if err := r.selectIn(ctx, &siteOptions,
		`SELECT id, event_id, site_id, created_at FROM event_site_options WHERE event_id IN (?) ORDER BY created_at`, ids); err != nil {
		return nil, err
	}
	for _, opt := range siteOptions {
		i := index[opt.EventID]
		details[i].SiteOptions = append(details[i].SiteOptions, opt)
	}

	var items []entity.EventItem
	if err := r.selectIn(ctx, &items,
		`SELECT id, event_id, category_id, target_qty, created_at FROM event_items WHERE event_id IN (?) ORDER BY created_at`, ids); err != nil {
		return nil, err
	}
	for _, item := range items {
		i := index[item.EventID]
		details[i].Items = append(details[i].Items, item)
	}

	type rsvpCount struct {
		EventID uuid.UUID `db:"event_id"`
		Count   int       `db:"count"`
	}
	var counts []rsvpCount
	if err := r.selectIn(ctx, &counts,
		`SELECT event_id, COUNT(*) AS count FROM event_rsvps WHERE event_id IN (?) GROUP BY event_id`, ids); err != nil {
		return nil, err
	}
	for _, c := range counts {
		details[index[c.EventID]].RsvpCount = c.Count
	}

	return details, nil
}

func (r *EventRepository) selectIn(ctx context.Context, dest any, query string, ids []uuid.UUID) error {
	q, args, err := sqlx.In(query, ids)
	if err != nil {
		return err
	}
	q = r.db.SQLx().Rebind(q)
	if err := r.db.SelectContext(ctx, dest, q, args...); err != nil {
		logger.Error("EventRepository:selectIn:Error:", err)
		return err
	}
	return nil
}

func (r *EventRepository) Update(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, capacity = $4, status = $5,
		    final_time = $6, final_site_id = $7, updated_at = NOW()
		WHERE id = $1
	`
	err := r.db.ExecContext(ctx, query,
		event.ID, event.Title, event.Description, event.Capacity,
		event.Status, event.FinalTime, event.FinalSiteID)
	if err != nil {
		logger.Error("EventRepository:Update:Error:", err)
		return err
	}
	return nil
}

// Delete removes the event; child rows go with it via ON DELETE CASCADE.
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		logger.Error("EventRepository:Delete:Error:", err)
		return err
	}
	return nil
}

// ===================== RSVPs =====================

func (r *EventRepository) ListRsvps(ctx context.Context, eventID uuid.UUID) ([]entity.EventRsvp, error) {
	query := `SELECT id, event_id, user_id, created_at FROM event_rsvps WHERE event_id = $1 ORDER BY created_at`

	var rsvps []entity.EventRsvp
	if err := r.db.SelectContext(ctx, &rsvps, query, eventID); err != nil {
		logger.Error("EventRepository:ListRsvps:Error:", err)
		return nil, err
	}
	return rsvps, nil
}

func (r *EventRepository) ListRsvpUserIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `SELECT user_id FROM event_rsvps WHERE event_id = $1`
	if err := r.db.SelectContext(ctx, &ids, query, eventID); err != nil {
		logger.Error("EventRepository:ListRsvpUserIDs:Error:", err)
		return nil, err
	}
	return ids, nil
}

// DeleteRsvp removes the user's RSVP and reports whether a row existed.
func (r *EventRepository) DeleteRsvp(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	query := `DELETE FROM event_rsvps WHERE event_id = $1 AND user_id = $2 RETURNING id`

	var id uuid.UUID
	err := r.db.GetContext(ctx, &id, query, eventID, userID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		logger.Error("EventRepository:DeleteRsvp:Error:", err)
		return false, err
	}
	return true, nil
}

// InsertRsvpIfCapacity inserts an RSVP only while the event is below its
// capacity. The event row is locked for the duration of the transaction so
// concurrent joins by different users are serialized per event and the count
// cannot be read stale. A nil row with nil error means the capacity check
// failed or the event is gone.
func (r *EventRepository) InsertRsvpIfCapacity(ctx context.Context, eventID, userID uuid.UUID) (*entity.EventRsvp, error) {
	var rsvp entity.EventRsvp
	full := false

	err := r.db.Transact(ctx, func(tx *sqlx.Tx) error {
		var capacity sql.NullInt64
		err := tx.GetContext(ctx, &capacity,
			`SELECT capacity FROM events WHERE id = $1 FOR UPDATE`, eventID)
		if err != nil {
			return err
		}

		if capacity.Valid {
			var count int64
			if err := tx.GetContext(ctx, &count,
				`SELECT COUNT(*) FROM event_rsvps WHERE event_id = $1`, eventID); err != nil {
				return err
			}
			if count >= capacity.Int64 {
				full = true
				return nil
			}
		}

		insert := `
			INSERT INTO event_rsvps (event_id, user_id)
			VALUES ($1, $2)
			RETURNING id, event_id, user_id, created_at
		`
		return tx.GetContext(ctx, &rsvp, insert, eventID, userID)
	})
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrDuplicateRsvp
		}
		logger.Error("EventRepository:InsertRsvpIfCapacity:Error:", err)
		return nil, err
	}
	if full {
		return nil, nil
	}
	return &rsvp, nil
}
