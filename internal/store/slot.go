package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"counseling-booking-api/internal/model"
)

func (s *Postgres) AddSlots(ctx context.Context, slots []model.AvailabilitySlot) error {
	if len(slots) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, sl := range slots {
		batch.Queue(
			`INSERT INTO availability_slots (counselor_id, start_time, end_time, is_booked) VALUES ($1,$2,$3,$4)`,
			sl.CounselorID, sl.StartTime, sl.EndTime, sl.IsBooked,
		)
	}
	return s.db.SendBatch(ctx, batch).Close()
}

func (s *Postgres) AvailableSlots(ctx context.Context, counselorID string, start, end time.Time) ([]model.AvailabilitySlot, error) {
	q := `SELECT counselor_id, start_time, end_time, is_booked
		 FROM availability_slots
		 WHERE NOT is_booked
		   AND start_time >= $1 AND start_time <= $2`
	args := []any{start, end}

	if counselorID != "" {
		q += ` AND counselor_id = $3`
		args = append(args, counselorID)
	}
	q += ` ORDER BY start_time, seq`

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.AvailabilitySlot{}
	for rows.Next() {
		var sl model.AvailabilitySlot
		if err := rows.Scan(&sl.CounselorID, &sl.StartTime, &sl.EndTime, &sl.IsBooked); err != nil {
			return nil, err
		}
		out = append(out, sl)
	}
	return out, rows.Err()
}

func (s *Postgres) ReserveSlot(ctx context.Context, counselorID string, start time.Time) (bool, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE availability_slots SET is_booked = TRUE
		 WHERE seq = (
			SELECT seq FROM availability_slots
			WHERE counselor_id = $1 AND start_time = $2 AND NOT is_booked
			ORDER BY seq
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		 )`, counselorID, start,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
