package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"counseling-booking-api/internal/model"
)

const appointmentCols = `id, client_id, counselor_id, start_time, end_time, status, meeting_link, is_professional, created_at`

func (s *Postgres) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO appointments (`+appointmentCols+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		a.ID, a.ClientID, a.CounselorID, a.StartTime, a.EndTime,
		string(a.Status), a.MeetingLink, a.IsProfessional, a.CreatedAt,
	)
	return err
}

func (s *Postgres) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	a, err := scanAppointment(s.db.QueryRow(ctx,
		`SELECT `+appointmentCols+` FROM appointments WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (s *Postgres) UpdateAppointmentStatus(ctx context.Context, id string, status model.AppointmentStatus) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE appointments SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) UserAppointments(ctx context.Context, userID string) ([]model.Appointment, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+appointmentCols+` FROM appointments
		 WHERE client_id = $1
		    OR counselor_id IN (SELECT id FROM counselor_profiles WHERE user_id = $1)
		 ORDER BY start_time, created_at`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (s *Postgres) CountProfessional(ctx context.Context, clientID string, from, to time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments
		 WHERE client_id = $1
		   AND is_professional
		   AND status <> 'cancelled'
		   AND start_time >= $2 AND start_time < $3`, clientID, from, to,
	).Scan(&n)
	return n, err
}

func scanAppointment(row pgx.Row) (*model.Appointment, error) {
	a := &model.Appointment{}
	var status string
	if err := row.Scan(&a.ID, &a.ClientID, &a.CounselorID, &a.StartTime, &a.EndTime,
		&status, &a.MeetingLink, &a.IsProfessional, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Status = model.AppointmentStatus(status)
	return a, nil
}
