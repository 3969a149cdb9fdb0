package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"counseling-booking-api/internal/model"
)

const counselorCols = `id, user_id, bio, specialties, hourly_rate, is_professional, available_slots`

func (s *Postgres) CreateCounselor(ctx context.Context, c *model.CounselorProfile) error {
	specs := make([]string, len(c.Specialties))
	for i, sp := range c.Specialties {
		specs[i] = string(sp)
	}
	slots := c.AvailableSlots
	if slots == nil {
		slots = []time.Time{}
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO counselor_profiles (`+counselorCols+`) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.UserID, c.Bio, specs, c.HourlyRate, c.IsProfessional, slots,
	)
	return err
}

func (s *Postgres) GetCounselor(ctx context.Context, id string) (*model.CounselorProfile, error) {
	c, err := scanCounselor(s.db.QueryRow(ctx,
		`SELECT `+counselorCols+` FROM counselor_profiles WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (s *Postgres) ListCounselors(ctx context.Context) ([]model.CounselorProfile, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+counselorCols+` FROM counselor_profiles ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.CounselorProfile{}
	for rows.Next() {
		c, err := scanCounselor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func scanCounselor(row pgx.Row) (*model.CounselorProfile, error) {
	c := &model.CounselorProfile{}
	var specs []string
	if err := row.Scan(&c.ID, &c.UserID, &c.Bio, &specs, &c.HourlyRate, &c.IsProfessional, &c.AvailableSlots); err != nil {
		return nil, err
	}
	c.Specialties = make([]model.Specialty, len(specs))
	for i, sp := range specs {
		c.Specialties[i] = model.Specialty(sp)
	}
	return c, nil
}
