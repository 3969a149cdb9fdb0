package store

import (
	"context"

	"counseling-booking-api/internal/model"
)

func (s *Postgres) CreateScreening(ctx context.Context, sc *model.InitialScreening) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO screenings (id, user_id, result, notes, created_at) VALUES ($1,$2,$3,$4,$5)`,
		sc.ID, sc.UserID, string(sc.Result), sc.Notes, sc.CreatedAt,
	)
	return err
}

func (s *Postgres) ScreeningByUser(ctx context.Context, userID string) (*model.InitialScreening, error) {
	sc := &model.InitialScreening{}
	var result string
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, result, notes, created_at FROM screenings WHERE user_id = $1`, userID,
	).Scan(&sc.ID, &sc.UserID, &result, &sc.Notes, &sc.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	sc.Result = model.ScreeningResult(result)
	return sc, nil
}
