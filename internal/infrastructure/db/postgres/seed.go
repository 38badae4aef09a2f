package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts the demo dataset when the users table is empty: two accounts
// (owner@pethero.test / owner123, guardian@pethero.test / guardian123), their
// profiles, a guardian catalog entry, an availability slot, the pet Luna, an
// accepted booking plus its voucher and payment, a favorite, a review and a
// first message. The demo credentials are stored as plaintext on purpose so
// the first login exercises the bcrypt upgrade path.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("seed count: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	iso := func(t time.Time) string { return t.Format(time.RFC3339Nano) }

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback(ctx)

	steps := []struct {
		sql  string
		args []any
	}{
		{`INSERT INTO users (id, email, password, role, is_logged_in, profile_id, created_at)
		  VALUES (1, 'owner@pethero.test', 'owner123', 'owner', FALSE, 1, $1),
		         (2, 'guardian@pethero.test', 'guardian123', 'guardian', FALSE, 2, $1)`,
			[]any{iso(now)}},
		{`INSERT INTO profiles (id, user_id, display_name, phone, location, bio, avatar_url)
		  VALUES (1, 1, 'Alicia Duena', '+54 9 11 0000-0001', 'Buenos Aires',
		          'Duena responsable buscando guardianes de confianza.', 'https://i.pravatar.cc/160?img=48'),
		         (2, 2, 'Bruno Guardian', '+54 9 11 0000-0002', 'Buenos Aires',
		          'Cuidador con patio amplio y mucho carino por los animales.', 'https://i.pravatar.cc/160?img=12')`,
			nil},
		{`SELECT setval('users_id_seq', 2)`, nil},
		{`SELECT setval('profiles_id_seq', 2)`, nil},
		{`INSERT INTO guardians (id, name, bio, price_per_night, accepted_types, accepted_sizes,
		                         photos, avatar_url, rating_avg, rating_count, city)
		  VALUES ('2', 'Bruno Guardian', 'Cuidador con patio amplio y mucho carino por los animales.',
		          7500, '{DOG,CAT}', '{SMALL,MEDIUM}', '{}',
		          'https://i.pravatar.cc/160?img=12', 4.8, 12, 'Buenos Aires')`,
			nil},
		{`INSERT INTO availability (id, guardian_id, start_date, end_date, created_at, updated_at)
		  VALUES ('slot-1', '2', $1, $2, $3, '')`,
			[]any{iso(now.AddDate(0, 0, 3)), iso(now.AddDate(0, 0, 10)), iso(now)}},
		{`INSERT INTO pets (id, owner_id, name, type, breed, size, photo_url, vaccine_calendar_url, notes)
		  VALUES ('pet-1', '1', 'Luna', 'DOG', 'Mestiza', 'MEDIUM',
		          'https://images.dog.ceo/breeds/spaniel-brittany/n02101388_6057.jpg',
		          'https://example.com/calendario-luna.pdf', 'Super sociable y duerme toda la noche.')`,
			nil},
		{`INSERT INTO bookings (id, owner_id, guardian_id, pet_id, start_date, end_date,
		                        status, deposit_paid, total_price, created_at)
		  VALUES ('booking-1', '1', '2', 'pet-1', $1, $2, 'ACCEPTED', TRUE, 22500, $3)`,
			[]any{iso(now.AddDate(0, 0, 5)), iso(now.AddDate(0, 0, 8)), iso(now)}},
		{`INSERT INTO favorites (id, owner_id, guardian_id, created_at)
		  VALUES ($1, '1', '2', $2)`,
			[]any{uuid.NewString(), iso(now)}},
		{`INSERT INTO reviews (id, booking_id, owner_id, guardian_id, rating, comment, created_at)
		  VALUES ('rev-1', 'booking-1', '1', '2', 5, 'Excelente cuidado, Luna volvio feliz.', $1)`,
			[]any{iso(now)}},
		{`INSERT INTO messages (id, from_user_id, to_user_id, body, booking_id, status, created_at)
		  VALUES ('msg-1', '1', '2', 'Hola Bruno, tenes disponibilidad para la proxima semana?',
		          'booking-1', 'SENT', $1)`,
			[]any{iso(now.Add(-30 * time.Minute))}},
		{`INSERT INTO payment_vouchers (id, booking_id, amount, due_date, status, created_at)
		  VALUES ('vouch-1', 'booking-1', 11250, $1, 'ISSUED', $2)`,
			[]any{iso(now.AddDate(0, 0, 2)), iso(now)}},
		{`INSERT INTO payments (id, booking_id, amount, type, status, created_at)
		  VALUES ('pay-1', 'booking-1', 11250, 'DEPOSIT', 'APPROVED', $1)`,
			[]any{iso(now.Add(-10 * time.Minute))}},
	}

	for _, step := range steps {
		if _, err := tx.Exec(ctx, step.sql, step.args...); err != nil {
			return fmt.Errorf("seed insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}
