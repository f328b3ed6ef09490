package checkout

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/domain"
)

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(cred *Credentials) (*PostgresRepository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "reservations_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

func (r *PostgresRepository) CreateReservation(ctx context.Context, reservation *domain.Reservation) error {
	itemsJSON, err := json.Marshal(reservation.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal reservation items: %w", err)
	}

	query := `INSERT INTO reservations
	          (id, idempotency_key, customer_name, mobile, secondary_mobile, address, city, items, total_amount, status, created_at, updated_at)
	          VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())`

	_, insertErr := r.db.ExecContext(ctx, query,
		reservation.ID,
		reservation.IdempotencyKey,
		reservation.CustomerName,
		reservation.Mobile,
		reservation.SecondaryMobile,
		reservation.Address,
		reservation.City,
		itemsJSON,
		reservation.TotalAmount,
		reservation.Status)

	if insertErr != nil {
		var pqErr *pq.Error
		if errors.As(insertErr, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateReservation
		}
		return fmt.Errorf("insert reservation: %w", insertErr)
	}
	return nil
}

func (r *PostgresRepository) GetReservationByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	query := `SELECT id, COALESCE(idempotency_key, ''), customer_name, mobile, secondary_mobile, address, city, items, total_amount, status, created_at, updated_at
	          FROM reservations WHERE id = $1`

	return r.scanReservation(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetReservationByIdempotencyKey(ctx context.Context, key string) (*domain.Reservation, error) {
	query := `SELECT id, COALESCE(idempotency_key, ''), customer_name, mobile, secondary_mobile, address, city, items, total_amount, status, created_at, updated_at
	          FROM reservations WHERE idempotency_key = $1`

	reservation, err := r.scanReservation(r.db.QueryRowContext(ctx, query, key))
	if errors.Is(err, ErrReservationNotFound) {
		return nil, ErrIdempotencyKeyNotFound
	}
	return reservation, err
}

func (r *PostgresRepository) scanReservation(row *sql.Row) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var itemsJSON []byte

	err := row.Scan(
		&reservation.ID,
		&reservation.IdempotencyKey,
		&reservation.CustomerName,
		&reservation.Mobile,
		&reservation.SecondaryMobile,
		&reservation.Address,
		&reservation.City,
		&itemsJSON,
		&reservation.TotalAmount,
		&reservation.Status,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan reservation: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &reservation.Items); err != nil {
		return nil, fmt.Errorf("unmarshal reservation items: %w", err)
	}
	return &reservation, nil
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}
