package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	_ "github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"
)

type Repositories struct {
	DB       *sql.DB
	Cart     CartRepository
	Coupon   CouponRepository
	Product  ProductRepository
	Order    OrderRepository
	Checkout CheckoutRepository
	Payment  PaymentRepository
	User     UserRepository
}

// New opens the Postgres pool, applies pending migrations and wires every
// repository on top of it.
func New(cfg *config.Config) (*Repositories, error) {
	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()

		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()

		return nil, err
	}

	return NewRepositories(db), nil
}

func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		DB:       db,
		Cart:     NewCartRepository(db),
		Coupon:   NewCouponRepository(db),
		Product:  NewProductRepository(db),
		Order:    NewOrderRepository(db),
		Checkout: NewCheckoutRepository(db),
		Payment:  NewPaymentRepository(db),
		User:     NewUserRepository(db),
	}
}

func (r *Repositories) Close() error {
	if r.DB == nil {
		return nil
	}

	return r.DB.Close()
}

// rollback is deferred after BeginTx; it is a no-op once the transaction
// has been committed.
func rollback(tx *sql.Tx) {
	_ = tx.Rollback()
}
