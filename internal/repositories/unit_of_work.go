package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ErrTxDone is returned when Commit is called on a scope that already ended.
var ErrTxDone = errors.New("transaction already committed or rolled back")

// UnitOfWork opens transaction scopes.
type UnitOfWork interface {
	Begin(ctx context.Context) (TxScope, error)
}

// TxScope exposes repositories bound to one open transaction. Callers must
// defer Rollback right after Begin; Rollback after Commit is a no-op.
type TxScope interface {
	Products() ProductRepository
	Variants() VariantRepository
	Images() ImageRepository
	VariantImages() VariantImageRepository
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type pgxUnitOfWork struct {
	db TxBeginner
}

func NewUnitOfWork(db TxBeginner) UnitOfWork {
	return &pgxUnitOfWork{db: db}
}

func (u *pgxUnitOfWork) Begin(ctx context.Context) (TxScope, error) {
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &pgxTxScope{
		tx:            tx,
		products:      NewProductRepo(tx),
		variants:      NewVariantRepo(tx),
		images:        NewImageRepo(tx),
		variantImages: NewVariantImageRepo(tx),
		orders:        NewOrderRepo(tx),
		orderItems:    NewOrderItemRepo(tx),
	}, nil
}

type pgxTxScope struct {
	tx   pgx.Tx
	done bool

	products      ProductRepository
	variants      VariantRepository
	images        ImageRepository
	variantImages VariantImageRepository
	orders        OrderRepository
	orderItems    OrderItemRepository
}

func (s *pgxTxScope) Products() ProductRepository           { return s.products }
func (s *pgxTxScope) Variants() VariantRepository           { return s.variants }
func (s *pgxTxScope) Images() ImageRepository               { return s.images }
func (s *pgxTxScope) VariantImages() VariantImageRepository { return s.variantImages }
func (s *pgxTxScope) Orders() OrderRepository               { return s.orders }
func (s *pgxTxScope) OrderItems() OrderItemRepository       { return s.orderItems }

func (s *pgxTxScope) Commit(ctx context.Context) error {
	if s.done {
		return ErrTxDone
	}
	s.done = true
	if err := s.tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *pgxTxScope) Rollback(ctx context.Context) error {
	if s.done {
		return nil
	}
	s.done = true
	if err := s.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}
