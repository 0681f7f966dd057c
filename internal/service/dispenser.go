package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/iskorotkov/atm-cash-distribution/internal/distributor"
	"github.com/iskorotkov/atm-cash-distribution/internal/domain"
	"github.com/iskorotkov/atm-cash-distribution/internal/transform"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func NewDispenser(d distributor.Denominations) *Dispenser {
	return &Dispenser{
		denominations: d,
		newID:         uuid.NewV7, // UUID v7 are automatically sorted by timestamp.
	}
}

type Dispenser struct {
	denominations distributor.Denominations
	newID         func() (uuid.UUID, error)
}

func (d *Dispenser) Distribute(
	ctx context.Context,
	req *connect.Request[wrapperspb.StringValue],
) (*connect.Response[structpb.Struct], error) {
	amount, err := transform.AmountFromProto(req.Msg)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if !amount.IsPositive() {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("amount must be greater than 0"))
	}

	cents, err := domain.ParseCents(amount)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	id, err := d.newID()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate withdrawal id", "error", err)
		return nil, connect.NewError(connect.CodeInternal, errors.New("failed to generate withdrawal id"))
	}

	w := domain.Withdrawal{
		ID:           id,
		Amount:       amount,
		Distribution: d.denominations.Distribute(cents),
	}

	if w.Distribution.Remainder > 0 {
		slog.WarnContext(ctx, "amount not fully distributed",
			"withdrawal_id", id,
			"amount", amount.String(),
			"remainder", w.Distribution.Remainder.String(),
		)
	}

	resp, err := transform.WithdrawalToProto(w)
	if err != nil {
		slog.ErrorContext(ctx, "failed to transform withdrawal", "error", err)
		return nil, connect.NewError(connect.CodeInternal, errors.New("failed to build response"))
	}

	return connect.NewResponse(resp), nil
}
