package transform

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/iskorotkov/atm-cash-distribution/internal/domain"
	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidWithdrawalID = errors.New("invalid withdrawal id")
	ErrInvalidItem         = errors.New("invalid item")
)

func AmountFromProto(v *wrapperspb.StringValue) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(v.GetValue())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	return amount, nil
}

func AmountToProto(amount decimal.Decimal) *wrapperspb.StringValue {
	return wrapperspb.String(amount.String())
}

func WithdrawalToProto(w domain.Withdrawal) (*structpb.Struct, error) {
	items := make([]any, 0, len(w.Distribution.Items))
	for _, item := range w.Distribution.Items {
		items = append(items, map[string]any{
			"denomination": item.Denomination.String(),
			"quantity":     item.Quantity,
			"unit":         domain.UnitOf(item.Denomination).String(),
		})
	}

	s, err := structpb.NewStruct(map[string]any{
		"withdrawal_id": w.ID.String(),
		"amount":        w.Amount.String(),
		"remainder":     w.Distribution.Remainder.String(),
		"items":         items,
	})
	if err != nil {
		return nil, fmt.Errorf("build withdrawal: %w", err)
	}

	return s, nil
}

func WithdrawalFromProto(s *structpb.Struct) (domain.Withdrawal, error) {
	fields := s.GetFields()

	id, err := uuid.Parse(fields["withdrawal_id"].GetStringValue())
	if err != nil {
		return domain.Withdrawal{}, fmt.Errorf("%w: %v", ErrInvalidWithdrawalID, err)
	}

	amount, err := decimal.NewFromString(fields["amount"].GetStringValue())
	if err != nil {
		return domain.Withdrawal{}, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	remainder, err := decimal.NewFromString(fields["remainder"].GetStringValue())
	if err != nil {
		return domain.Withdrawal{}, fmt.Errorf("%w: remainder: %v", ErrInvalidAmount, err)
	}

	values := fields["items"].GetListValue().GetValues()
	items := make([]domain.Item, 0, len(values))
	for i, v := range values {
		item, err := itemFromProto(v.GetStructValue())
		if err != nil {
			return domain.Withdrawal{}, fmt.Errorf("item %d: %w", i, err)
		}

		items = append(items, item)
	}

	return domain.Withdrawal{
		ID:     id,
		Amount: amount,
		Distribution: domain.Distribution{
			Items:     items,
			Remainder: domain.ToCents(remainder),
		},
	}, nil
}

func itemFromProto(s *structpb.Struct) (domain.Item, error) {
	fields := s.GetFields()

	denomination, err := decimal.NewFromString(fields["denomination"].GetStringValue())
	if err != nil {
		return domain.Item{}, fmt.Errorf("%w: denomination: %v", ErrInvalidItem, err)
	}
	if !denomination.IsPositive() {
		return domain.Item{}, fmt.Errorf("%w: denomination %v is not positive", ErrInvalidItem, denomination)
	}

	if _, ok := fields["quantity"].GetKind().(*structpb.Value_NumberValue); !ok {
		return domain.Item{}, fmt.Errorf("%w: quantity is not a number", ErrInvalidItem)
	}

	quantity := fields["quantity"].GetNumberValue()
	if quantity <= 0 || quantity != math.Trunc(quantity) || quantity > float64(domain.MaxCents) {
		return domain.Item{}, fmt.Errorf("%w: quantity %v", ErrInvalidItem, quantity)
	}

	return domain.Item{
		Denomination: domain.ToCents(denomination),
		Quantity:     int64(quantity),
	}, nil
}
