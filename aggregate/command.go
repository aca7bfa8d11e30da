package aggregate

import (
	"errors"

	"goflare.io/cart/models"
	"goflare.io/cart/models/enum"
)

var (
	ErrMissingLineID    = errors.New("aggregate: line item id is required")
	ErrMissingProductID = errors.New("aggregate: product id is required")
)

// Command is the closed set of cart mutations. The unexported marker keeps
// the union sealed to this package; construct commands through the New*
// constructors so required fields are validated up front.
type Command interface {
	Kind() enum.CommandKind
	isCommand()
}

// SetState replaces the cart wholesale with an externally supplied snapshot.
// The snapshot is trusted as-is: derived scalars are not re-verified.
type SetState struct {
	State models.CartState
}

// AddItem appends a new line, or merges into the existing line with the same
// ProductID. Quantity and price are not validated; negative values propagate
// arithmetically into the totals.
type AddItem struct {
	Item models.LineItem
}

// UpdateQuantity sets the quantity of the line identified by LineID.
// An unknown LineID is a silent no-op.
type UpdateQuantity struct {
	LineID   string
	Quantity int64
}

// RemoveItem drops the line identified by LineID.
// An unknown LineID is a silent no-op.
type RemoveItem struct {
	LineID string
}

// ClearCart empties the cart and zeroes every derived scalar.
type ClearCart struct{}

func NewSetState(state models.CartState) SetState {
	return SetState{State: state}
}

func NewAddItem(item models.LineItem) (AddItem, error) {
	if item.ID == "" {
		return AddItem{}, ErrMissingLineID
	}
	if item.ProductID == "" {
		return AddItem{}, ErrMissingProductID
	}
	return AddItem{Item: item}, nil
}

func NewUpdateQuantity(lineID string, quantity int64) (UpdateQuantity, error) {
	if lineID == "" {
		return UpdateQuantity{}, ErrMissingLineID
	}
	return UpdateQuantity{LineID: lineID, Quantity: quantity}, nil
}

func NewRemoveItem(lineID string) (RemoveItem, error) {
	if lineID == "" {
		return RemoveItem{}, ErrMissingLineID
	}
	return RemoveItem{LineID: lineID}, nil
}

func NewClearCart() ClearCart {
	return ClearCart{}
}

func (SetState) Kind() enum.CommandKind       { return enum.CommandSetState }
func (AddItem) Kind() enum.CommandKind        { return enum.CommandAddItem }
func (UpdateQuantity) Kind() enum.CommandKind { return enum.CommandUpdateQuantity }
func (RemoveItem) Kind() enum.CommandKind     { return enum.CommandRemoveItem }
func (ClearCart) Kind() enum.CommandKind      { return enum.CommandClearCart }

func (SetState) isCommand()       {}
func (AddItem) isCommand()        {}
func (UpdateQuantity) isCommand() {}
func (RemoveItem) isCommand()     {}
func (ClearCart) isCommand()      {}
