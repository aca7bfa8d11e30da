// Package aggregate implements the cart aggregation core: a pure transition
// function from (state, command) to state that re-derives the summary
// scalars on every mutation.
package aggregate

import (
	"goflare.io/cart/models"
)

// Apply runs one command against state and returns the next state. It is
// pure and total: no I/O, no clock, no randomness, and every command is
// accepted. The input state is never mutated.
//
// After every mutating command except SetState the returned state satisfies:
//
//	TotalItems = Σ item.Quantity
//	Subtotal   = Σ item.TotalPrice
//	ItemCount  = len(Items)
//	TotalPrice = Quantity × UnitPrice for every item
//
// and at most one line exists per ProductID.
func Apply(state models.CartState, cmd Command) models.CartState {
	switch c := cmd.(type) {
	case SetState:
		// Wholesale replace. The caller is authoritative; scalars are
		// taken as supplied, not recomputed.
		return c.State.Clone()

	case AddItem:
		next := state.Clone()
		merged := false
		for i := range next.Items {
			if next.Items[i].ProductID == c.Item.ProductID {
				// Merge keyed on ProductID: the first line keeps its id,
				// the incoming line id is discarded.
				next.Items[i].Quantity += c.Item.Quantity
				next.Items[i].TotalPrice = float64(next.Items[i].Quantity) * next.Items[i].UnitPrice
				merged = true
				break
			}
		}
		if !merged {
			item := c.Item.Clone()
			item.TotalPrice = float64(item.Quantity) * item.UnitPrice
			next.Items = append(next.Items, item)
		}
		return recompute(next)

	case UpdateQuantity:
		next := state.Clone()
		for i := range next.Items {
			if next.Items[i].ID == c.LineID {
				next.Items[i].Quantity = c.Quantity
				next.Items[i].TotalPrice = float64(c.Quantity) * next.Items[i].UnitPrice
				break
			}
		}
		return recompute(next)

	case RemoveItem:
		next := state.Clone()
		for i := range next.Items {
			if next.Items[i].ID == c.LineID {
				next.Items = append(next.Items[:i], next.Items[i+1:]...)
				break
			}
		}
		return recompute(next)

	case ClearCart:
		cleared := models.NewCartState()
		cleared.Currency = state.Currency
		return cleared
	}

	return state.Clone()
}

// recompute re-derives all three scalars in a single full pass over the
// collection. Totals are never patched incrementally; correctness holds by
// construction rather than per-handler bookkeeping.
func recompute(state models.CartState) models.CartState {
	var totalItems int64
	var subtotal float64
	for _, item := range state.Items {
		totalItems += item.Quantity
		subtotal += item.TotalPrice
	}
	state.TotalItems = totalItems
	state.Subtotal = subtotal
	state.ItemCount = len(state.Items)
	return state
}
