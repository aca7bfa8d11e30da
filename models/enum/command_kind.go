package enum

// CommandKind identifies a cart mutation command.
type CommandKind string

const (
	CommandSetState       CommandKind = "set_state"
	CommandAddItem        CommandKind = "add_item"
	CommandUpdateQuantity CommandKind = "update_quantity"
	CommandRemoveItem     CommandKind = "remove_item"
	CommandClearCart      CommandKind = "clear_cart"
)
