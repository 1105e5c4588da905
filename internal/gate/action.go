package gate

// Action describes the kind of operation a role wants to perform.
type Action string

const (
	ActionView    Action = "view"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionList    Action = "list"
	ActionHistory Action = "history"
	// ActionValue covers figures derived from prices and stock.
	ActionValue Action = "value"
	ActionPay   Action = "pay"
)
