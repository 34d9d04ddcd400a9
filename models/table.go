package models

const (
	TableAvailable = "available"
	TableOccupied  = "occupied"
	TableReserved  = "reserved"
)

// Table is one physical dining table. State is set externally by the
// reservation and order flows, never by the table itself.
type Table struct {
	ID       int64
	Number   int
	Capacity int
	Location string
	State    string
}
