package entity

type SlotState string

const (
	SlotAvailable SlotState = "available"
	SlotBooked    SlotState = "booked"
	SlotPast      SlotState = "past"
)

// Slot is derived on every availability query and never stored.
type Slot struct {
	Time  string    `json:"time"`
	State SlotState `json:"state"`
}
